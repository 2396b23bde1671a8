package screens

import (
	"fmt"
	"strconv"

	"github.com/phanxgames/bunnyworld/content"
	"github.com/phanxgames/bunnyworld/stage"
)

const (
	hudDepth  = 10000
	hudHeight = 80
)

// HUD is the overlay drawn above level screens: the level title, a star
// counter and a home button back to the menu.
type HUD struct {
	root     *stage.Node
	title    *stage.Node
	starText *stage.Node
	home     *stage.Node
	stars    int
}

func newHUD(m *Manager, info *content.ScreenInfo) *HUD {
	s := m.Scene()
	w, _ := m.Size()
	h := &HUD{root: stage.NewContainer("hud")}
	h.root.SetDepth(hudDepth)

	bar := stage.NewRect("bar", w, hudHeight, stage.RGBA(0x2C1810, 0.85))
	bar.SetPosition(w/2, hudHeight/2)
	h.root.AddChild(bar)
	line := stage.NewRect("line", w, 3, gold)
	line.SetPosition(w/2, hudHeight)
	h.root.AddChild(line)

	title := fmt.Sprintf("Màn %d: %s", m.Content().Flow.ScreenPosition(info.Key), info.Subtitle)
	h.title = label("title", title, 24, gold)
	h.title.SetOrigin(0, 0.5)
	h.title.SetPosition(120, 40)
	h.root.AddChild(h.title)

	star := stage.NewSprite("star", starIcon(14, gold))
	star.SetPosition(w-125, 40)
	h.root.AddChild(star)
	h.starText = label("stars", "0", 24, white)
	h.starText.SetOrigin(0, 0.5)
	h.starText.SetPosition(w-100, 40)
	h.root.AddChild(h.starText)

	h.home = homeButton(func() {
		if err := m.Start(MenuKey); err != nil {
			warnf("home: %v", err)
		}
	})
	h.home.SetPosition(50, 40)
	h.root.AddChild(h.home)

	s.Root().AddChild(h.root)
	return h
}

func homeButton(onClick func()) *stage.Node {
	paint := func(c uint32) *stage.Node {
		g := stage.NewGraphics(52, 52)
		g.FillStyle(stage.RGB(c), 1)
		g.FillCircle(26, 26, 24)
		g.LineStyle(2, white, 1)
		g.StrokeCircle(26, 26, 24)
		g.FillStyle(white, 1)
		g.FillTriangle(14, 26, 38, 26, 26, 14)
		g.FillRect(18, 26, 16, 12)
		g.FillStyle(stage.RGB(c), 1)
		g.FillRect(24, 31, 5, 7)
		return stage.NewSprite("face", g.Canvas())
	}
	n := stage.NewContainer("home")
	n.Interactable = true
	n.HitShape = stage.HitCircle{Radius: 24}
	normal, hover := paint(0x4A90E2), paint(0x90EE90)
	hover.Visible = false
	n.AddChild(normal)
	n.AddChild(hover)
	n.OnPointerEnter = func(stage.PointerContext) {
		n.SetScale(1.2, 1.2)
		normal.Visible, hover.Visible = false, true
	}
	n.OnPointerLeave = func(stage.PointerContext) {
		n.SetScale(1, 1)
		normal.Visible, hover.Visible = true, false
	}
	n.OnClick = func(stage.ClickContext) { onClick() }
	return n
}

// AddStars adds n to the star counter. Safe on a nil HUD.
func (h *HUD) AddStars(n int) {
	if h == nil {
		return
	}
	h.stars += n
	h.starText.SetText(strconv.Itoa(h.stars))
}

// Stars returns the star count.
func (h *HUD) Stars() int {
	if h == nil {
		return 0
	}
	return h.stars
}

// Title returns the level title text.
func (h *HUD) Title() string { return h.title.TextBlock.Content }

// Home returns the home button.
func (h *HUD) Home() *stage.Node { return h.home }
