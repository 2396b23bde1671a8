package screens

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bunnyworld/stage"
)

var (
	gold        = stage.RGB(0xFFD700)
	white       = stage.ColorWhite
	black       = stage.RGB(0x000000)
	brown       = stage.RGB(0x8B4513)
	sparkleTint = []stage.Color{
		stage.RGB(0xFFD700), stage.RGB(0xFF69B4), stage.RGB(0x87CEEB),
		stage.RGB(0x90EE90), stage.RGB(0x9370DB), stage.RGB(0xE1BEE7),
	}
)

// roundedPanel paints a w x h rounded rectangle with an optional border.
func roundedPanel(w, h, r float64, fill stage.Color, alpha float64, border stage.Color, borderW float64) *ebiten.Image {
	pad := math.Ceil(borderW)
	g := stage.NewGraphics(int(w+2*pad), int(h+2*pad))
	g.FillStyle(fill, alpha)
	g.FillRoundedRect(pad, pad, w, h, r)
	if borderW > 0 {
		g.LineStyle(borderW, border, 1)
		g.StrokeRoundedRect(pad, pad, w, h, r)
	}
	return g.Canvas()
}

// disc paints a filled circle of radius r.
func disc(r float64, fill stage.Color, alpha float64) *ebiten.Image {
	size := int(math.Ceil(2*r)) + 2
	g := stage.NewGraphics(size, size)
	g.FillStyle(fill, alpha)
	g.FillCircle(float64(size)/2, float64(size)/2, r)
	return g.Canvas()
}

// starIcon paints a five-pointed star of outer radius r.
func starIcon(r float64, fill stage.Color) *ebiten.Image {
	size := int(math.Ceil(2*r)) + 2
	g := stage.NewGraphics(size, size)
	g.FillStyle(fill, 1)
	cx := float64(size) / 2
	g.FillPolygon(starPoints(cx, cx, r, 5))
	return g.Canvas()
}

func starPoints(x, y, r float64, points int) []stage.Vec2 {
	pts := make([]stage.Vec2, 2*points)
	for i := range pts {
		rr := r
		if i%2 == 1 {
			rr = r * 0.5
		}
		a := float64(i)*math.Pi/float64(points) - math.Pi/2
		pts[i] = stage.Vec2{X: x + math.Cos(a)*rr, Y: y + math.Sin(a)*rr}
	}
	return pts
}

// label creates a bold text node with a dark outline.
func label(name, content string, size float64, c stage.Color) *stage.Node {
	return stage.NewText(name, content, stage.TextStyle{
		Size:        size,
		Color:       c,
		Align:       stage.TextAlignCenter,
		Bold:        true,
		Stroke:      black,
		StrokeWidth: 2,
	})
}

// button is a clickable rounded rectangle with a centered caption. It grows
// to hoverScale while the pointer is over it.
type button struct {
	node    *stage.Node
	caption *stage.Node
	enabled bool
}

func newButton(name string, w, h float64, fill uint32, caption string, size float64) *button {
	b := &button{node: stage.NewContainer(name), enabled: true}
	b.node.Interactable = true
	b.node.HitShape = stage.HitRect{X: -w / 2, Y: -h / 2, Width: w, Height: h}
	b.node.AddChild(stage.NewSprite("bg", roundedPanel(w, h, 10, stage.RGB(fill), 1, gold, 2)))
	b.caption = label("caption", caption, size, white)
	b.node.AddChild(b.caption)
	b.node.OnPointerEnter = func(stage.PointerContext) {
		if b.enabled {
			b.node.SetScale(1.1, 1.1)
		}
	}
	b.node.OnPointerLeave = func(stage.PointerContext) { b.node.SetScale(1, 1) }
	return b
}

// onClick runs fn on clicks while the button is enabled.
func (b *button) onClick(fn func()) {
	b.node.OnClick = func(stage.ClickContext) {
		if b.enabled {
			fn()
		}
	}
}

// sparkles bursts count fading sparkles from (x, y).
func sparkles(s *stage.Scene, parent *stage.Node, x, y float64, count int) *stage.Node {
	const key = "ui_sparkle"
	if !s.Textures().Exists(key) {
		g := stage.NewGraphics(14, 14)
		g.FillStyle(white, 0.8)
		g.FillCircle(7, 7, 6)
		g.FillStyle(white, 1)
		g.FillCircle(7, 7, 3)
		g.GenerateTexture(s.Textures(), key)
	}
	sheet, _ := s.Textures().Get(key)
	n := stage.Burst(parent, x, y, count, stage.EmitterConfig{
		Lifetime:   stage.Range{Min: 0.8, Max: 1},
		Speed:      stage.Range{Min: 50, Max: 120},
		Angle:      stage.Range{Min: 0, Max: 2 * math.Pi},
		StartScale: stage.Range{Min: 1, Max: 1},
		EndScale:   stage.Range{Min: 0, Max: 0},
		StartAlpha: stage.Range{Min: 1, Max: 1},
		EndAlpha:   stage.Range{Min: 0, Max: 0},
		Tints:      sparkleTint,
		Image:      sheet.Frame(0),
	})
	n.SetDepth(300)
	return n
}

// flashText shows a message at (x, y) that pops in and fades out after hold
// seconds.
func flashText(s *stage.Scene, content string, x, y, size float64, c stage.Color, hold float64) *stage.Node {
	t := label("flash", content, size, c)
	t.SetPosition(x, y)
	t.SetDepth(500)
	t.SetScale(0.5, 0.5)
	s.Root().AddChild(t)
	s.Tweens().Add(stage.TweenConfig{
		Target:   t,
		Props:    stage.PropScale(1),
		Duration: 0.3,
		Ease:     ease.OutBack,
	})
	s.Tweens().Add(stage.TweenConfig{
		Target:     t,
		Props:      []stage.Prop{stage.PropAlpha(0)},
		Duration:   0.3,
		Delay:      hold,
		OnComplete: t.Dispose,
	})
	return t
}

// pulse scales n to scale and back forever.
func pulse(s *stage.Scene, n *stage.Node, scale, period, delay float64) *stage.Tween {
	return s.Tweens().Add(stage.TweenConfig{
		Target:   n,
		Props:    stage.PropScale(scale),
		Duration: period,
		Delay:    delay,
		Yoyo:     true,
		Repeat:   -1,
		Ease:     ease.InOutSine,
	})
}
