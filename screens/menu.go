package screens

import (
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bunnyworld/behavior"
	"github.com/phanxgames/bunnyworld/content"
	"github.com/phanxgames/bunnyworld/ecs"
	"github.com/phanxgames/bunnyworld/sprites"
	"github.com/phanxgames/bunnyworld/stage"
)

// Router kinds tagged by the menu.
const (
	KindBunny  = "bunny"
	KindMarker = "marker"
	KindLevel  = "level"
)

const (
	menuBunnyMin         = 2
	menuBunnyMax         = 4
	menuBunnyMinDistance = 80
	menuBunnyAttempts    = 50
	menuSparkleEvery     = 0.5

	markerDepth  = 300
	overlayDepth = 250
)

var markerColors = []struct{ bg, icon uint32 }{
	{0xFFF9C4, 0xFFD700},
	{0xB2F5EA, 0x4FD1C7},
	{0xFFE0E6, 0xFF69B4},
	{0xE9D5FF, 0x9B59B6},
}

// Menu is the world map: ambient creatures, wandering bunnies, one marker
// per visible city and the level select cards.
type Menu struct {
	m *Manager
	s *stage.Scene

	layer   *stage.Node
	flocks  []*behavior.Flock
	bunnies []*behavior.Bunny
	markers []*stage.Node
	levels  []*stage.Node
	overlay *stage.Node
	info    *stage.Node
	hovered *stage.Node
}

// Enter builds the menu.
func (mn *Menu) Enter(m *Manager) {
	mn.m, mn.s = m, m.Scene()
	w, h := m.Size()
	mn.s.ClearColor = stage.RGB(0x87CEEB)

	bg := stage.NewSprite("background", menuBackground(w, h))
	bg.SetPosition(w/2, h/2)
	mn.s.Root().AddChild(bg)

	mn.layer = stage.NewContainer("ambient")
	mn.layer.SetDepth(5)
	mn.s.Root().AddChild(mn.layer)

	mn.title(w, h)
	mn.spawnAmbient()
	mn.spawnBunnies(w, h)
	mn.startSparkles(w, h)
	mn.placeMarkers(w, h)
	if m.Content().Flow.ShowLevelSelect {
		mn.levelSelect(w, h)
	}
	mn.route(m.Router())
}

func (mn *Menu) title(w, h float64) {
	t := stage.NewText("title", "Bunnies\nvà\nthế giới tri thức", stage.TextStyle{
		Size:        52,
		Color:       gold,
		Align:       stage.TextAlignCenter,
		Bold:        true,
		Stroke:      white,
		StrokeWidth: 6,
	})
	t.SetPosition(w/2, h/4)
	t.SetDepth(40)
	mn.s.Root().AddChild(t)
	pulse(mn.s, t, 1.05, 1.5, 0)
}

func (mn *Menu) spawnAmbient() {
	cat := mn.m.Catalog()
	for _, data := range [][]behavior.CreatureData{
		sprites.Take(cat.Fireflies, 6),
		sprites.Take(cat.Birds, 4),
		sprites.Take(cat.Butterflies, 8),
		sprites.Take(cat.Particles, 8),
	} {
		mn.flocks = append(mn.flocks, behavior.SpawnFlock(mn.s, mn.layer, data))
	}
}

// spawnBunnies places 2 to 4 bunnies in the band below the buttons, each at
// least menuBunnyMinDistance from the others when a spot can be found.
func (mn *Menu) spawnBunnies(w, h float64) {
	roster := mn.m.Catalog().Bunnies
	if len(roster) == 0 {
		roster = mn.m.Options().Roster
	}
	if len(roster) == 0 {
		return
	}
	rng := mn.s.Rand()
	top, bottom := h/2+150, h-60
	count := stage.IntBetween(rng, menuBunnyMin, menuBunnyMax)
	var placed []stage.Vec2
	for range count {
		var pos stage.Vec2
		found := false
		for range menuBunnyAttempts {
			pos = stage.Vec2{X: stage.FloatBetween(rng, 80, w-80), Y: stage.FloatBetween(rng, top, bottom)}
			found = true
			for _, p := range placed {
				if stage.Distance(pos.X, pos.Y, p.X, p.Y) < menuBunnyMinDistance {
					found = false
					break
				}
			}
			if found {
				break
			}
		}
		placed = append(placed, pos)
		cfg := stage.Pick(rng, roster)
		b := behavior.CreateBunny(mn.s, mn.s.Root(), pos.X, pos.Y, cfg)
		b.Root().SetDepth(50)
		mn.m.Router().Tag(b.Root(), KindBunny, cfg.Key())
		mn.bunnies = append(mn.bunnies, b)
	}
}

func (mn *Menu) startSparkles(w, h float64) {
	img := disc(4, gold, 1)
	mn.s.Clock().AddEvent(stage.TimerConfig{
		Delay: menuSparkleEvery,
		Loop:  true,
		Callback: func() {
			rng := mn.s.Rand()
			sp := stage.NewSprite("sparkle", img)
			sp.SetPosition(stage.FloatBetween(rng, 0, w), stage.FloatBetween(rng, 0, h))
			sp.SetDepth(20)
			mn.s.Root().AddChild(sp)
			mn.s.Tweens().Add(stage.TweenConfig{
				Target:     sp,
				Props:      append(stage.PropScale(0), stage.PropAlpha(0), stage.PropY(sp.Y-30)),
				Duration:   2,
				Ease:       ease.OutQuad,
				OnComplete: sp.Dispose,
			})
		},
	})
}

func (mn *Menu) placeMarkers(w, h float64) {
	mn.overlay = stage.NewRect("overlay", w, h, black)
	mn.overlay.SetPosition(w/2, h/2)
	mn.overlay.SetDepth(overlayDepth)
	mn.overlay.SetAlpha(0)
	mn.overlay.Visible = false
	mn.s.Root().AddChild(mn.overlay)

	wm := mn.m.Content().WorldMap
	for _, mk := range wm.PlaceMarkers(wm.VisibleCities(), w, h, content.MenuButtonArea(w, h)) {
		mn.markers = append(mn.markers, mn.marker(mk, w))
	}
}

func (mn *Menu) marker(mk content.Marker, w float64) *stage.Node {
	city := mk.City
	colors := markerColors[city.ID%len(markerColors)]
	size := math.Max(20, 24*mk.Scale)

	n := stage.NewContainer("marker_" + city.Name)
	n.SetPosition(mk.X, mk.Y)
	n.SetDepth(markerDepth)
	n.Interactable = true
	n.HitShape = stage.HitCircle{Radius: size + 4}
	n.SetData("city", city)

	glow := stage.NewSprite("glow", disc(size+10, gold, 0.4))
	glow.Visible = false
	n.AddChild(glow)
	n.AddChild(stage.NewSprite("face", markerFace(size, colors.bg, colors.icon)))

	name := label("name", city.Name, math.Max(12, 16*mk.Scale), white)
	name.TextBlock.Style.WrapWidth = math.Min(180, w/6)
	name.SetPosition(0, size+18)
	n.AddChild(name)

	mn.s.Root().AddChild(n)
	n.SetData("idle", pulse(mn.s, n, 0.95, 1, float64(city.ID)*0.1))
	mn.m.Router().Tag(n, KindMarker, city.Screen)
	return n
}

// markerFace paints the pastel marker disc with a star icon.
func markerFace(r float64, bg, icon uint32) *ebiten.Image {
	size := int(math.Ceil(2*r)) + 8
	c := float64(size) / 2
	g := stage.NewGraphics(size, size)
	g.FillStyle(stage.RGB(bg), 0.2)
	g.FillCircle(c, c, r+3)
	g.FillStyle(stage.RGB(bg), 0.5)
	g.FillCircle(c, c, r)
	g.LineStyle(2, white, 0.9)
	g.StrokeCircle(c, c, r)
	g.FillStyle(white, 0.3)
	g.FillCircle(c, c-r*0.2, r*0.4)
	g.FillStyle(stage.RGB(icon), 1)
	g.FillPolygon(starPoints(c, c, r*0.55, 5))
	return g.Canvas()
}

func (mn *Menu) levelSelect(w, h float64) {
	screens := mn.m.Content().Flow.AllScreens()
	if len(screens) == 0 {
		return
	}
	area := content.MenuButtonArea(w, h)
	cardW := math.Min(170, (area.Width-20)/float64(len(screens))-10)
	cardH := 150.0
	spacing := cardW + 10
	x0 := w/2 - spacing*float64(len(screens)-1)/2
	for i, info := range screens {
		n := stage.NewContainer("level_" + info.Key)
		n.SetPosition(x0+float64(i)*spacing, h/2+20)
		n.SetDepth(100)
		n.Interactable = true
		n.HitShape = stage.HitRect{X: -cardW / 2, Y: -cardH / 2, Width: cardW, Height: cardH}
		fill := info.Color
		if fill == 0 {
			fill = 0x4A90E2
		}
		n.AddChild(stage.NewSprite("bg", roundedPanel(cardW, cardH, 14, stage.RGB(fill), 0.9, white, 3)))

		num := label("number", strconv.Itoa(mn.m.Content().Flow.ScreenPosition(info.Key)), 40, white)
		num.SetPosition(0, -35)
		n.AddChild(num)
		name := label("name", info.Name, 16, white)
		name.TextBlock.Style.WrapWidth = cardW - 16
		name.SetPosition(0, 20)
		n.AddChild(name)
		if mn.m.Completed(info.Key) {
			star := stage.NewSprite("done", starIcon(14, gold))
			star.SetPosition(cardW/2-18, -cardH/2+18)
			n.AddChild(star)
		}
		mn.s.Root().AddChild(n)
		mn.m.Router().Tag(n, KindLevel, info.Key)
		mn.levels = append(mn.levels, n)
	}
}

func (mn *Menu) route(r *ecs.Router) {
	r.Handle(KindBunny, stage.EventClick, func(t ecs.Target, _ stage.InteractionEvent) {
		if b := behavior.BunnyOf(t.Node); b != nil {
			b.React()
		}
	})
	r.Handle(KindMarker, stage.EventPointerEnter, func(t ecs.Target, _ stage.InteractionEvent) {
		mn.hover(t.Node)
	})
	r.Handle(KindMarker, stage.EventPointerLeave, func(t ecs.Target, _ stage.InteractionEvent) {
		mn.unhover(t.Node)
	})
	r.Handle(KindMarker, stage.EventClick, func(t ecs.Target, _ stage.InteractionEvent) {
		mn.open(t)
	})
	r.Handle(KindLevel, stage.EventPointerEnter, func(t ecs.Target, _ stage.InteractionEvent) {
		t.Node.SetScale(1.05, 1.05)
	})
	r.Handle(KindLevel, stage.EventPointerLeave, func(t ecs.Target, _ stage.InteractionEvent) {
		t.Node.SetScale(1, 1)
	})
	r.Handle(KindLevel, stage.EventClick, func(t ecs.Target, _ stage.InteractionEvent) {
		mn.start(t.Key)
	})
}

// hover enlarges the marker, dims the rest of the map and shows the city
// description under it.
func (mn *Menu) hover(n *stage.Node) {
	if mn.hovered != nil && mn.hovered != n {
		mn.unhover(mn.hovered)
	}
	mn.hovered = n
	city, _ := n.GetData("city").(content.City)
	if tw, ok := n.GetData("idle").(*stage.Tween); ok {
		tw.Stop()
	}
	mn.s.Tweens().KillTweensOf(n)
	mn.s.Tweens().Add(stage.TweenConfig{Target: n, Props: stage.PropScale(1.2), Duration: 0.2, Ease: ease.OutBack})
	n.Children()[0].Visible = true
	n.Children()[2].SetScale(1.1, 1.1)
	n.SetDepth(markerDepth + 1)

	mn.s.Tweens().KillTweensOf(mn.overlay)
	mn.overlay.Visible = true
	mn.s.Tweens().Add(stage.TweenConfig{Target: mn.overlay, Props: []stage.Prop{stage.PropAlpha(0.5)}, Duration: 0.2})

	if mn.info != nil {
		mn.info.Dispose()
	}
	w, h := mn.m.Size()
	mn.info = stage.NewText("description", city.Description, stage.TextStyle{
		Size:        18,
		Color:       white,
		Align:       stage.TextAlignCenter,
		Stroke:      black,
		StrokeWidth: 2,
		WrapWidth:   320,
	})
	mn.info.SetPosition(stage.Clamp(n.X, 180, w-180), stage.Clamp(n.Y+90, 60, h-40))
	mn.info.SetDepth(markerDepth + 2)
	mn.s.Root().AddChild(mn.info)
}

func (mn *Menu) unhover(n *stage.Node) {
	if mn.hovered == n {
		mn.hovered = nil
	}
	mn.s.Tweens().KillTweensOf(n)
	mn.s.Tweens().Add(stage.TweenConfig{
		Target: n, Props: stage.PropScale(1), Duration: 0.2, Ease: ease.OutQuad,
		OnComplete: func() {
			city, _ := n.GetData("city").(content.City)
			n.SetData("idle", pulse(mn.s, n, 0.95, 1, float64(city.ID)*0.1))
		},
	})
	n.Children()[0].Visible = false
	n.Children()[2].SetScale(1, 1)
	n.SetDepth(markerDepth)

	if mn.hovered == nil {
		mn.s.Tweens().KillTweensOf(mn.overlay)
		mn.s.Tweens().Add(stage.TweenConfig{
			Target: mn.overlay, Props: []stage.Prop{stage.PropAlpha(0)}, Duration: 0.2,
			OnComplete: func() { mn.overlay.Visible = false },
		})
		if mn.info != nil {
			mn.info.Dispose()
			mn.info = nil
		}
	}
}

// open starts the marker's screen, or says the city is not ready yet.
func (mn *Menu) open(t ecs.Target) {
	if t.Key == "" {
		w, h := mn.m.Size()
		flashText(mn.s, "Sắp ra mắt!", w/2, h*0.15, 32, gold, 1.5)
		return
	}
	mn.start(t.Key)
}

func (mn *Menu) start(key string) {
	if err := mn.m.Start(key); err != nil {
		warnf("menu: %v", err)
		w, h := mn.m.Size()
		flashText(mn.s, "Sắp ra mắt!", w/2, h*0.15, 32, gold, 1.5)
	}
}

// Update keeps bunnies and creatures apart.
func (mn *Menu) Update(float64) {
	nodes := make([]*stage.Node, 0, len(mn.bunnies))
	for _, b := range mn.bunnies {
		nodes = append(nodes, b.Root())
	}
	for _, b := range mn.bunnies {
		b.Update(nodes)
	}
	for _, f := range mn.flocks {
		f.Update()
	}
}

// Leave stops every bunny and creature.
func (mn *Menu) Leave() {
	for _, b := range mn.bunnies {
		b.Destroy()
	}
	for _, f := range mn.flocks {
		f.Destroy()
	}
}

// Bunnies returns the menu bunnies.
func (mn *Menu) Bunnies() []*behavior.Bunny { return mn.bunnies }

// Markers returns the city markers in placement order.
func (mn *Menu) Markers() []*stage.Node { return mn.markers }

// Levels returns the level select cards.
func (mn *Menu) Levels() []*stage.Node { return mn.levels }

// Flocks returns the ambient flocks: fireflies, birds, butterflies and
// magic particles.
func (mn *Menu) Flocks() []*behavior.Flock { return mn.flocks }

// menuBackground paints a daytime meadow: sky bands, sun, clouds, hills and
// flowers.
func menuBackground(w, h float64) *ebiten.Image {
	g := stage.NewGraphics(int(w), int(h))
	sky := []uint32{0x87CEEB, 0x9AD6F0, 0xAEDFF4, 0xC2E8F7, 0xD6F0FA}
	band := h * 0.6 / float64(len(sky))
	for i, c := range sky {
		g.FillStyle(stage.RGB(c), 1)
		g.FillRect(0, float64(i)*band, w, band+1)
	}
	g.FillStyle(stage.RGB(0xFFF59D), 0.5)
	g.FillCircle(w*0.85, h*0.15, 70)
	g.FillStyle(stage.RGB(0xFFEB3B), 1)
	g.FillCircle(w*0.85, h*0.15, 50)
	for _, c := range [][2]float64{{0.15, 0.12}, {0.45, 0.08}, {0.65, 0.18}} {
		x, y := w*c[0], h*c[1]
		g.FillStyle(white, 0.9)
		g.FillEllipse(x, y, 120, 40)
		g.FillEllipse(x-35, y+5, 70, 35)
		g.FillEllipse(x+35, y+5, 80, 35)
	}
	g.FillStyle(stage.RGB(0x7CB342), 1)
	g.FillEllipse(w*0.2, h*0.65, w*0.7, h*0.35)
	g.FillEllipse(w*0.8, h*0.62, w*0.8, h*0.4)
	g.FillStyle(stage.RGB(0x8BC34A), 1)
	g.FillRect(0, h*0.6, w, h*0.4)
	g.FillStyle(stage.RGB(0x9CCC65), 1)
	g.FillRect(0, h*0.8, w, h*0.2)
	petals := []uint32{0xFF69B4, 0xFFD700, 0xFFFFFF, 0xE1BEE7}
	for i := range 40 {
		x := math.Mod(float64(i)*137.5, w)
		y := h*0.66 + math.Mod(float64(i)*71.3, h*0.32)
		g.FillStyle(stage.RGB(petals[i%len(petals)]), 1)
		g.FillCircle(x, y, 4)
		g.FillStyle(stage.RGB(0xFFEB3B), 1)
		g.FillCircle(x, y, 1.5)
	}
	return g.Canvas()
}
