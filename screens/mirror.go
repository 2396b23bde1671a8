package screens

import (
	"fmt"
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

// KindMirror tags gallery mirrors; the key is the mirror index.
const KindMirror = "mirror"

const (
	mirrorW        = 65
	mirrorH        = 85
	mirrorCols     = 5
	mirrorSpacingX = 75
	mirrorSpacingY = 100
	mirrorDepth    = 50
	viewDepth      = 200

	// diffRadius is how close to the difference a click must land.
	diffRadius   = 40
	hintsPerGame = 3
	owlSize      = 90
	introGap     = 0.5
)

type mirror struct {
	node     *stage.Node
	face     *stage.Node
	glow     *stage.Node
	restored bool
}

// MirrorCity is the spot-the-difference level: ten darkened mirrors, each
// restored by finding what differs between a scene and its reflection.
type MirrorCity struct {
	m *Manager
	s *stage.Scene

	puzzles  []content.Puzzle
	mirrors  []*mirror
	restored int
	owl      *behavior.Owl
	flocks   []*behavior.Flock

	view       *stage.Node
	current    int
	processing bool
	hints      int
	hintButton *button
	panelW     float64
	panelH     float64
	original   *stage.Node
	reflection *stage.Node

	reward   *stage.Node
	proceed  *button
	complete bool
}

// Enter builds the night city, the gallery and the owl, and starts the
// owl's introduction.
func (mc *MirrorCity) Enter(m *Manager) {
	mc.m, mc.s = m, m.Scene()
	w, h := m.Size()
	mc.s.ClearColor = stage.RGB(0x1a0a2e)
	mc.current = -1
	mc.hints = hintsPerGame
	mc.puzzles = content.SelectMirrorPuzzles(mc.s.Rand(), m.Content().Puzzles)

	bg := stage.NewSprite("background", mirrorCityBackground(w, h))
	bg.SetPosition(w/2, h/2)
	mc.s.Root().AddChild(bg)
	mc.twinkle(w, h)
	mc.floatingLights(w, h)

	layer := stage.NewContainer("ambient")
	layer.SetDepth(5)
	mc.s.Root().AddChild(layer)
	cat := m.Catalog()
	mc.flocks = []*behavior.Flock{
		behavior.SpawnFlock(mc.s, layer, sprites.Take(cat.Fireflies, 8)),
		behavior.SpawnFlock(mc.s, layer, sprites.Take(cat.Particles, 10)),
	}

	for i := range mc.puzzles {
		mc.mirrors = append(mc.mirrors, mc.newMirror(i, w, h))
	}

	mc.owl = behavior.NewOwl(mc.s, mc.s.Root(), w*0.88, h*0.45, owlSize)
	mc.intro(m.Content().Dialogue.Intro)
	mc.route(m.Router())
}

func (mc *MirrorCity) twinkle(w, h float64) {
	rng := mc.s.Rand()
	for range 50 {
		st := stage.NewSprite("star", disc(stage.FloatBetween(rng, 1, 3), white, 1))
		st.SetPosition(stage.FloatBetween(rng, 0, w), stage.FloatBetween(rng, 0, h*0.5))
		st.SetAlpha(stage.FloatBetween(rng, 0.3, 1))
		st.SetDepth(1)
		mc.s.Root().AddChild(st)
		mc.s.Tweens().Add(stage.TweenConfig{
			Target:   st,
			Props:    []stage.Prop{stage.PropAlpha(stage.FloatBetween(rng, 0.2, 0.5))},
			Duration: stage.FloatBetween(rng, 1, 3),
			Yoyo:     true,
			Repeat:   -1,
			Ease:     ease.InOutSine,
		})
	}
}

func (mc *MirrorCity) floatingLights(w, h float64) {
	rng := mc.s.Rand()
	colors := []uint32{0xE1BEE7, 0xCE93D8, 0xBA68C8, 0xAB47BC, 0x80DEEA}
	for range 20 {
		r := stage.FloatBetween(rng, 2, 5)
		size := int(math.Ceil(2*r)) + 2
		g := stage.NewGraphics(size, size)
		c := float64(size) / 2
		g.FillStyle(stage.RGB(stage.Pick(rng, colors)), 0.6)
		g.FillCircle(c, c, r)
		g.FillStyle(white, 0.8)
		g.FillCircle(c, c, r*0.5)
		light := stage.NewSprite("light", g.Canvas())
		x, y := stage.FloatBetween(rng, 0, w), stage.FloatBetween(rng, h*0.2, h*0.8)
		light.SetPosition(x, y)
		light.SetDepth(3)
		mc.s.Root().AddChild(light)
		mc.s.Tweens().Add(stage.TweenConfig{
			Target: light,
			Props: []stage.Prop{
				stage.PropY(y - stage.FloatBetween(rng, 20, 50)),
				stage.PropX(x + stage.FloatBetween(rng, -30, 30)),
				stage.PropAlpha(0.3),
			},
			Duration: stage.FloatBetween(rng, 3, 6),
			Yoyo:     true,
			Repeat:   -1,
			Ease:     ease.InOutSine,
		})
	}
}

func (mc *MirrorCity) newMirror(i int, w, h float64) *mirror {
	row, col := i/mirrorCols, i%mirrorCols
	n := stage.NewContainer("mirror_" + strconv.Itoa(i+1))
	n.SetPosition(w*0.18+float64(col)*mirrorSpacingX, h*0.35+float64(row)*mirrorSpacingY)
	n.SetDepth(mirrorDepth)
	n.Interactable = true
	n.HitShape = stage.HitRect{X: -mirrorW/2 - 8, Y: -mirrorH/2 - 8, Width: mirrorW + 16, Height: mirrorH + 16}

	mr := &mirror{node: n}
	mr.glow = stage.NewSprite("glow", roundedPanel(mirrorW+20, mirrorH+20, 10, stage.RGB(0x9370DB), 0.2, white, 0))
	n.AddChild(mr.glow)
	mc.s.Tweens().Add(stage.TweenConfig{
		Target:   mr.glow,
		Props:    append(stage.PropScale(1.05), stage.PropAlpha(0.4)),
		Duration: 1.5,
		Yoyo:     true,
		Repeat:   -1,
		Ease:     ease.InOutSine,
	})
	mr.face = stage.NewSprite("face", darkMirrorImage())
	n.AddChild(mr.face)
	num := label("number", strconv.Itoa(i+1), 16, gold)
	num.SetPosition(0, mirrorH/2+15)
	n.AddChild(num)

	mc.s.Root().AddChild(n)
	mc.m.Router().Tag(n, KindMirror, strconv.Itoa(i))
	return mr
}

// intro shows the owl's introduction lines one after another.
func (mc *MirrorCity) intro(lines []content.Line) {
	at := 0.0
	for _, l := range lines {
		mc.s.Clock().DelayedCall(at, func() {
			if mc.current < 0 && !mc.complete {
				mc.owl.ShowDialogue(l.Text, l.Seconds())
			}
		})
		at += l.Seconds() + introGap
	}
}

func (mc *MirrorCity) route(r *ecs.Router) {
	idx := func(t ecs.Target) (*mirror, int) {
		i, err := strconv.Atoi(t.Key)
		if err != nil || i < 0 || i >= len(mc.mirrors) {
			return nil, -1
		}
		return mc.mirrors[i], i
	}
	r.Handle(KindMirror, stage.EventPointerEnter, func(t ecs.Target, _ stage.InteractionEvent) {
		if mr, _ := idx(t); mr != nil && !mr.restored && mc.view == nil {
			mr.node.SetScale(1.1, 1.1)
		}
	})
	r.Handle(KindMirror, stage.EventPointerLeave, func(t ecs.Target, _ stage.InteractionEvent) {
		if mr, _ := idx(t); mr != nil && !mr.restored {
			mr.node.SetScale(1, 1)
		}
	})
	r.Handle(KindMirror, stage.EventClick, func(t ecs.Target, _ stage.InteractionEvent) {
		if mr, i := idx(t); mr != nil && !mr.restored {
			mc.Select(i)
		}
	})
}

// Select flashes the camera and opens mirror i's challenge.
func (mc *MirrorCity) Select(i int) {
	if mc.view != nil || mc.current >= 0 || i < 0 || i >= len(mc.mirrors) || mc.mirrors[i].restored {
		return
	}
	mc.current = i
	mc.s.Camera().Flash(0.3, white)
	mc.s.Clock().DelayedCall(0.3, mc.showChallenge)
}

func (mc *MirrorCity) showChallenge() {
	w, h := mc.m.Size()
	p := mc.puzzles[mc.current]
	for _, mr := range mc.mirrors {
		mr.node.Visible = false
	}

	mc.view = stage.NewContainer("challenge")
	mc.view.SetDepth(viewDepth)
	bg := stage.NewRect("bg", w, h, stage.RGBA(0x1a0a2e, 0.95))
	bg.SetPosition(w/2, h/2)
	mc.view.AddChild(bg)

	title := label("title", fmt.Sprintf("Gương %d: %s", mc.current+1, CategoryName(p.Category)), 22, gold)
	title.SetPosition(w/2, 55)
	mc.view.AddChild(title)

	mc.panelW, mc.panelH = w*0.38, h*0.55
	mc.original = mc.panel(p, false, w*0.28, h*0.42, "Gốc")
	mc.reflection = mc.panel(p, true, w*0.72, h*0.42, "Phản Chiếu")

	help := label("instruction", "Tìm điểm khác biệt giữa hai hình!", 18, white)
	help.SetPosition(w/2, h-70)
	mc.view.AddChild(help)

	mc.hintButton = newButton("hint", 80, 40, 0x4CAF50, mc.hintCaption(), 16)
	mc.hintButton.node.SetPosition(w-80, h-50)
	mc.hintButton.enabled = mc.hints > 0
	mc.hintButton.onClick(mc.Hint)
	mc.view.AddChild(mc.hintButton.node)

	back := newButton("back", 80, 40, 0xE91E63, "Quay lại", 14)
	back.node.SetPosition(80, h-50)
	back.onClick(func() {
		if !mc.processing {
			mc.hideChallenge()
		}
	})
	mc.view.AddChild(back.node)

	mc.view.SetAlpha(0)
	mc.s.Root().AddChild(mc.view)
	mc.s.Tweens().Add(stage.TweenConfig{Target: mc.view, Props: []stage.Prop{stage.PropAlpha(1)}, Duration: 0.3, Ease: ease.OutQuad})
}

// panel adds a framed picture of p centered at (x, y) and returns the
// clickable picture node.
func (mc *MirrorCity) panel(p content.Puzzle, reflection bool, x, y float64, caption string) *stage.Node {
	pw, ph := mc.panelW, mc.panelH
	g := stage.NewGraphics(int(pw+24), int(ph+24))
	g.FillStyle(brown, 1)
	g.FillRoundedRect(0, 0, pw+24, ph+24, 15)
	g.LineStyle(4, gold, 1)
	g.StrokeRoundedRect(4, 4, pw+16, ph+16, 12)
	g.LineStyle(2, stage.RGB(0xDAA520), 0.8)
	g.StrokeRoundedRect(8, 8, pw+8, ph+8, 10)
	frame := stage.NewSprite("frame", g.Canvas())
	frame.SetPosition(x, y)
	mc.view.AddChild(frame)

	pic := stage.NewSprite("picture", puzzleArt(p, reflection, pw, ph))
	pic.SetPosition(x, y)
	pic.Interactable = true
	pic.OnClick = func(ctx stage.ClickContext) {
		mc.answer(reflection, ctx.LocalX, ctx.LocalY, ctx.GlobalX, ctx.GlobalY)
	}
	mc.view.AddChild(pic)

	l := label("caption", caption, 14, gold)
	l.SetPosition(x, y+ph/2+25)
	mc.view.AddChild(l)
	return pic
}

// answer grades a click at (lx, ly) inside a panel. Only the reflection
// holds the difference.
func (mc *MirrorCity) answer(reflection bool, lx, ly, gx, gy float64) {
	if mc.processing || mc.current < 0 {
		return
	}
	p := mc.puzzles[mc.current]
	if reflection && p.Hit(lx, ly, mc.panelW, mc.panelH, diffRadius) {
		mc.correct()
		return
	}
	mc.wrong(gx, gy)
}

func (mc *MirrorCity) correct() {
	mc.processing = true
	i := mc.current
	w, h := mc.m.Size()
	sparkles(mc.s, mc.s.Root(), w/2, h/2, 25)
	mc.owl.Cheer()
	mc.owl.ShowDialogue(mc.m.Content().Dialogue.RandomCorrect(mc.s.Rand()), 3)
	mc.m.HUD().AddStars(1)
	mc.s.Clock().DelayedCall(1.5, func() {
		mc.hideChallenge()
		mc.restore(i)
		mc.processing = false
		if mc.restored >= len(mc.mirrors) {
			mc.s.Clock().DelayedCall(1, mc.finish)
		}
	})
}

func (mc *MirrorCity) wrong(x, y float64) {
	g := stage.NewGraphics(24, 24)
	g.LineStyle(4, stage.RGB(0xFF0000), 1)
	g.Line(2, 2, 22, 22)
	g.Line(22, 2, 2, 22)
	mark := stage.NewSprite("wrong", g.Canvas())
	mark.SetPosition(x, y)
	mark.SetDepth(viewDepth + 100)
	mc.s.Root().AddChild(mark)
	mc.s.Tweens().Add(stage.TweenConfig{
		Target:   mark,
		Props:    []stage.Prop{stage.PropX(x - 5)},
		Duration: 0.05,
		Yoyo:     true,
		Repeat:   3,
		OnComplete: func() {
			mc.s.Tweens().Add(stage.TweenConfig{
				Target: mark, Props: []stage.Prop{stage.PropAlpha(0)}, Duration: 0.3,
				OnComplete: mark.Dispose,
			})
		},
	})
	mc.owl.ShowSadness()
	mc.owl.ShowDialogue(mc.m.Content().Dialogue.RandomWrong(mc.s.Rand()), 3)
	mc.s.Clock().DelayedCall(3.5, mc.owl.ReturnToIdle)
}

// Hint spends one hint on the open challenge: the owl reads the puzzle's
// hint and a ring pulses around the difference.
func (mc *MirrorCity) Hint() {
	if mc.hints <= 0 || mc.view == nil || mc.current < 0 {
		return
	}
	mc.hints--
	mc.hintButton.caption.SetText(mc.hintCaption())
	mc.hintButton.enabled = mc.hints > 0

	p := mc.puzzles[mc.current]
	mc.owl.Encourage()
	mc.owl.ShowDialogue(p.Difference.Hint, 4)

	g := stage.NewGraphics(2*diffRadius+8, 2*diffRadius+8)
	g.LineStyle(4, gold, 0.8)
	g.StrokeCircle(diffRadius+4, diffRadius+4, diffRadius)
	ring := stage.NewSprite("hint_ring", g.Canvas())
	ring.SetPosition(
		mc.reflection.X+(p.Difference.Location.X-0.5)*mc.panelW,
		mc.reflection.Y+(p.Difference.Location.Y-0.5)*mc.panelH,
	)
	ring.SetDepth(viewDepth + 50)
	mc.s.Root().AddChild(ring)
	mc.s.Tweens().Add(stage.TweenConfig{
		Target:     ring,
		Props:      append(stage.PropScale(1.5), stage.PropAlpha(0)),
		Duration:   1.5,
		Repeat:     2,
		OnComplete: ring.Dispose,
	})
}

func (mc *MirrorCity) hintCaption() string {
	return "Gợi ý " + strconv.Itoa(mc.hints)
}

func (mc *MirrorCity) hideChallenge() {
	if mc.view == nil {
		return
	}
	view := mc.view
	mc.view = nil
	mc.current = -1
	mc.original, mc.reflection, mc.hintButton = nil, nil, nil
	mc.s.Tweens().Add(stage.TweenConfig{
		Target: view, Props: []stage.Prop{stage.PropAlpha(0)}, Duration: 0.3, Ease: ease.OutQuad,
		OnComplete: view.Dispose,
	})
	for _, mr := range mc.mirrors {
		mr.node.Visible = true
		if !mr.restored {
			mr.node.SetScale(1, 1)
		}
	}
}

// restore turns mirror i gold and bright.
func (mc *MirrorCity) restore(i int) {
	mr := mc.mirrors[i]
	if mr.restored {
		return
	}
	mr.restored = true
	mc.restored++
	mr.node.Interactable = false

	mr.face.Image = restoredMirrorImage()
	mr.face.MarkDirty()
	mc.s.Tweens().KillTweensOf(mr.glow)
	mr.glow.Image = roundedPanel(mirrorW+30, mirrorH+30, 12, gold, 0.4, white, 0)
	mr.glow.SetScale(1, 1)
	mr.glow.SetAlpha(1)
	star := stage.NewSprite("star", starIcon(8, gold))
	star.SetPosition(mirrorW/2-5, -mirrorH/2+5)
	mr.node.AddChild(star)

	mr.node.SetScale(0.5, 0.5)
	mc.s.Tweens().Add(stage.TweenConfig{Target: mr.node, Props: stage.PropScale(1), Duration: 0.5, Ease: ease.OutBack})
	sparkles(mc.s, mc.s.Root(), mr.node.X, mr.node.Y, 25)
}

func (mc *MirrorCity) finish() {
	mc.complete = true
	w, h := mc.m.Size()
	rng := mc.s.Rand()
	for i := range 10 {
		x, y := stage.FloatBetween(rng, 50, w-50), stage.FloatBetween(rng, 50, h-50)
		mc.s.Clock().DelayedCall(float64(i)*0.2, func() { sparkles(mc.s, mc.s.Root(), x, y, 25) })
	}
	mc.owl.Celebrate()
	mc.owl.ShowDialogue(mc.m.Content().Dialogue.Complete, 6)
	mc.s.Clock().DelayedCall(3, mc.showReward)
}

func (mc *MirrorCity) showReward() {
	w, h := mc.m.Size()
	info := mc.m.Content().Flow.ScreenInfo(MirrorCityKey)
	id, reward := 2, "Sức Mạnh Của Quan Sát"
	if info != nil {
		id, reward = info.ID, info.Reward
	}

	mc.reward = stage.NewContainer("reward")
	mc.reward.SetDepth(400)
	dim := stage.NewRect("dim", w, h, stage.RGBA(0x000000, 0.8))
	dim.SetPosition(w/2, h/2)
	mc.reward.AddChild(dim)

	pw, ph := w*0.7, h*0.55
	g := stage.NewGraphics(int(pw)+10, int(ph)+10)
	g.FillStyle(stage.RGB(0xFFA500), 1)
	g.FillRoundedRect(5, 5, pw, ph, 25)
	g.FillStyle(gold, 1)
	g.FillRoundedRect(5, 5, pw, ph*0.6, 25)
	g.LineStyle(5, white, 1)
	g.StrokeRoundedRect(5, 5, pw, ph, 25)
	panel := stage.NewSprite("panel", g.Canvas())
	panel.SetPosition(w/2, h/2)
	mc.reward.AddChild(panel)

	title := stage.NewText("title", "Trang sách số "+strconv.Itoa(id), stage.TextStyle{
		Size: 36, Color: brown, Align: stage.TextAlignCenter, Bold: true, Stroke: white, StrokeWidth: 3,
	})
	title.SetPosition(w/2, h*0.32)
	mc.reward.AddChild(title)
	sub := stage.NewText("subtitle", reward, stage.TextStyle{Size: 28, Color: brown, Align: stage.TextAlignCenter, Bold: true})
	sub.SetPosition(w/2, h*0.42)
	mc.reward.AddChild(sub)

	eye := stage.NewSprite("eye", eyeSymbol())
	eye.SetPosition(w/2, h*0.52)
	mc.reward.AddChild(eye)

	for _, pos := range [][2]float64{{0.25, 0.35}, {0.75, 0.35}, {0.3, 0.6}, {0.7, 0.6}} {
		st := stage.NewSprite("star", starIcon(14, gold))
		st.SetPosition(w*pos[0], h*pos[1])
		mc.reward.AddChild(st)
		mc.s.Tweens().Add(stage.TweenConfig{Target: st, Props: stage.PropScale(1.2), Duration: 0.5, Yoyo: true, Repeat: -1})
	}

	mc.proceed = newButton("continue", 200, 55, 0x8B4513, "Tiếp tục", 22)
	mc.proceed.node.SetPosition(w/2, h*0.68)
	mc.proceed.onClick(func() { mc.m.Complete(MirrorCityKey) })
	mc.reward.AddChild(mc.proceed.node)
	mc.s.Root().AddChild(mc.reward)
}

// Update keeps the ambient creatures apart.
func (mc *MirrorCity) Update(float64) {
	for _, f := range mc.flocks {
		f.Update()
	}
}

// Leave stops the owl and the creatures.
func (mc *MirrorCity) Leave() {
	for _, f := range mc.flocks {
		f.Destroy()
	}
	mc.owl.Destroy()
}

// Puzzles returns the session's puzzles in mirror order.
func (mc *MirrorCity) Puzzles() []content.Puzzle { return mc.puzzles }

// Mirror returns the gallery node of mirror i.
func (mc *MirrorCity) Mirror(i int) *stage.Node { return mc.mirrors[i].node }

// Restored reports whether mirror i has been restored.
func (mc *MirrorCity) Restored(i int) bool { return mc.mirrors[i].restored }

// RestoredCount returns the number of restored mirrors.
func (mc *MirrorCity) RestoredCount() int { return mc.restored }

// Current returns the index of the open challenge, or -1.
func (mc *MirrorCity) Current() int { return mc.current }

// HintsLeft returns the hints remaining this session.
func (mc *MirrorCity) HintsLeft() int { return mc.hints }

// Panels returns the original and reflection pictures of the open
// challenge, or nils.
func (mc *MirrorCity) Panels() (original, reflection *stage.Node) {
	return mc.original, mc.reflection
}

// PanelSize returns the picture size of the challenge panels.
func (mc *MirrorCity) PanelSize() (float64, float64) { return mc.panelW, mc.panelH }

// Owl returns the guide.
func (mc *MirrorCity) Owl() *behavior.Owl { return mc.owl }

// Continue returns the reward panel's button, or nil before the reward.
func (mc *MirrorCity) Continue() *stage.Node {
	if mc.proceed == nil {
		return nil
	}
	return mc.proceed.node
}

func darkMirrorImage() *ebiten.Image {
	g := stage.NewGraphics(mirrorW+16, mirrorH+16)
	g.FillStyle(brown, 1)
	g.FillRoundedRect(0, 0, mirrorW+16, mirrorH+16, 8)
	g.FillStyle(stage.RGB(0xDAA520), 1)
	g.FillRoundedRect(4, 4, mirrorW+8, mirrorH+8, 6)
	g.FillStyle(stage.RGB(0x2d1b4e), 1)
	g.FillRoundedRect(8, 8, mirrorW, mirrorH, 4)
	g.FillStyle(black, 0.6)
	g.FillRoundedRect(8, 8, mirrorW, mirrorH, 4)
	g.LineStyle(2, stage.RGB(0x9370DB), 0.5)
	g.StrokeRoundedRect(8, 8, mirrorW, mirrorH, 4)
	return g.Canvas()
}

func restoredMirrorImage() *ebiten.Image {
	g := stage.NewGraphics(mirrorW+16, mirrorH+16)
	g.FillStyle(gold, 1)
	g.FillRoundedRect(0, 0, mirrorW+16, mirrorH+16, 8)
	g.FillStyle(stage.RGB(0xDAA520), 1)
	g.FillRoundedRect(4, 4, mirrorW+8, mirrorH+8, 6)
	g.FillStyle(stage.RGB(0x87CEEB), 1)
	g.FillRoundedRect(8, 8, mirrorW, mirrorH, 4)
	g.FillStyle(stage.RGB(0xE0FFFF), 1)
	g.FillRoundedRect(8, 8, mirrorW, mirrorH*0.5, 4)
	g.FillStyle(white, 0.4)
	g.FillRoundedRect(13, 13, mirrorW*0.4, mirrorH*0.3, 3)
	g.LineStyle(3, gold, 1)
	g.StrokeRoundedRect(8, 8, mirrorW, mirrorH, 4)
	return g.Canvas()
}

func eyeSymbol() *ebiten.Image {
	g := stage.NewGraphics(54, 54)
	g.FillStyle(stage.RGB(0x4B0082), 1)
	g.FillCircle(27, 27, 25)
	g.FillStyle(stage.RGB(0x87CEEB), 1)
	g.FillCircle(27, 27, 18)
	g.FillStyle(black, 1)
	g.FillCircle(27, 27, 10)
	g.FillStyle(white, 1)
	g.FillCircle(22, 22, 4)
	return g.Canvas()
}

// mirrorCityBackground paints the night sky, the glowing ground and four
// crystal towers.
func mirrorCityBackground(w, h float64) *ebiten.Image {
	g := stage.NewGraphics(int(w), int(h))
	const bands = 12
	top, bottom := stage.RGB(0x1a0a2e), stage.RGB(0x16213e)
	band := h * 0.6 / bands
	for i := range bands {
		g.FillStyle(top.Lerp(bottom, float64(i)/(bands-1)), 1)
		g.FillRect(0, float64(i)*band, w, band+1)
	}
	g.FillStyle(stage.RGB(0x2d1b4e), 1)
	g.FillRect(0, h*0.6, w, h*0.2)
	g.FillStyle(stage.RGB(0x1f1147), 1)
	g.FillRect(0, h*0.8, w, h*0.2)
	g.FillStyle(white, 0.05)
	g.FillRect(0, h*0.6, w, h*0.4)

	base := h * 0.6
	for _, t := range []struct{ x, h float64 }{{0.1, 180}, {0.25, 220}, {0.75, 200}, {0.9, 160}} {
		x := w * t.x
		g.FillStyle(stage.RGB(0x4a148c), 0.7)
		g.FillRect(x-20, base-t.h, 40, t.h/2)
		g.FillStyle(stage.RGB(0x7b1fa2), 0.7)
		g.FillRect(x-20, base-t.h/2, 40, t.h/2)
		g.FillStyle(stage.RGB(0x9c27b0), 0.8)
		g.FillTriangle(x-25, base-t.h, x+25, base-t.h, x, base-t.h-40)
		g.LineStyle(2, stage.RGB(0xE1BEE7), 0.5)
		g.StrokeRect(x-20, base-t.h, 40, t.h)
	}
	return g.Canvas()
}
