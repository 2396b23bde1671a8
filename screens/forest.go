package screens

import (
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bunnyworld/behavior"
	"github.com/phanxgames/bunnyworld/content"
	"github.com/phanxgames/bunnyworld/stage"
)

// ForestState is the phase of a Counting Forest round.
type ForestState uint8

const (
	Asking ForestState = iota
	Checking
	Celebrating
	Complete
)

func (s ForestState) String() string {
	switch s {
	case Asking:
		return "asking"
	case Checking:
		return "checking"
	case Celebrating:
		return "celebrating"
	case Complete:
		return "complete"
	}
	return "unknown"
}

const (
	forestQuestions = 3
	cardSize        = 120
	cardSpacing     = 140
	dropZoneSize    = 200
	bridgeHeight    = 25
	nextQuestionIn  = 2.0
	backToMenuIn    = 3.0
)

var (
	cardColors     = []uint32{0xFFB6C1, 0x90EE90, 0x87CEEB}
	cardDarkColors = []uint32{0xFF91A4, 0x7ACC7A, 0x6BB6E2}
)

// CountingForest is the bridge puzzle: drag the card with the right result
// onto the drop zone to restore one plank per question.
type CountingForest struct {
	m *Manager
	s *stage.Scene

	questions []content.Question
	current   int
	state     ForestState

	bunny  *behavior.Bunny
	planks []*stage.Node
	panel  *stage.Node
	prompt *stage.Node
	zone   *stage.Node
	cards  []*stage.Node
	zoneX  float64
	zoneY  float64
}

// Enter draws the forest and asks the first question.
func (f *CountingForest) Enter(m *Manager) {
	f.m, f.s = m, m.Scene()
	w, h := m.Size()
	f.s.ClearColor = stage.RGB(0x90EE90)

	f.questions = m.Content().Questions
	if len(f.questions) == 0 {
		f.questions = content.NewBridgeQuestions(f.s.Rand(), forestQuestions)
	}

	bg := stage.NewSprite("background", forestBackground(w, h))
	bg.SetPosition(w/2, h/2)
	f.s.Root().AddChild(bg)

	f.buildBridge(w, h)
	f.spawnBunny(w, h)

	f.zoneX, f.zoneY = w/2, h*0.7
	f.zone = stage.NewSprite("dropzone", dropZoneImage())
	f.zone.SetPosition(f.zoneX, f.zoneY)
	f.zone.SetDepth(20)
	f.s.Root().AddChild(f.zone)
	f.s.Tweens().Add(stage.TweenConfig{
		Target:   f.zone,
		Props:    append(stage.PropScale(1.1), stage.PropAlpha(0.7)),
		Duration: 0.8,
		Yoyo:     true,
		Repeat:   -1,
		Ease:     ease.InOutSine,
	})

	f.load(0)
}

func (f *CountingForest) buildBridge(w, h float64) {
	bx, by, bw := w*0.3, h*0.65, w*0.4
	g := stage.NewGraphics(int(bw)+20, bridgeHeight+40)
	g.FillStyle(black, 0.3)
	g.FillRoundedRect(13, 3, bw, bridgeHeight, 5)
	g.FillStyle(brown, 1)
	g.FillRoundedRect(10, 0, bw, bridgeHeight, 5)
	g.LineStyle(2, stage.RGB(0x654321), 1)
	for i := range 5 {
		x := 10 + bw/5*float64(i)
		g.Line(x, 0, x, bridgeHeight)
	}
	g.FillStyle(stage.RGB(0x654321), 1)
	g.FillRect(5, bridgeHeight, 10, 30)
	g.FillRect(bw+5, bridgeHeight, 10, 30)
	bridge := stage.NewSprite("bridge", g.Canvas())
	bridge.SetOrigin(0, 0)
	bridge.SetPosition(bx-10, by)
	bridge.SetDepth(10)
	f.s.Root().AddChild(bridge)

	// One gap per question, spread across the middle of the deck.
	n := len(f.questions)
	gapW := bw * 0.06
	for i := range n {
		x := bx + bw*float64(i+1)/float64(n+1)
		gap := stage.NewRect("gap", gapW, bridgeHeight+10, stage.RGBA(0x000000, 0.7))
		gap.SetPosition(x, by+bridgeHeight/2)
		gap.SetDepth(11)
		f.s.Root().AddChild(gap)
		f.planks = append(f.planks, gap)
	}
}

func (f *CountingForest) spawnBunny(w, h float64) {
	roster := f.m.Catalog().Bunnies
	if len(roster) == 0 {
		roster = f.m.Options().Roster
	}
	if len(roster) == 0 {
		return
	}
	f.bunny = behavior.CreateBunny(f.s, f.s.Root(), w*0.2, h*0.7, roster[0])
	f.bunny.Execute(behavior.Idle)
}

// load shows question i, or completes the level past the last one.
func (f *CountingForest) load(i int) {
	for _, c := range f.cards {
		c.Dispose()
	}
	f.cards = nil
	if f.panel != nil {
		f.panel.Dispose()
		f.panel = nil
	}
	if i >= len(f.questions) {
		f.complete()
		return
	}
	f.current = i
	f.state = Asking
	q := f.questions[i]
	w, h := f.m.Size()

	f.panel = stage.NewSprite("panel", roundedPanel(w*0.9, 150, 20, brown, 0.8, gold, 5))
	f.panel.SetPosition(w/2, h*0.15)
	f.panel.SetDepth(30)
	f.s.Root().AddChild(f.panel)
	f.prompt = label("question", "Câu hỏi: "+q.Question, 32, white)
	f.panel.AddChild(f.prompt)

	x0 := w/2 - cardSpacing*float64(len(q.Answers)-1)/2
	for idx, answer := range q.Answers {
		f.cards = append(f.cards, f.card(idx, answer, x0+float64(idx)*cardSpacing, h*0.4))
	}
}

func (f *CountingForest) card(idx, answer int, x, y float64) *stage.Node {
	n := stage.NewContainer("card_" + strconv.Itoa(idx))
	n.SetPosition(x, y)
	n.SetDepth(40)
	n.Interactable = true
	n.HitShape = stage.HitRect{X: -cardSize / 2, Y: -cardSize / 2, Width: cardSize, Height: cardSize}
	face := stage.NewSprite("face", cardImage(cardColors[idx%len(cardColors)], cardDarkColors[idx%len(cardDarkColors)]))
	n.AddChild(face)
	txt := label("answer", strconv.Itoa(answer), 48, white)
	txt.TextBlock.Style.StrokeWidth = 3
	n.AddChild(txt)
	n.SetData("index", idx)

	homeX, homeY := x, y
	n.OnDragStart = func(stage.DragContext) {
		if f.state != Asking {
			return
		}
		face.Color = stage.RGB(0xCCCCCC)
		n.SetScale(1.2, 1.2)
		n.SetDepth(1000)
	}
	n.OnDrag = func(ctx stage.DragContext) {
		if f.state != Asking {
			return
		}
		n.SetPosition(homeX+ctx.GlobalX-ctx.StartX, homeY+ctx.GlobalY-ctx.StartY)
	}
	n.OnDragEnd = func(ctx stage.DragContext) {
		if f.state != Asking {
			return
		}
		n.SetPosition(homeX+ctx.GlobalX-ctx.StartX, homeY+ctx.GlobalY-ctx.StartY)
		if math.Abs(n.X-f.zoneX) < dropZoneSize/2 && math.Abs(n.Y-f.zoneY) < dropZoneSize/2 {
			f.check(n, idx)
			return
		}
		f.sendHome(n, face, homeX, homeY)
	}
	f.s.Root().AddChild(n)
	return n
}

func (f *CountingForest) sendHome(n, face *stage.Node, x, y float64) {
	f.s.Tweens().Add(stage.TweenConfig{
		Target:   n,
		Props:    []stage.Prop{stage.PropX(x), stage.PropY(y)},
		Duration: 0.3,
		Ease:     ease.OutBack,
		OnComplete: func() {
			face.Color = white
			n.SetScale(1, 1)
			n.SetDepth(40)
		},
	})
}

// check grades the card dropped on the zone.
func (f *CountingForest) check(card *stage.Node, idx int) {
	f.state = Checking
	if f.questions[f.current].IsCorrect(idx) {
		f.correct(card)
		return
	}
	f.wrong(card)
}

func (f *CountingForest) correct(card *stage.Node) {
	f.state = Celebrating
	w, h := f.m.Size()
	f.s.Tweens().Add(stage.TweenConfig{
		Target:     card,
		Props:      append(stage.PropScale(0), stage.PropAlpha(0)),
		Duration:   0.3,
		OnComplete: card.Dispose,
	})
	flashText(f.s, "Xuất sắc! Con giỏi quá!", w/2, h/2, 36, gold, nextQuestionIn-0.3)
	sparkles(f.s, f.s.Root(), f.zoneX, f.zoneY, 20)
	if f.bunny != nil {
		f.bunny.Execute(behavior.Victory)
	}
	f.restorePlank(f.current)
	f.m.HUD().AddStars(1)
	next := f.current + 1
	f.s.Clock().DelayedCall(nextQuestionIn, func() { f.load(next) })
}

func (f *CountingForest) wrong(card *stage.Node) {
	f.state = Asking
	face := card.Children()[0]
	i, _ := card.GetData("index").(int)
	w, h := f.m.Size()
	x0 := w/2 - cardSpacing*float64(len(f.questions[f.current].Answers)-1)/2
	homeX, homeY := x0+float64(i)*cardSpacing, h*0.4

	f.s.Tweens().Add(stage.TweenConfig{
		Target:   card,
		Props:    []stage.Prop{stage.PropX(card.X - 10)},
		Duration: 0.05,
		Yoyo:     true,
		Repeat:   5,
		OnComplete: func() {
			f.sendHome(card, face, homeX, homeY)
		},
	})
	hint := label("hint", "Hãy thử lại nhé!", 28, stage.RGB(0xFF8C00))
	hint.SetPosition(w/2, h*0.25)
	hint.SetDepth(500)
	f.s.Root().AddChild(hint)
	f.s.Clock().DelayedCall(2, hint.Dispose)
}

// restorePlank replaces the gap for question i with a glowing plank
// labelled with its answer.
func (f *CountingForest) restorePlank(i int) {
	if i >= len(f.planks) {
		return
	}
	gap := f.planks[i]
	w, _ := f.m.Size()
	pw := w * 0.4 * 0.06
	plank := stage.NewContainer("plank")
	plank.SetPosition(gap.X, gap.Y)
	plank.SetDepth(12)
	plank.AddChild(stage.NewSprite("wood", roundedPanel(pw+4, bridgeHeight, 3, stage.RGB(0xA0522D), 1, gold, 2)))
	num := label("sum", strconv.Itoa(f.questions[i].Answer()), 18, gold)
	num.SetPosition(0, -bridgeHeight)
	plank.AddChild(num)
	plank.SetScale(0, 0)
	f.s.Root().AddChild(plank)
	gap.Dispose()
	f.planks[i] = plank
	f.s.Tweens().Add(stage.TweenConfig{Target: plank, Props: stage.PropScale(1), Duration: 0.4, Ease: ease.OutBack})
	sparkles(f.s, f.s.Root(), plank.X, plank.Y, 10)
}

func (f *CountingForest) complete() {
	f.state = Complete
	w, h := f.m.Size()
	t := label("victory", "Hoàn thành Level 1!\nCon đã sửa xong cầu rồi!", 40, gold)
	t.TextBlock.Style.Stroke, t.TextBlock.Style.StrokeWidth = white, 4
	t.SetPosition(w/2, h/2)
	t.SetDepth(500)
	f.s.Root().AddChild(t)
	rng := f.s.Rand()
	for range 10 {
		sparkles(f.s, f.s.Root(), stage.FloatBetween(rng, 0, w), stage.FloatBetween(rng, 0, h), 8)
	}
	if f.bunny != nil {
		f.bunny.Execute(behavior.Dance)
	}
	f.s.Clock().DelayedCall(backToMenuIn, func() { f.m.Complete(CountingForestKey) })
}

// Update keeps the bunny inside the meadow.
func (f *CountingForest) Update(float64) {
	if f.bunny != nil {
		f.bunny.Update(nil)
	}
}

// Leave stops the bunny.
func (f *CountingForest) Leave() {
	if f.bunny != nil {
		f.bunny.Destroy()
	}
}

// State returns the round phase.
func (f *CountingForest) State() ForestState { return f.state }

// Question returns the index of the question being asked.
func (f *CountingForest) Question() int { return f.current }

// Questions returns the round's questions.
func (f *CountingForest) Questions() []content.Question { return f.questions }

// Cards returns the answer cards still on screen.
func (f *CountingForest) Cards() []*stage.Node {
	live := f.cards[:0:0]
	for _, c := range f.cards {
		if !c.IsDisposed() {
			live = append(live, c)
		}
	}
	return live
}

// DropZone returns the center of the drop zone.
func (f *CountingForest) DropZone() (float64, float64) { return f.zoneX, f.zoneY }

// Planks returns the plank nodes, gaps until restored.
func (f *CountingForest) Planks() []*stage.Node { return f.planks }

func cardImage(fill, dark uint32) *ebiten.Image {
	g := stage.NewGraphics(cardSize+4, cardSize+4)
	g.FillStyle(black, 0.3)
	g.FillRoundedRect(3, 3, cardSize, cardSize, 15)
	g.FillStyle(stage.RGB(dark), 1)
	g.FillRoundedRect(0, 0, cardSize, cardSize, 15)
	g.FillStyle(stage.RGB(fill), 1)
	g.FillRoundedRect(0, 0, cardSize, cardSize*0.6, 15)
	g.LineStyle(4, white, 1)
	g.StrokeRoundedRect(0, 0, cardSize, cardSize, 15)
	g.LineStyle(2, white, 0.5)
	g.StrokeRoundedRect(5, 5, cardSize-10, cardSize-10, 10)
	return g.Canvas()
}

func dropZoneImage() *ebiten.Image {
	const pad = 12
	g := stage.NewGraphics(dropZoneSize+2*pad, dropZoneSize+2*pad)
	c := float64(dropZoneSize)/2 + pad
	g.FillStyle(stage.RGB(0x4A90E2), 0.3)
	g.FillCircle(c, c, dropZoneSize/2+10)
	g.FillStyle(stage.RGB(0x4A90E2), 0.5)
	g.FillRoundedRect(pad, pad, dropZoneSize, dropZoneSize, 20)
	g.LineStyle(5, gold, 1)
	const dash, gapLen = 10.0, 5.0
	for i := 0.0; i < dropZoneSize*4; i += dash + gapLen {
		side, p := int(i/dropZoneSize), math.Mod(i, dropZoneSize)
		e := math.Min(p+dash, dropZoneSize)
		switch side {
		case 0:
			g.Line(pad+p, pad, pad+e, pad)
		case 1:
			g.Line(pad+dropZoneSize, pad+p, pad+dropZoneSize, pad+e)
		case 2:
			g.Line(pad+dropZoneSize-p, pad+dropZoneSize, pad+dropZoneSize-e, pad+dropZoneSize)
		default:
			g.Line(pad, pad+dropZoneSize-p, pad, pad+dropZoneSize-e)
		}
	}
	return g.Canvas()
}

// forestBackground paints a sky fading to pink over a meadow with a row of
// round trees.
func forestBackground(w, h float64) *ebiten.Image {
	g := stage.NewGraphics(int(w), int(h))
	sky, dusk := stage.RGB(0x87CEEB), stage.RGB(0xFFB6C1)
	const bands = 12
	band := h * 0.6 / bands
	for i := range bands {
		g.FillStyle(sky.Lerp(dusk, float64(i)/(bands-1)), 1)
		g.FillRect(0, float64(i)*band, w, band+1)
	}
	g.FillStyle(stage.RGB(0x90EE90), 1)
	g.FillRect(0, h*0.6, w, h*0.4)
	for i := range 5 {
		x := w / 6 * float64(i+1)
		g.FillStyle(brown, 1)
		g.FillRect(x-5, h*0.5, 10, 40)
		g.FillStyle(stage.RGB(0x228B22), 1)
		g.FillCircle(x, h*0.5, 30)
	}
	return g.Canvas()
}
