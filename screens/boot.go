package screens

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bunnyworld/behavior"
	"github.com/phanxgames/bunnyworld/sprites"
	"github.com/phanxgames/bunnyworld/stage"
)

const (
	bootBarWidth  = 500
	bootBarHeight = 40
	// bootStepDelay separates generation jobs so the bar visibly fills.
	bootStepDelay = 0.08
)

// Boot generates every procedural texture one job per tick behind a loading
// bar with a running bunny, then opens the first screen.
type Boot struct {
	m       *Manager
	s       *stage.Scene
	jobs    []sprites.Job
	catalog *sprites.Catalog
	done    int

	fill   *stage.Node
	runner *stage.Node
	minX   float64
	maxX   float64
	status *stage.Node
}

// Enter builds the loading bar and schedules the generation jobs.
func (b *Boot) Enter(m *Manager) {
	b.m, b.s = m, m.Scene()
	w, h := m.Size()
	b.s.ClearColor = stage.RGB(0x87CEEB)
	opts := m.Options()
	b.jobs = sprites.Jobs(opts.Counts, opts.Roster)
	b.catalog = &sprites.Catalog{}

	title := label("loading", "Đang tải game...", 36, gold)
	title.TextBlock.Style.Stroke, title.TextBlock.Style.StrokeWidth = white, 4
	title.SetPosition(w/2, h/2-80)
	b.s.Root().AddChild(title)
	b.s.Tweens().Add(stage.TweenConfig{
		Target: title, Props: []stage.Prop{stage.PropAlpha(0.7)},
		Duration: 1, Yoyo: true, Repeat: -1, Ease: ease.InOutSine,
	})

	bar := b.loadingBar()
	bar.SetPosition(w/2, h/2+30)
	b.s.Root().AddChild(bar)

	b.status = label("status", "", 16, white)
	b.status.SetPosition(w/2, h/2+90)
	b.s.Root().AddChild(b.status)

	b.minX = w/2 - bootBarWidth/2 + 20
	b.maxX = w/2 + bootBarWidth/2 - 20
	b.runner = stage.NewSprite("runner", runnerImage())
	b.runner.SetPosition(b.minX, h/2+30)
	b.runner.SetDepth(1000)
	b.s.Root().AddChild(b.runner)
	b.s.Tweens().Add(stage.TweenConfig{
		Target: b.runner, Props: []stage.Prop{stage.PropY(h/2 + 27)},
		Duration: 0.2, Yoyo: true, Repeat: -1, Ease: ease.InOutSine,
	})

	b.s.Clock().AddEvent(stage.TimerConfig{
		Delay:    bootStepDelay,
		Repeat:   len(b.jobs) - 1,
		Callback: b.step,
	})
}

func (b *Boot) loadingBar() *stage.Node {
	bar := stage.NewContainer("bar")
	bar.SetAlpha(0.85)

	glow := stage.NewSprite("glow", roundedPanel(bootBarWidth+30, bootBarHeight+30, 10, gold, 0.1, gold, 0))
	bar.AddChild(glow)
	b.s.Tweens().Add(stage.TweenConfig{
		Target: glow, Props: []stage.Prop{stage.PropAlpha(0.5)},
		Duration: 1, Yoyo: true, Repeat: -1, Ease: ease.InOutSine,
	})
	bar.AddChild(stage.NewSprite("frame", roundedPanel(bootBarWidth+20, bootBarHeight+20, 8, white, 0.25, white, 3)))
	bar.AddChild(stage.NewSprite("track", roundedPanel(bootBarWidth, bootBarHeight, 5, white, 0.2, white, 0)))

	b.fill = stage.NewRect("fill", bootBarWidth-8, bootBarHeight-12, stage.RGB(0xFF69B4))
	b.fill.SetOrigin(0, 0.5)
	b.fill.SetPosition(-bootBarWidth/2+4, 0)
	b.fill.ScaleX = 0
	bar.AddChild(b.fill)

	for i := range 6 {
		a := float64(i) * math.Pi / 3
		sp := stage.NewSprite("sparkle", disc(3, gold, 1))
		sp.SetPosition(math.Cos(a)*(bootBarWidth/2+25), math.Sin(a)*(bootBarHeight/2+25))
		bar.AddChild(sp)
		b.s.Tweens().Add(stage.TweenConfig{
			Target:   sp,
			Props:    append(stage.PropScale(0.5), stage.PropAlpha(0.3)),
			Duration: stage.FloatBetween(b.s.Rand(), 0.5, 1),
			Delay:    float64(i) * 0.1,
			Yoyo:     true,
			Repeat:   -1,
			Ease:     ease.InOutSine,
		})
	}
	return bar
}

// runnerImage paints the small bunny that runs along the bar until the
// first bunny's animations exist.
func runnerImage() *ebiten.Image {
	g := stage.NewGraphics(40, 40)
	g.FillStyle(white, 1)
	g.FillCircle(20, 20, 12)
	g.FillEllipse(10, 5, 8, 15)
	g.FillEllipse(30, 5, 8, 15)
	g.FillStyle(stage.RGB(0xFFB6C1), 1)
	g.FillEllipse(10, 8, 5, 12)
	g.FillEllipse(30, 8, 5, 12)
	g.FillStyle(stage.RGB(0x4A90E2), 1)
	g.FillCircle(16, 18, 4)
	g.FillCircle(24, 18, 4)
	g.FillStyle(white, 1)
	g.FillCircle(17, 17, 1.5)
	g.FillCircle(25, 17, 1.5)
	g.FillStyle(stage.RGB(0xFF69B4), 1)
	g.FillTriangle(20, 20, 18, 24, 22, 24)
	return g.Canvas()
}

// Progress returns the fraction of jobs done.
func (b *Boot) Progress() float64 {
	if len(b.jobs) == 0 {
		return 1
	}
	return float64(b.done) / float64(len(b.jobs))
}

func (b *Boot) step() {
	if b.done >= len(b.jobs) {
		return
	}
	job := b.jobs[b.done]
	job.Run(b.m, b.catalog)
	b.done++
	b.status.SetText(job.Name)

	p := b.Progress()
	b.s.Tweens().KillTweensOf(b.fill)
	b.s.Tweens().Add(stage.TweenConfig{
		Target: b.fill, Props: []stage.Prop{stage.PropScaleX(p * (bootBarWidth - 8))},
		Duration: bootStepDelay, Ease: ease.OutQuad,
	})
	b.runner.X = b.minX + (b.maxX-b.minX)*p
	b.upgradeRunner()
	if b.s.Rand().Float64() > 0.7 {
		b.trail()
	}
	if b.done == len(b.jobs) {
		b.finish()
	}
}

// upgradeRunner swaps the painted runner for the first bunny's run cycle
// once it has been generated.
func (b *Boot) upgradeRunner() {
	if b.runner.CurrentAnimation() != "" || len(b.catalog.Bunnies) == 0 {
		return
	}
	key := behavior.BunnyAnimKey(b.catalog.Bunnies[0].Key(), "runright")
	if !b.s.Anims().Exists(key) {
		return
	}
	if err := b.runner.Play(b.s.Anims(), key); err != nil {
		warnf("boot runner: %v", err)
		return
	}
	b.runner.SetScale(0.5, 0.5)
}

func (b *Boot) trail() {
	p := stage.NewSprite("trail", disc(3, gold, 0.8))
	p.SetPosition(b.runner.X-10, b.runner.Y)
	b.s.Root().AddChild(p)
	b.s.Tweens().Add(stage.TweenConfig{
		Target:     p,
		Props:      append(stage.PropScale(0), stage.PropX(p.X-20), stage.PropAlpha(0)),
		Duration:   0.5,
		Ease:       ease.OutQuad,
		OnComplete: p.Dispose,
	})
}

func (b *Boot) finish() {
	b.runner.X = b.maxX
	b.s.Clock().DelayedCall(0.3, func() {
		b.m.SetCatalog(b.catalog)
		b.status.SetText("")
		b.s.Clock().DelayedCall(0.5, func() {
			next := b.firstScreen()
			if err := b.m.Start(next); err != nil {
				warnf("boot: %v, opening menu", err)
				_ = b.m.Start(MenuKey)
			}
		})
	})
}

// firstScreen is SkipToScreen when set, the menu when level select is on,
// else the head of the screen order.
func (b *Boot) firstScreen() string {
	flow := b.m.Content().Flow
	switch {
	case flow.SkipToScreen != "":
		return flow.SkipToScreen
	case flow.ShowLevelSelect:
		return MenuKey
	}
	if first := flow.FirstScreen(); first != nil {
		return first.Key
	}
	return MenuKey
}

// Update does nothing; generation runs on the scene clock.
func (b *Boot) Update(float64) {}

// Leave does nothing; the scene shutdown cancels pending jobs.
func (b *Boot) Leave() {}
