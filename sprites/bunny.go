package sprites

import (
	"math"

	"github.com/phanxgames/bunnyworld/behavior"
	"github.com/phanxgames/bunnyworld/stage"
)

const (
	bunnyFrame  = 128
	bunnyRadius = 25
	earW, earH  = 12, 25
)

type eyes uint8

const (
	eyesOpen eyes = iota
	eyesClosed
)

type mouth uint8

const (
	mouthSmile mouth = iota
	mouthExcited
	mouthBigSmile
	mouthSurprised
	mouthPeaceful
)

// pose holds the per-frame parameters of a bunny drawing.
type pose struct {
	scaleX, scaleY float64
	ear            float64
	tail           float64
	eyes           eyes
	mouth          mouth
	// talk is the mouth opening in [0, 1]; negative draws the expression.
	talk float64

	arms      bool
	armRaise  float64
	leftArm   float64
	rightArm  float64
	splitArms bool

	legs       bool
	legL, legR float64
	sparkles   bool
	shock, zzz bool
}

func basePose() pose {
	return pose{scaleX: 1, scaleY: 1, talk: -1}
}

// BunnyAnim describes one generated bunny animation.
type BunnyAnim struct {
	Name   string
	Frames int
	FPS    float64
	// Loop is false for animations that play once.
	Loop bool
	// PingPong plays the frames forward then back.
	PingPong bool
	// Y shifts the whole drawing down.
	Y    float64
	pose func(p float64, i int) (dx, dy float64, ps pose)
}

// BunnyAnims lists the generated bunny animations.
var BunnyAnims = []BunnyAnim{
	{Name: "idle", Frames: 14, FPS: 8, Loop: true, PingPong: true, pose: func(p float64, i int) (float64, float64, pose) {
		ps := basePose()
		breath := 1 + math.Sin(p*math.Pi*4)*0.05
		ps.scaleX, ps.scaleY = breath, breath
		ps.ear = math.Sin(p*math.Pi*6) * 0.1
		if i == 0 || i == 13 {
			ps.eyes = eyesClosed
		}
		return 0, math.Sin(p*math.Pi*2) * 2, ps
	}},
	{Name: "runright", Frames: 10, FPS: 12, Loop: true, pose: run(1)},
	{Name: "runleft", Frames: 10, FPS: 12, Loop: true, pose: run(-1)},
	{Name: "jump", Frames: 8, FPS: 15, pose: func(p float64, _ int) (float64, float64, pose) {
		ps := basePose()
		ps.mouth = mouthExcited
		ps.arms = true
		var dy float64
		switch {
		case p < 0.2:
			t := p / 0.2
			dy, ps.scaleX, ps.scaleY, ps.ear = t*10, 1+t*0.1, 1-t*0.2, -t*0.2
		case p < 0.5:
			t := (p - 0.2) / 0.3
			dy, ps.scaleX, ps.scaleY, ps.ear = -t*30, 1.1-t*0.1, 0.8+t*0.2, -0.2+t*0.3
		case p < 0.8:
			t := (p - 0.5) / 0.3
			dy, ps.ear = -30+t*10, 0.1-t*0.1
		default:
			t := (p - 0.8) / 0.2
			dy, ps.scaleX, ps.scaleY, ps.ear = -20+t*20, 1+t*0.1, 1-t*0.15, 0.1-t*0.1
		}
		return 0, dy, ps
	}},
	{Name: "victory", Frames: 12, FPS: 10, pose: func(p float64, i int) (float64, float64, pose) {
		ps := basePose()
		ps.mouth = mouthBigSmile
		ps.ear = 0.3 + math.Sin(p*math.Pi*4)*0.1
		ps.arms = true
		ps.armRaise = math.Sin(p*math.Pi*2) * 0.2
		ps.sparkles = i%3 == 0
		hop := math.Mod(p*3, 1)
		return 0, -math.Abs(math.Sin(hop*math.Pi)) * 25, ps
	}},
	{Name: "sleep", Frames: 8, FPS: 6, Loop: true, PingPong: true, Y: 20, pose: func(p float64, i int) (float64, float64, pose) {
		ps := basePose()
		breath := 1 + math.Sin(p*math.Pi*2)*0.05
		ps.scaleX, ps.scaleY = breath, breath
		ps.ear = -0.3
		ps.eyes = eyesClosed
		ps.mouth = mouthPeaceful
		ps.zzz = i%4 < 2
		return 0, math.Sin(p*math.Pi*2) * 3, ps
	}},
	{Name: "hit", Frames: 5, FPS: 15, pose: func(p float64, i int) (float64, float64, pose) {
		ps := basePose()
		ps.mouth = mouthSurprised
		ps.shock = i < 2
		recoil := p * 8
		if p >= 0.3 {
			recoil = (0.3 - (p-0.3)*0.5) * 8
		}
		return math.Sin(p*math.Pi*8) * 3, recoil, ps
	}},
	{Name: "dance", Frames: 14, FPS: 12, Loop: true, pose: func(p float64, _ int) (float64, float64, pose) {
		ps := basePose()
		ps.mouth = mouthBigSmile
		ps.ear = math.Sin(p*math.Pi*6) * 0.3
		ps.arms, ps.splitArms = true, true
		if math.Mod(p*2, 1) < 0.5 {
			ps.leftArm = 0.4
		} else {
			ps.rightArm = 0.4
		}
		ps.sparkles = true
		return 0, -math.Abs(math.Sin(p*math.Pi*4)) * 15, ps
	}},
	{Name: "talk", Frames: 8, FPS: 10, Loop: true, pose: func(p float64, _ int) (float64, float64, pose) {
		ps := basePose()
		ps.talk = math.Abs(math.Sin(p * math.Pi * 6))
		ps.ear = math.Sin(p*math.Pi*3) * 0.05
		return 0, math.Sin(p*math.Pi*4) * 2, ps
	}},
}

func run(dir float64) func(p float64, _ int) (float64, float64, pose) {
	return func(p float64, _ int) (float64, float64, pose) {
		cycle := math.Mod(p*2, 1)
		wave := math.Sin(cycle * math.Pi * 2)
		ps := basePose()
		ps.arms = true
		ps.legs = true
		ps.legL, ps.legR = cycle, math.Mod(cycle+0.5, 1)
		ps.ear = wave * 0.15
		ps.tail = dir * wave * 0.2
		return 0, wave * 8, ps
	}
}

// GenerateBunny paints every animation of one character. Sheets are
// registered as bunny_<name>_<anim>_sheet and animations as
// bunny_<name>_<anim>. It returns the animation keys created.
func GenerateBunny(reg Registry, cfg behavior.BunnyConfig) []string {
	name := cfg.Key()
	keys := make([]string, 0, len(BunnyAnims))
	for _, a := range BunnyAnims {
		sheetKey := behavior.BunnySheetKey(name, a.Name)
		paint(reg, strip{sheetKey, a.Frames, bunnyFrame, bunnyFrame}, func(g *stage.Graphics, cx, cy, p float64, i int) {
			dx, dy, ps := a.pose(p, i)
			drawBunny(g, cx+dx, cy+a.Y+dy, cfg, ps)
		})
		repeat := -1
		if !a.Loop {
			repeat = 0
		}
		var frames []int
		if a.PingPong {
			frames = pingPong(a.Frames)
		}
		if key := animate(reg, behavior.BunnyAnimKey(name, a.Name), sheetKey, a.FPS, repeat, frames); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// GenerateBunnies paints every character of roster.
func GenerateBunnies(reg Registry, roster []behavior.BunnyConfig) {
	for _, cfg := range roster {
		GenerateBunny(reg, cfg)
	}
}

func drawBunny(g *stage.Graphics, cx, cy float64, cfg behavior.BunnyConfig, ps pose) {
	const r = bunnyRadius
	fur, ear := stage.RGB(cfg.Fur), stage.RGB(cfg.Ear)
	pink := stage.RGB(0xFF69B4)
	black := stage.RGB(0x000000)

	if has(cfg, "backpack") {
		g.FillStyle(stage.RGB(0x8B4513), 1)
		g.FillRoundedRect(cx-r*1.05, cy-r*0.3, r*0.5, r*0.8, 4)
	}

	// Body and highlight.
	g.FillStyle(fur, 1)
	g.FillEllipse(cx, cy, 2*r*ps.scaleX, 2*r*ps.scaleY)
	g.FillStyle(stage.ColorWhite, 0.3)
	g.FillCircle(cx-r*0.3, cy-r*0.3, r*0.4*ps.scaleY)

	// Ears.
	earY := cy - r*0.8
	sin, cos := math.Sincos(ps.ear)
	offX, offY := sin*earH*0.2, -cos*earH*0.2
	if ps.ear == 0 {
		offX, offY = 0, 0
	}
	g.FillStyle(fur, 1)
	g.FillEllipse(cx-r*0.6+offX, earY+offY, earW, earH)
	g.FillEllipse(cx+r*0.6-offX, earY+offY, earW, earH)
	g.FillStyle(ear, 1)
	g.FillEllipse(cx-r*0.6, earY+earH*0.1, earW*0.6, earH*0.7)
	g.FillEllipse(cx+r*0.6, earY+earH*0.1, earW*0.6, earH*0.7)

	// Eyes.
	eye := r * 0.25
	eyeY := cy - r*0.2
	for _, ex := range [2]float64{cx - r*0.3, cx + r*0.3} {
		if ps.eyes == eyesClosed {
			g.LineStyle(2, black, 1)
			g.StrokeArc(ex, eyeY, eye*0.5, 0, math.Pi)
			continue
		}
		g.FillStyle(stage.ColorWhite, 1)
		g.FillCircle(ex, eyeY, eye)
		g.FillStyle(stage.RGB(cfg.Eye), 1)
		g.FillCircle(ex, eyeY, eye*0.7)
		g.FillStyle(stage.ColorWhite, 1)
		g.FillCircle(ex-eye*0.2, eyeY-eye*0.2, eye*0.3)
		g.FillStyle(black, 1)
		g.FillCircle(ex, eyeY, eye*0.4)
	}

	// Nose and mouth.
	noseY := cy + r*0.1
	g.FillStyle(pink, 1)
	g.FillTriangle(cx, noseY, cx-r*0.15, noseY+r*0.2, cx+r*0.15, noseY+r*0.2)
	mouthY := cy + r*0.3
	if ps.talk > 0.5 {
		g.FillStyle(pink, 1)
		g.FillCircle(cx, mouthY, r*0.1*ps.talk)
	} else {
		drawMouth(g, cx, mouthY, ps.mouth)
	}

	// Arms.
	if ps.arms {
		g.FillStyle(fur, 1)
		switch {
		case ps.splitArms:
			if ps.leftArm > 0 {
				g.FillEllipse(cx-r*0.5, cy-r*0.5-ps.leftArm*r, r*0.2, r*0.25)
			}
			if ps.rightArm > 0 {
				g.FillEllipse(cx+r*0.5, cy-r*0.5-ps.rightArm*r, r*0.2, r*0.25)
			}
		case ps.armRaise != 0:
			armY := cy - r*0.5 - ps.armRaise*r
			g.FillEllipse(cx-r*0.5, armY, r*0.2, r*0.25)
			g.FillEllipse(cx+r*0.5, armY, r*0.2, r*0.25)
		}
	}

	// Legs.
	if ps.legs {
		g.FillStyle(fur, 1)
		legY := cy + r*0.5
		g.FillEllipse(cx-r*0.3, legY+math.Sin(ps.legL*math.Pi*2)*r*0.3, r*0.25, r*0.2)
		g.FillEllipse(cx+r*0.3, legY+math.Sin(ps.legR*math.Pi*2)*r*0.3, r*0.25, r*0.2)
	}

	// Tail.
	tailX, tailY := cx+r*0.7, cy+r*0.5
	if ps.tail != 0 {
		tsin, tcos := math.Sincos(ps.tail)
		tailX += tsin * r * 0.3
		tailY += tcos * r * 0.2
	}
	g.FillStyle(fur, 1)
	g.FillCircle(tailX, tailY, r*0.4)

	drawAccessories(g, cx, cy, cfg)

	if ps.sparkles {
		ring(g, cx, cy, r*0.8, r*0.1, 6, false)
	}
	if ps.shock {
		g.LineStyle(2, black, 1)
		for k := 0; k < 4; k++ {
			s, c := math.Sincos(float64(k) * math.Pi / 2)
			g.Line(cx+c*r*0.8, cy+s*r*0.8, cx+c*r*1.2, cy+s*r*1.2)
		}
	}
	if ps.zzz {
		zy := cy - r*0.8
		g.LineStyle(3, stage.RGB(0x87CEEB), 1)
		g.Line(cx-r*0.3, zy, cx+r*0.3, zy)
		g.Line(cx-r*0.2, zy-r*0.1, cx+r*0.2, zy-r*0.1)
		g.Line(cx-r*0.3, zy-r*0.2, cx+r*0.3, zy-r*0.2)
	}
}

func drawMouth(g *stage.Graphics, x, y float64, m mouth) {
	const r = bunnyRadius
	g.LineStyle(r*0.08, stage.RGB(0xFF69B4), 1)
	switch m {
	case mouthBigSmile:
		g.StrokeArc(x, y, r*0.25, 0.1, math.Pi-0.1)
	case mouthExcited:
		g.StrokeArc(x, y, r*0.22, 0.15, math.Pi-0.15)
	case mouthSurprised:
		g.StrokeCircle(x, y+r*0.05, r*0.08)
	case mouthPeaceful:
		g.StrokeArc(x, y, r*0.12, 0.4, math.Pi-0.4)
	default:
		g.StrokeArc(x, y, r*0.2, 0.2, math.Pi-0.2)
	}
}

func drawAccessories(g *stage.Graphics, cx, cy float64, cfg behavior.BunnyConfig) {
	const r = bunnyRadius
	for _, a := range cfg.Accessories {
		switch a {
		case "flower":
			fx, fy := cx+r*0.75, cy-r*1.05
			g.FillStyle(stage.RGB(0xFFB6C1), 1)
			for k := 0; k < 5; k++ {
				s, c := math.Sincos(float64(k) * 2 * math.Pi / 5)
				g.FillCircle(fx+c*3.5, fy+s*3.5, 3)
			}
			g.FillStyle(stage.RGB(0xFFD700), 1)
			g.FillCircle(fx, fy, 2.5)
		case "scarf":
			g.FillStyle(stage.RGB(0xFF1493), 1)
			g.FillRoundedRect(cx-r*0.7, cy+r*0.45, r*1.4, r*0.25, 3)
			g.FillRect(cx+r*0.3, cy+r*0.55, r*0.2, r*0.45)
		case "hat":
			g.FillStyle(stage.RGB(0x6A0DAD), 1)
			g.FillTriangle(cx, cy-r*1.9, cx-r*0.45, cy-r*0.85, cx+r*0.45, cy-r*0.85)
			star(g, cx, cy-r*1.35, r*0.15)
		}
	}
}

func has(cfg behavior.BunnyConfig, accessory string) bool {
	for _, a := range cfg.Accessories {
		if a == accessory {
			return true
		}
	}
	return false
}
