package sprites

import (
	"log"
	"math"

	"github.com/phanxgames/bunnyworld/behavior"
	"github.com/phanxgames/bunnyworld/stage"
)

const owlFrame = 128

// owlPose holds the per-frame parameters of an owl drawing.
type owlPose struct {
	blink      bool
	eyeClose   float64
	brightness float64
	wingSpread float64
	wingHeight float64
	wingFlap   float64
	headTilt   float64
	droop      float64
	beakOpen   bool
	frown      bool
	smile      bool
	sparkles   bool
	glow       bool
}

type owlAnim struct {
	state    behavior.OwlState
	frames   int
	fps      float64
	pingPong bool
	pose     func(p float64, i int) (dy float64, ps owlPose)
}

var owlAnims = []owlAnim{
	{behavior.OwlIdle, 4, 8, true, func(p float64, i int) (float64, owlPose) {
		return math.Sin(p*math.Pi*2) * 2, owlPose{blink: i == 2, brightness: 1}
	}},
	{behavior.OwlCheering, 6, 10, false, func(p float64, _ int) (float64, owlPose) {
		clap := math.Sin(p * math.Pi * 4)
		return -math.Abs(clap) * 4, owlPose{
			brightness: 1.2,
			wingSpread: 10 + clap*8,
			wingHeight: -8 - math.Abs(clap)*6,
			smile:      true,
			glow:       true,
		}
	}},
	{behavior.OwlEncouraging, 4, 8, true, func(p float64, _ int) (float64, owlPose) {
		nod := math.Sin(p * math.Pi * 2)
		return nod * 2, owlPose{brightness: 1, headTilt: nod * 3, wingSpread: 4, smile: true}
	}},
	{behavior.OwlSad, 4, 6, true, func(p float64, _ int) (float64, owlPose) {
		return 4, owlPose{brightness: 0.8, droop: 4 + math.Sin(p*math.Pi*2)*1.5, eyeClose: 0.6, frown: true}
	}},
	{behavior.OwlCelebrating, 6, 12, false, func(p float64, i int) (float64, owlPose) {
		flap := math.Sin(p * math.Pi * 4)
		return -math.Abs(flap) * 8, owlPose{
			brightness: 1.3,
			wingFlap:   flap * 20,
			wingSpread: 12,
			beakOpen:   true,
			sparkles:   i%2 == 0,
			glow:       true,
		}
	}},
}

// GenerateOwl paints every owl state. It returns the animation keys created.
func GenerateOwl(reg Registry) []string {
	keys := make([]string, 0, len(owlAnims))
	for _, a := range owlAnims {
		sheetKey := behavior.OwlSheetKey(a.state)
		paint(reg, strip{sheetKey, a.frames, owlFrame, owlFrame}, func(g *stage.Graphics, cx, cy, p float64, i int) {
			dy, ps := a.pose(p, i)
			drawOwl(g, cx, cy+dy, ps)
		})
		var frames []int
		if a.pingPong {
			frames = pingPong(a.frames)
		}
		if key := animate(reg, behavior.OwlAnimKey(a.state), sheetKey, a.fps, -1, frames); key != "" {
			keys = append(keys, key)
		}
	}
	log.Printf("sprites: generated owl (%d states)", len(keys))
	return keys
}

func drawOwl(g *stage.Graphics, cx, cy float64, ps owlPose) {
	const (
		size = owlFrame * 0.8
		body = size * 0.25
		head = body * 0.9
	)
	cream, shadow := stage.RGB(0xF5F5DC), stage.RGB(0xE8E8E8)
	gold, orange := stage.RGB(0xFFD700), stage.RGB(0xFF8C00)
	dark := stage.RGB(0x4A4A4A)

	if ps.glow {
		g.FillStyle(gold, 0.2)
		g.FillCircle(cx, cy, body*2)
	}

	// Wings sit behind the body.
	for _, side := range [2]float64{-1, 1} {
		wx := cx + side*(body*0.9+ps.wingSpread)
		wy := cy + ps.wingHeight + ps.droop
		g.FillStyle(shadow, 1)
		g.FillRotatedEllipse(wx, wy, body*0.7, body*1.4, side*(0.3+ps.wingFlap*math.Pi/180))
	}

	g.FillStyle(cream, 1)
	g.FillEllipse(cx, cy+body*0.2, body*2, body*2.3)
	g.FillStyle(shadow, 1)
	g.FillEllipse(cx, cy+body*0.45, body*1.2, body*1.3)

	// Head, tufts and face.
	hx, hy := cx+ps.headTilt, cy-body*0.9+ps.droop
	g.FillStyle(cream, 1)
	g.FillCircle(hx, hy, head)
	g.FillTriangle(hx-head*0.8, hy-head*0.5, hx-head*0.5, hy-head*1.3, hx-head*0.2, hy-head*0.8)
	g.FillTriangle(hx+head*0.8, hy-head*0.5, hx+head*0.5, hy-head*1.3, hx+head*0.2, hy-head*0.8)

	eye := head * 0.35
	lens := head * 0.5
	for _, side := range [2]float64{-1, 1} {
		ex := hx + side*head*0.45
		switch {
		case ps.blink:
			g.LineStyle(2, dark, 1)
			g.Line(ex-eye*0.8, hy, ex+eye*0.8, hy)
		default:
			g.FillStyle(stage.ColorWhite, 1)
			g.FillCircle(ex, hy, eye)
			g.FillStyle(gold, math.Min(1, 0.8*ps.brightness))
			g.FillCircle(ex, hy, eye*0.7)
			g.FillStyle(stage.RGB(0x000000), 1)
			g.FillCircle(ex, hy, eye*0.35)
			g.FillStyle(stage.ColorWhite, 1)
			g.FillCircle(ex-eye*0.2, hy-eye*0.25, eye*0.15)
			if ps.eyeClose > 0 {
				g.FillStyle(cream, 1)
				g.FillRect(ex-eye, hy-eye, eye*2, eye*2*ps.eyeClose)
			}
		}
		g.LineStyle(3, dark, 1)
		g.StrokeCircle(ex, hy, lens)
	}
	g.LineStyle(3, dark, 1)
	g.Line(hx-head*0.45+lens, hy, hx+head*0.45-lens, hy)

	// Beak.
	by := hy + head*0.35
	if ps.beakOpen {
		g.FillStyle(orange, 1)
		g.FillCircle(hx, by, head*0.15)
		g.FillStyle(stage.RGB(0xFF6347), 1)
		g.FillCircle(hx, by, head*0.08)
	} else {
		g.FillStyle(orange, 1)
		g.FillTriangle(hx-head*0.12, by-head*0.08, hx+head*0.12, by-head*0.08, hx, by+head*0.15)
	}
	g.LineStyle(2, orange, 1)
	switch {
	case ps.smile:
		g.StrokeArc(hx, by+head*0.1, head*0.25, 0.3, math.Pi-0.3)
	case ps.frown:
		g.StrokeArc(hx, by+head*0.45, head*0.2, math.Pi+0.4, 2*math.Pi-0.4)
	}

	// Feet.
	g.FillStyle(orange, 1)
	fy := cy + body*1.3
	for _, side := range [2]float64{-1, 1} {
		g.FillEllipse(cx+side*body*0.4, fy, body*0.35, body*0.15)
	}

	if ps.sparkles {
		ring(g, cx, cy, body*1.8, body*0.15, 6, true)
	}
}
