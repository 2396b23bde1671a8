package sprites

import (
	"fmt"
	"log"
	"math"

	"github.com/phanxgames/bunnyworld/behavior"
	"github.com/phanxgames/bunnyworld/stage"
)

// FireflyStyle colors one firefly.
type FireflyStyle struct {
	Glow  uint32
	Wings bool
}

// BirdStyle colors one bird.
type BirdStyle struct {
	Body, Wing uint32
}

// ButterflyStyle colors one butterfly.
type ButterflyStyle struct {
	Upper, Lower, Body uint32
	// Pattern draws white dots on every wing.
	Pattern bool
	// Shimmer adds a faint glow to some frames.
	Shimmer bool
}

// ParticleType is the shape of a magic particle.
type ParticleType uint8

const (
	Sparkle ParticleType = iota
	Orb
	Dust
)

// ParticleStyle colors one magic particle.
type ParticleStyle struct {
	Color uint32
	Type  ParticleType
}

var (
	fireflyPalette = []FireflyStyle{
		{0xFFD700, false},
		{0x87CEEB, true},
		{0xFF69B4, false},
		{0x90EE90, true},
		{0xFF8C00, false},
		{0xDDA0DD, true},
	}
	birdPalette = []BirdStyle{
		{0xFFD700, 0xFF8C00},
		{0x87CEEB, 0x4A90E2},
		{0xFF69B4, 0xFF1493},
		{0x90EE90, 0x32CD32},
		{0x9370DB, 0x8A2BE2},
	}
	butterflyPalette = []ButterflyStyle{
		{0xFFD700, 0xFFB6C1, 0x654321, true, true},
		{0x87CEEB, 0xADD8E6, 0x4A90E2, true, false},
		{0xFF69B4, 0xFFB6C1, 0x8B008B, false, true},
		{0x9370DB, 0xDDA0DD, 0x6A5ACD, true, true},
		{0xFF8C00, 0xFFD700, 0x8B4513, true, false},
		{0x90EE90, 0x98FB98, 0x228B22, false, false},
		{0xFF1493, 0xFF69B4, 0x8B008B, true, true},
		{0x00CED1, 0x87CEEB, 0x4682B4, false, true},
	}
	particleColors = []uint32{0xFFD700, 0x87CEEB, 0xFF69B4, 0x90EE90, 0x9370DB, 0xFF8C00}
	particleTypes  = []ParticleType{Sparkle, Orb, Dust}
)

func creature(kind behavior.Kind, i int) (key, sheet, anim string) {
	key = fmt.Sprintf("%s_%d", kind, i)
	return key, key + "_sheet", key + "_fly"
}

// Firefly paints the 8-frame glow cycle of one firefly and its animation.
func Firefly(reg Registry, i int, style FireflyStyle) behavior.CreatureData {
	key, sheetKey, animKey := creature(behavior.Firefly, i)
	glowColor := stage.RGB(style.Glow)
	paint(reg, strip{sheetKey, 8, 32, 32}, func(g *stage.Graphics, cx, cy, p float64, _ int) {
		glow := 0.6 + math.Sin(p*math.Pi*4)*0.3
		cy += math.Sin(p * math.Pi * 2)

		g.FillStyle(glowColor, glow*0.3)
		g.FillCircle(cx, cy, 12)
		g.FillStyle(glowColor, glow*0.6)
		g.FillCircle(cx, cy, 8)
		g.FillStyle(glowColor, glow)
		g.FillCircle(cx, cy, 4)
		g.FillStyle(stage.ColorWhite, glow*0.8)
		g.FillCircle(cx, cy, 2)

		g.FillStyle(stage.RGB(0x2F4F2F), 0.8)
		g.FillEllipse(cx, cy, 2, 4)
		if style.Wings {
			g.FillStyle(stage.ColorWhite, glow*0.2)
			g.FillEllipse(cx-2, cy-1, 3, 2)
			g.FillEllipse(cx+2, cy-1, 3, 2)
		}
	})
	return behavior.CreatureData{
		Kind:     behavior.Firefly,
		Key:      key,
		SheetKey: sheetKey,
		AnimKey:  animate(reg, animKey, sheetKey, 8, -1, nil),
	}
}

// Bird paints the 10-frame wing flap of one bird and its animation.
func Bird(reg Registry, i int, style BirdStyle) behavior.CreatureData {
	key, sheetKey, animKey := creature(behavior.Bird, i)
	body, wingColor := stage.RGB(style.Body), stage.RGB(style.Wing)
	orange := stage.RGB(0xFF8C00)
	paint(reg, strip{sheetKey, 10, 48, 48}, func(g *stage.Graphics, cx, cy, p float64, _ int) {
		flap := math.Sin(p * math.Pi * 2)
		wingAngle := flap * 0.5
		wingScaleY := 1 + math.Abs(flap)*0.3
		cy += math.Sin(p*math.Pi*4) * 2

		g.FillStyle(body, 1)
		g.FillEllipse(cx, cy, 8, 10)
		g.FillCircle(cx, cy-6, 6)

		g.FillStyle(orange, 1)
		g.FillTriangle(cx, cy-8, cx-2, cy-10, cx+2, cy-10)

		g.FillStyle(stage.RGB(0x000000), 1)
		g.FillCircle(cx-2, cy-7, 1.5)
		g.FillStyle(stage.ColorWhite, 1)
		g.FillCircle(cx-1.5, cy-7.5, 0.5)

		const wingSize = 12
		g.FillStyle(wingColor, 0.9)
		for _, side := range [2]float64{-1, 1} {
			sin, cos := math.Sincos(side * wingAngle)
			g.FillEllipse(cx+side*6+sin*wingSize*0.4, cy-cos*wingSize*0.4, wingSize, wingSize*wingScaleY)
		}

		tail := math.Sin(wingAngle*0.5) * 0.2
		g.FillStyle(body, 1)
		g.FillTriangle(cx, cy+8, cx-4-tail*5, cy+12, cx+4+tail*5, cy+12)
	})
	return behavior.CreatureData{
		Kind:     behavior.Bird,
		Key:      key,
		SheetKey: sheetKey,
		AnimKey:  animate(reg, animKey, sheetKey, 10, -1, nil),
	}
}

// Butterfly paints the 10-frame flutter of one butterfly, two wing beats per
// cycle, and its animation.
func Butterfly(reg Registry, i int, style ButterflyStyle) behavior.CreatureData {
	key, sheetKey, animKey := creature(behavior.Butterfly, i)
	upper, lower, body := stage.RGB(style.Upper), stage.RGB(style.Lower), stage.RGB(style.Body)
	gold := stage.RGB(0xFFD700)
	rng := reg.Rand()
	paint(reg, strip{sheetKey, 10, 64, 64}, func(g *stage.Graphics, cx, cy, p float64, _ int) {
		beat := math.Sin(math.Mod(p*2, 1) * math.Pi * 2)
		angle := beat * 0.4
		scaleY := 1 + math.Abs(beat)*0.2
		cy += math.Sin(p*math.Pi*4) * 2

		g.FillStyle(body, 1)
		g.FillEllipse(cx, cy, 3, 8)

		g.FillStyle(upper, 0.9)
		wing(g, cx-8, cy-5, 20, -angle, scaleY, style.Pattern)
		g.FillStyle(upper, 0.9)
		wing(g, cx+8, cy-5, 20, angle, scaleY, style.Pattern)
		g.FillStyle(lower, 0.8)
		wing(g, cx-6, cy+3, 15, -angle*0.7, scaleY*0.9, style.Pattern)
		g.FillStyle(lower, 0.8)
		wing(g, cx+6, cy+3, 15, angle*0.7, scaleY*0.9, style.Pattern)

		tip := math.Sin(angle*2) * 0.3
		g.LineStyle(1.5, body, 1)
		g.Line(cx, cy-8, cx-2-tip, cy-12)
		g.Line(cx, cy-8, cx+2+tip, cy-12)
		g.FillStyle(gold, 1)
		g.FillCircle(cx-2-tip, cy-12, 1.5)
		g.FillCircle(cx+2+tip, cy-12, 1.5)

		if style.Shimmer && rng.Float64() > 0.7 {
			g.FillStyle(stage.ColorWhite, 0.3)
			g.FillCircle(cx, cy, 15)
		}
	})
	return behavior.CreatureData{
		Kind:     behavior.Butterfly,
		Key:      key,
		SheetKey: sheetKey,
		AnimKey:  animate(reg, animKey, sheetKey, 12, -1, nil),
	}
}

// wing fills one wing with the current fill style. The tilt is approximated
// by the bounding box of the rotated ellipse.
func wing(g *stage.Graphics, x, y, size, angle, scaleY float64, pattern bool) {
	w, h := size, size*scaleY
	sin, cos := math.Sincos(angle)
	x += sin * h * 0.3
	y -= cos * h * 0.3
	g.FillEllipse(x, y, math.Abs(w*cos)+math.Abs(h*sin), math.Abs(w*sin)+math.Abs(h*cos))
	if pattern {
		g.FillStyle(stage.ColorWhite, 0.4)
		g.FillCircle(x-3, y-2, 2)
		g.FillCircle(x+3, y+2, 1.5)
	}
}

// MagicParticle paints the 6-frame twinkle of one particle and its
// animation.
func MagicParticle(reg Registry, i int, style ParticleStyle) behavior.CreatureData {
	key, sheetKey, animKey := creature(behavior.MagicParticle, i)
	c := stage.RGB(style.Color)
	paint(reg, strip{sheetKey, 6, 24, 24}, func(g *stage.Graphics, cx, cy, p float64, _ int) {
		wave := math.Sin(p * math.Pi * 2)
		scale := 0.7 + wave*0.3
		rotation := p * math.Pi * 2
		glow := 0.5 + math.Sin(p*math.Pi*4)*0.4
		a := glow * (0.6 + wave*0.3)

		switch style.Type {
		case Sparkle:
			size := 8 * scale
			g.FillStyle(c, a*0.4)
			g.FillCircle(cx, cy, size*1.5)
			g.FillStyle(c, a)
			for k := 0; k < 4; k++ {
				angle := float64(k)*math.Pi/2 + rotation
				g.FillCircle(cx+math.Cos(angle)*size, cy+math.Sin(angle)*size, size*0.3)
				g.FillCircle(cx+math.Cos(angle+math.Pi/4)*size*0.6, cy+math.Sin(angle+math.Pi/4)*size*0.6, size*0.2)
			}
			g.FillStyle(stage.ColorWhite, a*0.9)
			g.FillCircle(cx, cy, size*0.4)
		case Orb:
			size := 6 * scale
			g.FillStyle(c, a*0.3)
			g.FillCircle(cx, cy, size*2)
			g.FillStyle(c, a*0.6)
			g.FillCircle(cx, cy, size*1.3)
			g.FillStyle(c, a)
			g.FillCircle(cx, cy, size)
			g.FillStyle(stage.ColorWhite, a*0.8)
			g.FillCircle(cx-size*0.3, cy-size*0.3, size*0.4)
		case Dust:
			size := 4 * scale
			g.FillStyle(c, a*0.7)
			g.FillCircle(cx, cy, size)
			g.FillStyle(c, a*0.3)
			g.FillCircle(cx, cy, size*1.5)
		}
	})
	return behavior.CreatureData{
		Kind:     behavior.MagicParticle,
		Key:      key,
		SheetKey: sheetKey,
		AnimKey:  animate(reg, animKey, sheetKey, 8, -1, nil),
	}
}

// GenerateFireflies paints n fireflies, cycling the palette.
func GenerateFireflies(reg Registry, n int) []behavior.CreatureData {
	out := make([]behavior.CreatureData, n)
	for i := range out {
		out[i] = Firefly(reg, i, fireflyPalette[i%len(fireflyPalette)])
	}
	log.Printf("sprites: generated %d fireflies", n)
	return out
}

// GenerateBirds paints n birds, cycling the palette.
func GenerateBirds(reg Registry, n int) []behavior.CreatureData {
	out := make([]behavior.CreatureData, n)
	for i := range out {
		out[i] = Bird(reg, i, birdPalette[i%len(birdPalette)])
	}
	log.Printf("sprites: generated %d birds", n)
	return out
}

// GenerateButterflies paints n butterflies, cycling the palette. Each
// butterfly flips its palette's shimmer and pattern with even odds.
func GenerateButterflies(reg Registry, n int) []behavior.CreatureData {
	rng := reg.Rand()
	out := make([]behavior.CreatureData, n)
	for i := range out {
		style := butterflyPalette[i%len(butterflyPalette)]
		if rng.Float64() > 0.5 {
			style.Shimmer = !style.Shimmer
		}
		if rng.Float64() > 0.5 {
			style.Pattern = !style.Pattern
		}
		out[i] = Butterfly(reg, i, style)
	}
	log.Printf("sprites: generated %d butterflies", n)
	return out
}

// GenerateMagicParticles paints n particles, cycling shapes and colors
// independently.
func GenerateMagicParticles(reg Registry, n int) []behavior.CreatureData {
	out := make([]behavior.CreatureData, n)
	for i := range out {
		out[i] = MagicParticle(reg, i, ParticleStyle{
			Color: particleColors[i%len(particleColors)],
			Type:  particleTypes[i%len(particleTypes)],
		})
	}
	log.Printf("sprites: generated %d magic particles", n)
	return out
}
