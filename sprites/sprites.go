// Package sprites paints the game's characters procedurally. Every
// generator draws a horizontal strip of frames with stage.Graphics,
// registers it as a sprite sheet and creates the frame animation that plays
// it. Nothing is loaded from disk.
package sprites

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/phanxgames/bunnyworld/stage"
)

// Registry is where generated sheets and animations are stored.
// *stage.Scene satisfies it.
type Registry interface {
	Textures() *stage.Textures
	Anims() *stage.Anims
	Rand() *rand.Rand
}

// strip describes a frame strip to paint.
type strip struct {
	key    string
	frames int
	w, h   int
}

// frameFunc paints frame i of a strip centered at (cx, cy); p is i/frames.
type frameFunc func(g *stage.Graphics, cx, cy, p float64, i int)

// paint draws every frame of s and registers the sheet.
func paint(reg Registry, s strip, draw frameFunc) *stage.SpriteSheet {
	g := stage.NewGraphics(s.frames*s.w, s.h)
	for i := 0; i < s.frames; i++ {
		g.SetOffset(float64(i*s.w), 0)
		draw(g, float64(s.w)/2, float64(s.h)/2, float64(i)/float64(s.frames), i)
	}
	g.SetOffset(0, 0)
	return g.GenerateSheet(reg.Textures(), s.key, s.w, s.h)
}

// animate registers animation key over sheetKey, replacing any previous
// definition. It returns "" and logs when the sheet is missing.
func animate(reg Registry, key, sheetKey string, fps float64, repeat int, frames []int) string {
	reg.Anims().Remove(key)
	err := reg.Anims().Create(stage.AnimationDef{
		Key:       key,
		SheetKey:  sheetKey,
		Frames:    frames,
		FrameRate: fps,
		Repeat:    repeat,
	}, reg.Textures())
	if err != nil {
		log.Printf("sprites: %v", err)
		return ""
	}
	return key
}

// pingPong returns the frame order 0..n-1 followed by n-2..1, so a looping
// animation plays forward then back.
func pingPong(n int) []int {
	out := make([]int, 0, max(2*n-2, n))
	for i := 0; i < n; i++ {
		out = append(out, i)
	}
	for i := n - 2; i > 0; i-- {
		out = append(out, i)
	}
	return out
}

// star fills a five-pointed star.
func star(g *stage.Graphics, x, y, size float64) {
	pts := make([]stage.Vec2, 10)
	for i := range pts {
		r := size
		if i%2 == 1 {
			r = size * 0.5
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		pts[i] = stage.Vec2{X: x + math.Cos(a)*r, Y: y + math.Sin(a)*r}
	}
	g.FillPolygon(pts)
}

// ring places count sparkles evenly around (cx, cy).
func ring(g *stage.Graphics, cx, cy, dist, size float64, count int, stars bool) {
	for i := 0; i < count; i++ {
		sin, cos := math.Sincos(float64(i) * 2 * math.Pi / float64(count))
		x, y := cx+cos*dist, cy+sin*dist
		g.FillStyle(stage.RGB(0xFFD700), 1)
		if stars {
			star(g, x, y, size)
		} else {
			g.FillCircle(x, y, size*0.8)
		}
		g.FillStyle(stage.ColorWhite, 0.8)
		g.FillCircle(x, y, size*0.4)
	}
}
