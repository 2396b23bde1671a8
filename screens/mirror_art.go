package screens

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bunnyworld/content"
	"github.com/phanxgames/bunnyworld/stage"
)

var categoryNames = map[string]string{
	"animals":  "Động Vật",
	"nature":   "Thiên Nhiên",
	"objects":  "Đồ Vật",
	"food":     "Thức Ăn",
	"vehicles": "Phương Tiện",
	"fantasy":  "Kỳ Ảo",
	"seasonal": "Mùa Lễ Hội",
}

// CategoryName returns the Vietnamese name of a puzzle category, or the
// category itself when unknown.
func CategoryName(category string) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return category
}

// namedColors is searched in order; the first name found in a description
// wins.
var namedColors = []struct {
	name string
	hex  uint32
}{
	{"red", 0xFF0000}, {"blue", 0x0000FF}, {"green", 0x00FF00}, {"yellow", 0xFFFF00},
	{"pink", 0xFF69B4}, {"purple", 0x9370DB}, {"orange", 0xFFA500}, {"brown", 0x8B4513},
	{"white", 0xFFFFFF}, {"black", 0x000000}, {"gold", 0xFFD700}, {"silver", 0xC0C0C0},
	{"teal", 0x008080}, {"chocolate", 0xD2691E}, {"strawberry", 0xFF1493},
}

// colorIn returns the first named color mentioned in text, else pink.
func colorIn(text string) uint32 {
	text = strings.ToLower(text)
	for _, c := range namedColors {
		if strings.Contains(text, c.name) {
			return c.hex
		}
	}
	return 0xFF69B4
}

// firstNumber returns the first run of digits in text, or fallback.
func firstNumber(text string, fallback int) int {
	start := strings.IndexFunc(text, unicode.IsDigit)
	if start < 0 {
		return fallback
	}
	end := start
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(text[start:end])
	if err != nil {
		return fallback
	}
	return n
}

// clockHour returns the hour a position description points at: 6, 9 or 12
// when mentioned, else 3.
func clockHour(text string) int {
	switch {
	case strings.Contains(text, "6"):
		return 6
	case strings.Contains(text, "9"):
		return 9
	case strings.Contains(text, "12"):
		return 12
	}
	return 3
}

var countColors = []uint32{0xFF69B4, 0xFFD700, 0x87CEEB, 0x90EE90, 0xFF6347, 0x9370DB, 0x00CED1, 0xFFA500}

// puzzleArt paints one w x h panel of puzzle p. Both panels of a puzzle use
// the same random stream, so only the difference element changes between
// them.
func puzzleArt(p content.Puzzle, reflection bool, w, h float64) *ebiten.Image {
	g := stage.NewGraphics(int(w), int(h))
	sky, grass := stage.RGB(0x87CEEB), stage.RGB(0x90EE90)
	const bands = 16
	band := h / bands
	for i := range bands {
		g.FillStyle(sky.Lerp(grass, float64(i)/(bands-1)), 1)
		g.FillRect(0, float64(i)*band, w, band+1)
	}

	rng := rand.New(rand.NewPCG(uint64(p.ID), 1))
	g.SetOffset(w/2, h/2)
	drawBaseScene(g, rng, w, h, p.Category)

	d := p.Difference
	x, y := (d.Location.X-0.5)*w, (d.Location.Y-0.5)*h
	text := d.Original
	if reflection {
		text = d.Reflection
	}
	lower := strings.ToLower(text)
	switch d.Type {
	case "count":
		n := firstNumber(d.Original, 3)
		if reflection {
			n = firstNumber(d.Reflection, 2)
		}
		drawCount(g, rng, x, y, n, strings.ToLower(d.Element))
	case "color":
		g.FillStyle(stage.RGB(colorIn(text)), 1)
		g.FillRoundedRect(x-25, y-25, 50, 50, 10)
		g.LineStyle(3, black, 0.5)
		g.StrokeRoundedRect(x-25, y-25, 50, 50, 10)
		g.FillStyle(white, 0.3)
		g.FillRoundedRect(x-20, y-20, 20, 15, 5)
	case "presence":
		// The element shows in whichever panel is described "with" it.
		with := strings.Contains(strings.ToLower(d.Original), "with")
		if with != reflection {
			drawPresence(g, x, y, strings.ToLower(d.Element))
		}
	case "size":
		r := 30.0
		if strings.Contains(lower, "small") {
			r = 15
		}
		g.FillStyle(stage.RGB(0x90EE90), 1)
		g.FillCircle(x, y, r)
		g.FillStyle(stage.RGB(0x228B22), 1)
		g.FillCircle(x-r*0.2, y-r*0.2, r*0.3)
	case "direction":
		dir := -1.0
		if strings.Contains(lower, "right") {
			dir = 1
		}
		g.FillStyle(stage.RGB(0xFFA500), 1)
		g.FillCircle(x, y, 20)
		g.FillStyle(black, 1)
		g.FillCircle(x+dir*8, y-5, 4)
		g.FillStyle(stage.RGB(0xFF6347), 1)
		g.FillTriangle(x+dir*20, y, x+dir*10, y-5, x+dir*10, y+5)
	case "shape":
		drawShape(g, x, y, lower)
	case "pattern":
		drawPattern(g, x, y, lower)
	case "position":
		drawClock(g, x, y, clockHour(text))
	default:
		g.FillStyle(stage.RGB(0x90EE90), 1)
		g.FillCircle(x, y, 25)
		g.FillStyle(gold, 1)
		g.FillCircle(x, y, 15)
	}
	return g.Canvas()
}

func drawBaseScene(g *stage.Graphics, rng *rand.Rand, w, h float64, category string) {
	switch category {
	case "animals", "nature":
		g.FillStyle(stage.RGB(0x228B22), 1)
		g.FillRect(-w/2, h*0.2, w, h*0.3)
		petals := []uint32{0xFF69B4, 0xFFD700, 0xFF6347, 0x9370DB}
		for i := range 5 {
			fx := stage.FloatBetween(rng, -w/2+20, w/2-20)
			fy := h*0.3 + stage.FloatBetween(rng, -10, 10)
			g.FillStyle(stage.RGB(petals[i%len(petals)]), 1)
			g.FillCircle(fx, fy, 8)
			g.FillStyle(gold, 1)
			g.FillCircle(fx, fy, 3)
		}
	case "objects", "food":
		g.FillStyle(stage.RGB(0xDEB887), 1)
		g.FillRect(-w/2, h*0.15, w, h*0.35)
		g.FillStyle(brown, 1)
		g.FillRect(-w/2, h*0.35, w, 10)
	case "vehicles":
		g.FillStyle(stage.RGB(0x808080), 1)
		g.FillRect(-w/2, h*0.2, w, h*0.3)
		g.FillStyle(white, 1)
		for i := range 5 {
			g.FillRect(-w/2+float64(i)*w/4, h*0.33, w/6, 5)
		}
	case "fantasy":
		g.FillStyle(stage.RGB(0x4B0082), 0.8)
		g.FillRect(-w/2, h*0.1, w, h*0.2)
		g.FillStyle(stage.RGB(0x9370DB), 0.8)
		g.FillRect(-w/2, h*0.3, w, h*0.2)
		for range 8 {
			sx := stage.FloatBetween(rng, -w/2+10, w/2-10)
			sy := stage.FloatBetween(rng, -h/2+10, 0)
			g.FillStyle(gold, 0.8)
			g.FillCircle(sx, sy, 3)
		}
	case "seasonal":
		g.FillStyle(stage.RGB(0xF5F5DC), 1)
		g.FillRect(-w/2, h*0.2, w, h*0.3)
	}
}

func drawCount(g *stage.Graphics, rng *rand.Rand, x, y float64, n int, element string) {
	for i := range n {
		ox := (float64(i)-float64(n)/2)*20 + stage.FloatBetween(rng, -5, 5)
		oy := stage.FloatBetween(rng, -15, 15)
		c := stage.RGB(countColors[i%len(countColors)])
		px, py := x+ox, y+oy
		switch {
		case strings.Contains(element, "butterfl") || strings.Contains(element, "bee"):
			g.FillStyle(c, 1)
			g.FillEllipse(px-8, py, 10, 6)
			g.FillEllipse(px+8, py, 10, 6)
			g.FillStyle(black, 1)
			g.FillCircle(px, py, 4)
		case strings.Contains(element, "star"):
			g.FillStyle(c, 1)
			g.FillPolygon(starPoints(px, py, 8, 5))
		case strings.Contains(element, "heart"):
			drawHeart(g, px, py, 10, c)
		default:
			g.FillStyle(c, 1)
			g.FillCircle(px, py, 10)
			g.FillStyle(white, 0.5)
			g.FillCircle(px-3, py-3, 3)
		}
	}
}

func drawPresence(g *stage.Graphics, x, y float64, element string) {
	switch {
	case strings.Contains(element, "moon"):
		g.FillStyle(stage.RGB(0xFFFACD), 1)
		g.FillCircle(x, y, 20)
		g.FillStyle(stage.RGB(0x87CEEB), 1)
		g.FillCircle(x+8, y, 18)
	case strings.Contains(element, "hat") || strings.Contains(element, "crown"):
		g.FillStyle(gold, 1)
		g.FillTriangle(x-15, y+10, x+15, y+10, x, y-20)
		g.FillStyle(stage.RGB(0xFF0000), 1)
		g.FillCircle(x, y-15, 5)
	case strings.Contains(element, "collar") || strings.Contains(element, "ribbon"):
		g.FillStyle(stage.RGB(0xFF0000), 1)
		g.FillRoundedRect(x-20, y-5, 40, 10, 3)
		g.FillCircle(x, y, 8)
	default:
		g.FillStyle(gold, 1)
		g.FillRoundedRect(x-15, y-15, 30, 30, 5)
	}
}

func drawShape(g *stage.Graphics, x, y float64, text string) {
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
	g.FillStyle(stage.RGB(0x9370DB), 1)
	switch {
	case has("circle", "round"):
		g.FillCircle(x, y, 25)
	case has("square", "rectangle"):
		g.FillRect(x-20, y-20, 40, 40)
	case has("triangle"):
		g.FillTriangle(x, y-25, x-25, y+20, x+25, y+20)
	case has("star"):
		g.FillStyle(gold, 1)
		g.FillPolygon(starPoints(x, y, 25, 5))
	case has("heart"):
		drawHeart(g, x, y, 30, stage.RGB(0xFF69B4))
	case has("diamond"):
		g.FillTriangle(x, y-25, x-20, y, x+20, y)
		g.FillTriangle(x, y+25, x-20, y, x+20, y)
	case has("crescent"):
		g.FillCircle(x, y, 25)
		g.FillStyle(stage.RGB(0x87CEEB), 1)
		g.FillCircle(x+10, y, 22)
	case has("oval"):
		g.FillEllipse(x, y, 35, 25)
	default:
		g.FillCircle(x, y, 25)
	}
}

func drawPattern(g *stage.Graphics, x, y float64, text string) {
	g.FillStyle(white, 1)
	g.FillRoundedRect(x-30, y-30, 60, 60, 8)
	switch {
	case strings.Contains(text, "stripe"):
		g.FillStyle(stage.RGB(0xFF0000), 1)
		for i := range 5 {
			g.FillRect(x-30+float64(i)*15, y-30, 7, 60)
		}
	case strings.Contains(text, "polka") || strings.Contains(text, "dot"):
		g.FillStyle(stage.RGB(0x0000FF), 1)
		for i := range 9 {
			g.FillCircle(x-20+float64(i%3)*20, y-20+float64(i/3)*20, 5)
		}
	case strings.Contains(text, "checker"):
		g.FillStyle(black, 1)
		for i := range 4 {
			for j := range 4 {
				if (i+j)%2 == 0 {
					g.FillRect(x-30+float64(i)*15, y-30+float64(j)*15, 15, 15)
				}
			}
		}
	default:
		g.FillStyle(stage.RGB(0x90EE90), 1)
		g.FillCircle(x, y, 20)
	}
}

func drawClock(g *stage.Graphics, x, y float64, hour int) {
	g.FillStyle(white, 1)
	g.FillCircle(x, y, 30)
	g.LineStyle(3, black, 1)
	g.StrokeCircle(x, y, 30)
	g.LineStyle(2, black, 1)
	for i := range 12 {
		a := stage.DegToRad(float64(i*30 - 90))
		g.Line(x+math.Cos(a)*25, y+math.Sin(a)*25, x+math.Cos(a)*28, y+math.Sin(a)*28)
	}
	a := stage.DegToRad(float64(hour*30 - 90))
	g.LineStyle(4, black, 1)
	g.Line(x, y, x+math.Cos(a)*15, y+math.Sin(a)*15)
	g.LineStyle(2, black, 1)
	g.Line(x, y, x, y-22)
}

// drawHeart fills a heart of width about size centered at (x, y).
func drawHeart(g *stage.Graphics, x, y, size float64, c stage.Color) {
	r := size * 0.28
	g.FillStyle(c, 1)
	g.FillCircle(x-r, y, r)
	g.FillCircle(x+r, y, r)
	g.FillTriangle(x-2*r, y+r*0.3, x+2*r, y+r*0.3, x, y+size*0.6)
}
