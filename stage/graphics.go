package stage

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteSubImage is the interior of a 3x3 white image, used as the source
// for DrawTriangles fills so edge texels never bleed.
var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(ColorWhite.toRGBA())
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Graphics paints procedural shapes onto an offscreen canvas. Shapes are
// drawn relative to the current offset so generators can paint one frame of
// a strip at a time.
type Graphics struct {
	canvas    *ebiten.Image
	fill      Color
	line      Color
	lineWidth float32
	ox, oy    float64

	verts []ebiten.Vertex
	inds  []uint16
}

// NewGraphics creates a painter over a transparent w x h canvas.
func NewGraphics(w, h int) *Graphics {
	return &Graphics{
		canvas:    ebiten.NewImage(w, h),
		fill:      ColorWhite,
		line:      ColorWhite,
		lineWidth: 1,
	}
}

// Canvas returns the image painted so far.
func (g *Graphics) Canvas() *ebiten.Image {
	return g.canvas
}

// SetOffset moves the drawing origin.
func (g *Graphics) SetOffset(x, y float64) {
	g.ox, g.oy = x, y
}

// FillStyle sets the fill color and alpha.
func (g *Graphics) FillStyle(c Color, alpha float64) {
	g.fill = c.WithAlpha(alpha)
}

// LineStyle sets the stroke width, color and alpha.
func (g *Graphics) LineStyle(width float64, c Color, alpha float64) {
	g.lineWidth = float32(width)
	g.line = c.WithAlpha(alpha)
}

// Clear erases the canvas.
func (g *Graphics) Clear() {
	g.canvas.Clear()
}

func (g *Graphics) pt(x, y float64) (float32, float32) {
	return float32(x + g.ox), float32(y + g.oy)
}

// FillCircle fills a circle centered at (cx, cy).
func (g *Graphics) FillCircle(cx, cy, r float64) {
	x, y := g.pt(cx, cy)
	vector.DrawFilledCircle(g.canvas, x, y, float32(r), g.fill.toRGBA(), true)
}

// StrokeCircle outlines a circle centered at (cx, cy).
func (g *Graphics) StrokeCircle(cx, cy, r float64) {
	x, y := g.pt(cx, cy)
	vector.StrokeCircle(g.canvas, x, y, float32(r), g.lineWidth, g.line.toRGBA(), true)
}

// FillRect fills an axis-aligned rectangle.
func (g *Graphics) FillRect(x, y, w, h float64) {
	px, py := g.pt(x, y)
	vector.DrawFilledRect(g.canvas, px, py, float32(w), float32(h), g.fill.toRGBA(), true)
}

// StrokeRect outlines an axis-aligned rectangle.
func (g *Graphics) StrokeRect(x, y, w, h float64) {
	px, py := g.pt(x, y)
	vector.StrokeRect(g.canvas, px, py, float32(w), float32(h), g.lineWidth, g.line.toRGBA(), true)
}

// Line strokes a segment.
func (g *Graphics) Line(x0, y0, x1, y1 float64) {
	ax, ay := g.pt(x0, y0)
	bx, by := g.pt(x1, y1)
	vector.StrokeLine(g.canvas, ax, ay, bx, by, g.lineWidth, g.line.toRGBA(), true)
}

// StrokeArc strokes the circular arc from start to end radians, clockwise
// in screen space.
func (g *Graphics) StrokeArc(cx, cy, r, start, end float64) {
	const steps = 12
	px, py := cx+math.Cos(start)*r, cy+math.Sin(start)*r
	for i := 1; i <= steps; i++ {
		a := start + (end-start)*float64(i)/steps
		x, y := cx+math.Cos(a)*r, cy+math.Sin(a)*r
		g.Line(px, py, x, y)
		px, py = x, y
	}
}

// FillEllipse fills an ellipse of the given width and height centered at (cx, cy).
func (g *Graphics) FillEllipse(cx, cy, w, h float64) {
	g.fillPath(ellipsePoints(cx, cy, w/2, h/2, 0))
}

// FillRotatedEllipse fills an ellipse rotated by rot radians about its center.
func (g *Graphics) FillRotatedEllipse(cx, cy, w, h, rot float64) {
	g.fillPath(ellipsePoints(cx, cy, w/2, h/2, rot))
}

// FillTriangle fills the triangle (x0,y0) (x1,y1) (x2,y2).
func (g *Graphics) FillTriangle(x0, y0, x1, y1, x2, y2 float64) {
	g.fillPath([]Vec2{{x0, y0}, {x1, y1}, {x2, y2}})
}

// FillPolygon fills a closed polygon.
func (g *Graphics) FillPolygon(points []Vec2) {
	if len(points) < 3 {
		return
	}
	g.fillPath(points)
}

// StrokePolygon outlines a closed polygon.
func (g *Graphics) StrokePolygon(points []Vec2) {
	for i := range points {
		j := (i + 1) % len(points)
		g.Line(points[i].X, points[i].Y, points[j].X, points[j].Y)
	}
}

// FillRoundedRect fills a rectangle with corners of radius r.
func (g *Graphics) FillRoundedRect(x, y, w, h, r float64) {
	g.fillPath(roundedRectPoints(x, y, w, h, r))
}

// StrokeRoundedRect outlines a rectangle with corners of radius r.
func (g *Graphics) StrokeRoundedRect(x, y, w, h, r float64) {
	g.StrokePolygon(roundedRectPoints(x, y, w, h, r))
}

// fillPath triangulates the outline with vector.Path and fills it.
func (g *Graphics) fillPath(points []Vec2) {
	var path vector.Path
	for i, p := range points {
		x, y := g.pt(p.X, p.Y)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	g.verts, g.inds = path.AppendVerticesAndIndicesForFilling(g.verts[:0], g.inds[:0])
	c := g.fill
	for i := range g.verts {
		g.verts[i].SrcX = 1
		g.verts[i].SrcY = 1
		g.verts[i].ColorR = float32(c.R)
		g.verts[i].ColorG = float32(c.G)
		g.verts[i].ColorB = float32(c.B)
		g.verts[i].ColorA = float32(c.A)
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.FillRule = ebiten.FillRuleNonZero
	g.canvas.DrawTriangles(g.verts, g.inds, whiteSubImage, op)
}

// GenerateSheet registers the canvas as a sprite sheet of frameW x frameH
// frames under key and returns it.
func (g *Graphics) GenerateSheet(tex *Textures, key string, frameW, frameH int) *SpriteSheet {
	sheet := NewSpriteSheet(key, g.canvas, frameW, frameH)
	tex.Add(sheet)
	return sheet
}

// GenerateTexture registers the canvas as a single-frame sheet.
func (g *Graphics) GenerateTexture(tex *Textures, key string) *SpriteSheet {
	return g.GenerateSheet(tex, key, 0, 0)
}

const ellipseSegments = 32

func ellipsePoints(cx, cy, rx, ry, rot float64) []Vec2 {
	pts := make([]Vec2, ellipseSegments)
	sinR, cosR := math.Sincos(rot)
	for i := range pts {
		a := float64(i) / ellipseSegments * 2 * math.Pi
		x := math.Cos(a) * rx
		y := math.Sin(a) * ry
		pts[i] = Vec2{cx + x*cosR - y*sinR, cy + x*sinR + y*cosR}
	}
	return pts
}

func roundedRectPoints(x, y, w, h, r float64) []Vec2 {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return []Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	}
	const steps = 6
	corners := [4]struct{ cx, cy, start float64 }{
		{x + w - r, y + r, -math.Pi / 2},
		{x + w - r, y + h - r, 0},
		{x + r, y + h - r, math.Pi / 2},
		{x + r, y + r, math.Pi},
	}
	pts := make([]Vec2, 0, 4*(steps+1))
	for _, c := range corners {
		for i := 0; i <= steps; i++ {
			a := c.start + float64(i)/steps*math.Pi/2
			pts = append(pts, Vec2{c.cx + math.Cos(a)*r, c.cy + math.Sin(a)*r})
		}
	}
	return pts
}
