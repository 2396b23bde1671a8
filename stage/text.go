package stage

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce    sync.Once
	regularFace *text.GoTextFaceSource
	boldFace    *text.GoTextFaceSource
)

func loadFonts() {
	fontOnce.Do(func() {
		var err error
		regularFace, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic(fmt.Sprintf("stage: failed to load regular font: %v", err))
		}
		boldFace, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if err != nil {
			panic(fmt.Sprintf("stage: failed to load bold font: %v", err))
		}
	})
}

// TextStyle controls how a TextBlock is rendered.
type TextStyle struct {
	Size  float64
	Color Color
	Align TextAlign
	Bold  bool
	// Stroke draws an outline of StrokeWidth pixels when StrokeWidth > 0.
	Stroke      Color
	StrokeWidth float64
	// WrapWidth breaks lines between words to fit when > 0.
	WrapWidth float64
}

// TextBlock holds text content and its cached rendering.
type TextBlock struct {
	Content string
	Style   TextStyle

	face      *text.GoTextFace
	shown     string
	lh        float64
	measuredW float64
	measuredH float64
	image     *ebiten.Image
	dirty     bool
}

// NewText creates a text node. Text nodes default to a centered origin.
func NewText(name, content string, style TextStyle) *Node {
	if style.Size <= 0 {
		style.Size = 24
	}
	if style.Color == (Color{}) {
		style.Color = ColorWhite
	}
	n := &Node{
		Name:      name,
		Type:      NodeTypeText,
		TextBlock: &TextBlock{Content: content, Style: style, dirty: true},
	}
	nodeDefaults(n)
	n.OriginX = 0.5
	n.OriginY = 0.5
	return n
}

// SetText replaces the content of a text node.
func (n *Node) SetText(content string) {
	if n.TextBlock == nil || n.TextBlock.Content == content {
		return
	}
	n.TextBlock.Content = content
	n.TextBlock.dirty = true
	n.transformDirty = true
}

// SetTextColor changes the fill color of a text node.
func (n *Node) SetTextColor(c Color) {
	if n.TextBlock == nil {
		return
	}
	n.TextBlock.Style.Color = c
	n.TextBlock.dirty = true
}

func (tb *TextBlock) ensureFace() {
	if tb.face != nil && tb.face.Size == tb.Style.Size {
		return
	}
	loadFonts()
	src := regularFace
	if tb.Style.Bold {
		src = boldFace
	}
	tb.face = &text.GoTextFace{Source: src, Size: tb.Style.Size}
	m := tb.face.Metrics()
	tb.lh = m.HAscent + m.HDescent + m.HLineGap
	tb.dirty = true
}

// Measure returns the rendered width and height including the stroke.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.ensureFace()
	if tb.dirty || tb.measuredW == 0 {
		tb.shown = tb.wrap()
		tw, th := text.Measure(tb.shown, tb.face, tb.lh)
		pad := 2 * tb.Style.StrokeWidth
		tb.measuredW = tw + pad
		tb.measuredH = th + pad
	}
	return tb.measuredW, tb.measuredH
}

func (tb *TextBlock) wrap() string {
	if tb.Style.WrapWidth <= 0 {
		return tb.Content
	}
	var out strings.Builder
	for i, para := range strings.Split(tb.Content, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		line := ""
		for _, word := range strings.Fields(para) {
			if line == "" {
				line = word
				continue
			}
			if text.Advance(line+" "+word, tb.face) > tb.Style.WrapWidth {
				out.WriteString(line)
				out.WriteByte('\n')
				line = word
				continue
			}
			line += " " + word
		}
		out.WriteString(line)
	}
	return out.String()
}

// render returns the cached image, re-rendering when content or style changed.
func (tb *TextBlock) render() *ebiten.Image {
	w, h := tb.Measure()
	if w < 1 || h < 1 {
		return nil
	}
	if !tb.dirty && tb.image != nil {
		return tb.image
	}
	tb.dirty = false

	iw, ih := int(w)+1, int(h)+1
	if tb.image != nil {
		b := tb.image.Bounds()
		if b.Dx() != iw || b.Dy() != ih {
			tb.image.Deallocate()
			tb.image = ebiten.NewImage(iw, ih)
		} else {
			tb.image.Clear()
		}
	} else {
		tb.image = ebiten.NewImage(iw, ih)
	}

	sw := tb.Style.StrokeWidth
	var originX float64
	var align text.Align
	switch tb.Style.Align {
	case TextAlignCenter:
		originX, align = w/2, text.AlignCenter
	case TextAlignRight:
		originX, align = w-sw, text.AlignEnd
	default:
		originX, align = sw, text.AlignStart
	}

	draw := func(dx, dy float64, c Color) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(originX+dx, sw+dy)
		op.ColorScale.ScaleWithColor(c.toRGBA())
		op.LineSpacing = tb.lh
		op.PrimaryAlign = align
		text.Draw(tb.image, tb.shown, tb.face, op)
	}

	// Outline pass: offset in 8 directions with the stroke color.
	if sw > 0 {
		offsets := [8][2]float64{
			{-sw, 0}, {sw, 0}, {0, -sw}, {0, sw},
			{-sw, -sw}, {sw, -sw}, {-sw, sw}, {sw, sw},
		}
		for _, off := range offsets {
			draw(off[0], off[1], tb.Style.Stroke)
		}
	}
	draw(0, 0, tb.Style.Color)
	return tb.image
}
