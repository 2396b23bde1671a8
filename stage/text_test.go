package stage

import (
	"math"
	"strings"
	"testing"
)

func TestTextMeasureGrowsWithContent(t *testing.T) {
	short := NewText("a", "Hi", TextStyle{Size: 20})
	long := NewText("b", "Hello, bunnies!", TextStyle{Size: 20})

	sw, sh := short.Size()
	lw, lh := long.Size()
	if sw <= 0 || sh <= 0 {
		t.Fatalf("short size = (%f, %f), want positive", sw, sh)
	}
	if lw <= sw {
		t.Errorf("long width %f should exceed short width %f", lw, sw)
	}
	if lh != sh {
		t.Errorf("single-line heights differ: %f vs %f", lh, sh)
	}
}

func TestTextStrokeAddsPadding(t *testing.T) {
	plain := NewText("a", "Score", TextStyle{Size: 24})
	stroked := NewText("b", "Score", TextStyle{Size: 24, StrokeWidth: 3, Stroke: RGB(0x000000)})
	pw, ph := plain.Size()
	sw, sh := stroked.Size()
	if math.Abs(sw-pw-6) > 1e-9 || math.Abs(sh-ph-6) > 1e-9 {
		t.Errorf("stroke padding = (%f, %f), want (6, 6)", sw-pw, sh-ph)
	}
}

func TestSetTextRemeasures(t *testing.T) {
	n := NewText("t", "1", TextStyle{Size: 24})
	w1, _ := n.Size()
	n.SetText("100")
	w2, _ := n.Size()
	if w2 <= w1 {
		t.Errorf("width after SetText = %f, want > %f", w2, w1)
	}
}

func TestMultilineTextIsTaller(t *testing.T) {
	one := NewText("a", "line", TextStyle{Size: 18})
	two := NewText("b", "line\nline", TextStyle{Size: 18})
	_, h1 := one.Size()
	_, h2 := two.Size()
	if h2 <= h1 {
		t.Errorf("two-line height %f should exceed %f", h2, h1)
	}
}

func TestWrapWidthBreaksLines(t *testing.T) {
	content := "the wise owl knows every path through the forest"
	flat := NewText("a", content, TextStyle{Size: 18})
	wrapped := NewText("b", content, TextStyle{Size: 18, WrapWidth: 120})

	fw, fh := flat.Size()
	ww, wh := wrapped.Size()
	if ww >= fw {
		t.Errorf("wrapped width %f should be below %f", ww, fw)
	}
	if wh <= fh {
		t.Errorf("wrapped height %f should exceed %f", wh, fh)
	}
	if strings.Count(wrapped.TextBlock.shown, "\n") < 2 {
		t.Errorf("wrapped text = %q, want several lines", wrapped.TextBlock.shown)
	}
}
