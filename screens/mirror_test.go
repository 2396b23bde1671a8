package screens

import (
	"math"
	"testing"

	"github.com/phanxgames/bunnyworld/behavior"
	"github.com/phanxgames/bunnyworld/content"
	"github.com/phanxgames/bunnyworld/stage"
)

func startMirrors(t *testing.T) (*Manager, *MirrorCity) {
	t.Helper()
	m := newTestManager(t)
	startScreen(t, m, MirrorCityKey)
	return m, m.Screen().(*MirrorCity)
}

// openMirror clicks mirror i and waits for its challenge.
func openMirror(t *testing.T, m *Manager, mc *MirrorCity, i int) {
	t.Helper()
	emit(m, stage.EventClick, mc.Mirror(i))
	advance(m, 0.4)
	if _, r := mc.Panels(); r == nil {
		t.Fatalf("mirror %d challenge not shown", i)
	}
}

// clickDifference clicks the reflection on the current puzzle's difference.
func clickDifference(m *Manager, mc *MirrorCity) {
	_, r := mc.Panels()
	pw, ph := mc.PanelSize()
	loc := mc.Puzzles()[mc.Current()].Difference.Location
	m.Scene().InjectClick(r.X+(loc.X-0.5)*pw, r.Y+(loc.Y-0.5)*ph)
	drain(m)
}

func TestMirrorCityLayout(t *testing.T) {
	m, mc := startMirrors(t)
	if len(mc.Puzzles()) != content.MirrorCount {
		t.Fatalf("%d puzzles, want %d", len(mc.Puzzles()), content.MirrorCount)
	}
	if got := m.Router().Count(KindMirror); got != content.MirrorCount {
		t.Errorf("router tracks %d mirrors, want %d", got, content.MirrorCount)
	}
	w, h := m.Size()
	last := mc.Mirror(content.MirrorCount - 1)
	if math.Abs(last.X-(w*0.18+4*mirrorSpacingX)) > 1e-9 || math.Abs(last.Y-(h*0.35+mirrorSpacingY)) > 1e-9 {
		t.Errorf("mirror 10 at (%v, %v)", last.X, last.Y)
	}
	if mc.Current() != -1 || mc.HintsLeft() != hintsPerGame {
		t.Errorf("Current = %d hints %d, want -1 and %d", mc.Current(), mc.HintsLeft(), hintsPerGame)
	}
	advance(m, 0.2)
	if !mc.Owl().Speaking() {
		t.Error("owl not introducing the level")
	}
}

func TestMirrorHover(t *testing.T) {
	m, mc := startMirrors(t)
	n := mc.Mirror(2)
	emit(m, stage.EventPointerEnter, n)
	if n.ScaleX != 1.1 {
		t.Errorf("hovered ScaleX = %v, want 1.1", n.ScaleX)
	}
	emit(m, stage.EventPointerLeave, n)
	if n.ScaleX != 1 {
		t.Errorf("ScaleX = %v after leave, want 1", n.ScaleX)
	}
}

func TestMirrorSelect(t *testing.T) {
	m, mc := startMirrors(t)
	openMirror(t, m, mc, 3)
	if mc.Current() != 3 {
		t.Errorf("Current = %d, want 3", mc.Current())
	}
	for i := range content.MirrorCount {
		if mc.Mirror(i).Visible {
			t.Errorf("mirror %d visible during a challenge", i)
		}
	}
	// A second selection while one is open is ignored.
	mc.Select(4)
	if mc.Current() != 3 {
		t.Errorf("Current = %d after second Select, want 3", mc.Current())
	}
}

func TestMirrorCorrectAnswer(t *testing.T) {
	m, mc := startMirrors(t)
	openMirror(t, m, mc, 0)
	clickDifference(m, mc)

	if m.HUD().Stars() != 1 {
		t.Errorf("Stars = %d, want 1", m.HUD().Stars())
	}
	if mc.Owl().State() != behavior.OwlCheering {
		t.Errorf("owl %s, want cheering", mc.Owl().State())
	}
	advance(m, 1.6)
	if !mc.Restored(0) || mc.RestoredCount() != 1 {
		t.Errorf("Restored(0) = %v count %d, want restored", mc.Restored(0), mc.RestoredCount())
	}
	if mc.Current() != -1 {
		t.Errorf("Current = %d, want challenge closed", mc.Current())
	}
	if !mc.Mirror(1).Visible {
		t.Error("gallery not shown again")
	}
	advance(m, 0.6)
	if math.Abs(mc.Mirror(0).ScaleX-1) > 0.01 {
		t.Errorf("restored mirror ScaleX = %v, want 1", mc.Mirror(0).ScaleX)
	}

	// A restored mirror cannot be reopened.
	emit(m, stage.EventClick, mc.Mirror(0))
	advance(m, 0.4)
	if mc.Current() != -1 {
		t.Errorf("restored mirror reopened, Current = %d", mc.Current())
	}
}

func TestMirrorWrongAnswer(t *testing.T) {
	m, mc := startMirrors(t)
	openMirror(t, m, mc, 0)
	o, _ := mc.Panels()
	// The original never holds the difference.
	m.Scene().InjectClick(o.X, o.Y)
	drain(m)

	if mc.Owl().State() != behavior.OwlSad {
		t.Errorf("owl %s, want sad", mc.Owl().State())
	}
	if m.HUD().Stars() != 0 || mc.RestoredCount() != 0 {
		t.Error("wrong answer scored")
	}
	if mc.Current() != 0 {
		t.Errorf("Current = %d, want challenge still open", mc.Current())
	}
	advance(m, 3.6)
	if mc.Owl().State() != behavior.OwlIdle {
		t.Errorf("owl %s, want idle again", mc.Owl().State())
	}
}

func TestMirrorHints(t *testing.T) {
	m, mc := startMirrors(t)
	mc.Hint()
	if mc.HintsLeft() != hintsPerGame {
		t.Error("hint spent outside a challenge")
	}
	openMirror(t, m, mc, 0)
	for i := range hintsPerGame {
		mc.Hint()
		if mc.HintsLeft() != hintsPerGame-1-i {
			t.Errorf("HintsLeft = %d, want %d", mc.HintsLeft(), hintsPerGame-1-i)
		}
	}
	if mc.Owl().State() != behavior.OwlEncouraging {
		t.Errorf("owl %s, want encouraging", mc.Owl().State())
	}
	if mc.hintButton.enabled {
		t.Error("hint button enabled with no hints left")
	}
	mc.Hint()
	if mc.HintsLeft() != 0 {
		t.Errorf("HintsLeft = %d, want 0", mc.HintsLeft())
	}
}

func TestMirrorBackButton(t *testing.T) {
	m, mc := startMirrors(t)
	openMirror(t, m, mc, 5)
	_, h := m.Size()
	m.Scene().InjectClick(80, h-50)
	drain(m)
	if mc.Current() != -1 || mc.Restored(5) {
		t.Errorf("Current = %d restored %v, want closed and unsolved", mc.Current(), mc.Restored(5))
	}
	if !mc.Mirror(5).Visible {
		t.Error("gallery hidden after going back")
	}
}

func TestMirrorCityComplete(t *testing.T) {
	m, mc := startMirrors(t)
	for i := range content.MirrorCount {
		openMirror(t, m, mc, i)
		clickDifference(m, mc)
		advance(m, 1.6)
		if !mc.Restored(i) {
			t.Fatalf("mirror %d not restored", i)
		}
	}
	if mc.Continue() != nil {
		t.Error("reward shown early")
	}
	advance(m, 1.1)
	if mc.Owl().State() != behavior.OwlCelebrating {
		t.Errorf("owl %s, want celebrating", mc.Owl().State())
	}
	advance(m, 3.1)
	btn := mc.Continue()
	if btn == nil {
		t.Fatal("no reward panel")
	}
	m.Scene().InjectClick(btn.X, btn.Y)
	drain(m)
	m.Step(frame)
	if m.Current() != MenuKey || !m.Completed(MirrorCityKey) {
		t.Errorf("Current = %q completed %v, want menu", m.Current(), m.Completed(MirrorCityKey))
	}
}

func TestMirrorArtHelpers(t *testing.T) {
	if got := CategoryName("animals"); got != "Động Vật" {
		t.Errorf("CategoryName(animals) = %q", got)
	}
	if got := CategoryName("space"); got != "space" {
		t.Errorf("CategoryName(space) = %q, want passthrough", got)
	}
	colors := []struct {
		text string
		want uint32
	}{
		{"a Red apple", 0xFF0000},
		{"blue sky and red roof", 0xFF0000},
		{"nothing", 0xFF69B4},
	}
	for _, tt := range colors {
		if got := colorIn(tt.text); got != tt.want {
			t.Errorf("colorIn(%q) = %#x, want %#x", tt.text, got, tt.want)
		}
	}
	numbers := []struct {
		text string
		want int
	}{
		{"3 birds", 3},
		{"has 12 spots", 12},
		{"many", 5},
	}
	for _, tt := range numbers {
		if got := firstNumber(tt.text, 5); got != tt.want {
			t.Errorf("firstNumber(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
	for text, want := range map[string]int{"at 6": 6, "9 o'clock": 9, "12 noon": 12, "3pm": 3, "none": 3} {
		if got := clockHour(text); got != want {
			t.Errorf("clockHour(%q) = %d, want %d", text, got, want)
		}
	}
}

func TestPuzzleArtSize(t *testing.T) {
	p := content.Puzzle{ID: 7, Category: "nature", Difference: content.Difference{
		Type: "color", Element: "flower", Original: "red", Reflection: "blue",
		Location: content.Location{X: 0.5, Y: 0.5},
	}}
	a, b := puzzleArt(p, false, 200, 150), puzzleArt(p, true, 200, 150)
	if a.Bounds().Dx() != 200 || a.Bounds().Dy() != 150 || b.Bounds().Dx() != 200 {
		t.Errorf("art size %v, want 200x150", a.Bounds())
	}
}
