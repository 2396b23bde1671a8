package screens

import (
	"math"
	"testing"

	"github.com/phanxgames/bunnyworld/behavior"
	"github.com/phanxgames/bunnyworld/content"
	"github.com/phanxgames/bunnyworld/stage"
)

func TestMenuLayout(t *testing.T) {
	m := newTestManager(t)
	startScreen(t, m, MenuKey)
	mn := m.Screen().(*Menu)

	if n := len(mn.Bunnies()); n < menuBunnyMin || n > menuBunnyMax {
		t.Errorf("%d bunnies, want %d..%d", n, menuBunnyMin, menuBunnyMax)
	}
	if got := m.Router().Count(KindBunny); got != len(mn.Bunnies()) {
		t.Errorf("router tracks %d bunnies, want %d", got, len(mn.Bunnies()))
	}
	cities := m.Content().WorldMap.VisibleCities()
	if len(mn.Markers()) != len(cities) {
		t.Errorf("%d markers, want %d", len(mn.Markers()), len(cities))
	}
	if len(mn.Levels()) != m.Content().Flow.TotalScreens() {
		t.Errorf("%d level cards, want %d", len(mn.Levels()), m.Content().Flow.TotalScreens())
	}
	if len(mn.Flocks()) == 0 {
		t.Error("no ambient flocks")
	}

	w, h := m.Size()
	for _, b := range mn.Bunnies() {
		x, y := b.Root().X, b.Root().Y
		if y < h/2+150-20 || y > h-60+20 || x < 0 || x > w {
			t.Errorf("bunny at (%.0f, %.0f) outside the meadow band", x, y)
		}
	}
}

func TestMenuWithoutLevelSelect(t *testing.T) {
	m := newTestManager(t)
	m.Content().Flow.ShowLevelSelect = false
	startScreen(t, m, MenuKey)
	if n := len(m.Screen().(*Menu).Levels()); n != 0 {
		t.Errorf("%d level cards with level select off", n)
	}
}

func TestMenuMarkerHover(t *testing.T) {
	m := newTestManager(t)
	startScreen(t, m, MenuKey)
	mn := m.Screen().(*Menu)
	if len(mn.Markers()) < 2 {
		t.Fatal("need two markers")
	}
	a, b := mn.Markers()[0], mn.Markers()[1]

	emit(m, stage.EventPointerEnter, a)
	advance(m, 0.3)
	if math.Abs(a.ScaleX-1.2) > 0.01 {
		t.Errorf("hovered ScaleX = %v, want 1.2", a.ScaleX)
	}
	if !a.Children()[0].Visible {
		t.Error("glow hidden on hover")
	}
	if !mn.overlay.Visible || math.Abs(mn.overlay.Alpha-0.5) > 0.01 {
		t.Errorf("overlay visible %v alpha %v, want shown at 0.5", mn.overlay.Visible, mn.overlay.Alpha)
	}
	city, _ := a.GetData("city").(content.City)
	if mn.info == nil || mn.info.TextBlock.Content != city.Description {
		t.Error("description not shown")
	}

	// Moving straight to another marker keeps the overlay.
	emit(m, stage.EventPointerEnter, b)
	advance(m, 0.3)
	if mn.hovered != b || !mn.overlay.Visible {
		t.Error("hover did not move to the second marker")
	}
	if a.Children()[0].Visible {
		t.Error("first marker still glowing")
	}

	emit(m, stage.EventPointerLeave, b)
	advance(m, 0.3)
	if mn.hovered != nil || mn.overlay.Visible || mn.info != nil {
		t.Error("overlay or description left after leaving")
	}
}

func TestMenuMarkerOpensLevel(t *testing.T) {
	m := newTestManager(t)
	startScreen(t, m, MenuKey)
	mn := m.Screen().(*Menu)
	for _, n := range mn.Markers() {
		city, _ := n.GetData("city").(content.City)
		if city.Screen != MirrorCityKey {
			continue
		}
		emit(m, stage.EventClick, n)
		m.Step(frame)
		if m.Current() != MirrorCityKey {
			t.Errorf("Current = %q after marker click, want %q", m.Current(), MirrorCityKey)
		}
		return
	}
	t.Fatal("no marker opens Mirror City")
}

func TestMenuLevelCard(t *testing.T) {
	m := newTestManager(t)
	startScreen(t, m, MenuKey)
	card := m.Screen().(*Menu).Levels()[0]

	emit(m, stage.EventPointerEnter, card)
	if card.ScaleX != 1.05 {
		t.Errorf("hovered card ScaleX = %v, want 1.05", card.ScaleX)
	}
	emit(m, stage.EventPointerLeave, card)
	if card.ScaleX != 1 {
		t.Errorf("card ScaleX = %v after leave, want 1", card.ScaleX)
	}

	emit(m, stage.EventClick, card)
	m.Step(frame)
	if m.Current() != CountingForestKey {
		t.Errorf("Current = %q after card click, want %q", m.Current(), CountingForestKey)
	}
}

func TestMenuBunnyReacts(t *testing.T) {
	m := newTestManager(t)
	startScreen(t, m, MenuKey)
	b := m.Screen().(*Menu).Bunnies()[0]
	emit(m, stage.EventClick, b.Root())
	switch b.Action() {
	case behavior.Victory, behavior.Jump, behavior.Dance:
	default:
		t.Errorf("Action = %s after click, want a reaction", b.Action())
	}
}
