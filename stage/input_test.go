package stage

import "testing"

// --- HitShape tests ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"inside", 60, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// --- Scene-driven input ---

func newButtonScene() (*Scene, *Node) {
	s := NewScene(800, 600)
	btn := NewRect("btn", 100, 50, ColorWhite)
	btn.SetPosition(200, 100) // covers 150..250 x 75..125
	btn.Interactable = true
	s.Root().AddChild(btn)
	return s, btn
}

func drain(s *Scene) {
	for s.PendingInput() > 0 {
		s.Step(1.0 / 60)
	}
}

func TestHitTestTopmost(t *testing.T) {
	s, btn := newButtonScene()
	over := NewRect("over", 20, 20, ColorWhite)
	over.SetPosition(200, 100)
	over.Interactable = true
	s.Root().AddChild(over)

	if got := s.HitTest(200, 100); got != over {
		t.Errorf("HitTest center = %v, want over", got)
	}
	if got := s.HitTest(160, 80); got != btn {
		t.Errorf("HitTest edge = %v, want btn", got)
	}
	if got := s.HitTest(400, 400); got != nil {
		t.Errorf("HitTest empty = %v, want nil", got.Name)
	}

	over.SetDepth(-1)
	if got := s.HitTest(200, 100); got != btn {
		t.Errorf("HitTest after SetDepth = %v, want btn", got)
	}
}

func TestHitTestSkipsInvisibleSubtree(t *testing.T) {
	s := NewScene(800, 600)
	layer := NewContainer("layer")
	btn := NewRect("btn", 100, 100, ColorWhite)
	btn.SetPosition(100, 100)
	btn.Interactable = true
	layer.AddChild(btn)
	s.Root().AddChild(layer)

	layer.Visible = false
	if s.HitTest(100, 100) != nil {
		t.Error("hit a node under an invisible parent")
	}
	layer.Visible = true
	if s.HitTest(100, 100) != btn {
		t.Error("missed a visible node")
	}
}

func TestInjectClickFiresOnClick(t *testing.T) {
	s, btn := newButtonScene()
	clicks, downs, ups := 0, 0, 0
	btn.OnClick = func(ctx ClickContext) {
		clicks++
		if ctx.Node != btn {
			t.Errorf("ctx.Node = %v, want btn", ctx.Node)
		}
	}
	btn.OnPointerDown = func(PointerContext) { downs++ }
	btn.OnPointerUp = func(PointerContext) { ups++ }

	s.InjectClick(200, 100)
	drain(s)

	if clicks != 1 || downs != 1 || ups != 1 {
		t.Errorf("clicks/downs/ups = %d/%d/%d, want 1/1/1", clicks, downs, ups)
	}
}

func TestClickReleasedElsewhereDoesNotFire(t *testing.T) {
	s, btn := newButtonScene()
	clicks := 0
	btn.OnClick = func(ClickContext) { clicks++ }

	s.InjectPress(200, 100)
	s.InjectRelease(600, 500)
	drain(s)
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
}

func TestInjectDragSequence(t *testing.T) {
	s, btn := newButtonScene()
	var starts, drags, ends int
	var total float64
	btn.OnDragStart = func(DragContext) { starts++ }
	btn.OnDrag = func(ctx DragContext) {
		drags++
		total += ctx.DeltaX
	}
	btn.OnDragEnd = func(DragContext) { ends++ }
	clicked := false
	btn.OnClick = func(ClickContext) { clicked = true }

	s.InjectDrag(200, 100, 300, 100, 5)
	drain(s)

	if starts != 1 || ends != 1 {
		t.Errorf("starts/ends = %d/%d, want 1/1", starts, ends)
	}
	if drags != 3 {
		t.Errorf("drags = %d, want 3", drags)
	}
	if total != 75 {
		t.Errorf("summed drag delta = %f, want 75", total)
	}
	if clicked {
		t.Error("a drag should not click")
	}
}

func TestDragDeadZone(t *testing.T) {
	s, btn := newButtonScene()
	starts := 0
	clicks := 0
	btn.OnDragStart = func(DragContext) { starts++ }
	btn.OnClick = func(ClickContext) { clicks++ }

	s.InjectPress(200, 100)
	s.InjectMove(202, 101)
	s.InjectRelease(202, 101)
	drain(s)

	if starts != 0 {
		t.Errorf("drag started inside the dead zone")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestEnterLeave(t *testing.T) {
	s, btn := newButtonScene()
	var events []string
	btn.OnPointerEnter = func(PointerContext) { events = append(events, "enter") }
	btn.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }

	s.InjectHover(200, 100)
	s.InjectHover(210, 100)
	s.InjectHover(500, 500)
	drain(s)

	if len(events) != 2 || events[0] != "enter" || events[1] != "leave" {
		t.Errorf("events = %v, want [enter leave]", events)
	}
}

func TestSceneLevelHandlers(t *testing.T) {
	s, _ := newButtonScene()
	downs := 0
	clicks := 0
	s.OnPointerDown(func(PointerContext) { downs++ })
	h := s.OnClick(func(ClickContext) { clicks++ })

	s.InjectClick(600, 500) // empty space
	drain(s)
	if downs != 1 {
		t.Errorf("downs = %d, want 1", downs)
	}
	if clicks != 0 {
		t.Errorf("click on nothing fired %d times", clicks)
	}

	s.InjectClick(200, 100)
	drain(s)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	h.Remove()
	s.InjectClick(200, 100)
	drain(s)
	if clicks != 1 {
		t.Errorf("removed handler fired, clicks = %d", clicks)
	}
}

func TestDisposedNodeDuringPressIsForgotten(t *testing.T) {
	s, btn := newButtonScene()
	clicks := 0
	btn.OnClick = func(ClickContext) { clicks++ }

	s.InjectPress(200, 100)
	s.Step(1.0 / 60)
	btn.Dispose()
	s.InjectRelease(200, 100)
	s.Step(1.0 / 60)

	if clicks != 0 {
		t.Errorf("disposed node clicked")
	}
}

type recordingStore struct {
	events []InteractionEvent
}

func (r *recordingStore) EmitEvent(e InteractionEvent) {
	r.events = append(r.events, e)
}

func TestEntityStoreReceivesEvents(t *testing.T) {
	s, btn := newButtonScene()
	store := &recordingStore{}
	s.SetEntityStore(store)

	s.InjectClick(200, 100)
	drain(s)
	if len(store.events) != 0 {
		t.Errorf("events for a node without EntityID: %d", len(store.events))
	}

	btn.EntityID = 7
	s.InjectClick(200, 100)
	drain(s)
	var sawClick bool
	for _, e := range store.events {
		if e.EntityID != 7 {
			t.Errorf("EntityID = %d, want 7", e.EntityID)
		}
		if e.Type == EventClick {
			sawClick = true
		}
	}
	if !sawClick {
		t.Error("no click event forwarded")
	}
}
