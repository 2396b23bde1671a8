package stage

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func stepTweens(m *Tweens, dt float64, n int) {
	for i := 0; i < n; i++ {
		m.Update(dt)
	}
}

func TestTweenMovesNodeToTarget(t *testing.T) {
	var m Tweens
	n := NewContainer("n")
	completed := false
	m.Add(TweenConfig{
		Target:     n,
		Props:      []Prop{PropX(100), PropAlpha(0)},
		Duration:   1,
		OnComplete: func() { completed = true },
	})

	m.Update(0.5)
	if math.Abs(n.X-50) > 0.01 {
		t.Errorf("X at half = %f, want ~50", n.X)
	}
	if math.Abs(n.Alpha-0.5) > 0.01 {
		t.Errorf("Alpha at half = %f, want ~0.5", n.Alpha)
	}
	m.Update(0.5)
	if n.X != 100 {
		t.Errorf("X = %f, want 100", n.X)
	}
	if !completed {
		t.Error("OnComplete not called")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestTweenDelayCapturesStartLate(t *testing.T) {
	var m Tweens
	n := NewContainer("n")
	m.Add(TweenConfig{Target: n, Props: []Prop{PropY(10)}, Duration: 1, Delay: 0.5})

	m.Update(0.25)
	n.Y = 5 // moved by someone else during the delay
	m.Update(0.25)
	if n.Y != 5 {
		t.Errorf("Y after delay = %f, want 5", n.Y)
	}
	m.Update(0.5)
	if math.Abs(n.Y-7.5) > 0.01 {
		t.Errorf("Y = %f, want ~7.5", n.Y)
	}
}

func TestTweenYoyoReturnsToStart(t *testing.T) {
	var m Tweens
	n := NewContainer("n")
	n.X = 10
	m.Add(TweenConfig{Target: n, Props: []Prop{PropX(20)}, Duration: 1, Yoyo: true, Ease: ease.InOutSine})

	m.Update(1)
	if math.Abs(n.X-20) > 0.01 {
		t.Errorf("X at peak = %f, want ~20", n.X)
	}
	m.Update(1)
	if math.Abs(n.X-10) > 0.01 {
		t.Errorf("X after yoyo = %f, want ~10", n.X)
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestTweenRepeatForever(t *testing.T) {
	var m Tweens
	n := NewContainer("n")
	tw := m.Add(TweenConfig{Target: n, Props: []Prop{PropAngle(90)}, Duration: 0.5, Repeat: -1})

	stepTweens(&m, 0.1, 100)
	if tw.Done() {
		t.Error("forever tween finished")
	}
	if p := tw.Progress(); p < 0 || p > 1 {
		t.Errorf("Progress = %f, want in [0, 1]", p)
	}
}

func TestTweenRepeatCount(t *testing.T) {
	var m Tweens
	n := NewContainer("n")
	starts := 0
	tw := m.Add(TweenConfig{
		Target: n, Props: PropScale(2), Duration: 1, Repeat: 2,
		OnStart: func() { starts++ },
	})

	m.Update(2.5)
	if tw.Done() {
		t.Error("finished after 2.5s of a 3s run")
	}
	if math.Abs(tw.Progress()-2.5/3) > 0.01 {
		t.Errorf("Progress = %f, want ~%f", tw.Progress(), 2.5/3)
	}
	m.Update(0.5)
	if !tw.Done() {
		t.Error("not finished after 3s")
	}
	if starts != 1 {
		t.Errorf("OnStart called %d times, want 1", starts)
	}
	if n.ScaleX != 2 || n.ScaleY != 2 {
		t.Errorf("Scale = (%f, %f), want (2, 2)", n.ScaleX, n.ScaleY)
	}
}

func TestTweenStopsWhenTargetDisposed(t *testing.T) {
	var m Tweens
	n := NewContainer("n")
	completed := false
	m.Add(TweenConfig{Target: n, Props: []Prop{PropX(100)}, Duration: 1, OnComplete: func() { completed = true }})

	m.Update(0.25)
	n.Dispose()
	m.Update(1)
	if completed {
		t.Error("OnComplete ran for a disposed target")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestKillTweensOf(t *testing.T) {
	var m Tweens
	a := NewContainer("a")
	b := NewContainer("b")
	m.Add(TweenConfig{Target: a, Props: []Prop{PropX(1)}, Duration: 1})
	m.Add(TweenConfig{Target: b, Props: []Prop{PropX(1)}, Duration: 1})

	m.KillTweensOf(a)
	if m.IsTweening(a) {
		t.Error("a still tweening")
	}
	if !m.IsTweening(b) {
		t.Error("b should still tween")
	}
}

func TestAddCounter(t *testing.T) {
	var m Tweens
	var got []float64
	done := false
	m.AddCounter(0, 10, 1, ease.Linear, func(v float64) { got = append(got, v) }, func() { done = true })

	stepTweens(&m, 0.25, 4)
	if !done {
		t.Fatal("counter did not complete")
	}
	if len(got) != 4 {
		t.Fatalf("updates = %d, want 4", len(got))
	}
	if math.Abs(got[1]-5) > 0.01 || got[3] != 10 {
		t.Errorf("values = %v, want [2.5 5 7.5 10]", got)
	}
}

func TestKillAllFromCallback(t *testing.T) {
	var m Tweens
	n := NewContainer("n")
	m.Add(TweenConfig{Target: n, Props: []Prop{PropX(1)}, Duration: 0.1, OnComplete: m.KillAll})
	m.Add(TweenConfig{Target: n, Props: []Prop{PropY(1)}, Duration: 1})

	m.Update(0.2)
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestAddPanicsWithoutTarget(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	var m Tweens
	m.Add(TweenConfig{Props: []Prop{PropX(1)}, Duration: 1})
}
