package stage

import "testing"

func TestDelayedCallFiresOnce(t *testing.T) {
	var c Clock
	calls := 0
	tm := c.DelayedCall(1, func() { calls++ })

	c.Advance(0.5)
	if calls != 0 {
		t.Fatalf("fired early")
	}
	c.Advance(0.5)
	c.Advance(5)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if tm.Active() {
		t.Error("timer still active")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestRepeatingTimer(t *testing.T) {
	var c Clock
	calls := 0
	c.AddEvent(TimerConfig{Delay: 0.5, Repeat: 2, Callback: func() { calls++ }})

	c.Advance(10)
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestLoopingTimerUntilRemoved(t *testing.T) {
	var c Clock
	calls := 0
	tm := c.AddEvent(TimerConfig{Delay: 1, Loop: true, Callback: func() { calls++ }})

	for i := 0; i < 5; i++ {
		c.Advance(1)
	}
	tm.Remove()
	tm.Remove()
	c.Advance(3)
	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
	if tm.Fired() != 5 {
		t.Errorf("Fired = %d, want 5", tm.Fired())
	}
}

func TestTimerAddedDuringAdvanceWaits(t *testing.T) {
	var c Clock
	inner := 0
	c.DelayedCall(0, func() {
		c.DelayedCall(0, func() { inner++ })
	})

	c.Advance(0.1)
	if inner != 0 {
		t.Errorf("nested timer fired in the same Advance")
	}
	c.Advance(0.1)
	if inner != 1 {
		t.Errorf("inner = %d, want 1", inner)
	}
}

func TestRemoveAllFromCallback(t *testing.T) {
	var c Clock
	second := false
	c.DelayedCall(0.1, c.RemoveAll)
	c.DelayedCall(0.1, func() { second = true })

	c.Advance(0.2)
	if second {
		t.Error("timer ran after RemoveAll")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestNilTimerRemove(t *testing.T) {
	var tm *Timer
	tm.Remove()
	if tm.Active() {
		t.Error("nil timer reported active")
	}
}

func TestClockNow(t *testing.T) {
	var c Clock
	c.Advance(0.25)
	c.Advance(0.5)
	if c.Now() != 0.75 {
		t.Errorf("Now = %f, want 0.75", c.Now())
	}
}
