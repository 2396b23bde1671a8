package stage

// TimerConfig describes a timed callback. Delay is in seconds.
type TimerConfig struct {
	Delay float64
	// Repeat is the number of extra firings after the first.
	Repeat int
	// Loop fires forever, ignoring Repeat.
	Loop     bool
	Callback func()
}

// Timer is a pending callback on a Clock. Remove is idempotent, so owners can
// release timers from teardown paths without tracking whether they fired.
type Timer struct {
	cfg     TimerConfig
	elapsed float64
	fired   int
	removed bool
}

// Remove cancels the timer. Safe to call more than once and after the timer
// has finished.
func (t *Timer) Remove() {
	if t == nil {
		return
	}
	t.removed = true
}

// Active reports whether the timer will still fire.
func (t *Timer) Active() bool {
	return t != nil && !t.removed
}

// Fired returns how many times the callback has run.
func (t *Timer) Fired() int {
	return t.fired
}

// Clock drives timers for a scene. Timers created while the clock is
// advancing first fire on a later Advance.
type Clock struct {
	timers    []*Timer
	added     []*Timer
	advancing bool
	now       float64
}

// DelayedCall runs fn once after delay seconds.
func (c *Clock) DelayedCall(delay float64, fn func()) *Timer {
	return c.AddEvent(TimerConfig{Delay: delay, Callback: fn})
}

// AddEvent schedules a timer.
func (c *Clock) AddEvent(cfg TimerConfig) *Timer {
	t := &Timer{cfg: cfg}
	if c.advancing {
		c.added = append(c.added, t)
	} else {
		c.timers = append(c.timers, t)
	}
	return t
}

// Advance moves the clock forward by dt seconds and fires due timers in
// creation order.
func (c *Clock) Advance(dt float64) {
	c.now += dt
	c.advancing = true
	for _, t := range c.timers {
		// nil when a callback ran RemoveAll mid-advance
		if t == nil || t.removed {
			continue
		}
		t.elapsed += dt
		for !t.removed && t.elapsed >= t.cfg.Delay {
			t.elapsed -= t.cfg.Delay
			t.fired++
			if !t.cfg.Loop && t.fired > t.cfg.Repeat {
				t.removed = true
			}
			if t.cfg.Callback != nil {
				t.cfg.Callback()
			}
			if t.cfg.Delay <= 0 {
				t.elapsed = 0
				break
			}
		}
	}
	c.advancing = false

	kept := c.timers[:0]
	for _, t := range c.timers {
		if !t.removed {
			kept = append(kept, t)
		}
	}
	clear(c.timers[len(kept):])
	c.timers = append(kept, c.added...)
	clear(c.added)
	c.added = c.added[:0]
}

// RemoveAll cancels every pending timer.
func (c *Clock) RemoveAll() {
	for _, t := range c.timers {
		t.removed = true
	}
	for _, t := range c.added {
		t.removed = true
	}
	clear(c.timers)
	c.timers = c.timers[:0]
	clear(c.added)
	c.added = c.added[:0]
}

// Len returns the number of pending timers.
func (c *Clock) Len() int {
	count := 0
	for _, t := range c.timers {
		if !t.removed {
			count++
		}
	}
	for _, t := range c.added {
		if !t.removed {
			count++
		}
	}
	return count
}

// Now returns the total time advanced, in seconds.
func (c *Clock) Now() float64 {
	return c.now
}
