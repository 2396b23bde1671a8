package stage

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Field names a numeric Node property a Tween can drive.
type Field uint8

const (
	FieldX Field = iota
	FieldY
	FieldScaleX
	FieldScaleY
	FieldAlpha
	FieldAngle // degrees, written to Rotation
	FieldValue // an arbitrary *float64, see PropValue
)

// Prop is one property animated by a Tween toward To.
type Prop struct {
	Field Field
	To    float64
	ptr   *float64
}

// PropX animates Node.X.
func PropX(to float64) Prop { return Prop{Field: FieldX, To: to} }

// PropY animates Node.Y.
func PropY(to float64) Prop { return Prop{Field: FieldY, To: to} }

// PropScale animates ScaleX and ScaleY together.
func PropScale(to float64) []Prop {
	return []Prop{{Field: FieldScaleX, To: to}, {Field: FieldScaleY, To: to}}
}

// PropScaleX animates Node.ScaleX.
func PropScaleX(to float64) Prop { return Prop{Field: FieldScaleX, To: to} }

// PropScaleY animates Node.ScaleY.
func PropScaleY(to float64) Prop { return Prop{Field: FieldScaleY, To: to} }

// PropAlpha animates Node.Alpha.
func PropAlpha(to float64) Prop { return Prop{Field: FieldAlpha, To: to} }

// PropAngle animates the node rotation in degrees.
func PropAngle(to float64) Prop { return Prop{Field: FieldAngle, To: to} }

// PropValue animates the float64 behind ptr.
func PropValue(ptr *float64, to float64) Prop { return Prop{Field: FieldValue, To: to, ptr: ptr} }

// TweenConfig describes a property animation. Durations are in seconds.
type TweenConfig struct {
	Target   *Node
	Props    []Prop
	Duration float64
	Delay    float64
	// Ease defaults to ease.Linear.
	Ease ease.TweenFunc
	// Yoyo plays each iteration forward then backward.
	Yoyo bool
	// Repeat is the number of extra iterations; -1 repeats forever.
	Repeat int

	OnStart    func()
	OnUpdate   func(tw *Tween)
	OnComplete func()
}

// Tween animates a set of properties over time. Start values are captured
// when the tween leaves its delay, so chained tweens begin where the previous
// one ended.
type Tween struct {
	cfg   TweenConfig
	curve *gween.Tween
	from  []float64

	delayLeft float64
	legTime   float64
	elapsed   float64
	iteration int
	reversing bool
	started   bool
	done      bool
	value     float64
}

func newTween(cfg TweenConfig) *Tween {
	if cfg.Ease == nil {
		cfg.Ease = ease.Linear
	}
	dur := cfg.Duration
	if dur <= 0 {
		dur = 1e-6
		cfg.Duration = dur
	}
	return &Tween{
		cfg:       cfg,
		curve:     gween.New(0, 1, float32(dur), cfg.Ease),
		from:      make([]float64, len(cfg.Props)),
		delayLeft: cfg.Delay,
	}
}

// Done reports whether the tween has finished or been stopped.
func (tw *Tween) Done() bool { return tw.done }

// Target returns the node the tween drives, or nil for counters.
func (tw *Tween) Target() *Node { return tw.cfg.Target }

// Value returns the most recent eased value in [0, 1] (before yoyo).
func (tw *Tween) Value() float64 { return tw.value }

// Progress returns the fraction of the whole run completed, in [0, 1].
// Tweens that repeat forever report progress within the current iteration.
func (tw *Tween) Progress() float64 {
	legs := 1.0
	if tw.cfg.Yoyo {
		legs = 2
	}
	if tw.cfg.Repeat < 0 {
		iter := tw.legTime
		if tw.reversing {
			iter += tw.cfg.Duration
		}
		return Clamp(iter/(tw.cfg.Duration*legs), 0, 1)
	}
	total := tw.cfg.Duration * legs * float64(tw.cfg.Repeat+1)
	return Clamp(tw.elapsed/total, 0, 1)
}

// Stop ends the tween where it is without calling OnComplete.
func (tw *Tween) Stop() {
	tw.done = true
}

// update advances the tween by dt seconds.
func (tw *Tween) update(dt float64) {
	if tw.done {
		return
	}
	if t := tw.cfg.Target; t != nil && t.IsDisposed() {
		tw.done = true
		return
	}
	if tw.delayLeft > 0 {
		tw.delayLeft -= dt
		if tw.delayLeft > 0 {
			return
		}
		dt = -tw.delayLeft
		tw.delayLeft = 0
	}
	if !tw.started {
		tw.start()
	}
	for !tw.done {
		remain := tw.cfg.Duration - tw.legTime
		step := min(dt, remain)
		tw.legTime += step
		tw.elapsed += step
		dt -= step
		tw.apply()
		if tw.legTime < tw.cfg.Duration {
			return
		}
		tw.endLeg()
		if dt <= 0 {
			return
		}
	}
}

func (tw *Tween) start() {
	tw.started = true
	for i, p := range tw.cfg.Props {
		tw.from[i] = tw.read(p)
	}
	if tw.cfg.OnStart != nil {
		tw.cfg.OnStart()
	}
}

func (tw *Tween) apply() {
	t := tw.legTime
	if tw.reversing {
		t = tw.cfg.Duration - t
	}
	v, _ := tw.curve.Set(float32(t))
	tw.value = float64(v)
	for i, p := range tw.cfg.Props {
		tw.write(p, lerp(tw.from[i], p.To, tw.value))
	}
	if n := tw.cfg.Target; n != nil {
		n.MarkDirty()
	}
	if tw.cfg.OnUpdate != nil {
		tw.cfg.OnUpdate(tw)
	}
}

func (tw *Tween) endLeg() {
	tw.legTime = 0
	if tw.cfg.Yoyo && !tw.reversing {
		tw.reversing = true
		return
	}
	tw.reversing = false
	tw.iteration++
	if tw.cfg.Repeat < 0 || tw.iteration <= tw.cfg.Repeat {
		return
	}
	tw.done = true
	if tw.cfg.OnComplete != nil {
		tw.cfg.OnComplete()
	}
}

func (tw *Tween) read(p Prop) float64 {
	n := tw.cfg.Target
	switch p.Field {
	case FieldValue:
		return *p.ptr
	case FieldX:
		return n.X
	case FieldY:
		return n.Y
	case FieldScaleX:
		return n.ScaleX
	case FieldScaleY:
		return n.ScaleY
	case FieldAlpha:
		return n.Alpha
	case FieldAngle:
		return n.Angle()
	}
	return 0
}

func (tw *Tween) write(p Prop, v float64) {
	n := tw.cfg.Target
	switch p.Field {
	case FieldValue:
		*p.ptr = v
	case FieldX:
		n.X = v
	case FieldY:
		n.Y = v
	case FieldScaleX:
		n.ScaleX = v
	case FieldScaleY:
		n.ScaleY = v
	case FieldAlpha:
		n.Alpha = v
	case FieldAngle:
		n.Rotation = DegToRad(v)
	}
}

// Tweens owns the running tweens of a scene. There is one per Scene; Step
// advances it once per frame.
type Tweens struct {
	active []*Tween
}

// Add starts a tween. Tweens with node props require cfg.Target.
func (m *Tweens) Add(cfg TweenConfig) *Tween {
	if cfg.Target == nil {
		for _, p := range cfg.Props {
			if p.Field != FieldValue {
				panic("stage: tween with node props needs a Target")
			}
		}
	}
	tw := newTween(cfg)
	m.active = append(m.active, tw)
	return tw
}

// AddCounter tweens a plain number from from to to, reporting each value.
func (m *Tweens) AddCounter(from, to, duration float64, fn ease.TweenFunc, onUpdate func(v float64), onComplete func()) *Tween {
	v := from
	return m.Add(TweenConfig{
		Props:    []Prop{PropValue(&v, to)},
		Duration: duration,
		Ease:     fn,
		OnUpdate: func(*Tween) {
			if onUpdate != nil {
				onUpdate(v)
			}
		},
		OnComplete: onComplete,
	})
}

// Update advances every tween by dt seconds and drops finished ones.
// Tweens added from callbacks start advancing on the next Update.
func (m *Tweens) Update(dt float64) {
	n := len(m.active)
	for i := 0; i < n && i < len(m.active); i++ {
		m.active[i].update(dt)
	}
	kept := m.active[:0]
	for _, tw := range m.active {
		if !tw.done {
			kept = append(kept, tw)
		}
	}
	clear(m.active[len(kept):])
	m.active = kept
}

// KillTweensOf stops every tween targeting node. OnComplete is not called.
func (m *Tweens) KillTweensOf(node *Node) {
	for _, tw := range m.active {
		if tw.cfg.Target == node {
			tw.done = true
		}
	}
}

// IsTweening reports whether any live tween targets node.
func (m *Tweens) IsTweening(node *Node) bool {
	for _, tw := range m.active {
		if !tw.done && tw.cfg.Target == node {
			return true
		}
	}
	return false
}

// KillAll stops every tween.
func (m *Tweens) KillAll() {
	for _, tw := range m.active {
		tw.done = true
	}
	clear(m.active)
	m.active = m.active[:0]
}

// Len returns the number of live tweens.
func (m *Tweens) Len() int {
	count := 0
	for _, tw := range m.active {
		if !tw.done {
			count++
		}
	}
	return count
}
