package behavior

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bunnyworld/stage"
)

// CreatureData names the textures of one ambient creature.
type CreatureData struct {
	Kind Kind
	// Key is the node name, unique per creature (e.g. "firefly_3").
	Key      string
	SheetKey string
	// AnimKey is empty when the flying animation could not be created; the
	// creature then shows frame 0 of SheetKey.
	AnimKey string
}

// Creature moves one ambient creature through an endless sequence of
// randomly chosen patterns.
type Creature struct {
	host    Host
	node    *stage.Node
	data    CreatureData
	profile Profile
	bounds  Bounds
	speed   float64
	scale   float64

	pattern Pattern
	paused  bool

	// bob offsets Y while drifting.
	bob    float64
	extras []*stage.Tween
	// dest is where the current Drift or Curve ends; ctrl bends a Curve.
	dest, ctrl stage.Vec2

	glow      *stage.Timer
	timers    timerSet
	destroyed bool
}

// NewCreature attaches a controller to node: it places the node at a random
// point of the creature's bounds, applies the profile's scale, depth and
// tilt, starts the flying animation and begins the pattern loop.
func NewCreature(host Host, node *stage.Node, data CreatureData) *Creature {
	p := ProfileFor(data.Kind)
	w, h := host.Size()
	c := &Creature{
		host:    host,
		node:    node,
		data:    data,
		profile: p,
		bounds:  p.Bounds(float64(w), float64(h)),
		speed:   float64(p.Speed.Random(host.Rand())),
	}
	c.setup()
	node.OnDispose(c.Destroy)
	c.next()
	return c
}

func (c *Creature) setup() {
	rng := c.host.Rand()
	p := c.profile

	c.node.SetPosition(c.bounds.RandomPoint(rng))
	c.scale = p.Scale.Random(rng)
	c.node.SetScale(c.scale, c.scale)
	c.node.SetDepth(p.Depth)

	if !showFrame(c.host, c.node, c.data.AnimKey, c.data.SheetKey) {
		warnf("%s: no animation %q or sheet %q, keeping current visual", c.data.Key, c.data.AnimKey, c.data.SheetKey)
	}
	if p.Tilt != (IntRange{}) {
		c.node.SetAngle(float64(p.Tilt.Random(rng)))
	}
	if p.Spin != (IntRange{}) {
		c.host.Tweens().Add(stage.TweenConfig{
			Target:   c.node,
			Props:    []stage.Prop{stage.PropAngle(c.node.Angle() + 360)},
			Duration: p.Spin.Seconds(rng),
			Repeat:   -1,
		})
	}
	if p.Glow {
		c.scheduleFlicker()
	}
}

func (c *Creature) scheduleFlicker() {
	c.glow = c.host.Clock().DelayedCall(IntRange{500, 2000}.Seconds(c.host.Rand()), c.flicker)
}

func (c *Creature) flicker() {
	if c.destroyed {
		return
	}
	rng := c.host.Rand()
	c.host.Tweens().Add(stage.TweenConfig{
		Target:     c.node,
		Props:      []stage.Prop{stage.PropAlpha(stage.FloatBetween(rng, 0.6, 1.0))},
		Duration:   IntRange{200, 800}.Seconds(rng),
		Ease:       ease.InOutSine,
		OnComplete: c.scheduleFlicker,
	})
}

// Node returns the controlled node.
func (c *Creature) Node() *stage.Node { return c.node }

// Kind returns the creature kind.
func (c *Creature) Kind() Kind { return c.data.Kind }

// Pattern returns the pattern currently running.
func (c *Creature) Pattern() Pattern { return c.pattern }

// Paused reports whether the creature is hovering in a Pause pattern.
func (c *Creature) Paused() bool { return c.paused }

// Speed returns the travel speed in pixels per second.
func (c *Creature) Speed() float64 { return c.speed }

// Bounds returns the area the creature is kept in.
func (c *Creature) Bounds() Bounds { return c.bounds }

// Destroyed reports whether Destroy has run.
func (c *Creature) Destroyed() bool { return c.destroyed }

// Update nudges the creature away from siblings that are too close.
func (c *Creature) Update(siblings []*stage.Node) {
	if c.destroyed {
		return
	}
	Avoid(c.node, siblings, c.profile.MinDistance, c.bounds)
}

// Destroy cancels pending timers and tweens. It is idempotent and runs
// automatically when the node is disposed.
func (c *Creature) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.glow.Remove()
	c.timers.removeAll()
	c.stopExtras()
	c.host.Tweens().KillTweensOf(c.node)
	c.paused = false
}

func (c *Creature) after(delay float64, fn func()) {
	c.timers.add(c.host.Clock().DelayedCall(delay, fn))
}

func (c *Creature) stopExtras() {
	for _, tw := range c.extras {
		tw.Stop()
	}
	c.extras = c.extras[:0]
	c.bob = 0
}

// next picks the following pattern uniformly.
func (c *Creature) next() {
	if c.destroyed {
		return
	}
	c.start(Pattern(stage.IntBetween(c.host.Rand(), 0, 4)))
}

func (c *Creature) start(p Pattern) {
	c.pattern = p
	switch p {
	case Drift:
		c.drift()
	case Spiral:
		c.spiral()
	case Float:
		c.float()
	case Pause:
		c.pause()
	case Curve:
		c.curve()
	}
}

func (c *Creature) drift() {
	rng := c.host.Rand()
	p := c.profile
	n := c.node
	tx, ty := c.bounds.RandomPoint(rng)
	c.dest = stage.Vec2{X: tx, Y: ty}
	dur := stage.Distance(n.X, n.Y, tx, ty) / c.speed

	if p.FaceTravel {
		n.SetAngle(heading(stage.AngleBetween(n.X, n.Y, tx, ty)))
	}

	period := ms(p.DriftBobPeriod)
	c.stopExtras()
	c.extras = append(c.extras, c.host.Tweens().Add(stage.TweenConfig{
		Props:    []stage.Prop{stage.PropValue(&c.bob, float64(p.DriftBob.Random(rng)))},
		Duration: period,
		Yoyo:     true,
		Repeat:   int(dur / period),
		Ease:     ease.InOutSine,
	}))
	if p.DriftPulse {
		c.extras = append(c.extras, c.host.Tweens().Add(stage.TweenConfig{
			Target:   n,
			Props:    stage.PropScale(c.scale * 1.1),
			Duration: 2,
			Yoyo:     true,
			Repeat:   int(dur / 2),
			Ease:     ease.InOutSine,
		}))
	}

	c.host.Tweens().Add(stage.TweenConfig{
		Target:   n,
		Props:    []stage.Prop{stage.PropX(tx), stage.PropY(ty)},
		Duration: dur,
		Ease:     ease.InOutSine,
		OnUpdate: func(*stage.Tween) {
			n.Y = stage.Clamp(n.Y+c.bob, c.bounds.MinY, c.bounds.MaxY)
		},
		OnComplete: func() {
			c.stopExtras()
			n.SetPosition(tx, ty)
			n.SetScale(c.scale, c.scale)
			if p.ArrivalTilt != (IntRange{}) {
				n.SetAngle(float64(p.ArrivalTilt.Random(rng)))
			}
			c.after(p.DriftWait.Seconds(rng), c.next)
		},
	})
}

func (c *Creature) spiral() {
	rng := c.host.Rand()
	p := c.profile
	n := c.node
	cx, cy := n.X, n.Y
	radius := float64(p.SpiralRadius.Random(rng))
	durMS := p.SpiralDuration.Random(rng)
	angle := 0.0

	tick := c.host.Clock().AddEvent(stage.TimerConfig{
		Delay:  0.016,
		Repeat: durMS / 16,
		Callback: func() {
			angle += p.SpiralStep
			sin, cos := math.Sincos(angle)
			n.SetPosition(c.bounds.Clamp(cx+cos*radius, cy+sin*radius*p.SpiralFlatten))
			if p.FaceTangent {
				n.SetAngle(heading(angle))
			}
		},
	})
	c.timers.add(tick)
	c.after(ms(durMS), func() {
		tick.Remove()
		c.next()
	})
}

func (c *Creature) float() {
	rng := c.host.Rand()
	p := c.profile
	n := c.node
	dist := float64(p.FloatDistance.Random(rng))
	dur := p.FloatDuration.Seconds(rng)

	c.host.Tweens().Add(stage.TweenConfig{
		Target:   n,
		Props:    []stage.Prop{stage.PropY(max(n.Y-dist, c.bounds.MinY))},
		Duration: dur,
		Yoyo:     true,
		Repeat:   1,
		Ease:     ease.InOutSine,
		OnComplete: func() {
			tx := stage.Clamp(n.X+float64(stage.IntBetween(rng, -p.FloatDrift, p.FloatDrift)), c.bounds.MinX, c.bounds.MaxX)
			if p.FaceTravel && tx != n.X {
				n.SetAngle(heading(stage.AngleBetween(n.X, n.Y, tx, n.Y)))
			}
			c.host.Tweens().Add(stage.TweenConfig{
				Target:     n,
				Props:      []stage.Prop{stage.PropX(tx)},
				Duration:   dur,
				Ease:       ease.InOutSine,
				OnComplete: c.next,
			})
		},
	})
}

func (c *Creature) pause() {
	p := c.profile
	n := c.node
	c.paused = true
	durMS := p.PauseDuration.Random(c.host.Rand())

	props := []stage.Prop{stage.PropY(max(n.Y-p.PauseBob, c.bounds.MinY))}
	if p.PausePulse {
		props = append(stage.PropScale(c.scale*1.15), stage.PropAlpha(0.7))
	}
	c.host.Tweens().Add(stage.TweenConfig{
		Target:   n,
		Props:    props,
		Duration: ms(p.PausePeriod),
		Yoyo:     true,
		Repeat:   durMS / p.PausePeriod,
		Ease:     ease.InOutSine,
		OnComplete: func() {
			c.paused = false
			c.next()
		},
	})
}

func (c *Creature) curve() {
	rng := c.host.Rand()
	n := c.node
	start := stage.Vec2{X: n.X, Y: n.Y}
	var ctrl, end stage.Vec2
	ctrl.X, ctrl.Y = c.bounds.RandomPoint(rng)
	end.X, end.Y = c.bounds.RandomPoint(rng)
	c.ctrl, c.dest = ctrl, end
	dur := stage.Distance(start.X, start.Y, end.X, end.Y) / c.speed
	last := start

	c.host.Tweens().Add(stage.TweenConfig{
		Target:   n,
		Props:    []stage.Prop{stage.PropX(end.X), stage.PropY(end.Y)},
		Duration: dur,
		Ease:     ease.InOutSine,
		OnUpdate: func(tw *stage.Tween) {
			pt := QuadBezier(start, ctrl, end, tw.Progress())
			if c.profile.FaceTravel && pt != last {
				n.SetAngle(heading(stage.AngleBetween(last.X, last.Y, pt.X, pt.Y)))
			}
			last = pt
			n.SetPosition(pt.X, pt.Y)
		},
		OnComplete: c.next,
	})
}

// CreateCreature adds a centered sprite for data under parent and attaches a
// controller to it, stored under DataKey. It returns nil when the sheet
// texture is missing.
func CreateCreature(host Host, parent *stage.Node, data CreatureData) *Creature {
	sheet, ok := host.Textures().Get(data.SheetKey)
	if !ok {
		warnf("%s texture %q does not exist", data.Kind, data.SheetKey)
		return nil
	}
	node := stage.NewSprite(data.Key, sheet.Frame(0))
	parent.AddChild(node)
	c := NewCreature(host, node, data)
	node.SetData(DataKey, c)
	return c
}

// CreatureOf returns the controller attached to n by CreateCreature, or nil.
func CreatureOf(n *stage.Node) *Creature {
	c, _ := n.GetData(DataKey).(*Creature)
	return c
}
