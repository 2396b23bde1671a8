package stage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// particle holds per-particle simulation state. Unexported; managed by ParticleEmitter.
type particle struct {
	x, y       float64
	vx, vy     float64
	life       float64 // remaining lifetime in seconds
	maxLife    float64 // initial lifetime (for computing t)
	startScale float64
	endScale   float64
	scale      float64
	startAlpha float64
	endAlpha   float64
	alpha      float64
	tint       Color
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// EmitRate is the number of particles spawned per second while active.
	EmitRate float64
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Speed is the range of initial particle speeds in pixels per second.
	Speed Range
	// Angle is the range of emission angles in radians.
	Angle Range
	// StartScale is the range of scale factors at birth, interpolated to EndScale over lifetime.
	StartScale Range
	// EndScale is the range of scale factors at death.
	EndScale Range
	// StartAlpha is the range of alpha values at birth, interpolated to EndAlpha over lifetime.
	StartAlpha Range
	// EndAlpha is the range of alpha values at death.
	EndAlpha Range
	// Gravity is the constant acceleration applied to all particles each frame.
	Gravity Vec2
	// Tints is the palette a particle's color is drawn from; empty means white.
	Tints []Color
	// Image is drawn for each particle, centered.
	Image *ebiten.Image
	// AutoDispose disposes the emitter node once it is inactive and empty.
	AutoDispose bool
}

// ParticleEmitter manages a pool of particles with CPU-based simulation.
type ParticleEmitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
	emitAccum float64
	active    bool
}

// newParticleEmitter creates a ParticleEmitter with a preallocated pool.
func newParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	max := cfg.MaxParticles
	if max <= 0 {
		max = 128
	}
	return &ParticleEmitter{
		config:    cfg,
		particles: make([]particle, max),
	}
}

// NewParticleEmitter creates a particle emitter node with a preallocated pool.
func NewParticleEmitter(name string, cfg EmitterConfig) *Node {
	n := &Node{Name: name, Type: NodeTypeParticleEmitter, Emitter: newParticleEmitter(cfg)}
	nodeDefaults(n)
	return n
}

// Start begins emitting particles.
func (e *ParticleEmitter) Start() {
	e.active = true
}

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *ParticleEmitter) Stop() {
	e.active = false
}

// Explode spawns up to count particles at once.
func (e *ParticleEmitter) Explode(count int) {
	for i := 0; i < count && e.alive < len(e.particles); i++ {
		e.spawnParticle()
	}
}

// IsActive reports whether the emitter is currently emitting new particles.
func (e *ParticleEmitter) IsActive() bool {
	return e.active
}

// AliveCount returns the number of alive particles.
func (e *ParticleEmitter) AliveCount() int {
	return e.alive
}

// update advances particle simulation by dt seconds.
func (e *ParticleEmitter) update(n *Node, dt float64) {
	gx := e.config.Gravity.X * dt
	gy := e.config.Gravity.Y * dt

	// Update existing particles, swap-remove dead ones.
	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life -= dt
		if p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.vx += gx
		p.vy += gy
		p.x += p.vx * dt
		p.y += p.vy * dt

		t := 1.0 - p.life/p.maxLife
		p.scale = lerp(p.startScale, p.endScale, t)
		p.alpha = lerp(p.startAlpha, p.endAlpha, t)

		i++
	}

	if e.active && e.config.EmitRate > 0 {
		e.emitAccum += e.config.EmitRate * dt
		for e.emitAccum >= 1.0 {
			e.emitAccum -= 1.0
			if e.alive < len(e.particles) {
				e.spawnParticle()
			}
		}
	}

	if e.config.AutoDispose && !e.active && e.alive == 0 {
		n.Dispose()
	}
}

// spawnParticle initializes the particle at slot e.alive and increments alive.
func (e *ParticleEmitter) spawnParticle() {
	p := &e.particles[e.alive]

	angle := e.config.Angle.Random(nil)
	speed := e.config.Speed.Random(nil)
	p.vx = math.Cos(angle) * speed
	p.vy = math.Sin(angle) * speed
	p.x = 0
	p.y = 0

	p.life = e.config.Lifetime.Random(nil)
	if p.life <= 0 {
		p.life = 1.0
	}
	p.maxLife = p.life

	p.startScale = e.config.StartScale.Random(nil)
	p.endScale = e.config.EndScale.Random(nil)
	p.scale = p.startScale

	p.startAlpha = e.config.StartAlpha.Random(nil)
	p.endAlpha = e.config.EndAlpha.Random(nil)
	p.alpha = p.startAlpha

	p.tint = ColorWhite
	if len(e.config.Tints) > 0 {
		p.tint = Pick(nil, e.config.Tints)
	}

	e.alive++
}

// Burst adds a one-shot emitter at (x, y) under parent that explodes count
// particles and disposes itself once they have faded.
func Burst(parent *Node, x, y float64, count int, cfg EmitterConfig) *Node {
	cfg.AutoDispose = true
	if cfg.MaxParticles < count {
		cfg.MaxParticles = count
	}
	n := NewParticleEmitter("burst", cfg)
	n.SetPosition(x, y)
	parent.AddChild(n)
	n.Emitter.Explode(count)
	return n
}
