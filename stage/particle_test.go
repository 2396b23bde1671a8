package stage

import (
	"math"
	"testing"
)

func testEmitterConfig() EmitterConfig {
	return EmitterConfig{
		MaxParticles: 10,
		EmitRate:     10,
		Lifetime:     Range{Min: 1, Max: 1},
		Speed:        Range{Min: 100, Max: 100},
		Angle:        Range{Min: 0, Max: 0},
		StartScale:   Range{Min: 1, Max: 1},
		EndScale:     Range{Min: 0, Max: 0},
		StartAlpha:   Range{Min: 1, Max: 1},
		EndAlpha:     Range{Min: 0, Max: 0},
	}
}

func TestEmitterEmitsAtRate(t *testing.T) {
	n := NewParticleEmitter("e", testEmitterConfig())
	n.Emitter.Start()

	updateAnimations(n, 0.5)
	if got := n.Emitter.AliveCount(); got != 5 {
		t.Errorf("AliveCount = %d, want 5", got)
	}
}

func TestEmitterPoolLimit(t *testing.T) {
	cfg := testEmitterConfig()
	cfg.MaxParticles = 3
	n := NewParticleEmitter("e", cfg)
	n.Emitter.Explode(10)
	if got := n.Emitter.AliveCount(); got != 3 {
		t.Errorf("AliveCount = %d, want 3", got)
	}
}

func TestParticleMotionAndFade(t *testing.T) {
	n := NewParticleEmitter("e", testEmitterConfig())
	n.Emitter.Explode(1)

	n.Emitter.update(n, 0.5)
	p := n.Emitter.particles[0]
	if math.Abs(p.x-50) > 1e-6 || math.Abs(p.y) > 1e-6 {
		t.Errorf("position = (%f, %f), want (50, 0)", p.x, p.y)
	}
	if math.Abs(p.alpha-0.5) > 1e-6 || math.Abs(p.scale-0.5) > 1e-6 {
		t.Errorf("alpha/scale = %f/%f, want 0.5/0.5", p.alpha, p.scale)
	}
}

func TestParticleGravity(t *testing.T) {
	cfg := testEmitterConfig()
	cfg.Speed = Range{}
	cfg.Gravity = Vec2{X: 0, Y: 100}
	n := NewParticleEmitter("e", cfg)
	n.Emitter.Explode(1)

	n.Emitter.update(n, 0.1)
	if p := n.Emitter.particles[0]; p.vy <= 0 || p.y <= 0 {
		t.Errorf("gravity not applied: vy=%f y=%f", p.vy, p.y)
	}
}

func TestBurstAutoDisposes(t *testing.T) {
	parent := NewContainer("p")
	n := Burst(parent, 10, 20, 8, testEmitterConfig())
	if n.Emitter.AliveCount() != 8 {
		t.Fatalf("AliveCount = %d, want 8", n.Emitter.AliveCount())
	}
	if parent.NumChildren() != 1 {
		t.Fatalf("burst not attached")
	}

	updateAnimations(parent, 0.6)
	updateAnimations(parent, 0.6)
	if !n.IsDisposed() {
		t.Error("burst should dispose once its particles die")
	}
	if parent.NumChildren() != 0 {
		t.Errorf("parent children = %d, want 0", parent.NumChildren())
	}
}

func TestEmitterTints(t *testing.T) {
	cfg := testEmitterConfig()
	red := RGB(0xFF0000)
	cfg.Tints = []Color{red}
	n := NewParticleEmitter("e", cfg)
	n.Emitter.Explode(2)
	for i := 0; i < 2; i++ {
		if n.Emitter.particles[i].tint != red {
			t.Errorf("tint[%d] = %+v, want red", i, n.Emitter.particles[i].tint)
		}
	}
}
