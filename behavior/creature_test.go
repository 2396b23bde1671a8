package behavior

import (
	"fmt"
	"math"
	"testing"

	"github.com/phanxgames/bunnyworld/stage"
)

func creatureData(kind Kind, i int) CreatureData {
	return CreatureData{
		Kind:     kind,
		Key:      fmt.Sprintf("%s_%d", kind, i),
		SheetKey: kind.String() + "_sheet",
		AnimKey:  kind.String() + "_fly",
	}
}

func newCreature(t *testing.T, s *stage.Scene, kind Kind) *Creature {
	t.Helper()
	d := creatureData(kind, 0)
	if !s.Textures().Exists(d.SheetKey) {
		addSheet(t, s, d.SheetKey, d.AnimKey, -1)
	}
	c := CreateCreature(s, s.Root(), d)
	if c == nil {
		t.Fatal("CreateCreature returned nil")
	}
	return c
}

// restart drops whatever c is doing and starts p.
func restart(c *Creature, p Pattern) {
	c.timers.removeAll()
	c.stopExtras()
	c.host.Tweens().KillTweensOf(c.node)
	c.paused = false
	c.start(p)
}

func TestProfileFor(t *testing.T) {
	tests := []struct {
		kind    Kind
		depth   int
		minDist float64
	}{
		{Firefly, 45, 30},
		{Bird, 45, 50},
		{Butterfly, 50, 40},
		{MagicParticle, 40, 20},
		{Kind(99), 45, 30},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := ProfileFor(tt.kind)
			if p.Depth != tt.depth {
				t.Errorf("Depth = %d, want %d", p.Depth, tt.depth)
			}
			if p.MinDistance != tt.minDist {
				t.Errorf("MinDistance = %f, want %f", p.MinDistance, tt.minDist)
			}
		})
	}
}

func TestProfileBounds(t *testing.T) {
	b := ProfileFor(Bird).Bounds(800, 600)
	want := Bounds{MinX: 40, MaxX: 760, MinY: 40, MaxY: 360}
	if b != want {
		t.Errorf("Bounds = %+v, want %+v", b, want)
	}
}

func TestCreateCreatureMissingTexture(t *testing.T) {
	s := newTestScene(t)
	if c := CreateCreature(s, s.Root(), creatureData(Bird, 0)); c != nil {
		t.Error("CreateCreature without texture should return nil")
	}
	if s.Root().NumChildren() != 0 {
		t.Errorf("children = %d, want 0", s.Root().NumChildren())
	}
}

func TestCreateCreatureSetup(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, Butterfly)
	n := c.Node()
	p := ProfileFor(Butterfly)

	if CreatureOf(n) != c {
		t.Error("CreatureOf should return the controller")
	}
	if n.Depth != p.Depth {
		t.Errorf("Depth = %d, want %d", n.Depth, p.Depth)
	}
	if n.ScaleX < p.Scale.Min || n.ScaleX > p.Scale.Max {
		t.Errorf("ScaleX = %f, want in [%f, %f]", n.ScaleX, p.Scale.Min, p.Scale.Max)
	}
	if !c.Bounds().Contains(n.X, n.Y) {
		t.Errorf("start (%f, %f) outside %+v", n.X, n.Y, c.Bounds())
	}
	if n.CurrentAnimation() != "butterfly_fly" {
		t.Errorf("animation = %q, want butterfly_fly", n.CurrentAnimation())
	}
	if sp := c.Speed(); sp < 20 || sp > 50 {
		t.Errorf("Speed = %f, want in [20, 50]", sp)
	}
}

func TestCreatureFallsBackToSheetFrame(t *testing.T) {
	s := newTestScene(t)
	d := creatureData(Firefly, 0)
	d.AnimKey = ""
	addSheet(t, s, d.SheetKey, "", 0)
	c := CreateCreature(s, s.Root(), d)
	if c == nil {
		t.Fatal("CreateCreature returned nil")
	}
	if c.Node().SheetKey() != d.SheetKey {
		t.Errorf("SheetKey = %q, want %q", c.Node().SheetKey(), d.SheetKey)
	}
}

func TestCreaturesStayInBounds(t *testing.T) {
	const eps = 1e-9
	for _, kind := range []Kind{Firefly, Bird, Butterfly, MagicParticle} {
		t.Run(kind.String(), func(t *testing.T) {
			s := newTestScene(t)
			c := newCreature(t, s, kind)
			b := c.Bounds()
			for i := 0; i < 60*60; i++ {
				s.Step(1.0 / 60)
				n := c.Node()
				if n.X < b.MinX-eps || n.X > b.MaxX+eps || n.Y < b.MinY-eps || n.Y > b.MaxY+eps {
					t.Fatalf("step %d (%s): (%f, %f) outside %+v", i, c.Pattern(), n.X, n.Y, b)
				}
			}
		})
	}
}

func TestMovesNearTheTopStayInBounds(t *testing.T) {
	for _, p := range []Pattern{Float, Pause, Drift} {
		t.Run(p.String(), func(t *testing.T) {
			s := newTestScene(t)
			c := newCreature(t, s, Bird)
			b := c.Bounds()
			c.Node().SetPosition(300, b.MinY+1)
			restart(c, p)
			for i := 0; i < 3*60; i++ {
				s.Step(1.0 / 60)
				if y := c.Node().Y; y < b.MinY-1e-9 {
					t.Fatalf("step %d: Y = %f above MinY %f", i, y, b.MinY)
				}
			}
		})
	}
}

func TestSpiralKeepsRadius(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, Firefly)
	c.Node().SetPosition(400, 200)
	restart(c, Spiral)

	for i := 0; i < 90; i++ {
		s.Step(1.0 / 60)
		n := c.Node()
		if d := stage.Distance(400, 200, n.X, n.Y); d > 50+1e-6 {
			t.Fatalf("distance from center = %f, want <= 50", d)
		}
	}
}

func TestFloatRisesStraightUp(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, Bird)
	c.Node().SetPosition(300, 200)
	restart(c, Float)

	for i := 0; i < 4*60; i++ {
		s.Step(1.0 / 60)
		n := c.Node()
		if n.X != 300 {
			t.Fatalf("X = %f during float, want 300", n.X)
		}
		if n.Y > 200+1e-9 || n.Y < 150-1e-9 {
			t.Fatalf("Y = %f, want in [150, 200]", n.Y)
		}
	}
}

func TestPauseHoversInPlace(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, Butterfly)
	c.Node().SetPosition(300, 200)
	restart(c, Pause)

	if !c.Paused() {
		t.Fatal("Paused = false, want true")
	}
	for i := 0; i < 4*60; i++ {
		s.Step(1.0 / 60)
		n := c.Node()
		if n.X != 300 || n.Y > 200+1e-9 || n.Y < 195-1e-9 {
			t.Fatalf("position = (%f, %f), want bob within 5px above (300, 200)", n.X, n.Y)
		}
	}
	if !c.Paused() {
		t.Error("Paused = false before the pause finished")
	}
}

func TestCurveFollowsBezier(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, Bird)
	n := c.Node()
	n.SetPosition(c.Bounds().MinX, c.Bounds().MinY)
	c.speed = 20
	restart(c, Curve)

	start := stage.Vec2{X: c.Bounds().MinX, Y: c.Bounds().MinY}
	dur := stage.Distance(start.X, start.Y, c.dest.X, c.dest.Y) / c.speed
	prev := start
	for k := 1; float64(k+1)/60 < dur && k <= 60; k++ {
		s.Step(1.0 / 60)
		pt := QuadBezier(start, c.ctrl, c.dest, float64(k)/60/dur)
		if math.Abs(n.X-pt.X) > 1e-6 || math.Abs(n.Y-pt.Y) > 1e-6 {
			t.Fatalf("frame %d: (%f, %f), want (%f, %f)", k, n.X, n.Y, pt.X, pt.Y)
		}
		if pt != prev {
			want := heading(stage.AngleBetween(prev.X, prev.Y, pt.X, pt.Y))
			if math.Abs(n.Angle()-want) > 1e-6 {
				t.Fatalf("frame %d: Angle = %f, want %f facing travel", k, n.Angle(), want)
			}
		}
		prev = pt
	}
}

func TestDriftReachesTargetThenWaits(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, Bird)
	n := c.Node()
	n.SetPosition(c.Bounds().MinX, c.Bounds().MinY)
	c.speed = 40
	restart(c, Drift)

	dest := c.dest
	want := heading(stage.AngleBetween(c.Bounds().MinX, c.Bounds().MinY, dest.X, dest.Y))
	if math.Abs(n.Angle()-want) > 1e-6 {
		t.Errorf("Angle = %f, want %f facing the target", n.Angle(), want)
	}
	dur := stage.Distance(c.Bounds().MinX, c.Bounds().MinY, dest.X, dest.Y) / c.speed
	frames := int(dur * 60)

	for i := 0; i < frames-1; i++ {
		s.Step(1.0 / 60)
	}
	if !s.Tweens().IsTweening(n) {
		t.Fatalf("drift finished before %f s", dur)
	}
	run(s, 3.0/60)
	if n.X != dest.X || n.Y != dest.Y {
		t.Errorf("position (%f, %f), want target (%f, %f)", n.X, n.Y, dest.X, dest.Y)
	}

	// The arrival wait is at least 0.5 s, spent still.
	run(s, 0.4)
	if c.Pattern() != Drift || n.X != dest.X || n.Y != dest.Y || s.Tweens().IsTweening(n) {
		t.Errorf("moved during the arrival wait: %s at (%f, %f)", c.Pattern(), n.X, n.Y)
	}
	run(s, 1.2)
	if !s.Tweens().IsTweening(n) && c.Pattern() != Spiral {
		t.Errorf("no pattern started after the arrival wait, pattern %s", c.Pattern())
	}
}

func TestFireflyGlowFlickers(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, Firefly)
	low := 1.0
	for i := 0; i < 10*60; i++ {
		s.Step(1.0 / 60)
		a := c.Node().Alpha
		if a < 0.6-1e-9 || a > 1+1e-9 {
			t.Fatalf("step %d: Alpha = %f, want in [0.6, 1]", i, a)
		}
		low = min(low, a)
	}
	if low == 1 {
		t.Error("alpha never flickered")
	}
}

func TestMagicParticleSpins(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, MagicParticle)
	before := c.Node().Angle()
	run(s, 1)
	turned := c.Node().Angle() - before
	// One turn every 5 to 10 s.
	if turned < 36-1 || turned > 72+1 {
		t.Errorf("turned %f degrees in 1 s, want in [36, 72]", turned)
	}
}

func TestParticlePausePulses(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, MagicParticle)
	s.Tweens().KillTweensOf(c.Node())
	restart(c, Pause)
	run(s, 0.75)
	if a := c.Node().Alpha; a >= 1 || a < 0.7 {
		t.Errorf("Alpha mid-pulse = %f, want in [0.7, 1)", a)
	}
}

func TestCreatureDestroyStopsEverything(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, Firefly)
	run(s, 3)

	c.Destroy()
	if !c.Destroyed() {
		t.Fatal("Destroyed = false")
	}
	if s.Tweens().Len() != 0 {
		t.Errorf("tweens = %d, want 0", s.Tweens().Len())
	}
	if s.Clock().Len() != 0 {
		t.Errorf("timers = %d, want 0", s.Clock().Len())
	}

	x, y := c.Node().X, c.Node().Y
	run(s, 5)
	if c.Node().X != x || c.Node().Y != y {
		t.Errorf("moved after Destroy: (%f, %f) -> (%f, %f)", x, y, c.Node().X, c.Node().Y)
	}
	c.Destroy()
}

func TestDisposeDestroysCreature(t *testing.T) {
	s := newTestScene(t)
	c := newCreature(t, s, MagicParticle)
	c.Node().Dispose()
	if !c.Destroyed() {
		t.Error("Dispose should destroy the controller")
	}
	run(s, 1)
	if s.Clock().Len() != 0 {
		t.Errorf("timers = %d, want 0", s.Clock().Len())
	}
}

func TestFlock(t *testing.T) {
	s := newTestScene(t)
	addSheet(t, s, "firefly_sheet", "firefly_fly", -1)
	data := []CreatureData{creatureData(Firefly, 0), creatureData(Firefly, 1), creatureData(Bird, 2)}

	f := SpawnFlock(s, s.Root(), data)
	if f.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (bird has no texture)", f.Len())
	}
	f.Add(nil)
	if f.Len() != 2 {
		t.Errorf("Len after Add(nil) = %d, want 2", f.Len())
	}

	a, b := f.Members()[0], f.Members()[1]
	a.Node().SetPosition(300, 200)
	b.Node().SetPosition(300, 200)
	f.Update()
	if d := stage.Distance(a.Node().X, a.Node().Y, b.Node().X, b.Node().Y); d == 0 {
		t.Error("coincident members should be pushed apart")
	}

	b.Node().Dispose()
	if f.Len() != 1 || len(f.Nodes()) != 1 {
		t.Errorf("Len = %d, Nodes = %d, want 1", f.Len(), len(f.Nodes()))
	}
	f.Destroy()
	if f.Len() != 0 {
		t.Errorf("Len after Destroy = %d, want 0", f.Len())
	}
	if !a.Destroyed() {
		t.Error("Destroy should stop every member")
	}
}
