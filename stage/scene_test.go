package stage

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene(1280, 720)
	if s.Root() == nil {
		t.Fatal("Root is nil")
	}
	if w, h := s.Size(); w != 1280 || h != 720 {
		t.Errorf("Size = (%d, %d), want (1280, 720)", w, h)
	}
	if s.Textures() == nil || s.Anims() == nil || s.Camera() == nil {
		t.Error("registries should be created")
	}
}

func TestStepOrder(t *testing.T) {
	s := NewScene(100, 100)
	var order []string
	n := NewContainer("n")
	n.OnUpdate = func(float64) { order = append(order, "node") }
	s.Root().AddChild(n)
	s.Tweens().AddCounter(0, 1, 1, nil, func(float64) { order = append(order, "tween") }, nil)
	s.Clock().DelayedCall(0, func() { order = append(order, "timer") })
	s.OnUpdate(func(float64) { order = append(order, "hook") })

	s.Step(0.1)
	want := []string{"node", "tween", "timer", "hook"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestUseAssetsShares(t *testing.T) {
	a := NewScene(10, 10)
	b := NewScene(10, 10)
	a.Textures().Add(NewSpriteSheet("shared", ebiten.NewImage(4, 4), 0, 0))
	b.UseAssets(a.Textures(), a.Anims())
	if !b.Textures().Exists("shared") {
		t.Error("texture not shared")
	}
}

func TestSetSeedReproducible(t *testing.T) {
	s := NewScene(10, 10)
	s.SetSeed(42)
	first := s.Rand().Float64()
	s.SetSeed(42)
	if second := s.Rand().Float64(); second != first {
		t.Errorf("reseeded values differ: %f vs %f", first, second)
	}
}

func TestShutdownStopsEverything(t *testing.T) {
	s := NewScene(100, 100)
	child := NewContainer("c")
	s.Root().AddChild(child)
	fired := false
	s.Clock().DelayedCall(0.1, func() { fired = true })
	s.Tweens().Add(TweenConfig{Target: child, Props: []Prop{PropX(10)}, Duration: 1})

	s.Shutdown()
	s.Step(1)

	if fired {
		t.Error("timer fired after Shutdown")
	}
	if s.Tweens().Len() != 0 || s.Clock().Len() != 0 {
		t.Error("schedulers should be empty")
	}
	if !child.IsDisposed() {
		t.Error("tree should be disposed")
	}
}

func TestDrawDoesNotPanic(t *testing.T) {
	s := NewScene(64, 64)
	s.ClearColor = RGB(0x87CEEB)
	s.Root().AddChild(NewRect("r", 10, 10, ColorWhite))
	e := NewParticleEmitter("e", testEmitterConfig())
	e.Emitter.Explode(3)
	s.Root().AddChild(e)
	s.Camera().Shake(1, 2)
	s.Step(0.1)

	s.Draw(ebiten.NewImage(64, 64))
	if len(s.commands) != 2 {
		t.Errorf("commands = %d, want 2", len(s.commands))
	}
	if got := countDrawCalls(s.commands); got != 4 {
		t.Errorf("draw calls = %d, want 4", got)
	}
}
