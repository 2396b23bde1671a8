package stage

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewSpriteDefaults(t *testing.T) {
	img := ebiten.NewImage(32, 16)
	n := NewSprite("spr", img)
	assertNodeDefaults(t, n, "spr", NodeTypeSprite)
	if n.OriginX != 0.5 || n.OriginY != 0.5 {
		t.Errorf("Origin = (%v, %v), want (0.5, 0.5)", n.OriginX, n.OriginY)
	}
	if w, h := n.Size(); w != 32 || h != 16 {
		t.Errorf("Size = (%v, %v), want (32, 16)", w, h)
	}
}

func TestNewRectDefaults(t *testing.T) {
	n := NewRect("box", 80, 40, RGB(0xFF0000))
	if n.Type != NodeTypeSprite || n.Image != WhitePixel {
		t.Errorf("NewRect should be a WhitePixel sprite")
	}
	if n.ScaleX != 80 || n.ScaleY != 40 {
		t.Errorf("Scale = (%v, %v), want (80, 40)", n.ScaleX, n.ScaleY)
	}
	if n.Color.R != 1 || n.Color.G != 0 {
		t.Errorf("Color = %+v, want red", n.Color)
	}
}

func TestNewParticleEmitterDefaults(t *testing.T) {
	n := NewParticleEmitter("emitter", EmitterConfig{})
	assertNodeDefaults(t, n, "emitter", NodeTypeParticleEmitter)
	if n.Emitter == nil {
		t.Fatal("Emitter is nil")
	}
}

func TestNewTextDefaults(t *testing.T) {
	n := NewText("text", "hello", TextStyle{})
	assertNodeDefaults(t, n, "text", NodeTypeText)
	if n.TextBlock.Style.Size != 24 {
		t.Errorf("Size = %v, want 24", n.TextBlock.Style.Size)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if n.Interactable {
		t.Error("Interactable should be false")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both = %d", a.ID)
	}
}

// --- Tree manipulation ---

func TestAddChildReparents(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	c := NewContainer("c")

	p1.AddChild(c)
	p2.AddChild(c)
	if c.Parent != p2 {
		t.Error("parent should be p2")
	}
	if p1.NumChildren() != 0 {
		t.Errorf("p1 children = %d, want 0", p1.NumChildren())
	}
	if p2.NumChildren() != 1 {
		t.Errorf("p2 children = %d, want 1", p2.NumChildren())
	}
}

func TestAddChildPanics(t *testing.T) {
	t.Run("nil child", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		NewContainer("p").AddChild(nil)
	})
	t.Run("cycle", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		a := NewContainer("a")
		b := NewContainer("b")
		a.AddChild(b)
		b.AddChild(a)
	})
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a := NewContainer("a")
	b := NewContainer("b")
	a.RemoveChild(b)
}

func TestRemoveChildrenKeepsThemAlive(t *testing.T) {
	p := NewContainer("p")
	a := NewContainer("a")
	b := NewContainer("b")
	p.AddChild(a)
	p.AddChild(b)

	p.RemoveChildren()
	if p.NumChildren() != 0 {
		t.Errorf("children = %d, want 0", p.NumChildren())
	}
	if a.Parent != nil || a.IsDisposed() {
		t.Error("removed child should be detached and alive")
	}
}

func TestDepthOrdering(t *testing.T) {
	p := NewContainer("p")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)

	a.SetDepth(10)
	got := p.sorted()
	want := []*Node{b, c, a}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d] = %q, want %q", i, got[i].Name, want[i].Name)
		}
	}
	// Children() keeps insertion order.
	if p.Children()[0] != a {
		t.Error("Children() should keep insertion order")
	}
}

// --- Disposal ---

func TestDisposeRecursive(t *testing.T) {
	root := NewContainer("root")
	p := NewContainer("p")
	c := NewContainer("c")
	root.AddChild(p)
	p.AddChild(c)

	var order []string
	p.OnDispose(func() { order = append(order, "p") })
	c.OnDispose(func() { order = append(order, "c") })

	p.Dispose()
	p.Dispose()

	if !p.IsDisposed() || !c.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed node should leave its parent")
	}
	if len(order) != 2 || order[0] != "p" || order[1] != "c" {
		t.Errorf("hooks = %v, want [p c]", order)
	}
	if c.Active() {
		t.Error("Active should be false after dispose")
	}
}

func TestNilNodeNotActive(t *testing.T) {
	var n *Node
	if n.Active() {
		t.Error("nil node reported active")
	}
}

func TestDataBag(t *testing.T) {
	n := NewContainer("n")
	if n.GetData("missing") != nil {
		t.Error("missing key should be nil")
	}
	n.SetData("kind", "firefly")
	if n.GetData("kind") != "firefly" {
		t.Errorf("GetData = %v, want firefly", n.GetData("kind"))
	}
}

func TestDebugCheckDisposedPanics(t *testing.T) {
	prev := globalDebug
	globalDebug = true
	defer func() { globalDebug = prev }()

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	p := NewContainer("p")
	c := NewContainer("c")
	c.Dispose()
	p.AddChild(c)
}
