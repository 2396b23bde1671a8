package stage

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestComputeLocalTransformTranslate(t *testing.T) {
	n := NewContainer("n")
	n.X, n.Y = 10, 20
	m := computeLocalTransform(n)
	want := [6]float64{1, 0, 0, 1, 10, 20}
	for i := range m {
		if math.Abs(m[i]-want[i]) > epsilon {
			t.Errorf("m[%d] = %f, want %f", i, m[i], want[i])
		}
	}
}

func TestChildInheritsParentTransform(t *testing.T) {
	parent := NewContainer("p")
	parent.SetPosition(100, 50)
	parent.SetScale(2, 2)
	child := NewContainer("c")
	child.SetPosition(10, 5)
	parent.AddChild(child)

	updateWorldTransform(parent, identityTransform, 1, false)
	wx, wy := child.LocalToWorld(0, 0)
	if !approx(wx, 120) || !approx(wy, 60) {
		t.Errorf("world = (%f, %f), want (120, 60)", wx, wy)
	}
}

func TestRotationAboutOrigin(t *testing.T) {
	n := NewRect("r", 10, 10, ColorWhite)
	n.SetPosition(50, 50)
	n.SetAngle(90)

	updateWorldTransform(n, identityTransform, 1, false)
	// The center of the unit pixel stays on the position.
	cx, cy := n.LocalToWorld(0.5, 0.5)
	if !approx(cx, 50) || !approx(cy, 50) {
		t.Errorf("center = (%f, %f), want (50, 50)", cx, cy)
	}
	if !approx(n.Angle(), 90) {
		t.Errorf("Angle = %f, want 90", n.Angle())
	}
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	n := NewContainer("n")
	n.SetPosition(30, -20)
	n.SetScale(2, 0.5)
	n.SetRotation(0.7)
	updateWorldTransform(n, identityTransform, 1, false)

	wx, wy := n.LocalToWorld(3, 4)
	lx, ly := n.WorldToLocal(wx, wy)
	if !approx(lx, 3) || !approx(ly, 4) {
		t.Errorf("round trip = (%f, %f), want (3, 4)", lx, ly)
	}
}

func TestWorldPositionWithoutTraversal(t *testing.T) {
	root := NewContainer("root")
	root.SetPosition(200, 100)
	n := NewSprite("s", nil)
	n.SetPosition(5, 5)
	root.AddChild(n)

	x, y := n.WorldPosition()
	if !approx(x, 205) || !approx(y, 105) {
		t.Errorf("WorldPosition = (%f, %f), want (205, 105)", x, y)
	}

	root.SetPosition(0, 0)
	x, y = n.WorldPosition()
	if !approx(x, 5) || !approx(y, 5) {
		t.Errorf("WorldPosition after move = (%f, %f), want (5, 5)", x, y)
	}
}

func TestWorldAlphaMultiplies(t *testing.T) {
	p := NewContainer("p")
	p.SetAlpha(0.5)
	c := NewContainer("c")
	c.SetAlpha(0.5)
	p.AddChild(c)
	updateWorldTransform(p, identityTransform, 1, false)
	if !approx(c.worldAlpha, 0.25) {
		t.Errorf("worldAlpha = %f, want 0.25", c.worldAlpha)
	}
}

func TestInvertSingularIsIdentity(t *testing.T) {
	m := invertAffine([6]float64{0, 0, 0, 0, 5, 5})
	if m != identityTransform {
		t.Errorf("invert singular = %v, want identity", m)
	}
}
