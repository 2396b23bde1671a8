package stage

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Node      *Node
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
}

// ClickContext carries click event data.
type ClickContext struct {
	Node      *Node
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
}

// DragContext carries drag event data.
type DragContext struct {
	Node      *Node
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	Button    MouseButton
	PointerID int
}

// nodeIDCounter is a plain counter (no atomic, the stage is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). OriginX/OriginY are fractions of the node's size
	// added to the pixel pivot, so 0.5/0.5 rotates and scales about the center.
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64
	OriginX  float64
	OriginY  float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Depth orders siblings; higher draws on top. Equal depths keep
	// insertion order.
	Depth int

	// EntityID links the node to an ECS entity for the interaction bridge.
	EntityID uint32

	// Sprite fields (NodeTypeSprite)
	Image *ebiten.Image
	Color Color
	sheet *SpriteSheet
	frame int
	anim  *animPlayer

	// Particle fields (NodeTypeParticleEmitter)
	Emitter *ParticleEmitter

	// Text fields (NodeTypeText)
	TextBlock *TextBlock

	// Hit testing
	HitShape HitShape

	data map[string]any

	// Per-node callbacks (nil by default; zero cost when unused)
	OnPointerDown       func(PointerContext)
	OnPointerUp         func(PointerContext)
	OnClick             func(ClickContext)
	OnDragStart         func(DragContext)
	OnDrag              func(DragContext)
	OnDragEnd           func(DragContext)
	OnPointerEnter      func(PointerContext)
	OnPointerLeave      func(PointerContext)
	OnAnimationComplete func(key string)
	OnUpdate            func(dt float64)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
	onDispose      []func()
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.worldAlpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node displaying img, centered on its position.
// img may be nil and assigned later through SetTexture or Play.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img}
	nodeDefaults(n)
	n.OriginX = 0.5
	n.OriginY = 0.5
	return n
}

// NewRect creates a solid-color sprite of the given size, drawn from
// WhitePixel and tinted by c.
func NewRect(name string, w, h float64, c Color) *Node {
	n := NewSprite(name, WhitePixel)
	n.ScaleX = w
	n.ScaleY = h
	n.Color = c
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("stage: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("stage: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("stage: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.childrenSorted = true
	n.sortedChildren = n.sortedChildren[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetDepth sets the node's Depth and marks the parent's children as unsorted.
func (n *Node) SetDepth(d int) {
	if n.Depth == d {
		return
	}
	n.Depth = d
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// sorted returns the children ordered by Depth, stable on insertion order.
func (n *Node) sorted() []*Node {
	if n.childrenSorted && len(n.sortedChildren) == len(n.children) {
		return n.sortedChildren
	}
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	slices.SortStableFunc(n.sortedChildren, func(a, b *Node) int {
		return a.Depth - b.Depth
	})
	n.childrenSorted = true
	return n.sortedChildren
}

// --- Data bag ---

// SetData stores a value on the node under key.
func (n *Node) SetData(key string, v any) {
	if n.data == nil {
		n.data = make(map[string]any)
	}
	n.data[key] = v
}

// GetData returns the value stored under key, or nil.
func (n *Node) GetData(key string) any {
	return n.data[key]
}

// --- Disposal ---

// OnDispose registers fn to run once when the node is disposed.
func (n *Node) OnDispose(fn func()) {
	n.onDispose = append(n.onDispose, fn)
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	hooks := n.onDispose
	n.onDispose = nil
	for _, fn := range hooks {
		fn()
	}
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.Image = nil
	n.sheet = nil
	n.anim = nil
	n.Emitter = nil
	n.TextBlock = nil
	n.data = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnClick = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnAnimationComplete = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// Active reports whether the node is still alive.
func (n *Node) Active() bool {
	return n != nil && !n.disposed
}

// --- Dimensions ---

// Size returns the unscaled width and height of the node's visual.
func (n *Node) Size() (w, h float64) {
	return nodeDimensions(n)
}

func nodeDimensions(n *Node) (w, h float64) {
	switch n.Type {
	case NodeTypeSprite:
		if n.Image != nil {
			b := n.Image.Bounds()
			return float64(b.Dx()), float64(b.Dy())
		}
	case NodeTypeText:
		if n.TextBlock != nil {
			return n.TextBlock.Measure()
		}
	}
	return 0, 0
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
