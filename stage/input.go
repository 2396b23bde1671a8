package stage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node
	dragging  bool
	button    MouseButton
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerMove []pointerHandler
	click       []clickHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, func(p pointerHandler) bool { return p.id == h.id })
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, func(p pointerHandler) bool { return p.id == h.id })
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, func(c clickHandler) bool { return c.id == h.id })
	}
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// OnPointerDown registers a scene-level callback for pointer down events,
// fired whether or not a node was hit.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerMove registers a scene-level callback for hover moves.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives the box from node dimensions.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order, appending
// interactable nodes to buf. Invisible subtrees are skipped.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || n.disposed {
		return buf
	}
	if n.Interactable && (n.HitShape != nil || n.Type != NodeTypeContainer) {
		buf = append(buf, n)
	}
	for _, child := range n.sorted() {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// HitTest returns the topmost interactable node under a world point.
func (s *Scene) HitTest(x, y float64) *Node {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	return s.hitTest(x, y)
}

// --- Input processing ---

// processInput reads real mouse and touch input.
func (s *Scene) processInput() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	s.processPointer(0, float64(mx), float64(my), pressed, button)
	s.processTouchPointers()
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	var activeSlots [maxPointers]bool
	for _, tid := range s.touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
// Coordinates are in scene space.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]
	if ps.hitNode != nil && ps.hitNode.disposed {
		ps.hitNode = nil
		ps.dragging = false
	}
	if ps.hoverNode != nil && ps.hoverNode.disposed {
		ps.hoverNode = nil
	}

	target := s.hitTest(wx, wy)

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointer(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, pointerID, wx, wy, button)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false
		s.firePointer(EventPointerDown, target, pointerID, wx, wy, button)

	case !pressed && ps.down:
		if ps.dragging {
			s.fireDrag(EventDragEnd, ps.hitNode, pointerID, wx, wy, ps, wx-ps.lastX, wy-ps.lastY)
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, pointerID, wx, wy, ps.button)
		}
		s.firePointer(EventPointerUp, target, pointerID, wx, wy, ps.button)
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX, ps.lastY = wx, wy

	case pressed && ps.down:
		if wx != ps.lastX || wy != ps.lastY {
			if !ps.dragging {
				dx := wx - ps.startX
				dy := wy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDrag(EventDragStart, ps.hitNode, pointerID, wx, wy, ps, dx, dy)
				}
			}
			if ps.dragging {
				s.fireDrag(EventDrag, ps.hitNode, pointerID, wx, wy, ps, wx-ps.lastX, wy-ps.lastY)
			}
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		if wx != ps.lastX || wy != ps.lastY {
			s.firePointer(EventPointerMove, target, pointerID, wx, wy, button)
			ps.lastX, ps.lastY = wx, wy
		}
	}
}

// KeyJustPressed reports whether key went down this frame.
func KeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// --- Event dispatch ---

func (s *Scene) firePointer(ev EventType, node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := PointerContext{Node: node, GlobalX: wx, GlobalY: wy, Button: button, PointerID: pointerID}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.EntityID = node.EntityID
	}
	// Scene-level handlers first.
	switch ev {
	case EventPointerDown:
		for _, h := range s.handlers.pointerDown {
			h.fn(ctx)
		}
	case EventPointerMove:
		for _, h := range s.handlers.pointerMove {
			h.fn(ctx)
		}
	}
	if node != nil {
		var fn func(PointerContext)
		switch ev {
		case EventPointerDown:
			fn = node.OnPointerDown
		case EventPointerUp:
			fn = node.OnPointerUp
		case EventPointerEnter:
			fn = node.OnPointerEnter
		case EventPointerLeave:
			fn = node.OnPointerLeave
		}
		if fn != nil {
			fn(ctx)
		}
	}
	s.emitInteractionEvent(ev, node, wx, wy, ctx.LocalX, ctx.LocalY, button, 0, 0, 0, 0)
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := ClickContext{Node: node, GlobalX: wx, GlobalY: wy, Button: button, PointerID: pointerID}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.EntityID = node.EntityID
	}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
	s.emitInteractionEvent(EventClick, node, wx, wy, ctx.LocalX, ctx.LocalY, button, 0, 0, 0, 0)
}

func (s *Scene) fireDrag(ev EventType, node *Node, pointerID int, wx, wy float64, ps *pointerState, dx, dy float64) {
	if node == nil {
		return
	}
	lx, ly := node.WorldToLocal(wx, wy)
	ctx := DragContext{
		Node: node, EntityID: node.EntityID,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		StartX: ps.startX, StartY: ps.startY, DeltaX: dx, DeltaY: dy,
		Button: ps.button, PointerID: pointerID,
	}
	var fn func(DragContext)
	switch ev {
	case EventDragStart:
		fn = node.OnDragStart
	case EventDrag:
		fn = node.OnDrag
	case EventDragEnd:
		fn = node.OnDragEnd
	}
	if fn != nil {
		fn(ctx)
	}
	s.emitInteractionEvent(ev, node, wx, wy, lx, ly, ps.button, ps.startX, ps.startY, dx, dy)
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(eventType EventType, node *Node, wx, wy, lx, ly float64,
	button MouseButton, startX, startY, deltaX, deltaY float64) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:     eventType,
		EntityID: node.EntityID,
		GlobalX:  wx,
		GlobalY:  wy,
		LocalX:   lx,
		LocalY:   ly,
		Button:   button,
		StartX:   startX,
		StartY:   startY,
		DeltaX:   deltaX,
		DeltaY:   deltaY,
	})
}
