package ecs

import (
	"github.com/phanxgames/bunnyworld/stage"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Target describes what a tagged node stands for.
type Target struct {
	Kind string // e.g. "bunny", "marker"
	Key  string // e.g. a bunny name or a screen key
	Node *stage.Node
}

// TargetComponent holds the Target of a tagged entity.
var TargetComponent = donburi.NewComponentType[Target]()

// Handler reacts to an interaction on a tagged node.
type Handler func(t Target, e stage.InteractionEvent)

type handlerKey struct {
	kind string
	ev   stage.EventType
}

// Router maps interaction events on tagged nodes to per-kind handlers.
type Router struct {
	world    donburi.World
	store    stage.EntityStore
	entities map[uint32]donburi.Entity
	handlers map[handlerKey][]Handler
	nextID   uint32
}

// NewRouter creates a router over world and subscribes it to
// InteractionEventType.
func NewRouter(world donburi.World) *Router {
	r := &Router{
		world:    world,
		store:    NewDonburiStore(world),
		entities: make(map[uint32]donburi.Entity),
		handlers: make(map[handlerKey][]Handler),
	}
	InteractionEventType.Subscribe(world, r.dispatch)
	return r
}

// Store returns the EntityStore to install on a scene.
func (r *Router) Store() stage.EntityStore {
	return r.store
}

// World returns the underlying Donburi world.
func (r *Router) World() donburi.World {
	return r.world
}

// Tag creates an entity for node and links them through node.EntityID.
// The entity is removed when the node is disposed.
func (r *Router) Tag(node *stage.Node, kind, key string) {
	r.nextID++
	id := r.nextID
	entity := r.world.Create(TargetComponent)
	TargetComponent.SetValue(r.world.Entry(entity), Target{Kind: kind, Key: key, Node: node})
	r.entities[id] = entity
	node.EntityID = id
	node.OnDispose(func() { r.untag(id) })
}

func (r *Router) untag(id uint32) {
	entity, ok := r.entities[id]
	if !ok {
		return
	}
	delete(r.entities, id)
	if r.world.Valid(entity) {
		r.world.Remove(entity)
	}
}

// Handle registers fn for events of type ev on nodes tagged with kind.
func (r *Router) Handle(kind string, ev stage.EventType, fn Handler) {
	k := handlerKey{kind: kind, ev: ev}
	r.handlers[k] = append(r.handlers[k], fn)
}

// Process delivers queued interaction events to handlers. Call once per frame.
func (r *Router) Process() {
	InteractionEventType.ProcessEvents(r.world)
}

// Count returns the number of live tagged entities of kind.
func (r *Router) Count(kind string) int {
	n := 0
	donburi.NewQuery(filter.Contains(TargetComponent)).Each(r.world, func(e *donburi.Entry) {
		if TargetComponent.Get(e).Kind == kind {
			n++
		}
	})
	return n
}

// Close removes every tagged entity and unsubscribes from the world.
func (r *Router) Close() {
	for id := range r.entities {
		r.untag(id)
	}
	InteractionEventType.Unsubscribe(r.world, r.dispatch)
	clear(r.handlers)
}

func (r *Router) dispatch(_ donburi.World, e stage.InteractionEvent) {
	entity, ok := r.entities[e.EntityID]
	if !ok || !r.world.Valid(entity) {
		return
	}
	target := *TargetComponent.Get(r.world.Entry(entity))
	if !target.Node.Active() {
		return
	}
	for _, fn := range r.handlers[handlerKey{kind: target.Kind, ev: e.Type}] {
		fn(target, e)
	}
}
