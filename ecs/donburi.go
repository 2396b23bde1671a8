package ecs

import (
	"github.com/phanxgames/bunnyworld/stage"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType carries stage interaction events on tagged nodes. The
// Router subscribes to it; other systems of the same world may too.
var InteractionEventType = events.NewEventType[stage.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore returns an EntityStore that queues events on world. They
// are delivered when the world's InteractionEventType events are processed.
func NewDonburiStore(world donburi.World) stage.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event stage.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
