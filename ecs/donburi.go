package ecs

import (
	"github.com/phanxgames/corlena"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for engine gesture events.
var GestureEventType = events.NewEventType[corlena.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to GestureEventType and can be consumed with events.Subscribe and
// ProcessEvents.
func NewDonburiSink(world donburi.World) corlena.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event corlena.Event) {
	GestureEventType.Publish(s.world, event)
}
