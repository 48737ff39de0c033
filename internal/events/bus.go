package events

import (
	"github.com/kelindar/event"
)

// Publisher is the publishing side of Bus. Components that only emit events take this.
type Publisher interface {
	Publish(ev Event)
}

// Bus wraps a kelindar/event dispatcher. Delivery is asynchronous.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers of its concrete type.
// Usage: bus.Publish(ControlChangedEvent{...})
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case ControlChangedEvent:
		event.Publish(b.dispatcher, e)
	case CatalogReloadedEvent:
		event.Publish(b.dispatcher, e)
	case SessionCreatedEvent:
		event.Publish(b.dispatcher, e)
	case SessionClosedEvent:
		event.Publish(b.dispatcher, e)
	case DeviceAddedEvent:
		event.Publish(b.dispatcher, e)
	case DeviceRemovedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers handler for the event type named by its parameter and
// returns an unsubscribe function. Unknown handler types get a no-op.
// Usage: unsub := bus.Subscribe(func(e SessionClosedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ControlChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(CatalogReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SessionCreatedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SessionClosedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DeviceAddedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DeviceRemovedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// Discard is a Publisher that drops everything.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}
