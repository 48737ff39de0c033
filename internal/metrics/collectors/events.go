// Package collectors feeds metrics from sources outside the request path.
package collectors

import (
	"github.com/smazurov/streamcaps/internal/events"
	"github.com/smazurov/streamcaps/internal/logging"
	"github.com/smazurov/streamcaps/internal/metrics"
)

// Subscriber is the subscribing side of events.Bus.
type Subscriber interface {
	Subscribe(handler any) func()
}

// EventCollector keeps session, control and catalog metrics in step with bus events.
type EventCollector struct {
	bus    Subscriber
	unsubs []func()
}

// NewEventCollector creates a collector for bus.
func NewEventCollector(bus Subscriber) *EventCollector {
	return &EventCollector{bus: bus}
}

// Start subscribes to the bus.
func (c *EventCollector) Start() {
	logging.GetLogger("metrics").Debug("Starting event metrics collection")
	c.unsubs = append(c.unsubs,
		c.bus.Subscribe(func(events.SessionCreatedEvent) { metrics.SessionOpened() }),
		c.bus.Subscribe(func(events.SessionClosedEvent) { metrics.SessionClosed() }),
		c.bus.Subscribe(func(e events.ControlChangedEvent) { metrics.ControlWritten(e.Control) }),
		c.bus.Subscribe(func(e events.CatalogReloadedEvent) {
			metrics.SetCatalogEncoders(e.VideoEncoders, e.AudioEncoders)
		}),
	)
}

// Stop unsubscribes from the bus.
func (c *EventCollector) Stop() {
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
}
