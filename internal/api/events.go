package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/streamcaps/internal/events"
)

// ConnectedEvent is the first message on every event stream.
type ConnectedEvent struct {
	Message   string `json:"message" example:"SSE connection established"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z"`
}

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of control writes, catalog reloads, session lifecycle and device hotplug",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"connected":        ConnectedEvent{},
		"control-changed":  events.ControlChangedEvent{},
		"catalog-reloaded": events.CatalogReloadedEvent{},
		"session-created":  events.SessionCreatedEvent{},
		"session-closed":   events.SessionClosedEvent{},
		"device-added":     events.DeviceAddedEvent{},
		"device-removed":   events.DeviceRemovedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 10)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.ControlChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.CatalogReloadedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.SessionCreatedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.SessionClosedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.DeviceAddedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.DeviceRemovedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		if err := send.Data(ConnectedEvent{
			Message:   "SSE connection established",
			Timestamp: time.Now().Format(time.RFC3339),
		}); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
