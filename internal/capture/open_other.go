//go:build !linux

package capture

import (
	"github.com/smazurov/streamcaps/internal/events"
)

// Open returns a Camera over an in-memory device, matching the mock devices
// reported on platforms without V4L2.
func Open(deviceID, _ string, bus events.Publisher) (*Camera, error) {
	return NewCamera(deviceID, NewMemoryDevice(), bus), nil
}
