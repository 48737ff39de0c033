//go:build linux

package capture

import (
	"fmt"

	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/events"
	"github.com/smazurov/streamcaps/pkg/linuxav/v4l2"
)

// Open opens the V4L2 node at devicePath as a Camera identified by deviceID.
func Open(deviceID, devicePath string, bus events.Publisher) (*Camera, error) {
	dev, err := v4l2.OpenControlDevice(devicePath)
	if err != nil {
		return nil, capability.BackendUnavailable(fmt.Sprintf("cannot open capture device %s", deviceID), err)
	}
	return NewCamera(deviceID, dev, bus), nil
}
