//go:build linux

package devices

import (
	"context"
	"time"

	"github.com/smazurov/streamcaps/internal/events"
	"github.com/smazurov/streamcaps/internal/logging"
	"github.com/smazurov/streamcaps/pkg/linuxav/hotplug"
)

// Monitor publishes DeviceAddedEvent and DeviceRemovedEvent for video4linux
// nodes until ctx is done. It returns once the netlink socket is open.
func Monitor(ctx context.Context, bus events.Publisher) error {
	logger := logging.GetLogger("devices")

	mon, err := hotplug.NewMonitor()
	if err != nil {
		return err
	}
	mon.FilterSubsystem(hotplug.SubsystemVideo4Linux)

	uevents := make(chan hotplug.Event, 16)
	go func() {
		defer mon.Close()
		if err := mon.Run(ctx, uevents); err != nil && ctx.Err() == nil {
			logger.Warn("Device monitor stopped", "error", err)
		}
	}()

	go func() {
		for ev := range uevents {
			node := ev.DeviceNode()
			if node == "" {
				continue
			}
			ts := time.Now().UTC().Format(time.RFC3339)
			switch ev.Action {
			case hotplug.ActionAdd:
				logger.Info("Capture device added", "device", node)
				bus.Publish(events.DeviceAddedEvent{DevicePath: node, Timestamp: ts})
			case hotplug.ActionRemove:
				logger.Info("Capture device removed", "device", node)
				bus.Publish(events.DeviceRemovedEvent{DevicePath: node, Timestamp: ts})
			}
		}
	}()

	logger.Info("Device monitor started")
	return nil
}
