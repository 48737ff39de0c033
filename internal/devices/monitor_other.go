//go:build !linux

package devices

import (
	"context"

	"github.com/smazurov/streamcaps/internal/events"
)

// Monitor is a no-op: hotplug events come from Linux netlink.
func Monitor(_ context.Context, _ events.Publisher) error {
	return nil
}
