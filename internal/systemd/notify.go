// Package systemd reports service state to the service manager over the
// sd_notify protocol. Every call is a no-op outside systemd.
package systemd

import (
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/smazurov/streamcaps/internal/logging"
)

// Ready tells systemd the API is accepting requests.
func Ready() {
	notify(daemon.SdNotifyReady)
}

// Stopping tells systemd shutdown has begun.
func Stopping() {
	notify(daemon.SdNotifyStopping)
}

// Status sets the one-line status shown by systemctl status.
func Status(msg string) {
	notify("STATUS=" + msg)
}

func notify(state string) bool {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		logging.GetLogger("systemd").Debug("sd_notify failed", "state", state, "error", err)
	}
	return sent
}
