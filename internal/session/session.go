package session

import (
	"time"

	"github.com/smazurov/streamcaps/internal/capture"
	"github.com/smazurov/streamcaps/internal/config"
	"github.com/smazurov/streamcaps/internal/settings"
)

// Session states.
const (
	StateActive     = "active"
	StateDeviceLost = "device_lost"
)

// Session is a validated session holding an open capture backend.
type Session struct {
	ID         string
	Config     config.SessionConfig
	DevicePath string
	CreatedAt  time.Time

	camera   *capture.Camera
	settings *settings.CameraStreamerSettings
}

// Settings returns the session's settings facade.
func (s *Session) Settings() *settings.CameraStreamerSettings {
	return s.settings
}

// State reports whether the capture backend is still open.
func (s *Session) State() string {
	if s.camera.Closed() {
		return StateDeviceLost
	}
	return StateActive
}
