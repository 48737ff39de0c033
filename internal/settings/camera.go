package settings

import (
	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/capture"
)

// CameraSettings exposes the live controls of a capture backend.
type CameraSettings interface {
	ControlSettings() (capture.ControlSettings, error)
}

// CameraStreamerSettings combines generic streamer settings with the camera
// controls of the active capture backend.
//
// The backend is borrowed, not owned: the facade must not be used after the
// backend is closed, and if it is, control access fails with
// capability.ErrBackendUnavailable. The facade adds no locking of its own;
// the backend serializes control access.
type CameraStreamerSettings struct {
	StreamerSettings
	backend capture.Backend
}

var (
	_ StreamerSettings = (*CameraStreamerSettings)(nil)
	_ CameraSettings   = (*CameraStreamerSettings)(nil)
)

// NewCameraStreamerSettings composes base with backend.
func NewCameraStreamerSettings(base StreamerSettings, backend capture.Backend) *CameraStreamerSettings {
	return &CameraStreamerSettings{
		StreamerSettings: base,
		backend:          backend,
	}
}

// ControlSettings returns the backend's live control view. Errors from the
// backend are returned unchanged.
func (s *CameraStreamerSettings) ControlSettings() (capture.ControlSettings, error) {
	if s.backend == nil {
		return nil, capability.BackendUnavailable("no capture backend attached", nil)
	}
	return s.backend.ControlSettings()
}
