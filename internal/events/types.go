package events

// Event type constants for kelindar/event.
const (
	TypeControlChanged uint32 = iota + 1
	TypeCatalogReloaded
	TypeSessionCreated
	TypeSessionClosed
	TypeDeviceAdded
	TypeDeviceRemoved
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ControlChangedEvent is published after a capture control write reached the device.
type ControlChangedEvent struct {
	DeviceID  string `json:"device_id" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Stable device identifier"`
	Control   string `json:"control" example:"zoom_absolute" doc:"Control name"`
	Value     int    `json:"value" example:"150" doc:"Value written"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ControlChangedEvent.
func (e ControlChangedEvent) Type() uint32 { return TypeControlChanged }

// CatalogReloadedEvent is published after the encoder catalog was replaced.
type CatalogReloadedEvent struct {
	Path          string `json:"path" example:"encoders.toml" doc:"Catalog file"`
	VideoEncoders int    `json:"video_encoders" example:"3" doc:"Video encoders in the new catalog"`
	AudioEncoders int    `json:"audio_encoders" example:"2" doc:"Audio encoders in the new catalog"`
	Timestamp     string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CatalogReloadedEvent.
func (e CatalogReloadedEvent) Type() uint32 { return TypeCatalogReloaded }

// SessionCreatedEvent is published when a session opened its capture backend.
type SessionCreatedEvent struct {
	SessionID string `json:"session_id" example:"front-cam" doc:"Session identifier"`
	DeviceID  string `json:"device_id" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Capture device"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for SessionCreatedEvent.
func (e SessionCreatedEvent) Type() uint32 { return TypeSessionCreated }

// SessionClosedEvent is published after a session released its capture backend.
type SessionClosedEvent struct {
	SessionID string `json:"session_id" example:"front-cam" doc:"Session identifier"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for SessionClosedEvent.
func (e SessionClosedEvent) Type() uint32 { return TypeSessionClosed }

// DeviceAddedEvent is published when a video4linux node appears.
type DeviceAddedEvent struct {
	DevicePath string `json:"device_path" example:"/dev/video0" doc:"Device node"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DeviceAddedEvent.
func (e DeviceAddedEvent) Type() uint32 { return TypeDeviceAdded }

// DeviceRemovedEvent is published when a video4linux node disappears.
type DeviceRemovedEvent struct {
	DevicePath string `json:"device_path" example:"/dev/video0" doc:"Device node"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DeviceRemovedEvent.
func (e DeviceRemovedEvent) Type() uint32 { return TypeDeviceRemoved }
