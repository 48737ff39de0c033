package capture

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/events"
	"github.com/smazurov/streamcaps/internal/logging"
	"github.com/smazurov/streamcaps/pkg/linuxav/v4l2"
)

// Camera is a capture backend over an open device node. Control access is
// serialized by Camera, so views may be shared between goroutines.
type Camera struct {
	deviceID string
	bus      events.Publisher
	logger   *slog.Logger

	mu     sync.Mutex
	dev    ControlDevice
	closed bool
}

var _ Backend = (*Camera)(nil)

// NewCamera takes ownership of dev. A nil bus discards control events.
func NewCamera(deviceID string, dev ControlDevice, bus events.Publisher) *Camera {
	if bus == nil {
		bus = events.Discard
	}
	return &Camera{
		deviceID: deviceID,
		dev:      dev,
		bus:      bus,
		logger:   logging.GetLogger("capture").With("device_id", deviceID),
	}
}

// DeviceID returns the identity the camera was opened with.
func (c *Camera) DeviceID() string {
	return c.deviceID
}

// ControlSettings returns a live view bound to this camera.
func (c *Camera) ControlSettings() (ControlSettings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, c.unavailable()
	}
	return &cameraControls{cam: c}, nil
}

// Close releases the device. Views handed out earlier fail from now on.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.logger.Debug("Capture backend closed")
	return c.dev.Close()
}

// Closed reports whether Close was called.
func (c *Camera) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Camera) unavailable() error {
	return capability.BackendUnavailable(fmt.Sprintf("capture backend for %s is closed", c.deviceID), nil)
}

// deviceError classifies a driver error. Anything but a missing control means
// the node is no longer usable, typically because the device was unplugged.
func (c *Camera) deviceError(control Control, err error) error {
	if errors.Is(err, v4l2.ErrControlNotSupported) {
		return fmt.Errorf("%w: %s: %w", ErrControlUnsupported, control, err)
	}
	return capability.BackendUnavailable(fmt.Sprintf("cannot access %s on %s", control, c.deviceID), err)
}

// query must be called with mu held.
func (c *Camera) query(control Control) (v4l2.ControlInfo, error) {
	if c.closed {
		return v4l2.ControlInfo{}, c.unavailable()
	}
	info, err := c.dev.QueryControl(controlIDs[control])
	if err != nil {
		return v4l2.ControlInfo{}, c.deviceError(control, err)
	}
	return info, nil
}

func (c *Camera) get(control Control) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.query(control); err != nil {
		return 0, err
	}
	v, err := c.dev.GetControl(controlIDs[control])
	if err != nil {
		return 0, c.deviceError(control, err)
	}
	return int(v), nil
}

func (c *Camera) set(control Control, value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := c.query(control)
	if err != nil {
		return err
	}
	if info.ReadOnly() {
		return fmt.Errorf("%w: %s is read-only", ErrControlUnsupported, control)
	}
	if value < int(info.Min) || value > int(info.Max) {
		return fmt.Errorf("%w: %s=%d outside [%d,%d]", ErrControlOutOfRange, control, value, info.Min, info.Max)
	}
	if err := c.dev.SetControl(controlIDs[control], int32(value)); err != nil {
		return c.deviceError(control, err)
	}

	c.logger.Debug("Control set", "control", control, "value", value)
	c.bus.Publish(events.ControlChangedEvent{
		DeviceID:  c.deviceID,
		Control:   string(control),
		Value:     value,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

func (c *Camera) controlRange(control Control) (capability.Range, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := c.query(control)
	if err != nil {
		return capability.Range{}, err
	}
	return capability.Range{Min: int(info.Min), Max: int(info.Max)}, nil
}

func (c *Camera) controls() ([]ControlInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, c.unavailable()
	}
	out := []ControlInfo{}
	for _, control := range knownControls {
		info, err := c.query(control)
		if errors.Is(err, ErrControlUnsupported) {
			continue
		}
		if err != nil {
			return nil, err
		}
		v, err := c.dev.GetControl(info.ID)
		if err != nil {
			return nil, c.deviceError(control, err)
		}
		out = append(out, ControlInfo{
			Control:  control,
			Name:     info.Name,
			Min:      int(info.Min),
			Max:      int(info.Max),
			Step:     int(info.Step),
			Default:  int(info.Default),
			Value:    int(v),
			ReadOnly: info.ReadOnly(),
			Inactive: info.Inactive(),
		})
	}
	return out, nil
}

// cameraControls holds no state of its own; every call reads through to the camera.
type cameraControls struct {
	cam *Camera
}

func (v *cameraControls) Focus() (int, error) { return v.cam.get(ControlFocusAbsolute) }

func (v *cameraControls) SetFocus(value int) error { return v.cam.set(ControlFocusAbsolute, value) }

func (v *cameraControls) AutoFocus() (bool, error) {
	on, err := v.cam.get(ControlFocusAuto)
	return on != 0, err
}

func (v *cameraControls) SetAutoFocus(enabled bool) error {
	value := 0
	if enabled {
		value = 1
	}
	return v.cam.set(ControlFocusAuto, value)
}

func (v *cameraControls) Zoom() (int, error) { return v.cam.get(ControlZoomAbsolute) }

func (v *cameraControls) SetZoom(value int) error { return v.cam.set(ControlZoomAbsolute, value) }

func (v *cameraControls) FocusRange() (capability.Range, error) {
	return v.cam.controlRange(ControlFocusAbsolute)
}

func (v *cameraControls) ZoomRange() (capability.Range, error) {
	return v.cam.controlRange(ControlZoomAbsolute)
}

func (v *cameraControls) Controls() ([]ControlInfo, error) { return v.cam.controls() }
