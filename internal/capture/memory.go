package capture

import (
	"fmt"
	"sync"

	"github.com/smazurov/streamcaps/pkg/linuxav/v4l2"
)

// MemoryDevice is an in-memory ControlDevice with a typical webcam's focus
// and zoom controls. It stands in for V4L2 where no driver is available.
type MemoryDevice struct {
	mu       sync.Mutex
	controls map[v4l2.ControlID]v4l2.ControlInfo
	values   map[v4l2.ControlID]int32
	closed   bool
}

var _ ControlDevice = (*MemoryDevice)(nil)

// NewMemoryDevice creates a device with focus_absolute [0,255],
// focus_auto [0,1] and zoom_absolute [100,500], all at their defaults.
func NewMemoryDevice() *MemoryDevice {
	d := &MemoryDevice{
		controls: map[v4l2.ControlID]v4l2.ControlInfo{
			v4l2.CIDFocusAbsolute: {ID: v4l2.CIDFocusAbsolute, Type: v4l2.ControlTypeInteger, Name: "Focus, Absolute", Min: 0, Max: 255, Step: 5, Default: 0},
			v4l2.CIDFocusAuto:     {ID: v4l2.CIDFocusAuto, Type: v4l2.ControlTypeBoolean, Name: "Focus, Automatic Continuous", Min: 0, Max: 1, Step: 1, Default: 1},
			v4l2.CIDZoomAbsolute:  {ID: v4l2.CIDZoomAbsolute, Type: v4l2.ControlTypeInteger, Name: "Zoom, Absolute", Min: 100, Max: 500, Step: 1, Default: 100},
		},
		values: make(map[v4l2.ControlID]int32),
	}
	for id, info := range d.controls {
		d.values[id] = info.Default
	}
	return d
}

func (d *MemoryDevice) lookup(id v4l2.ControlID) (v4l2.ControlInfo, error) {
	if d.closed {
		return v4l2.ControlInfo{}, fmt.Errorf("memory device is closed")
	}
	info, ok := d.controls[id]
	if !ok {
		return v4l2.ControlInfo{}, fmt.Errorf("%w: 0x%08x", v4l2.ErrControlNotSupported, uint32(id))
	}
	return info, nil
}

// QueryControl describes a control.
func (d *MemoryDevice) QueryControl(id v4l2.ControlID) (v4l2.ControlInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookup(id)
}

// GetControl reads a control.
func (d *MemoryDevice) GetControl(id v4l2.ControlID) (int32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.lookup(id); err != nil {
		return 0, err
	}
	return d.values[id], nil
}

// SetControl writes a control.
func (d *MemoryDevice) SetControl(id v4l2.ControlID, value int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.lookup(id); err != nil {
		return err
	}
	d.values[id] = value
	return nil
}

// Close marks the device closed.
func (d *MemoryDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
