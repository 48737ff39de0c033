//go:build linux

package v4l2

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"
)

// ControlDevice is an open device node used for control ioctls.
// It is not safe for concurrent use; callers serialize access.
type ControlDevice struct {
	fd   int
	path string
}

// OpenControlDevice opens devicePath for control access.
func OpenControlDevice(devicePath string) (*ControlDevice, error) {
	fd, err := openDevice(devicePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", devicePath, err)
	}
	return &ControlDevice{fd: fd, path: devicePath}, nil
}

// Path returns the device node.
func (d *ControlDevice) Path() string {
	return d.path
}

// Close releases the device node.
func (d *ControlDevice) Close() error {
	return closeDevice(d.fd)
}

// QueryControl describes a control. Unsupported and disabled controls fail with ErrControlNotSupported.
func (d *ControlDevice) QueryControl(id ControlID) (ControlInfo, error) {
	q := v4l2Queryctrl{id: uint32(id)}
	if err := ioctl(d.fd, vidiocQueryctrl, unsafe.Pointer(&q)); err != nil {
		return ControlInfo{}, d.controlError("query", id, err)
	}

	info := ControlInfo{
		ID:      ControlID(q.id),
		Type:    ControlType(q.typ),
		Name:    cstr(q.name[:]),
		Min:     q.minimum,
		Max:     q.maximum,
		Step:    q.step,
		Default: q.defaultValue,
		Flags:   q.flags,
	}
	if info.Disabled() {
		return ControlInfo{}, fmt.Errorf("%w: %s on %s is disabled", ErrControlNotSupported, info.Name, d.path)
	}
	return info, nil
}

// GetControl reads the current value of a control.
func (d *ControlDevice) GetControl(id ControlID) (int32, error) {
	c := v4l2Control{id: uint32(id)}
	if err := ioctl(d.fd, vidiocGCtrl, unsafe.Pointer(&c)); err != nil {
		return 0, d.controlError("get", id, err)
	}
	return c.value, nil
}

// SetControl writes a control. The driver may clamp or round value.
func (d *ControlDevice) SetControl(id ControlID, value int32) error {
	c := v4l2Control{id: uint32(id), value: value}
	if err := ioctl(d.fd, vidiocSCtrl, unsafe.Pointer(&c)); err != nil {
		return d.controlError("set", id, err)
	}
	return nil
}

func (d *ControlDevice) controlError(op string, id ControlID, err error) error {
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return fmt.Errorf("%w: %s control 0x%08x on %s", ErrControlNotSupported, op, uint32(id), d.path)
	}
	return fmt.Errorf("failed to %s control 0x%08x on %s: %w", op, uint32(id), d.path, err)
}
