package capture

import (
	"errors"

	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/pkg/linuxav/v4l2"
)

// Control names a runtime-adjustable capture control.
type Control string

// Supported controls.
const (
	ControlFocusAbsolute Control = "focus_absolute"
	ControlFocusAuto     Control = "focus_auto"
	ControlZoomAbsolute  Control = "zoom_absolute"
)

// Controls in the order they are reported.
var knownControls = []Control{ControlFocusAbsolute, ControlFocusAuto, ControlZoomAbsolute}

var controlIDs = map[Control]v4l2.ControlID{
	ControlFocusAbsolute: v4l2.CIDFocusAbsolute,
	ControlFocusAuto:     v4l2.CIDFocusAuto,
	ControlZoomAbsolute:  v4l2.CIDZoomAbsolute,
}

// ParseControl maps a control name to a Control.
func ParseControl(name string) (Control, bool) {
	c := Control(name)
	_, ok := controlIDs[c]
	return c, ok
}

var (
	// ErrControlOutOfRange is returned for writes outside the driver's range.
	ErrControlOutOfRange = errors.New("control value out of range")
	// ErrControlUnsupported is returned when the device lacks a control or rejects writes to it.
	ErrControlUnsupported = errors.New("control not supported by device")
)

// ControlInfo describes one control as the device reports it.
type ControlInfo struct {
	Control  Control `json:"control" example:"zoom_absolute" doc:"Control name"`
	Name     string  `json:"name" example:"Zoom, Absolute" doc:"Driver label"`
	Min      int     `json:"min" example:"100"`
	Max      int     `json:"max" example:"500"`
	Step     int     `json:"step" example:"1"`
	Default  int     `json:"default" example:"100"`
	Value    int     `json:"value" example:"150" doc:"Current value"`
	ReadOnly bool    `json:"read_only,omitempty"`
	Inactive bool    `json:"inactive,omitempty" doc:"Set while another control overrides this one, e.g. manual focus under auto focus"`
}

// Range returns the control's closed value interval.
func (c ControlInfo) Range() capability.Range {
	return capability.Range{Min: c.Min, Max: c.Max}
}

// ControlSettings is a live view of the capture controls of an open backend.
// Reads go to the device every time and writes take effect immediately.
// A view is only valid while its backend is open; afterwards every call fails
// with capability.ErrBackendUnavailable.
type ControlSettings interface {
	Focus() (int, error)
	SetFocus(value int) error
	AutoFocus() (bool, error)
	SetAutoFocus(enabled bool) error
	Zoom() (int, error)
	SetZoom(value int) error
	FocusRange() (capability.Range, error)
	ZoomRange() (capability.Range, error)

	// Controls lists the supported controls with their current values.
	Controls() ([]ControlInfo, error)
}

// Backend is a capture backend exposing live control settings.
type Backend interface {
	ControlSettings() (ControlSettings, error)
}

// ControlDevice is the control surface of a capture device node.
// *v4l2.ControlDevice satisfies it on Linux.
type ControlDevice interface {
	QueryControl(id v4l2.ControlID) (v4l2.ControlInfo, error)
	GetControl(id v4l2.ControlID) (int32, error)
	SetControl(id v4l2.ControlID, value int32) error
	Close() error
}
