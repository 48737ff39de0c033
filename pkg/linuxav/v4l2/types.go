package v4l2

import (
	"errors"
	"math"
)

// DeviceInfo describes a V4L2 capture node.
type DeviceInfo struct {
	DevicePath string
	DeviceName string
	DeviceID   string // stable identifier from /dev/v4l/by-id or synthesized from bus info
	Caps       uint32
}

// FormatInfo describes a supported pixel format.
type FormatInfo struct {
	PixelFormat uint32
	FormatName  string
	Emulated    bool
}

// Resolution is a frame size.
type Resolution struct {
	Width  uint32
	Height uint32
}

// Fraction is a frame interval in seconds, Numerator/Denominator.
type Fraction struct {
	Numerator   uint32
	Denominator uint32
}

// FPS returns the framerate of the interval.
func (f Fraction) FPS() float64 {
	if f.Numerator == 0 {
		return 0
	}
	return float64(f.Denominator) / float64(f.Numerator)
}

// FrameInterval is one VIDIOC_ENUM_FRAMEINTERVALS entry. Discrete entries have Min == Max.
type FrameInterval struct {
	Min      Fraction
	Max      Fraction
	Discrete bool
}

// FPSRange returns the integer framerate span the interval covers.
// A discrete interval rounds to the nearest fps; a stepwise or continuous one
// keeps only the whole framerates inside it. ok is false when no positive integer fps fits.
func (f FrameInterval) FPSRange() (lo, hi int, ok bool) {
	if f.Discrete {
		fps := int(math.Round(f.Min.FPS()))
		return fps, fps, fps > 0
	}
	// The shortest interval gives the highest framerate.
	lo = int(math.Ceil(f.Max.FPS()))
	hi = int(math.Floor(f.Min.FPS()))
	if lo < 1 {
		lo = 1
	}
	return lo, hi, hi >= lo
}

// ErrControlNotSupported is returned when the driver does not implement a control.
var ErrControlNotSupported = errors.New("v4l2 control not supported")

// ControlID is a V4L2 control identifier.
type ControlID uint32

// Camera class controls.
const (
	CIDFocusAbsolute ControlID = 0x009a090a
	CIDFocusAuto     ControlID = 0x009a090c
	CIDZoomAbsolute  ControlID = 0x009a090d
)

// ControlType is the v4l2_ctrl_type of a control.
type ControlType uint32

// Control types.
const (
	ControlTypeInteger ControlType = 1
	ControlTypeBoolean ControlType = 2
	ControlTypeMenu    ControlType = 3
	ControlTypeButton  ControlType = 4
)

// Control flags.
const (
	ControlFlagDisabled = 0x0001
	ControlFlagGrabbed  = 0x0002
	ControlFlagReadOnly = 0x0004
	ControlFlagInactive = 0x0010
)

// ControlInfo is the result of VIDIOC_QUERYCTRL.
type ControlInfo struct {
	ID      ControlID
	Type    ControlType
	Name    string
	Min     int32
	Max     int32
	Step    int32
	Default int32
	Flags   uint32
}

// Disabled reports whether the driver marks the control as permanently unavailable.
func (c ControlInfo) Disabled() bool { return c.Flags&ControlFlagDisabled != 0 }

// ReadOnly reports whether writes are rejected.
func (c ControlInfo) ReadOnly() bool { return c.Flags&ControlFlagReadOnly != 0 }

// Inactive reports whether the control currently has no effect, e.g. manual
// focus while auto focus is on.
func (c ControlInfo) Inactive() bool { return c.Flags&ControlFlagInactive != 0 }

// FormatFourCC converts a pixel format code to its four-character name.
func FormatFourCC(format uint32) string {
	return string([]byte{
		byte(format),
		byte(format >> 8),
		byte(format >> 16),
		byte(format >> 24),
	})
}

// frameSizeSpan is a stepwise or continuous frame size range.
type frameSizeSpan struct {
	minWidth, maxWidth, stepWidth    uint32
	minHeight, maxHeight, stepHeight uint32
}

var wellKnownSizes = []Resolution{
	{320, 240},
	{640, 480},
	{800, 600},
	{1024, 768},
	{1280, 720},
	{1280, 960},
	{1280, 1024},
	{1920, 1080},
	{1920, 1200},
	{2560, 1440},
	{3840, 2160},
	{4096, 2160},
}

// contains reports whether the span can produce width x height.
func (s frameSizeSpan) contains(width, height uint32) bool {
	return onStep(width, s.minWidth, s.maxWidth, s.stepWidth) &&
		onStep(height, s.minHeight, s.maxHeight, s.stepHeight)
}

func onStep(v, lo, hi, step uint32) bool {
	if v < lo || v > hi {
		return false
	}
	return step <= 1 || (v-lo)%step == 0
}

// commonSizes lists the well-known sizes a span can produce, smallest first.
func (s frameSizeSpan) commonSizes() []Resolution {
	var out []Resolution
	for _, r := range wellKnownSizes {
		if s.contains(r.Width, r.Height) {
			out = append(out, r)
		}
	}
	return out
}
