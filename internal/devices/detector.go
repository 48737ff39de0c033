package devices

import (
	"github.com/smazurov/streamcaps/pkg/linuxav/v4l2"
)

// DeviceInfo describes a capture node.
type DeviceInfo = v4l2.DeviceInfo

// FormatInfo describes a pixel format of a capture node.
type FormatInfo = v4l2.FormatInfo

// Resolution is a frame size reported by a device.
type Resolution = v4l2.Resolution

// FrameInterval is a frame interval span reported by a device.
type FrameInterval = v4l2.FrameInterval

// DeviceDetector provides platform-specific device queries.
type DeviceDetector interface {
	// FindDevices returns all currently available capture devices.
	FindDevices() ([]DeviceInfo, error)

	// GetDeviceFormats returns supported formats for a device.
	GetDeviceFormats(devicePath string) ([]FormatInfo, error)

	// GetDeviceResolutions returns supported resolutions for a format.
	GetDeviceResolutions(devicePath string, pixelFormat uint32) ([]Resolution, error)

	// GetDeviceFrameIntervals returns supported frame intervals for a resolution.
	GetDeviceFrameIntervals(devicePath string, pixelFormat, width, height uint32) ([]FrameInterval, error)
}

// NewDetector creates the detector for this platform.
func NewDetector() DeviceDetector {
	return newDetector()
}
