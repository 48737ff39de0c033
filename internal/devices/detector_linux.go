//go:build linux

package devices

import (
	"github.com/smazurov/streamcaps/pkg/linuxav/v4l2"
)

type linuxDetector struct{}

func newDetector() DeviceDetector {
	return linuxDetector{}
}

func (linuxDetector) FindDevices() ([]DeviceInfo, error) {
	return v4l2.FindDevices()
}

func (linuxDetector) GetDeviceFormats(devicePath string) ([]FormatInfo, error) {
	return v4l2.GetFormats(devicePath)
}

func (linuxDetector) GetDeviceResolutions(devicePath string, pixelFormat uint32) ([]Resolution, error) {
	return v4l2.GetResolutions(devicePath, pixelFormat)
}

func (linuxDetector) GetDeviceFrameIntervals(devicePath string, pixelFormat, width, height uint32) ([]FrameInterval, error) {
	return v4l2.GetFrameIntervals(devicePath, pixelFormat, width, height)
}
