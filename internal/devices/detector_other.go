//go:build !linux

package devices

import (
	"fmt"

	"github.com/smazurov/streamcaps/internal/logging"
	"github.com/smazurov/streamcaps/pkg/linuxav/v4l2"
)

// V4L2 is Linux only. Other platforms get a fixed pair of mock devices so the
// API can be developed against.
var mockDevices = []DeviceInfo{
	{DevicePath: "/dev/video0", DeviceName: "Mock USB Webcam HD", DeviceID: "usb-mock-webcam-001", Caps: 0x84000001},
	{DevicePath: "/dev/video1", DeviceName: "Mock HDMI Capture Device", DeviceID: "usb-mock-hdmi-capture", Caps: 0x84000001},
}

const (
	mockMJPEG = 0x47504A4D
	mockYUYV  = 0x56595559
	mockNV12  = 0x3231564E
)

var mockFormats = map[string][]FormatInfo{
	"/dev/video0": {
		{PixelFormat: mockMJPEG, FormatName: "Motion-JPEG"},
		{PixelFormat: mockYUYV, FormatName: "YUYV 4:2:2"},
	},
	"/dev/video1": {
		{PixelFormat: mockNV12, FormatName: "Y/UV 4:2:0"},
	},
}

var mockResolutions = map[string][]Resolution{
	"/dev/video0": {{Width: 640, Height: 480}, {Width: 1280, Height: 720}, {Width: 1920, Height: 1080}},
	"/dev/video1": {{Width: 1920, Height: 1080}, {Width: 3840, Height: 2160}},
}

func discrete(fps uint32) FrameInterval {
	f := v4l2.Fraction{Numerator: 1, Denominator: fps}
	return FrameInterval{Min: f, Max: f, Discrete: true}
}

var mockIntervals = map[string]map[uint32][]FrameInterval{
	"/dev/video0": {
		640:  {discrete(60), discrete(30), discrete(15)},
		1280: {discrete(60), discrete(30)},
		1920: {discrete(30)},
	},
	"/dev/video1": {
		1920: {{Min: v4l2.Fraction{Numerator: 1, Denominator: 60}, Max: v4l2.Fraction{Numerator: 1, Denominator: 24}}},
		3840: {discrete(30)},
	},
}

type mockDetector struct{}

func newDetector() DeviceDetector {
	logging.GetLogger("devices").Info("Using mock V4L2 devices, device queries are Linux only")
	return mockDetector{}
}

func (mockDetector) FindDevices() ([]DeviceInfo, error) {
	return append([]DeviceInfo(nil), mockDevices...), nil
}

func (mockDetector) GetDeviceFormats(devicePath string) ([]FormatInfo, error) {
	formats, ok := mockFormats[devicePath]
	if !ok {
		return nil, fmt.Errorf("device not found: %s", devicePath)
	}
	return formats, nil
}

func (mockDetector) GetDeviceResolutions(devicePath string, _ uint32) ([]Resolution, error) {
	resolutions, ok := mockResolutions[devicePath]
	if !ok {
		return nil, fmt.Errorf("device not found: %s", devicePath)
	}
	return resolutions, nil
}

func (mockDetector) GetDeviceFrameIntervals(devicePath string, _, width, _ uint32) ([]FrameInterval, error) {
	intervals, ok := mockIntervals[devicePath][width]
	if !ok {
		return nil, fmt.Errorf("resolution not supported: %s width %d", devicePath, width)
	}
	return intervals, nil
}
