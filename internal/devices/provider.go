package devices

import (
	"fmt"
	"log/slog"

	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/logging"
)

// Provider answers capture-side capability queries from live device enumeration.
// Nothing is cached: every call reflects the devices present right now.
type Provider struct {
	detector DeviceDetector
	logger   *slog.Logger
}

// NewProvider creates a provider over detector.
func NewProvider(detector DeviceDetector) *Provider {
	return &Provider{
		detector: detector,
		logger:   logging.GetLogger("devices"),
	}
}

var _ capability.DeviceProvider = (*Provider)(nil)

// Devices lists the capture devices.
func (p *Provider) Devices() ([]DeviceInfo, error) {
	devices, err := p.detector.FindDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate capture devices: %w", err)
	}
	return devices, nil
}

// Lookup finds a device by stable ID or by device path.
// An empty or unmatched identity fails with capability.ErrUnknownDevice.
func (p *Provider) Lookup(deviceID string) (DeviceInfo, error) {
	if deviceID == "" {
		return DeviceInfo{}, capability.UnknownDevice(deviceID)
	}
	devices, err := p.Devices()
	if err != nil {
		return DeviceInfo{}, err
	}
	for _, d := range devices {
		if d.DeviceID == deviceID || d.DevicePath == deviceID {
			return d, nil
		}
	}
	return DeviceInfo{}, capability.UnknownDevice(deviceID)
}

// NativeOutputResolutions returns every frame size any capture device can
// produce in any pixel format, in enumeration order without duplicates.
// Devices that fail to answer are skipped.
func (p *Provider) NativeOutputResolutions() ([]capability.Resolution, error) {
	devices, err := p.Devices()
	if err != nil {
		return nil, err
	}

	seen := make(map[capability.Resolution]bool)
	out := []capability.Resolution{}
	for _, d := range devices {
		sizes, err := p.deviceResolutions(d)
		if err != nil {
			p.logger.Debug("Skipping device resolutions", "device", d.DevicePath, "error", err)
			continue
		}
		for _, r := range sizes {
			res := capability.Resolution{Width: int(r.Width), Height: int(r.Height)}
			if !seen[res] {
				seen[res] = true
				out = append(out, res)
			}
		}
	}
	return out, nil
}

// NativeDeviceResolutions returns the frame sizes of one device across its
// formats, in enumeration order without duplicates.
func (p *Provider) NativeDeviceResolutions(deviceID string) ([]capability.Resolution, error) {
	device, err := p.Lookup(deviceID)
	if err != nil {
		return nil, err
	}
	sizes, err := p.deviceResolutions(device)
	if err != nil {
		return nil, capability.BackendUnavailable(fmt.Sprintf("cannot query formats of %s", device.DevicePath), err)
	}

	seen := make(map[capability.Resolution]bool)
	out := []capability.Resolution{}
	for _, r := range sizes {
		res := capability.Resolution{Width: int(r.Width), Height: int(r.Height)}
		if !seen[res] {
			seen[res] = true
			out = append(out, res)
		}
	}
	return out, nil
}

// NativeFramerateRanges returns the integer framerate ranges of one device
// across its formats and frame sizes, in enumeration order without duplicates.
func (p *Provider) NativeFramerateRanges(deviceID string) ([]capability.FramerateRange, error) {
	device, err := p.Lookup(deviceID)
	if err != nil {
		return nil, err
	}

	formats, err := p.detector.GetDeviceFormats(device.DevicePath)
	if err != nil {
		return nil, capability.BackendUnavailable(fmt.Sprintf("cannot query formats of %s", device.DevicePath), err)
	}

	seen := make(map[capability.FramerateRange]bool)
	out := []capability.FramerateRange{}
	for _, f := range formats {
		sizes, err := p.detector.GetDeviceResolutions(device.DevicePath, f.PixelFormat)
		if err != nil {
			p.logger.Debug("Skipping format", "device", device.DevicePath, "format", f.FormatName, "error", err)
			continue
		}
		for _, s := range sizes {
			intervals, err := p.detector.GetDeviceFrameIntervals(device.DevicePath, f.PixelFormat, s.Width, s.Height)
			if err != nil {
				p.logger.Debug("Skipping frame size", "device", device.DevicePath, "width", s.Width, "height", s.Height, "error", err)
				continue
			}
			for _, iv := range intervals {
				lo, hi, ok := iv.FPSRange()
				if !ok {
					continue
				}
				r := capability.FramerateRange{Min: lo, Max: hi}
				if !seen[r] {
					seen[r] = true
					out = append(out, r)
				}
			}
		}
	}
	return out, nil
}

func (p *Provider) deviceResolutions(d DeviceInfo) ([]Resolution, error) {
	formats, err := p.detector.GetDeviceFormats(d.DevicePath)
	if err != nil {
		return nil, err
	}
	var sizes []Resolution
	for _, f := range formats {
		rs, err := p.detector.GetDeviceResolutions(d.DevicePath, f.PixelFormat)
		if err != nil {
			p.logger.Debug("Skipping format", "device", d.DevicePath, "format", f.FormatName, "error", err)
			continue
		}
		sizes = append(sizes, rs...)
	}
	return sizes, nil
}
