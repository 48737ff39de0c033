//go:build linux

package v4l2

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"
)

// GetFormats returns the capture pixel formats of a device.
func GetFormats(devicePath string) ([]FormatInfo, error) {
	fd, err := openDevice(devicePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open device: %w", err)
	}
	defer closeDevice(fd)

	var formats []FormatInfo
	for i := uint32(0); ; i++ {
		desc := v4l2Fmtdesc{index: i, typ: v4l2BufTypeVideoCapture}
		if err := ioctl(fd, vidiocEnumFmt, unsafe.Pointer(&desc)); err != nil {
			if errors.Is(err, syscall.EINVAL) {
				break
			}
			return nil, fmt.Errorf("failed to enumerate format %d: %w", i, err)
		}

		formats = append(formats, FormatInfo{
			PixelFormat: desc.pixelformat,
			FormatName:  cstr(desc.description[:]),
			Emulated:    desc.flags&v4l2FmtFlagEmulated != 0,
		})
	}

	return formats, nil
}

// GetResolutions returns the frame sizes of a pixel format. Stepwise and
// continuous devices report the common sizes their span can produce.
func GetResolutions(devicePath string, pixelFormat uint32) ([]Resolution, error) {
	fd, err := openDevice(devicePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open device: %w", err)
	}
	defer closeDevice(fd)

	var resolutions []Resolution
	for i := uint32(0); ; i++ {
		frmsize := v4l2Frmsizeenum{index: i, pixelFormat: pixelFormat}
		if err := ioctl(fd, vidiocEnumFramesizes, unsafe.Pointer(&frmsize)); err != nil {
			if errors.Is(err, syscall.EINVAL) {
				break
			}
			if errors.Is(err, syscall.ENOTTY) {
				return []Resolution{}, nil
			}
			return nil, fmt.Errorf("failed to enumerate frame size %d: %w", i, err)
		}

		switch frmsize.typ {
		case v4l2FrmsizeTypeDiscrete:
			resolutions = append(resolutions, frmsize.discrete())
		case v4l2FrmsizeTypeContinuous, v4l2FrmsizeTypeStepwise:
			// A stepwise entry is always the only one.
			return append(resolutions, frmsize.stepwise().commonSizes()...), nil
		}
	}

	return resolutions, nil
}

// GetFrameIntervals returns the frame intervals of a pixel format and size.
func GetFrameIntervals(devicePath string, pixelFormat, width, height uint32) ([]FrameInterval, error) {
	fd, err := openDevice(devicePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open device: %w", err)
	}
	defer closeDevice(fd)

	var intervals []FrameInterval
	for i := uint32(0); ; i++ {
		frmival := v4l2Frmivalenum{index: i, pixelFormat: pixelFormat, width: width, height: height}
		if err := ioctl(fd, vidiocEnumFrameintervals, unsafe.Pointer(&frmival)); err != nil {
			if errors.Is(err, syscall.EINVAL) {
				break
			}
			if errors.Is(err, syscall.ENOTTY) {
				return []FrameInterval{}, nil
			}
			return nil, fmt.Errorf("failed to enumerate frame interval %d: %w", i, err)
		}

		switch frmival.typ {
		case v4l2FrmivalTypeDiscrete:
			f := frmival.fraction(0)
			intervals = append(intervals, FrameInterval{Min: f, Max: f, Discrete: true})
		case v4l2FrmivalTypeContinuous, v4l2FrmivalTypeStepwise:
			return append(intervals, FrameInterval{Min: frmival.fraction(0), Max: frmival.fraction(1)}), nil
		}
	}

	return intervals, nil
}
