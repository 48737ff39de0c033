// Package v4l2 provides pure Go bindings to the parts of the Video4Linux2 API
// needed to describe a capture device and drive its controls: device
// enumeration, format, frame size and frame interval queries, and
// VIDIOC_QUERYCTRL / G_CTRL / S_CTRL.
//
// The package does not use cgo, so it cross-compiles for amd64, arm64 and arm.
// Everything that touches a device is Linux only; the value types build everywhere.
//
//	devices, _ := v4l2.FindDevices()
//	for _, dev := range devices {
//	    formats, _ := v4l2.GetFormats(dev.DevicePath)
//	    for _, f := range formats {
//	        sizes, _ := v4l2.GetResolutions(dev.DevicePath, f.PixelFormat)
//	        for _, s := range sizes {
//	            intervals, _ := v4l2.GetFrameIntervals(dev.DevicePath, f.PixelFormat, s.Width, s.Height)
//	            _ = intervals
//	        }
//	    }
//	}
//
// Controls:
//
//	cd, _ := v4l2.OpenControlDevice("/dev/video0")
//	defer cd.Close()
//	info, _ := cd.QueryControl(v4l2.CIDZoomAbsolute)
//	_ = cd.SetControl(v4l2.CIDZoomAbsolute, info.Max)
package v4l2
