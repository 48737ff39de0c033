//go:build linux

package v4l2

import "unsafe"

// The structs below contain only 32-bit fields, so their layout and the
// ioctl numbers derived from it are identical on arm, arm64 and amd64.
var (
	_ [104]byte = [unsafe.Sizeof(v4l2Capability{})]byte{}
	_ [64]byte  = [unsafe.Sizeof(v4l2Fmtdesc{})]byte{}
	_ [44]byte  = [unsafe.Sizeof(v4l2Frmsizeenum{})]byte{}
	_ [52]byte  = [unsafe.Sizeof(v4l2Frmivalenum{})]byte{}
	_ [68]byte  = [unsafe.Sizeof(v4l2Queryctrl{})]byte{}
	_ [8]byte   = [unsafe.Sizeof(v4l2Control{})]byte{}
)

const (
	vidiocQuerycap           = 0x80685600
	vidiocEnumFmt            = 0xc0405602
	vidiocGCtrl              = 0xc008561b
	vidiocSCtrl              = 0xc008561c
	vidiocQueryctrl          = 0xc0445624
	vidiocEnumFramesizes     = 0xc02c564a
	vidiocEnumFrameintervals = 0xc034564b
)

const (
	v4l2CapVideoCapture = 0x00000001
	v4l2CapDeviceCaps   = 0x80000000

	v4l2FmtFlagEmulated = 0x0002

	v4l2BufTypeVideoCapture = 1

	v4l2FrmsizeTypeDiscrete   = 1
	v4l2FrmsizeTypeContinuous = 2
	v4l2FrmsizeTypeStepwise   = 3

	v4l2FrmivalTypeDiscrete   = 1
	v4l2FrmivalTypeContinuous = 2
	v4l2FrmivalTypeStepwise   = 3
)

type v4l2Capability struct {
	driver       [16]byte
	card         [32]byte
	busInfo      [32]byte
	version      uint32
	capabilities uint32
	deviceCaps   uint32
	reserved     [3]uint32
}

type v4l2Fmtdesc struct {
	index       uint32
	typ         uint32
	flags       uint32
	description [32]byte
	pixelformat uint32
	mbusCode    uint32
	reserved    [3]uint32
}

// v4l2Frmsizeenum carries a union of v4l2_frmsize_discrete (width, height)
// and v4l2_frmsize_stepwise (min/max/step width, min/max/step height).
type v4l2Frmsizeenum struct {
	index       uint32
	pixelFormat uint32
	typ         uint32
	size        [6]uint32
	reserved    [2]uint32
}

func (f *v4l2Frmsizeenum) discrete() Resolution {
	return Resolution{Width: f.size[0], Height: f.size[1]}
}

func (f *v4l2Frmsizeenum) stepwise() frameSizeSpan {
	return frameSizeSpan{
		minWidth: f.size[0], maxWidth: f.size[1], stepWidth: f.size[2],
		minHeight: f.size[3], maxHeight: f.size[4], stepHeight: f.size[5],
	}
}

// v4l2Frmivalenum carries a union of one v4l2_fract (discrete) and three
// (stepwise: min, max, step).
type v4l2Frmivalenum struct {
	index       uint32
	pixelFormat uint32
	width       uint32
	height      uint32
	typ         uint32
	interval    [6]uint32
	reserved    [2]uint32
}

func (f *v4l2Frmivalenum) fraction(i int) Fraction {
	return Fraction{Numerator: f.interval[2*i], Denominator: f.interval[2*i+1]}
}

type v4l2Queryctrl struct {
	id           uint32
	typ          uint32
	name         [32]byte
	minimum      int32
	maximum      int32
	step         int32
	defaultValue int32
	flags        uint32
	reserved     [2]uint32
}

type v4l2Control struct {
	id    uint32
	value int32
}
