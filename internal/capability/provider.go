package capability

// VideoProvider answers video encoder capability queries.
// Every lookup fails with ErrUnknownEncoder for an unrecognized or empty identity.
type VideoProvider interface {
	SupportedEncoders() []string
	ResolutionBounds(encoder string) (ResolutionBounds, error)
	FramerateBound(encoder string) (FramerateRange, error)
	BitrateRange(encoder string) (BitrateRange, error)
}

// AudioProvider answers audio encoder capability queries.
// Every lookup fails with ErrUnknownEncoder for an unrecognized or empty identity.
type AudioProvider interface {
	SupportedEncoders() []string
	ChannelRange(encoder string) (ChannelRange, error)
	BitrateRange(encoder string) (BitrateRange, error)
	// SampleRates returns accepted sample rates in Hz, ascending by convention.
	SampleRates(encoder string) ([]int, error)
}

// DeviceProvider answers capture device capability queries.
type DeviceProvider interface {
	// NativeOutputResolutions returns the sizes the capture devices can produce, in device order.
	NativeOutputResolutions() ([]Resolution, error)

	// NativeDeviceResolutions returns the sizes one device can produce.
	// It fails with ErrUnknownDevice for an unrecognized identity.
	NativeDeviceResolutions(deviceID string) ([]Resolution, error)

	// NativeFramerateRanges returns the framerate ranges of one device.
	// It fails with ErrUnknownDevice for an unrecognized identity.
	NativeFramerateRanges(deviceID string) ([]FramerateRange, error)
}
