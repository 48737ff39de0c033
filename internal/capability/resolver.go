package capability

// Resolver intersects capture device capabilities with encoder capabilities.
//
// A Resolver holds no mutable state. Every call reads the providers at call time,
// so it is safe for concurrent use without locking.
type Resolver struct {
	video  VideoProvider
	audio  AudioProvider
	device DeviceProvider
}

// NewResolver creates a resolver over the given providers.
// A nil provider makes the operations that need it fail as if nothing were registered.
func NewResolver(video VideoProvider, audio AudioProvider, device DeviceProvider) *Resolver {
	return &Resolver{
		video:  video,
		audio:  audio,
		device: device,
	}
}

// VideoEncoders returns the video encoder identities in provider order.
func (r *Resolver) VideoEncoders() []string {
	if r.video == nil {
		return []string{}
	}
	return r.video.SupportedEncoders()
}

// AudioEncoders returns the audio encoder identities in provider order.
func (r *Resolver) AudioEncoders() []string {
	if r.audio == nil {
		return []string{}
	}
	return r.audio.SupportedEncoders()
}

// SupportedResolutions returns the native device resolutions the encoder accepts.
func (r *Resolver) SupportedResolutions(encoder string) ([]Resolution, error) {
	bounds, err := r.resolutionBounds(encoder)
	if err != nil {
		return nil, err
	}
	if r.device == nil {
		return []Resolution{}, nil
	}

	native, err := r.device.NativeOutputResolutions()
	if err != nil {
		return nil, err
	}
	return FilterResolutions(bounds, native), nil
}

// SupportedDeviceResolutions returns the resolutions of one device the encoder accepts.
func (r *Resolver) SupportedDeviceResolutions(encoder, deviceID string) ([]Resolution, error) {
	bounds, err := r.resolutionBounds(encoder)
	if err != nil {
		return nil, err
	}
	if r.device == nil {
		return nil, UnknownDevice(deviceID)
	}

	native, err := r.device.NativeDeviceResolutions(deviceID)
	if err != nil {
		return nil, err
	}
	return FilterResolutions(bounds, native), nil
}

// ResolutionsWithin filters a caller supplied native resolution list against the encoder.
func (r *Resolver) ResolutionsWithin(encoder string, native []Resolution) ([]Resolution, error) {
	bounds, err := r.resolutionBounds(encoder)
	if err != nil {
		return nil, err
	}
	return FilterResolutions(bounds, native), nil
}

// SupportedFramerates returns the device framerate ranges the encoder can fully honor.
func (r *Resolver) SupportedFramerates(encoder, deviceID string) ([]FramerateRange, error) {
	bound, err := r.framerateBound(encoder)
	if err != nil {
		return nil, err
	}
	if r.device == nil {
		return nil, UnknownDevice(deviceID)
	}

	native, err := r.device.NativeFramerateRanges(deviceID)
	if err != nil {
		return nil, err
	}
	return FilterFramerates(bound, native), nil
}

// FrameratesWithin filters caller supplied device framerate ranges against the encoder.
func (r *Resolver) FrameratesWithin(encoder string, native []FramerateRange) ([]FramerateRange, error) {
	bound, err := r.framerateBound(encoder)
	if err != nil {
		return nil, err
	}
	return FilterFramerates(bound, native), nil
}

// SupportedVideoBitrates returns the video encoder bitrate range unchanged.
func (r *Resolver) SupportedVideoBitrates(encoder string) (BitrateRange, error) {
	if r.video == nil {
		return BitrateRange{}, UnknownEncoder(encoder)
	}
	return r.video.BitrateRange(encoder)
}

// SupportedAudioBitrates returns the audio encoder bitrate range unchanged.
func (r *Resolver) SupportedAudioBitrates(encoder string) (BitrateRange, error) {
	if r.audio == nil {
		return BitrateRange{}, UnknownEncoder(encoder)
	}
	return r.audio.BitrateRange(encoder)
}

// SupportedChannelCounts returns the audio encoder channel range unchanged.
func (r *Resolver) SupportedChannelCounts(encoder string) (ChannelRange, error) {
	if r.audio == nil {
		return ChannelRange{}, UnknownEncoder(encoder)
	}
	return r.audio.ChannelRange(encoder)
}

// SupportedSampleRates returns the audio encoder sample rates in provider order.
func (r *Resolver) SupportedSampleRates(encoder string) ([]int, error) {
	if r.audio == nil {
		return nil, UnknownEncoder(encoder)
	}
	return r.audio.SampleRates(encoder)
}

func (r *Resolver) resolutionBounds(encoder string) (ResolutionBounds, error) {
	if r.video == nil {
		return ResolutionBounds{}, UnknownEncoder(encoder)
	}
	return r.video.ResolutionBounds(encoder)
}

func (r *Resolver) framerateBound(encoder string) (FramerateRange, error) {
	if r.video == nil {
		return FramerateRange{}, UnknownEncoder(encoder)
	}
	return r.video.FramerateBound(encoder)
}

// FilterResolutions keeps the resolutions whose width and height each fall inside
// their bound. The result preserves the input order and is never nil.
func FilterResolutions(bounds ResolutionBounds, native []Resolution) []Resolution {
	supported := make([]Resolution, 0, len(native))
	for _, res := range native {
		if bounds.Allows(res) {
			supported = append(supported, res)
		}
	}
	return supported
}

// FilterFramerates keeps the ranges entirely contained in bound. Partially
// overlapping ranges are dropped. The result preserves the input order and is never nil.
func FilterFramerates(bound FramerateRange, native []FramerateRange) []FramerateRange {
	supported := make([]FramerateRange, 0, len(native))
	for _, fr := range native {
		if bound.ContainsRange(fr) {
			supported = append(supported, fr)
		}
	}
	return supported
}
