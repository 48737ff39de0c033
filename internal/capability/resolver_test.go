package capability

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeVideo is a test implementation of VideoProvider.
type fakeVideo struct {
	encoders  []string
	bounds    map[string]ResolutionBounds
	framerate map[string]FramerateRange
	bitrate   map[string]BitrateRange
}

func (f *fakeVideo) SupportedEncoders() []string { return f.encoders }

func (f *fakeVideo) ResolutionBounds(encoder string) (ResolutionBounds, error) {
	b, ok := f.bounds[encoder]
	if !ok {
		return ResolutionBounds{}, UnknownEncoder(encoder)
	}
	return b, nil
}

func (f *fakeVideo) FramerateBound(encoder string) (FramerateRange, error) {
	r, ok := f.framerate[encoder]
	if !ok {
		return FramerateRange{}, UnknownEncoder(encoder)
	}
	return r, nil
}

func (f *fakeVideo) BitrateRange(encoder string) (BitrateRange, error) {
	r, ok := f.bitrate[encoder]
	if !ok {
		return BitrateRange{}, UnknownEncoder(encoder)
	}
	return r, nil
}

// fakeAudio is a test implementation of AudioProvider.
type fakeAudio struct {
	channels    map[string]ChannelRange
	bitrate     map[string]BitrateRange
	sampleRates map[string][]int
}

func (f *fakeAudio) SupportedEncoders() []string { return []string{"audio/mp4a-latm"} }

func (f *fakeAudio) ChannelRange(encoder string) (ChannelRange, error) {
	r, ok := f.channels[encoder]
	if !ok {
		return ChannelRange{}, UnknownEncoder(encoder)
	}
	return r, nil
}

func (f *fakeAudio) BitrateRange(encoder string) (BitrateRange, error) {
	r, ok := f.bitrate[encoder]
	if !ok {
		return BitrateRange{}, UnknownEncoder(encoder)
	}
	return r, nil
}

func (f *fakeAudio) SampleRates(encoder string) ([]int, error) {
	r, ok := f.sampleRates[encoder]
	if !ok {
		return nil, UnknownEncoder(encoder)
	}
	return r, nil
}

// fakeDevice is a test implementation of DeviceProvider.
type fakeDevice struct {
	resolutions []Resolution
	perDevice   map[string][]Resolution
	framerates  map[string][]FramerateRange
	queries     int
	mu          sync.Mutex
}

func (f *fakeDevice) NativeOutputResolutions() ([]Resolution, error) {
	f.mu.Lock()
	f.queries++
	f.mu.Unlock()
	return f.resolutions, nil
}

func (f *fakeDevice) NativeDeviceResolutions(deviceID string) ([]Resolution, error) {
	f.mu.Lock()
	f.queries++
	f.mu.Unlock()
	r, ok := f.perDevice[deviceID]
	if !ok {
		return nil, UnknownDevice(deviceID)
	}
	return r, nil
}

func (f *fakeDevice) NativeFramerateRanges(deviceID string) ([]FramerateRange, error) {
	f.mu.Lock()
	f.queries++
	f.mu.Unlock()
	r, ok := f.framerates[deviceID]
	if !ok {
		return nil, UnknownDevice(deviceID)
	}
	return r, nil
}

func newTestResolver() (*Resolver, *fakeDevice) {
	video := &fakeVideo{
		encoders: []string{"video/avc", "video/hevc"},
		bounds: map[string]ResolutionBounds{
			"video/avc":  {Width: Range{Min: 176, Max: 1920}, Height: Range{Min: 144, Max: 1088}},
			"video/hevc": {Width: Range{Min: 64, Max: 4096}, Height: Range{Min: 64, Max: 2304}},
		},
		framerate: map[string]FramerateRange{
			"video/avc":  {Min: 24, Max: 60},
			"video/hevc": {Min: 1, Max: 120},
		},
		bitrate: map[string]BitrateRange{
			"video/avc": {Min: 64000, Max: 20000000},
		},
	}
	audio := &fakeAudio{
		channels:    map[string]ChannelRange{"audio/mp4a-latm": {Min: 1, Max: 2}},
		bitrate:     map[string]BitrateRange{"audio/mp4a-latm": {Min: 8000, Max: 320000}},
		sampleRates: map[string][]int{"audio/mp4a-latm": {8000, 16000, 44100, 48000}},
	}
	device := &fakeDevice{
		resolutions: []Resolution{
			{Width: 3840, Height: 2160},
			{Width: 1920, Height: 1080},
			{Width: 160, Height: 120},
			{Width: 1280, Height: 720},
			{Width: 1920, Height: 1200},
			{Width: 640, Height: 480},
		},
		perDevice: map[string][]Resolution{
			"cam0": {{Width: 3840, Height: 2160}, {Width: 1280, Height: 720}},
			"cam1": {{Width: 1920, Height: 1080}, {Width: 640, Height: 480}},
		},
		framerates: map[string][]FramerateRange{
			"cam0": {{Min: 15, Max: 30}, {Min: 25, Max: 60}, {Min: 30, Max: 30}},
		},
	}
	return NewResolver(video, audio, device), device
}

func TestSupportedResolutions(t *testing.T) {
	resolver, _ := newTestResolver()

	got, err := resolver.SupportedResolutions("video/avc")
	if err != nil {
		t.Fatalf("SupportedResolutions failed: %v", err)
	}

	want := []Resolution{
		{Width: 1920, Height: 1080},
		{Width: 1280, Height: 720},
		{Width: 640, Height: 480},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SupportedResolutions mismatch (-want +got):\n%s", diff)
	}
}

func TestSupportedDeviceResolutionsPerDevice(t *testing.T) {
	resolver, _ := newTestResolver()

	tests := []struct {
		device string
		want   []Resolution
	}{
		{"cam0", []Resolution{{Width: 1280, Height: 720}}},
		{"cam1", []Resolution{{Width: 1920, Height: 1080}, {Width: 640, Height: 480}}},
	}
	for _, tt := range tests {
		t.Run(tt.device, func(t *testing.T) {
			got, err := resolver.SupportedDeviceResolutions("video/avc", tt.device)
			if err != nil {
				t.Fatalf("SupportedDeviceResolutions failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SupportedDeviceResolutions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolutionsWithinIsOrderedSubsequence(t *testing.T) {
	resolver, device := newTestResolver()

	for _, encoder := range resolver.VideoEncoders() {
		t.Run(encoder, func(t *testing.T) {
			got, err := resolver.ResolutionsWithin(encoder, device.resolutions)
			if err != nil {
				t.Fatalf("ResolutionsWithin failed: %v", err)
			}

			bounds, _ := resolver.video.ResolutionBounds(encoder)
			next := 0
			for _, res := range got {
				if !bounds.Width.Contains(res.Width) || !bounds.Height.Contains(res.Height) {
					t.Errorf("resolution %s outside bounds %+v", res, bounds)
				}
				for next < len(device.resolutions) && device.resolutions[next] != res {
					next++
				}
				if next == len(device.resolutions) {
					t.Fatalf("result %v is not an ordered subsequence of %v", got, device.resolutions)
				}
				next++
			}
		})
	}
}

func TestResolutionsAxesAreIndependent(t *testing.T) {
	resolver, _ := newTestResolver()

	// 1088 is a valid height and 1920 a valid width, so 1920x1088 passes even though
	// no 2-D area check is applied. 2000x100 fails on both axes.
	got, err := resolver.ResolutionsWithin("video/avc", []Resolution{{Width: 1920, Height: 1088}, {Width: 2000, Height: 100}})
	if err != nil {
		t.Fatalf("ResolutionsWithin failed: %v", err)
	}
	if diff := cmp.Diff([]Resolution{{Width: 1920, Height: 1088}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestResolutionsEmptyResultIsNotError(t *testing.T) {
	resolver, _ := newTestResolver()

	got, err := resolver.ResolutionsWithin("video/avc", []Resolution{{Width: 4096, Height: 2160}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
}

func TestSupportedFrameratesRequiresContainment(t *testing.T) {
	resolver, _ := newTestResolver()

	got, err := resolver.SupportedFramerates("video/avc", "cam0")
	if err != nil {
		t.Fatalf("SupportedFramerates failed: %v", err)
	}

	want := []FramerateRange{{Min: 25, Max: 60}, {Min: 30, Max: 30}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SupportedFramerates mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameratesWithinNoOverlap(t *testing.T) {
	resolver, _ := newTestResolver()

	got, err := resolver.FrameratesWithin("video/avc", []FramerateRange{{Min: 1, Max: 10}, {Min: 90, Max: 120}})
	if err != nil {
		t.Fatalf("FrameratesWithin failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestFilterFrameratesSkipsInvalidRanges(t *testing.T) {
	got := FilterFramerates(FramerateRange{Min: 1, Max: 60}, []FramerateRange{{Min: 40, Max: 20}, {Min: 20, Max: 40}})
	if diff := cmp.Diff([]FramerateRange{{Min: 20, Max: 40}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPassThroughOperations(t *testing.T) {
	resolver, _ := newTestResolver()

	bitrate, err := resolver.SupportedVideoBitrates("video/avc")
	if err != nil || bitrate != (BitrateRange{Min: 64000, Max: 20000000}) {
		t.Errorf("SupportedVideoBitrates = %v, %v", bitrate, err)
	}

	audioBitrate, err := resolver.SupportedAudioBitrates("audio/mp4a-latm")
	if err != nil || audioBitrate != (BitrateRange{Min: 8000, Max: 320000}) {
		t.Errorf("SupportedAudioBitrates = %v, %v", audioBitrate, err)
	}

	channels, err := resolver.SupportedChannelCounts("audio/mp4a-latm")
	if err != nil || channels != (ChannelRange{Min: 1, Max: 2}) {
		t.Errorf("SupportedChannelCounts = %v, %v", channels, err)
	}

	rates, err := resolver.SupportedSampleRates("audio/mp4a-latm")
	if err != nil {
		t.Fatalf("SupportedSampleRates failed: %v", err)
	}
	if diff := cmp.Diff([]int{8000, 16000, 44100, 48000}, rates); diff != "" {
		t.Errorf("SupportedSampleRates mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownIdentities(t *testing.T) {
	resolver, device := newTestResolver()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"resolutions", func() error { _, err := resolver.SupportedResolutions("video/unknown"); return err }, ErrUnknownEncoder},
		{"resolutions empty id", func() error { _, err := resolver.ResolutionsWithin("", nil); return err }, ErrUnknownEncoder},
		{"device resolutions encoder", func() error { _, err := resolver.SupportedDeviceResolutions("video/unknown", "cam0"); return err }, ErrUnknownEncoder},
		{"device resolutions device", func() error { _, err := resolver.SupportedDeviceResolutions("video/avc", "cam9"); return err }, ErrUnknownDevice},
		{"framerates encoder", func() error { _, err := resolver.SupportedFramerates("video/unknown", "cam0"); return err }, ErrUnknownEncoder},
		{"framerates device", func() error { _, err := resolver.SupportedFramerates("video/avc", "cam9"); return err }, ErrUnknownDevice},
		{"framerates both unknown", func() error { _, err := resolver.SupportedFramerates("video/unknown", "cam9"); return err }, ErrUnknownEncoder},
		{"video bitrate", func() error { _, err := resolver.SupportedVideoBitrates("video/hevc"); return err }, ErrUnknownEncoder},
		{"audio bitrate", func() error { _, err := resolver.SupportedAudioBitrates("audio/opus"); return err }, ErrUnknownEncoder},
		{"channels", func() error { _, err := resolver.SupportedChannelCounts("audio/opus"); return err }, ErrUnknownEncoder},
		{"sample rates", func() error { _, err := resolver.SupportedSampleRates("audio/opus"); return err }, ErrUnknownEncoder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := device.queries
			err := tt.call()
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.want == ErrUnknownEncoder && device.queries != before {
				t.Errorf("device was queried for an unknown encoder")
			}
		})
	}
}

func TestResolverIsIdempotent(t *testing.T) {
	resolver, _ := newTestResolver()

	first, err := resolver.SupportedFramerates("video/hevc", "cam0")
	if err != nil {
		t.Fatalf("SupportedFramerates failed: %v", err)
	}
	second, err := resolver.SupportedFramerates("video/hevc", "cam0")
	if err != nil {
		t.Fatalf("SupportedFramerates failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated call differs (-first +second):\n%s", diff)
	}
}

func TestResolverConcurrentUse(t *testing.T) {
	resolver, _ := newTestResolver()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := resolver.SupportedResolutions("video/avc"); err != nil {
				t.Errorf("SupportedResolutions failed: %v", err)
			}
			if _, err := resolver.SupportedFramerates("video/avc", "cam0"); err != nil {
				t.Errorf("SupportedFramerates failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestNilProviders(t *testing.T) {
	resolver := NewResolver(nil, nil, nil)

	if got := resolver.VideoEncoders(); len(got) != 0 {
		t.Errorf("expected no video encoders, got %v", got)
	}
	if _, err := resolver.SupportedResolutions("video/avc"); !errors.Is(err, ErrUnknownEncoder) {
		t.Errorf("expected ErrUnknownEncoder, got %v", err)
	}
	if _, err := resolver.SupportedChannelCounts("audio/opus"); !errors.Is(err, ErrUnknownEncoder) {
		t.Errorf("expected ErrUnknownEncoder, got %v", err)
	}
}
