package settings

import (
	"errors"
	"testing"

	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/capture"
)

// countingBackend records how often the facade asks for a view.
type countingBackend struct {
	capture.Backend
	calls int
	err   error
}

func (b *countingBackend) ControlSettings() (capture.ControlSettings, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	return b.Backend.ControlSettings()
}

func newStreamer(t *testing.T) *Streamer {
	t.Helper()
	s, err := NewStreamer(
		Video{
			Encoder:      "video/avc",
			Resolution:   capability.Resolution{Width: 1280, Height: 720},
			Framerate:    30,
			Bitrate:      2_000_000,
			BitrateRange: capability.Range{Min: 100_000, Max: 8_000_000},
		},
		&Audio{
			Encoder:      "audio/opus",
			Channels:     2,
			SampleRate:   48000,
			Bitrate:      96_000,
			BitrateRange: capability.Range{Min: 6_000, Max: 510_000},
		},
	)
	if err != nil {
		t.Fatalf("NewStreamer failed: %v", err)
	}
	return s
}

func TestControlSettingsSharesLiveBackend(t *testing.T) {
	cam := capture.NewCamera("usb-cam", capture.NewMemoryDevice(), nil)
	facade := NewCameraStreamerSettings(newStreamer(t), cam)

	first, err := facade.ControlSettings()
	if err != nil {
		t.Fatal(err)
	}
	second, err := facade.ControlSettings()
	if err != nil {
		t.Fatal(err)
	}

	z1, _ := first.Zoom()
	z2, _ := second.Zoom()
	f1, _ := first.Focus()
	f2, _ := second.Focus()
	if z1 != z2 || f1 != f2 {
		t.Fatalf("views differ without a write: zoom %d/%d focus %d/%d", z1, z2, f1, f2)
	}

	if err := first.SetZoom(300); err != nil {
		t.Fatal(err)
	}
	if got, _ := second.Zoom(); got != 300 {
		t.Errorf("second view Zoom() = %d, want 300", got)
	}
}

func TestControlSettingsIsPureDelegation(t *testing.T) {
	backend := &countingBackend{Backend: capture.NewCamera("usb-cam", capture.NewMemoryDevice(), nil)}
	facade := NewCameraStreamerSettings(newStreamer(t), backend)

	for range 3 {
		if _, err := facade.ControlSettings(); err != nil {
			t.Fatal(err)
		}
	}
	if backend.calls != 3 {
		t.Errorf("backend asked %d times, want 3", backend.calls)
	}
}

func TestControlSettingsPropagatesBackendError(t *testing.T) {
	want := errors.New("backend torn down")
	facade := NewCameraStreamerSettings(newStreamer(t), &countingBackend{err: want})

	if _, err := facade.ControlSettings(); err != want {
		t.Errorf("ControlSettings() error = %v, want the backend's error unchanged", err)
	}
}

func TestControlSettingsAfterBackendClose(t *testing.T) {
	cam := capture.NewCamera("usb-cam", capture.NewMemoryDevice(), nil)
	facade := NewCameraStreamerSettings(newStreamer(t), cam)
	view, err := facade.ControlSettings()
	if err != nil {
		t.Fatal(err)
	}

	if err := cam.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := facade.ControlSettings(); !errors.Is(err, capability.ErrBackendUnavailable) {
		t.Errorf("ControlSettings() after close error = %v, want ErrBackendUnavailable", err)
	}
	if _, err := view.Zoom(); !errors.Is(err, capability.ErrBackendUnavailable) {
		t.Errorf("Zoom() on stale view error = %v, want ErrBackendUnavailable", err)
	}
}

func TestNilBackend(t *testing.T) {
	facade := NewCameraStreamerSettings(newStreamer(t), nil)
	if _, err := facade.ControlSettings(); !errors.Is(err, capability.ErrBackendUnavailable) {
		t.Errorf("ControlSettings() error = %v, want ErrBackendUnavailable", err)
	}
}

func TestFacadeExposesStreamerSettings(t *testing.T) {
	base := newStreamer(t)
	facade := NewCameraStreamerSettings(base, nil)

	if facade.Video().Encoder() != "video/avc" || facade.Video().Framerate() != 30 {
		t.Errorf("Video() = %s@%d", facade.Video().Encoder(), facade.Video().Framerate())
	}
	if facade.Audio().SampleRate() != 48000 || facade.Audio().Channels() != 2 {
		t.Errorf("Audio() = %d Hz, %d ch", facade.Audio().SampleRate(), facade.Audio().Channels())
	}

	if err := facade.Video().SetBitrate(4_000_000); err != nil {
		t.Fatal(err)
	}
	if base.Video().Bitrate() != 4_000_000 {
		t.Error("bitrate change through the facade not visible on the base settings")
	}
}

func TestSetBitrate(t *testing.T) {
	s := newStreamer(t)

	tests := []struct {
		name    string
		set     func(int) error
		get     func() int
		bps     int
		wantErr bool
	}{
		{"video in range", s.Video().SetBitrate, s.Video().Bitrate, 5_000_000, false},
		{"video at max", s.Video().SetBitrate, s.Video().Bitrate, 8_000_000, false},
		{"video above max", s.Video().SetBitrate, s.Video().Bitrate, 8_000_001, true},
		{"audio at min", s.Audio().SetBitrate, s.Audio().Bitrate, 6_000, false},
		{"audio below min", s.Audio().SetBitrate, s.Audio().Bitrate, 5_999, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.get()
			err := tt.set(tt.bps)
			if tt.wantErr {
				if !errors.Is(err, ErrBitrateOutOfRange) {
					t.Errorf("error = %v, want ErrBitrateOutOfRange", err)
				}
				if tt.get() != before {
					t.Error("rejected bitrate was applied")
				}
				return
			}
			if err != nil || tt.get() != tt.bps {
				t.Errorf("SetBitrate(%d) = %v, bitrate now %d", tt.bps, err, tt.get())
			}
		})
	}
}

func TestNewStreamerRejectsBitrate(t *testing.T) {
	_, err := NewStreamer(Video{Encoder: "video/avc", Bitrate: 10, BitrateRange: capability.Range{Min: 100, Max: 200}}, nil)
	if !errors.Is(err, ErrBitrateOutOfRange) {
		t.Errorf("error = %v, want ErrBitrateOutOfRange", err)
	}
}

func TestVideoOnlyStreamer(t *testing.T) {
	s, err := NewStreamer(Video{Encoder: "video/avc", Bitrate: 150, BitrateRange: capability.Range{Min: 100, Max: 200}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Audio() != nil {
		t.Error("Audio() should be nil for a video-only session")
	}
}
