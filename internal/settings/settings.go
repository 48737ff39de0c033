// Package settings composes the settings surface of a streaming session:
// generic encoder settings plus the live controls of the capture backend.
package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/smazurov/streamcaps/internal/capability"
)

// ErrBitrateOutOfRange is returned when a bitrate change falls outside the encoder's range.
var ErrBitrateOutOfRange = errors.New("bitrate out of range")

// VideoSettings are the video encoder parameters of a session.
// Only the bitrate can change while streaming.
type VideoSettings interface {
	Encoder() string
	Resolution() capability.Resolution
	Framerate() int
	Bitrate() int
	BitrateRange() capability.BitrateRange
	SetBitrate(bps int) error
}

// AudioSettings are the audio encoder parameters of a session.
type AudioSettings interface {
	Encoder() string
	Channels() int
	SampleRate() int
	Bitrate() int
	BitrateRange() capability.BitrateRange
	SetBitrate(bps int) error
}

// StreamerSettings is the generic, backend independent settings surface.
// Audio returns nil for video-only sessions.
type StreamerSettings interface {
	Video() VideoSettings
	Audio() AudioSettings
}

// Video holds the values a Streamer is built from.
type Video struct {
	Encoder      string
	Resolution   capability.Resolution
	Framerate    int
	Bitrate      int
	BitrateRange capability.BitrateRange
}

// Audio holds the values a Streamer is built from.
type Audio struct {
	Encoder      string
	Channels     int
	SampleRate   int
	Bitrate      int
	BitrateRange capability.BitrateRange
}

// Streamer is the default StreamerSettings. Bitrate updates are safe for concurrent use.
type Streamer struct {
	video *videoSettings
	audio *audioSettings
}

var _ StreamerSettings = (*Streamer)(nil)

// NewStreamer builds settings from resolved values. audio may be nil.
func NewStreamer(video Video, audio *Audio) (*Streamer, error) {
	if err := checkBitrate(video.Encoder, video.Bitrate, video.BitrateRange); err != nil {
		return nil, err
	}
	s := &Streamer{video: &videoSettings{v: video}}
	if audio != nil {
		if err := checkBitrate(audio.Encoder, audio.Bitrate, audio.BitrateRange); err != nil {
			return nil, err
		}
		s.audio = &audioSettings{a: *audio}
	}
	return s, nil
}

// Video returns the video settings.
func (s *Streamer) Video() VideoSettings { return s.video }

// Audio returns the audio settings, or nil when the session has no audio.
func (s *Streamer) Audio() AudioSettings {
	if s.audio == nil {
		return nil
	}
	return s.audio
}

func checkBitrate(encoder string, bps int, r capability.BitrateRange) error {
	if !r.Contains(bps) {
		return fmt.Errorf("%w: %s bitrate %d outside %s", ErrBitrateOutOfRange, encoder, bps, r)
	}
	return nil
}

type videoSettings struct {
	mu sync.RWMutex
	v  Video
}

func (s *videoSettings) Encoder() string { return s.v.Encoder }
func (s *videoSettings) Resolution() capability.Resolution { return s.v.Resolution }
func (s *videoSettings) Framerate() int { return s.v.Framerate }
func (s *videoSettings) BitrateRange() capability.BitrateRange { return s.v.BitrateRange }

func (s *videoSettings) Bitrate() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Bitrate
}

func (s *videoSettings) SetBitrate(bps int) error {
	if err := checkBitrate(s.v.Encoder, bps, s.v.BitrateRange); err != nil {
		return err
	}
	s.mu.Lock()
	s.v.Bitrate = bps
	s.mu.Unlock()
	return nil
}

type audioSettings struct {
	mu sync.RWMutex
	a  Audio
}

func (s *audioSettings) Encoder() string { return s.a.Encoder }
func (s *audioSettings) Channels() int { return s.a.Channels }
func (s *audioSettings) SampleRate() int { return s.a.SampleRate }
func (s *audioSettings) BitrateRange() capability.BitrateRange { return s.a.BitrateRange }

func (s *audioSettings) Bitrate() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.a.Bitrate
}

func (s *audioSettings) SetBitrate(bps int) error {
	if err := checkBitrate(s.a.Encoder, bps, s.a.BitrateRange); err != nil {
		return err
	}
	s.mu.Lock()
	s.a.Bitrate = bps
	s.mu.Unlock()
	return nil
}
