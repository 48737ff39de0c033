package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// VideoConfig is the video half of a session definition.
type VideoConfig struct {
	Encoder    string `toml:"encoder" json:"encoder" example:"video/avc" doc:"Video encoder MIME identity"`
	Resolution string `toml:"resolution" json:"resolution" example:"1280x720" doc:"Output resolution WxH"`
	FPS        int    `toml:"fps,omitempty" json:"fps,omitempty" example:"30" doc:"Frames per second"`
	Bitrate    int    `toml:"bitrate,omitempty" json:"bitrate,omitempty" example:"2500000" doc:"Target bitrate in bits per second"`
}

// AudioConfig is the audio half of a session definition. An empty Encoder means no audio.
type AudioConfig struct {
	Encoder    string `toml:"encoder,omitempty" json:"encoder,omitempty" example:"audio/mp4a-latm" doc:"Audio encoder MIME identity"`
	Channels   int    `toml:"channels,omitempty" json:"channels,omitempty" example:"2" doc:"Channel count"`
	SampleRate int    `toml:"sample_rate,omitempty" json:"sample_rate,omitempty" example:"48000" doc:"Sample rate in Hz"`
	Bitrate    int    `toml:"bitrate,omitempty" json:"bitrate,omitempty" example:"128000" doc:"Target bitrate in bits per second"`
}

// SessionConfig describes one streaming session the orchestrator wants to run.
type SessionConfig struct {
	ID        string      `toml:"-" json:"id" example:"front-cam" doc:"Session identifier"`
	Device    string      `toml:"device" json:"device" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Stable device identifier or device path"`
	Container string      `toml:"container,omitempty" json:"container,omitempty" example:"mpegts" doc:"Output container"`
	Enabled   *bool       `toml:"enabled,omitempty" json:"enabled,omitempty" doc:"Start on boot (default true)"`
	Video     VideoConfig `toml:"video" json:"video"`
	Audio     AudioConfig `toml:"audio,omitempty" json:"audio,omitzero" required:"false"`
}

// IsEnabled reports whether the session should be started; unset means enabled.
func (s SessionConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// SessionsFile is the on-disk layout of a sessions file:
//
//	version = 1
//	[sessions.front-cam]
//	device = "usb-..."
//	[sessions.front-cam.video]
//	encoder = "video/avc"
type SessionsFile struct {
	Version  int                      `toml:"version"`
	Sessions map[string]SessionConfig `toml:"sessions"`
}

// ErrNoSessions is returned when a sessions file defines nothing.
var ErrNoSessions = errors.New("no sessions defined")

// LoadSessions reads a sessions file. A missing file is not an error and yields none.
// Sessions are returned sorted by ID with IDs filled from the table keys.
func LoadSessions(path string) ([]SessionConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions file: %w", err)
	}
	return ParseSessions(data)
}

// ParseSessions decodes a sessions document.
func ParseSessions(data []byte) ([]SessionConfig, error) {
	var file SessionsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sessions file: %w", err)
	}
	if file.Version > 1 {
		return nil, fmt.Errorf("unsupported sessions file version %d", file.Version)
	}

	sessions := make([]SessionConfig, 0, len(file.Sessions))
	for id, s := range file.Sessions {
		if s.Device == "" {
			return nil, fmt.Errorf("session %s: device identifier cannot be empty", id)
		}
		s.ID = id
		sessions = append(sessions, s)
	}
	slices.SortFunc(sessions, func(a, b SessionConfig) int {
		return strings.Compare(a.ID, b.ID)
	})
	return sessions, nil
}
