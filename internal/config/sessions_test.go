package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSessions(t *testing.T) {
	doc := `
version = 1

[sessions.rear]
device = "/dev/video2"
enabled = false

[sessions.rear.video]
encoder = "video/hevc"
resolution = "1920x1080"

[sessions.front]
device = "usb-046d_HD_Pro_Webcam_C920-video-index0"
container = "mpegts"

[sessions.front.video]
encoder = "video/avc"
resolution = "1280x720"
fps = 30
bitrate = 2500000

[sessions.front.audio]
encoder = "audio/mp4a-latm"
channels = 2
sample_rate = 48000
bitrate = 128000
`
	sessions, err := ParseSessions([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSessions failed: %v", err)
	}

	disabled := false
	want := []SessionConfig{
		{
			ID:        "front",
			Device:    "usb-046d_HD_Pro_Webcam_C920-video-index0",
			Container: "mpegts",
			Video:     VideoConfig{Encoder: "video/avc", Resolution: "1280x720", FPS: 30, Bitrate: 2500000},
			Audio:     AudioConfig{Encoder: "audio/mp4a-latm", Channels: 2, SampleRate: 48000, Bitrate: 128000},
		},
		{
			ID:      "rear",
			Device:  "/dev/video2",
			Enabled: &disabled,
			Video:   VideoConfig{Encoder: "video/hevc", Resolution: "1920x1080"},
		},
	}
	if diff := cmp.Diff(want, sessions); diff != "" {
		t.Errorf("ParseSessions mismatch (-want +got):\n%s", diff)
	}

	if !sessions[0].IsEnabled() {
		t.Error("session without enabled key should be enabled")
	}
	if sessions[1].IsEnabled() {
		t.Error("session with enabled = false should be disabled")
	}
}

func TestParseSessionsErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing device", "[sessions.a.video]\nencoder = \"video/avc\"\n", "device identifier cannot be empty"},
		{"future version", "version = 2\n", "unsupported sessions file version"},
		{"bad toml", "[sessions.a\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSessions([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseSessions error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadSessionsMissingFile(t *testing.T) {
	sessions, err := LoadSessions(filepath.Join(t.TempDir(), "sessions.toml"))
	if err != nil || len(sessions) != 0 {
		t.Errorf("LoadSessions(missing) = %v, %v; want empty, nil", sessions, err)
	}
}
