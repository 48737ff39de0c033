package encoders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/smazurov/streamcaps/internal/capability"
)

const testCatalog = `
[[video]]
identity = "video/avc"
width = { min = 320, max = 1920 }
height = { min = 240, max = 1080 }
framerate = { min = 24, max = 60 }
bitrate = { min = 500000, max = 10000000 }
ffmpeg = ["h264_vaapi", "libx264"]
containers = ["mpegts", "flv"]

[[video]]
identity = "video/hevc"
width = { min = 640, max = 3840 }
height = { min = 480, max = 2160 }
framerate = { min = 1, max = 30 }
bitrate = { min = 1000000, max = 20000000 }
ffmpeg = ["hevc_vaapi"]
containers = ["mpegts"]

[[audio]]
identity = "audio/opus"
channels = { min = 1, max = 2 }
bitrate = { min = 6000, max = 510000 }
sample_rates = [48000, 16000]
ffmpeg = ["libopus"]
containers = ["matroska"]
`

func mustParse(t *testing.T, doc string) *Catalog {
	t.Helper()
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return c
}

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()

	video := c.Video().SupportedEncoders()
	if len(video) == 0 || video[0] != "video/avc" {
		t.Errorf("default video encoders = %v, want video/avc first", video)
	}
	if _, err := c.Audio().SampleRates("audio/mp4a-latm"); err != nil {
		t.Errorf("default catalog should describe AAC: %v", err)
	}
}

func TestCatalogProviders(t *testing.T) {
	c := mustParse(t, testCatalog)

	if diff := cmp.Diff([]string{"video/avc", "video/hevc"}, c.Video().SupportedEncoders()); diff != "" {
		t.Errorf("video encoders mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"audio/opus"}, c.Audio().SupportedEncoders()); diff != "" {
		t.Errorf("audio encoders mismatch (-want +got):\n%s", diff)
	}

	bounds, err := c.Video().ResolutionBounds("video/avc")
	if err != nil {
		t.Fatal(err)
	}
	want := capability.ResolutionBounds{Width: capability.Range{Min: 320, Max: 1920}, Height: capability.Range{Min: 240, Max: 1080}}
	if bounds != want {
		t.Errorf("ResolutionBounds = %+v, want %+v", bounds, want)
	}

	fps, _ := c.Video().FramerateBound("video/hevc")
	if fps != (capability.Range{Min: 1, Max: 30}) {
		t.Errorf("FramerateBound = %v", fps)
	}

	// Sample rates keep file order; the catalog does not sort them.
	rates, _ := c.Audio().SampleRates("audio/opus")
	if diff := cmp.Diff([]int{48000, 16000}, rates); diff != "" {
		t.Errorf("SampleRates mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogUnknownEncoder(t *testing.T) {
	c := mustParse(t, testCatalog)

	calls := map[string]func(string) error{
		"ResolutionBounds": func(e string) error { _, err := c.Video().ResolutionBounds(e); return err },
		"FramerateBound":   func(e string) error { _, err := c.Video().FramerateBound(e); return err },
		"VideoBitrate":     func(e string) error { _, err := c.Video().BitrateRange(e); return err },
		"ChannelRange":     func(e string) error { _, err := c.Audio().ChannelRange(e); return err },
		"AudioBitrate":     func(e string) error { _, err := c.Audio().BitrateRange(e); return err },
		"SampleRates":      func(e string) error { _, err := c.Audio().SampleRates(e); return err },
	}
	for name, call := range calls {
		for _, id := range []string{"", "video/vp8", "audio/opus-typo"} {
			if err := call(id); !errors.Is(err, capability.ErrUnknownEncoder) {
				t.Errorf("%s(%q) error = %v, want ErrUnknownEncoder", name, id, err)
			}
		}
	}

	// An audio identity is unknown to the video provider.
	if _, err := c.Video().BitrateRange("audio/opus"); !errors.Is(err, capability.ErrUnknownEncoder) {
		t.Errorf("video lookup of audio identity error = %v", err)
	}
}

func TestCatalogLookupsReturnCopies(t *testing.T) {
	c := mustParse(t, testCatalog)

	rates, _ := c.Audio().SampleRates("audio/opus")
	rates[0] = 1

	entry, _ := c.VideoEncoder("video/avc")
	entry.FFmpeg[0] = "tampered"

	again, _ := c.Audio().SampleRates("audio/opus")
	if again[0] != 48000 {
		t.Error("mutating a returned sample-rate slice changed the catalog")
	}
	fresh, _ := c.VideoEncoder("video/avc")
	if fresh.FFmpeg[0] != "h264_vaapi" {
		t.Error("mutating a returned entry changed the catalog")
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty identity",
			doc:  "[[video]]\nwidth = {min=1,max=2}\nheight = {min=1,max=2}\nframerate = {min=1,max=2}\nbitrate = {min=1,max=2}\n",
			want: "empty identity",
		},
		{
			name: "duplicate identity",
			doc: `
[[audio]]
identity = "audio/opus"
channels = {min=1,max=2}
bitrate = {min=1,max=2}
sample_rates = [48000]
[[audio]]
identity = "audio/opus"
channels = {min=1,max=2}
bitrate = {min=1,max=2}
sample_rates = [48000]
`,
			want: "duplicate identity",
		},
		{
			name: "inverted range",
			doc:  "[[video]]\nidentity = \"v\"\nwidth = {min=10,max=2}\nheight = {min=1,max=2}\nframerate = {min=1,max=2}\nbitrate = {min=1,max=2}\n",
			want: "width [10,2]",
		},
		{
			name: "zero range",
			doc:  "[[video]]\nidentity = \"v\"\nwidth = {min=1,max=2}\nheight = {min=1,max=2}\nframerate = {min=0,max=2}\nbitrate = {min=1,max=2}\n",
			want: "framerate",
		},
		{
			name: "no sample rates",
			doc:  "[[audio]]\nidentity = \"a\"\nchannels = {min=1,max=2}\nbitrate = {min=1,max=2}\n",
			want: "no sample rates",
		},
		{
			name: "unknown key",
			doc:  "[[video]]\nidentity = \"v\"\nresolution = \"1x1\"\n",
			want: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestForContainer(t *testing.T) {
	c := mustParse(t, testCatalog)

	flv := c.ForContainer("flv")
	if diff := cmp.Diff([]string{"video/avc"}, flv.Video().SupportedEncoders()); diff != "" {
		t.Errorf("flv video mismatch (-want +got):\n%s", diff)
	}
	if got := flv.Audio().SupportedEncoders(); len(got) != 0 {
		t.Errorf("flv audio = %v, want none", got)
	}

	if all := c.ForContainer(""); len(all.Video().SupportedEncoders()) != 2 {
		t.Error("empty container should keep every encoder")
	}
}

func TestCarries(t *testing.T) {
	c := mustParse(t, testCatalog)

	tests := []struct {
		container, identity string
		want                bool
	}{
		{"flv", "video/avc", true},
		{"flv", "video/hevc", false},
		{"matroska", "audio/opus", true},
		{"mpegts", "audio/opus", false},
		{"", "video/hevc", true},
		{"", "video/unknown", false},
		{"mpegts", "", false},
	}
	for _, tt := range tests {
		if got := c.Carries(tt.container, tt.identity); got != tt.want {
			t.Errorf("Carries(%q, %q) = %v, want %v", tt.container, tt.identity, got, tt.want)
		}
	}
}

func TestAvailable(t *testing.T) {
	c := mustParse(t, testCatalog)

	avail := c.Available([]string{"libx264", "libopus", "aac"})
	if diff := cmp.Diff([]string{"video/avc"}, avail.Video().SupportedEncoders()); diff != "" {
		t.Errorf("available video mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"audio/opus"}, avail.Audio().SupportedEncoders()); diff != "" {
		t.Errorf("available audio mismatch (-want +got):\n%s", diff)
	}

	if impl, ok := c.Implementation("video/avc", []string{"libx264", "h264_vaapi"}); !ok || impl != "h264_vaapi" {
		t.Errorf("Implementation = %q, %v; want h264_vaapi by preference", impl, ok)
	}
	if _, ok := c.Implementation("video/hevc", []string{"libx264"}); ok {
		t.Error("Implementation should fail when nothing is compiled")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "encoders.toml")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(c.VideoEncoders()) != 2 || len(c.AudioEncoders()) != 1 {
		t.Errorf("Load returned %d video / %d audio", len(c.VideoEncoders()), len(c.AudioEncoders()))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}
