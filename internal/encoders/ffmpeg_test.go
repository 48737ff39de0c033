package encoders

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleEncoders = `Encoders:
 V..... = Video
 A..... = Audio
 S..... = Subtitle
 .F.... = Frame-level multithreading
 ..S... = Slice-level multithreading
 ...X.. = Codec is experimental
 ....B. = Supports draw_horiz_band
 .....D = Supports direct rendering method 1
 ------
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (codec h264)
 V....D h264_vaapi           H.264/AVC (VAAPI) (codec h264)
 V....D hevc_rkmpp           Rockchip MPP (Media Process Platform) HEVC encoder (codec hevc)
 A....D aac                  AAC (Advanced Audio Coding)
 A....D libopus              libopus Opus (codec opus)
 S..... srt                  SubRip subtitle
`

func TestParseEncoderOutput(t *testing.T) {
	got, err := parseEncoderOutput(sampleEncoders)
	if err != nil {
		t.Fatalf("parseEncoderOutput failed: %v", err)
	}

	want := []FFmpegEncoder{
		{Type: VideoType, Name: "libx264", Description: "libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (codec h264)"},
		{Type: VideoType, Name: "h264_vaapi", Description: "H.264/AVC (VAAPI) (codec h264)", HWAccel: true},
		{Type: VideoType, Name: "hevc_rkmpp", Description: "Rockchip MPP (Media Process Platform) HEVC encoder (codec hevc)", HWAccel: true},
		{Type: AudioType, Name: "aac", Description: "AAC (Advanced Audio Coding)"},
		{Type: AudioType, Name: "libopus", Description: "libopus Opus (codec opus)"},
		{Type: SubtitleType, Name: "srt", Description: "SubRip subtitle"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseEncoderOutput mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"libx264", "h264_vaapi", "hevc_rkmpp", "aac", "libopus", "srt"}, Names(got)); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEncoderOutputSkipsLegend(t *testing.T) {
	got, err := parseEncoderOutput(" V..... = Video\n A..... = Audio\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("legend lines parsed as encoders: %+v", got)
	}
}

func TestCatalogAvailableFromProbe(t *testing.T) {
	parsed, err := parseEncoderOutput(sampleEncoders)
	if err != nil {
		t.Fatal(err)
	}
	avail := Default().Available(Names(parsed))

	if diff := cmp.Diff([]string{"video/avc", "video/hevc"}, avail.Video().SupportedEncoders()); diff != "" {
		t.Errorf("available video mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"audio/mp4a-latm", "audio/opus"}, avail.Audio().SupportedEncoders()); diff != "" {
		t.Errorf("available audio mismatch (-want +got):\n%s", diff)
	}
}
