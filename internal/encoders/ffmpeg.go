package encoders

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// EncoderType is the media column of `ffmpeg -encoders`.
type EncoderType string

// Encoder media types.
const (
	VideoType    EncoderType = "V"
	AudioType    EncoderType = "A"
	SubtitleType EncoderType = "S"
	UnknownType  EncoderType = "?"
)

// FFmpegEncoder is one line of `ffmpeg -encoders`.
type FFmpegEncoder struct {
	Type        EncoderType `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	HWAccel     bool        `json:"hwaccel"`
}

// ErrFFmpegNotFound is returned when no ffmpeg binary is on PATH.
var ErrFFmpegNotFound = errors.New("ffmpeg is not installed or not in PATH")

var (
	encoderLine = regexp.MustCompile(`^\s*([VASFXBD.]{6})\s+(\S+)\s+(.+)$`)
	hwaccelName = regexp.MustCompile(`(?i)(nvenc|qsv|amf|vaapi|videotoolbox|v4l2m2m|rkmpp|vulkan|mediacodec)`)
)

// ProbeFFmpeg runs `ffmpeg -hide_banner -encoders` and returns the compiled encoders.
func ProbeFFmpeg(ctx context.Context, binary string) ([]FFmpegEncoder, error) {
	if binary == "" {
		binary = "ffmpeg"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, ErrFFmpegNotFound
	}

	out, err := exec.CommandContext(ctx, path, "-hide_banner", "-encoders").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list ffmpeg encoders: %w", err)
	}
	return parseEncoderOutput(string(out))
}

// Names returns the encoder names of list.
func Names(list []FFmpegEncoder) []string {
	names := make([]string, len(list))
	for i, e := range list {
		names[i] = e.Name
	}
	return names
}

func parseEncoderOutput(output string) ([]FFmpegEncoder, error) {
	var result []FFmpegEncoder
	started := false

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		// Entries follow the " ------" line that closes the legend.
		if !started {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "------") {
				started = true
			}
			continue
		}

		matches := encoderLine.FindStringSubmatch(line)
		if len(matches) != 4 {
			continue
		}

		flags, name, description := matches[1], matches[2], strings.TrimSpace(matches[3])
		result = append(result, FFmpegEncoder{
			Type:        encoderType(flags),
			Name:        name,
			Description: description,
			HWAccel:     hwaccelName.MatchString(name) || hwaccelName.MatchString(description),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ffmpeg output: %w", err)
	}
	return result, nil
}

func encoderType(flags string) EncoderType {
	switch flags[0] {
	case 'V':
		return VideoType
	case 'A':
		return AudioType
	case 'S':
		return SubtitleType
	default:
		return UnknownType
	}
}
