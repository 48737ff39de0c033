// Package validation checks a proposed session against the capability space
// the resolver computes for its device and encoders.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/config"
)

// NoCompatibleConfiguration is the message for a parameter whose resolved set is empty.
const NoCompatibleConfiguration = "no compatible configuration"

// Violation is one rejected parameter.
type Violation struct {
	Field   string `json:"field" example:"video.resolution" doc:"Offending session field"`
	Message string `json:"message" example:"1920x1080 is not supported" doc:"What is wrong"`
	Allowed string `json:"allowed,omitempty" example:"1280x720, 640x480" doc:"Values that would be accepted"`
}

// Report is the outcome of validating one session.
type Report struct {
	SessionID  string      `json:"session_id,omitempty" example:"front-cam"`
	Valid      bool        `json:"valid" doc:"True when there are no violations"`
	Violations []Violation `json:"violations" doc:"Every rejected parameter"`
}

func (r *Report) add(field, allowed, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Allowed: allowed,
	})
}

// Summary joins the violations into one line, or returns "" for a valid report.
func (r Report) Summary() string {
	if r.Valid {
		return ""
	}
	parts := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return strings.Join(parts, "; ")
}

// ContainerPolicy decides whether an output container can carry an encoder.
type ContainerPolicy interface {
	Carries(container, encoder string) bool
}

// Validator checks sessions against a resolver.
type Validator struct {
	resolver   *capability.Resolver
	containers ContainerPolicy
}

// New creates a validator. A nil containers policy skips container checks.
func New(resolver *capability.Resolver, containers ContainerPolicy) *Validator {
	return &Validator{resolver: resolver, containers: containers}
}

// Validate checks every parameter of cfg and reports all violations at once.
// Unset numeric parameters (zero) are not checked. Resolver failures such as
// an unknown encoder or device are returned as errors, not as violations.
func (v *Validator) Validate(cfg config.SessionConfig) (Report, error) {
	report := Report{SessionID: cfg.ID, Violations: []Violation{}}

	if cfg.Device == "" {
		report.add("device", "", "is required")
	}
	if cfg.Video.Encoder == "" {
		report.add("video.encoder", strings.Join(v.resolver.VideoEncoders(), ", "), "is required")
	} else if err := v.validateVideo(&report, cfg); err != nil {
		return Report{}, err
	}
	if cfg.Audio.Encoder != "" {
		if err := v.validateAudio(&report, cfg); err != nil {
			return Report{}, err
		}
	}

	report.Valid = len(report.Violations) == 0
	return report, nil
}

func (v *Validator) validateVideo(report *Report, cfg config.SessionConfig) error {
	video := cfg.Video

	var resolutions []capability.Resolution
	var err error
	if cfg.Device != "" {
		resolutions, err = v.resolver.SupportedDeviceResolutions(video.Encoder, cfg.Device)
	} else {
		resolutions, err = v.resolver.SupportedResolutions(video.Encoder)
	}
	if err != nil {
		return err
	}
	v.checkContainer(report, "video.encoder", cfg.Container, video.Encoder)

	switch res, perr := capability.ParseResolution(video.Resolution); {
	case video.Resolution == "":
		report.add("video.resolution", joinResolutions(resolutions), "is required")
	case perr != nil:
		report.add("video.resolution", "", "%v", perr)
	case len(resolutions) == 0:
		report.add("video.resolution", "", NoCompatibleConfiguration)
	case !slices.Contains(resolutions, res):
		report.add("video.resolution", joinResolutions(resolutions), "%s is not supported by %s on this device", res, video.Encoder)
	}

	if cfg.Device != "" {
		framerates, err := v.resolver.SupportedFramerates(video.Encoder, cfg.Device)
		if err != nil {
			return err
		}
		switch {
		case len(framerates) == 0:
			report.add("video.fps", "", NoCompatibleConfiguration)
		case video.FPS != 0 && !anyContains(framerates, video.FPS):
			report.add("video.fps", joinRanges(framerates), "%d fps is not supported", video.FPS)
		}
	}

	if video.Bitrate != 0 {
		bitrates, err := v.resolver.SupportedVideoBitrates(video.Encoder)
		if err != nil {
			return err
		}
		if !bitrates.Contains(video.Bitrate) {
			report.add("video.bitrate", bitrates.String(), "%d bps is out of range", video.Bitrate)
		}
	}
	return nil
}

func (v *Validator) validateAudio(report *Report, cfg config.SessionConfig) error {
	audio := cfg.Audio

	channels, err := v.resolver.SupportedChannelCounts(audio.Encoder)
	if err != nil {
		return err
	}
	v.checkContainer(report, "audio.encoder", cfg.Container, audio.Encoder)

	if audio.Channels != 0 && !channels.Contains(audio.Channels) {
		report.add("audio.channels", channels.String(), "%d channels is out of range", audio.Channels)
	}

	if audio.SampleRate != 0 {
		rates, err := v.resolver.SupportedSampleRates(audio.Encoder)
		if err != nil {
			return err
		}
		switch {
		case len(rates) == 0:
			report.add("audio.sample_rate", "", NoCompatibleConfiguration)
		case !slices.Contains(rates, audio.SampleRate):
			report.add("audio.sample_rate", joinInts(rates), "%d Hz is not supported", audio.SampleRate)
		}
	}

	if audio.Bitrate != 0 {
		bitrates, err := v.resolver.SupportedAudioBitrates(audio.Encoder)
		if err != nil {
			return err
		}
		if !bitrates.Contains(audio.Bitrate) {
			report.add("audio.bitrate", bitrates.String(), "%d bps is out of range", audio.Bitrate)
		}
	}
	return nil
}

func (v *Validator) checkContainer(report *Report, field, container, encoder string) {
	if v.containers == nil || container == "" {
		return
	}
	if !v.containers.Carries(container, encoder) {
		report.add(field, "", "%s cannot be carried in %s", encoder, container)
	}
}

func anyContains(ranges []capability.FramerateRange, fps int) bool {
	for _, r := range ranges {
		if r.Contains(fps) {
			return true
		}
	}
	return false
}

func joinResolutions(rs []capability.Resolution) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}

func joinRanges(rs []capability.FramerateRange) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
