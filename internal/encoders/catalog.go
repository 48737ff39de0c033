package encoders

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/streamcaps/internal/capability"
)

//go:embed catalog.toml
var defaultCatalog []byte

// VideoEncoder is one video catalog entry.
type VideoEncoder struct {
	Identity   string           `toml:"identity" json:"identity" example:"video/avc" doc:"Encoder MIME identity"`
	Name       string           `toml:"name" json:"name" example:"H.264 / AVC" doc:"Display name"`
	Width      capability.Range `toml:"width" json:"width" doc:"Supported widths in pixels"`
	Height     capability.Range `toml:"height" json:"height" doc:"Supported heights in pixels"`
	Framerate  capability.Range `toml:"framerate" json:"framerate" doc:"Supported frames per second"`
	Bitrate    capability.Range `toml:"bitrate" json:"bitrate" doc:"Supported bitrates in bits per second"`
	FFmpeg     []string         `toml:"ffmpeg" json:"ffmpeg" doc:"FFmpeg implementations in preference order"`
	Containers []string         `toml:"containers" json:"containers" doc:"Containers that can carry this codec"`
}

// AudioEncoder is one audio catalog entry.
type AudioEncoder struct {
	Identity    string           `toml:"identity" json:"identity" example:"audio/mp4a-latm" doc:"Encoder MIME identity"`
	Name        string           `toml:"name" json:"name" example:"AAC" doc:"Display name"`
	Channels    capability.Range `toml:"channels" json:"channels" doc:"Supported channel counts"`
	Bitrate     capability.Range `toml:"bitrate" json:"bitrate" doc:"Supported bitrates in bits per second"`
	SampleRates []int            `toml:"sample_rates" json:"sample_rates" doc:"Accepted sample rates in Hz"`
	FFmpeg      []string         `toml:"ffmpeg" json:"ffmpeg" doc:"FFmpeg implementations in preference order"`
	Containers  []string         `toml:"containers" json:"containers" doc:"Containers that can carry this codec"`
}

// Catalog is an immutable set of encoder capabilities keyed by identity.
// Entries keep file order, which is the order encoders are reported in.
type Catalog struct {
	video []VideoEncoder
	audio []AudioEncoder
}

type catalogFile struct {
	Video []VideoEncoder `toml:"video"`
	Audio []AudioEncoder `toml:"audio"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in encoder catalog is invalid: %v", err))
	}
	return c
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encoder catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse encoder catalog: %w", err)
	}

	c := &Catalog{video: file.Video, audio: file.Audio}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	seen := make(map[string]bool)

	checkIdentity := func(media string, i int, id string) {
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("%s[%d]: empty identity", media, i))
		case seen[id]:
			errs = append(errs, fmt.Errorf("%s[%d]: duplicate identity %q", media, i, id))
		}
		seen[id] = true
	}
	checkRange := func(id, field string, r capability.Range) {
		if !r.Valid() || r.Min <= 0 {
			errs = append(errs, fmt.Errorf("%s: %s %s must be positive with min <= max", id, field, r))
		}
	}

	for i, v := range c.video {
		checkIdentity("video", i, v.Identity)
		checkRange(v.Identity, "width", v.Width)
		checkRange(v.Identity, "height", v.Height)
		checkRange(v.Identity, "framerate", v.Framerate)
		checkRange(v.Identity, "bitrate", v.Bitrate)
	}
	for i, a := range c.audio {
		checkIdentity("audio", i, a.Identity)
		checkRange(a.Identity, "channels", a.Channels)
		checkRange(a.Identity, "bitrate", a.Bitrate)
		if len(a.SampleRates) == 0 {
			errs = append(errs, fmt.Errorf("%s: no sample rates", a.Identity))
		}
		for _, rate := range a.SampleRates {
			if rate <= 0 {
				errs = append(errs, fmt.Errorf("%s: sample rate %d must be positive", a.Identity, rate))
			}
		}
	}

	return errors.Join(errs...)
}

// VideoEncoders returns a copy of the video entries.
func (c *Catalog) VideoEncoders() []VideoEncoder {
	out := make([]VideoEncoder, len(c.video))
	for i, v := range c.video {
		out[i] = v.clone()
	}
	return out
}

// AudioEncoders returns a copy of the audio entries.
func (c *Catalog) AudioEncoders() []AudioEncoder {
	out := make([]AudioEncoder, len(c.audio))
	for i, a := range c.audio {
		out[i] = a.clone()
	}
	return out
}

// VideoEncoder looks up one video entry by identity.
func (c *Catalog) VideoEncoder(identity string) (VideoEncoder, error) {
	if identity != "" {
		for _, v := range c.video {
			if v.Identity == identity {
				return v.clone(), nil
			}
		}
	}
	return VideoEncoder{}, capability.UnknownEncoder(identity)
}

// AudioEncoder looks up one audio entry by identity.
func (c *Catalog) AudioEncoder(identity string) (AudioEncoder, error) {
	if identity != "" {
		for _, a := range c.audio {
			if a.Identity == identity {
				return a.clone(), nil
			}
		}
	}
	return AudioEncoder{}, capability.UnknownEncoder(identity)
}

// ForContainer keeps the encoders the container can carry. An empty name keeps all.
func (c *Catalog) ForContainer(container string) *Catalog {
	if container == "" {
		return c
	}
	return c.filter(
		func(v VideoEncoder) bool { return slices.Contains(v.Containers, container) },
		func(a AudioEncoder) bool { return slices.Contains(a.Containers, container) },
	)
}

// Carries reports whether container can carry the encoder identity. An empty
// container carries everything; an unknown identity is carried by none.
func (c *Catalog) Carries(container, identity string) bool {
	if v, err := c.VideoEncoder(identity); err == nil {
		return container == "" || slices.Contains(v.Containers, container)
	}
	if a, err := c.AudioEncoder(identity); err == nil {
		return container == "" || slices.Contains(a.Containers, container)
	}
	return false
}

// Available keeps encoders with at least one implementation in compiled,
// the encoder names reported by the local ffmpeg.
func (c *Catalog) Available(compiled []string) *Catalog {
	set := make(map[string]bool, len(compiled))
	for _, name := range compiled {
		set[name] = true
	}
	has := func(impls []string) bool {
		for _, impl := range impls {
			if set[impl] {
				return true
			}
		}
		return false
	}
	return c.filter(
		func(v VideoEncoder) bool { return has(v.FFmpeg) },
		func(a AudioEncoder) bool { return has(a.FFmpeg) },
	)
}

// Implementation returns the first ffmpeg implementation of identity found in compiled.
func (c *Catalog) Implementation(identity string, compiled []string) (string, bool) {
	var impls []string
	if v, err := c.VideoEncoder(identity); err == nil {
		impls = v.FFmpeg
	} else if a, err := c.AudioEncoder(identity); err == nil {
		impls = a.FFmpeg
	}
	for _, impl := range impls {
		if slices.Contains(compiled, impl) {
			return impl, true
		}
	}
	return "", false
}

func (c *Catalog) filter(keepVideo func(VideoEncoder) bool, keepAudio func(AudioEncoder) bool) *Catalog {
	out := &Catalog{}
	for _, v := range c.video {
		if keepVideo(v) {
			out.video = append(out.video, v)
		}
	}
	for _, a := range c.audio {
		if keepAudio(a) {
			out.audio = append(out.audio, a)
		}
	}
	return out
}

// Video returns the catalog as a video capability provider.
func (c *Catalog) Video() capability.VideoProvider { return videoProvider{c} }

// Audio returns the catalog as an audio capability provider.
func (c *Catalog) Audio() capability.AudioProvider { return audioProvider{c} }

func (v VideoEncoder) clone() VideoEncoder {
	v.FFmpeg = slices.Clone(v.FFmpeg)
	v.Containers = slices.Clone(v.Containers)
	return v
}

func (a AudioEncoder) clone() AudioEncoder {
	a.SampleRates = slices.Clone(a.SampleRates)
	a.FFmpeg = slices.Clone(a.FFmpeg)
	a.Containers = slices.Clone(a.Containers)
	return a
}

type videoProvider struct{ c *Catalog }

func (p videoProvider) SupportedEncoders() []string {
	ids := make([]string, len(p.c.video))
	for i, v := range p.c.video {
		ids[i] = v.Identity
	}
	return ids
}

func (p videoProvider) ResolutionBounds(encoder string) (capability.ResolutionBounds, error) {
	v, err := p.c.VideoEncoder(encoder)
	if err != nil {
		return capability.ResolutionBounds{}, err
	}
	return capability.ResolutionBounds{Width: v.Width, Height: v.Height}, nil
}

func (p videoProvider) FramerateBound(encoder string) (capability.FramerateRange, error) {
	v, err := p.c.VideoEncoder(encoder)
	if err != nil {
		return capability.FramerateRange{}, err
	}
	return v.Framerate, nil
}

func (p videoProvider) BitrateRange(encoder string) (capability.BitrateRange, error) {
	v, err := p.c.VideoEncoder(encoder)
	if err != nil {
		return capability.BitrateRange{}, err
	}
	return v.Bitrate, nil
}

type audioProvider struct{ c *Catalog }

func (p audioProvider) SupportedEncoders() []string {
	ids := make([]string, len(p.c.audio))
	for i, a := range p.c.audio {
		ids[i] = a.Identity
	}
	return ids
}

func (p audioProvider) ChannelRange(encoder string) (capability.ChannelRange, error) {
	a, err := p.c.AudioEncoder(encoder)
	if err != nil {
		return capability.ChannelRange{}, err
	}
	return a.Channels, nil
}

func (p audioProvider) BitrateRange(encoder string) (capability.BitrateRange, error) {
	a, err := p.c.AudioEncoder(encoder)
	if err != nil {
		return capability.BitrateRange{}, err
	}
	return a.Bitrate, nil
}

func (p audioProvider) SampleRates(encoder string) ([]int, error) {
	a, err := p.c.AudioEncoder(encoder)
	if err != nil {
		return nil, err
	}
	return a.SampleRates, nil
}
