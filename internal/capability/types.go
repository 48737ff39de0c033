package capability

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int `json:"width" toml:"width" example:"1920" doc:"Width in pixels"`
	Height int `json:"height" toml:"height" example:"1080" doc:"Height in pixels"`
}

// String returns the resolution as "WIDTHxHEIGHT".
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ParseResolution parses a "WIDTHxHEIGHT" string.
func ParseResolution(s string) (Resolution, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Resolution{}, fmt.Errorf("invalid resolution %q: expected WIDTHxHEIGHT", s)
	}

	width, err := strconv.Atoi(w)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution width %q: %w", w, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution height %q: %w", h, err)
	}
	if width <= 0 || height <= 0 {
		return Resolution{}, fmt.Errorf("invalid resolution %q: dimensions must be positive", s)
	}

	return Resolution{Width: width, Height: height}, nil
}

// Range is a closed integer interval [Min, Max].
type Range struct {
	Min int `json:"min" toml:"min" example:"24" doc:"Lower bound, inclusive"`
	Max int `json:"max" toml:"max" example:"60" doc:"Upper bound, inclusive"`
}

// FramerateRange is a Range in frames per second.
type FramerateRange = Range

// BitrateRange is a Range in bits per second.
type BitrateRange = Range

// ChannelRange is a Range of audio channel counts.
type ChannelRange = Range

// NewRange returns [lower, upper] or an error if lower > upper.
func NewRange(lower, upper int) (Range, error) {
	r := Range{Min: lower, Max: upper}
	if !r.Valid() {
		return Range{}, fmt.Errorf("invalid range %s: min exceeds max", r)
	}
	return r, nil
}

// Valid reports whether Min <= Max.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Contains reports whether v lies within the range, endpoints included.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// ContainsRange reports whether o is entirely inside r.
func (r Range) ContainsRange(o Range) bool {
	return o.Valid() && r.Contains(o.Min) && r.Contains(o.Max)
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// ResolutionBounds holds the independent width and height bounds of an encoder.
type ResolutionBounds struct {
	Width  Range `json:"width" toml:"width"`
	Height Range `json:"height" toml:"height"`
}

// Allows reports whether both axes of res lie within their bound.
func (b ResolutionBounds) Allows(res Resolution) bool {
	return b.Width.Contains(res.Width) && b.Height.Contains(res.Height)
}
