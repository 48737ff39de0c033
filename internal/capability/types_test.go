package capability

import (
	"errors"
	"fmt"
	"testing"
)

func TestRangeContains(t *testing.T) {
	r := Range{Min: 24, Max: 60}

	tests := []struct {
		value int
		want  bool
	}{
		{23, false},
		{24, true},
		{30, true},
		{60, true},
		{61, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.value); got != tt.want {
			t.Errorf("%s.Contains(%d) = %v, want %v", r, tt.value, got, tt.want)
		}
	}
}

func TestRangeContainsRange(t *testing.T) {
	encoder := Range{Min: 24, Max: 60}

	tests := []struct {
		device Range
		want   bool
	}{
		{Range{Min: 15, Max: 30}, false},
		{Range{Min: 25, Max: 60}, true},
		{Range{Min: 30, Max: 30}, true},
		{Range{Min: 24, Max: 61}, false},
		{Range{Min: 50, Max: 40}, false},
	}

	for _, tt := range tests {
		if got := encoder.ContainsRange(tt.device); got != tt.want {
			t.Errorf("%s.ContainsRange(%s) = %v, want %v", encoder, tt.device, got, tt.want)
		}
	}
}

func TestNewRange(t *testing.T) {
	if _, err := NewRange(10, 5); err == nil {
		t.Error("expected error for min > max")
	}

	r, err := NewRange(5, 5)
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}
	if r.String() != "[5,5]" {
		t.Errorf("unexpected string %q", r.String())
	}
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		input   string
		want    Resolution
		wantErr bool
	}{
		{"1920x1080", Resolution{Width: 1920, Height: 1080}, false},
		{" 1280X720 ", Resolution{Width: 1280, Height: 720}, false},
		{"1920", Resolution{}, true},
		{"axb", Resolution{}, true},
		{"0x720", Resolution{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseResolution(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseResolution(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseResolution(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestErrorMatchingByCode(t *testing.T) {
	err := fmt.Errorf("lookup: %w", UnknownEncoder("video/vp8"))

	if !errors.Is(err, ErrUnknownEncoder) {
		t.Error("wrapped UnknownEncoder should match ErrUnknownEncoder")
	}
	if errors.Is(err, ErrUnknownDevice) {
		t.Error("UnknownEncoder should not match ErrUnknownDevice")
	}

	cause := errors.New("no such device")
	unavailable := BackendUnavailable("camera closed", cause)
	if !errors.Is(unavailable, ErrBackendUnavailable) || !errors.Is(unavailable, cause) {
		t.Error("BackendUnavailable should match its sentinel and its cause")
	}

	var capErr *Error
	if !errors.As(err, &capErr) || capErr.Code != ErrCodeUnknownEncoder {
		t.Errorf("expected *Error with code %s, got %v", ErrCodeUnknownEncoder, capErr)
	}
}
