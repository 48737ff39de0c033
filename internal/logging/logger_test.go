package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// resetForTest clears package state and captures output in buf.
func resetForTest(t *testing.T, buf *bytes.Buffer) {
	t.Helper()

	mutex.Lock()
	loggers = make(map[string]*slog.Logger)
	levelVars = make(map[string]*slog.LevelVar)
	config = Config{Level: "info", Format: "text"}
	output = buf
	useJournal = func() bool { return false }
	mutex.Unlock()
}

func TestModuleLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	resetForTest(t, &buf)

	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"capture": "debug",
			"api":     "warn",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"capture", true, true, true},
		{"api", false, false, true},
		{"encoders", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			handler := GetLogger(tt.module).Handler()
			ctx := context.Background()

			if got := handler.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("Debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := handler.Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("Info enabled = %v, want %v", got, tt.wantInfo)
			}
			if got := handler.Enabled(ctx, slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("Warn enabled = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	var buf bytes.Buffer
	resetForTest(t, &buf)

	early := GetLogger("devices")
	if early.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("logger created before Initialize should default to info")
	}

	Initialize(Config{Level: "info", Modules: map[string]string{"devices": "debug"}})

	if !early.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Initialize should retune loggers handed out earlier")
	}
}

func TestModuleAttributeWritten(t *testing.T) {
	var buf bytes.Buffer
	resetForTest(t, &buf)
	Initialize(Config{Level: "debug", Format: "text"})

	GetLogger("session").Debug("Session created", "session_id", "s1")

	out := buf.String()
	for _, want := range []string{"module=session", "session_id=s1", "Session created", "level=DEBUG"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSetModuleLevel(t *testing.T) {
	var buf bytes.Buffer
	resetForTest(t, &buf)
	Initialize(Config{Level: "info"})

	logger := GetLogger("api")
	if !SetModuleLevel("api", "error") {
		t.Fatal("SetModuleLevel rejected a valid level")
	}
	if logger.Handler().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be disabled after raising level to error")
	}
	if SetModuleLevel("api", "verbose") {
		t.Error("SetModuleLevel accepted an unknown level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"trace", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMultiHandlerRespectsEachLevel(t *testing.T) {
	var buf bytes.Buffer

	debugHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	infoHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(NewMultiHandler(debugHandler, infoHandler))

	logger.Debug("debug only message")
	logger.Info("info message")

	out := buf.String()
	if n := strings.Count(out, "debug only message"); n != 1 {
		t.Errorf("expected debug message once, got %d: %s", n, out)
	}
	if n := strings.Count(out, "info message"); n != 2 {
		t.Errorf("expected info message twice, got %d: %s", n, out)
	}
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("boom") }

func TestMultiHandlerContinuesAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, nil)
	multi := NewMultiHandler(failingHandler{text}, text)

	err := slog.New(multi).Handler().Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still written", 0))
	if err == nil {
		t.Error("expected joined error from failing handler")
	}
	if !strings.Contains(buf.String(), "still written") {
		t.Errorf("second handler did not receive record: %s", buf.String())
	}
}
