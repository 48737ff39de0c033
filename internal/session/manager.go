// Package session keeps the registry of active streaming sessions: each one a
// validated configuration, an open capture backend and the settings facade
// built over both.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/capture"
	"github.com/smazurov/streamcaps/internal/config"
	"github.com/smazurov/streamcaps/internal/events"
	"github.com/smazurov/streamcaps/internal/logging"
	"github.com/smazurov/streamcaps/internal/settings"
	"github.com/smazurov/streamcaps/internal/validation"
)

// Defaults used when a session leaves a parameter unset. They are clamped
// into whatever the encoder supports.
const (
	DefaultVideoBitrate = 2_500_000
	DefaultAudioBitrate = 128_000
	DefaultSampleRate   = 48000
	DefaultChannels     = 2
)

// OpenFunc opens the capture backend of a device.
type OpenFunc func(deviceID, devicePath string, bus events.Publisher) (*capture.Camera, error)

// Options configures a Manager.
type Options struct {
	Resolver  *capability.Resolver
	Validator *validation.Validator

	// ResolvePath maps a device identity to its node.
	ResolvePath func(deviceID string) (string, error)

	// Open defaults to capture.Open.
	Open OpenFunc

	// Bus defaults to events.Discard.
	Bus events.Publisher
}

// Manager owns the sessions and their capture backends.
type Manager struct {
	resolver    *capability.Resolver
	validator   *validation.Validator
	resolvePath func(string) (string, error)
	open        OpenFunc
	bus         events.Publisher
	logger      *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty manager.
func NewManager(opts Options) *Manager {
	m := &Manager{
		resolver:    opts.Resolver,
		validator:   opts.Validator,
		resolvePath: opts.ResolvePath,
		open:        opts.Open,
		bus:         opts.Bus,
		logger:      logging.GetLogger("session"),
		sessions:    make(map[string]*Session),
	}
	if m.open == nil {
		m.open = capture.Open
	}
	if m.bus == nil {
		m.bus = events.Discard
	}
	if m.resolvePath == nil {
		m.resolvePath = func(id string) (string, error) { return id, nil }
	}
	return m
}

// Create validates cfg, opens the capture backend and registers the session.
// An invalid configuration fails with ErrInvalidConfig carrying every
// violation; resolver and backend errors are returned unchanged.
func (m *Manager) Create(cfg config.SessionConfig) (*Session, error) {
	if cfg.ID == "" {
		return nil, &Error{Code: ErrCodeInvalidConfig, Message: "session id is required"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[cfg.ID]; exists {
		return nil, &Error{Code: ErrCodeExists, Message: fmt.Sprintf("session %q already exists", cfg.ID)}
	}

	report, err := m.validator.Validate(cfg)
	if err != nil {
		return nil, err
	}
	if !report.Valid {
		return nil, invalidConfig(report)
	}

	base, err := m.streamerSettings(cfg)
	if err != nil {
		return nil, err
	}

	path, err := m.resolvePath(cfg.Device)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	camera, err := m.open(cfg.Device, path, m.bus)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:         cfg.ID,
		Config:     cfg,
		DevicePath: path,
		CreatedAt:  time.Now(),
		camera:     camera,
		settings:   settings.NewCameraStreamerSettings(base, camera),
	}
	m.sessions[cfg.ID] = s

	m.logger.Info("Session created", "session_id", cfg.ID, "device", cfg.Device, "path", path)
	m.bus.Publish(events.SessionCreatedEvent{
		SessionID: cfg.ID,
		DeviceID:  cfg.Device,
		Timestamp: s.CreatedAt.UTC().Format(time.RFC3339),
	})
	return s, nil
}

// Get returns a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, notFound(id)
	}
	return s, nil
}

// List returns the sessions sorted by ID.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Session) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Delete closes the session's capture backend and forgets the session.
// Settings facades handed out earlier fail with capability.ErrBackendUnavailable afterwards.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return notFound(id)
	}

	err := s.camera.Close()
	m.logger.Info("Session deleted", "session_id", id)
	m.bus.Publish(events.SessionClosedEvent{
		SessionID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to close capture backend of %s: %w", id, err)
	}
	return nil
}

// Close deletes every session.
func (m *Manager) Close() error {
	var errs []error
	for _, s := range m.List() {
		if err := m.Delete(s.ID); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// HandleDeviceRemoved closes the backends of sessions using the removed node.
// The sessions stay registered in StateDeviceLost until deleted.
func (m *Manager) HandleDeviceRemoved(ev events.DeviceRemovedEvent) {
	m.mu.RLock()
	var lost []*Session
	for _, s := range m.sessions {
		if s.DevicePath == ev.DevicePath {
			lost = append(lost, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range lost {
		m.logger.Warn("Capture device removed under session", "session_id", s.ID, "device", ev.DevicePath)
		if err := s.camera.Close(); err != nil {
			m.logger.Debug("Failed to close capture backend", "session_id", s.ID, "error", err)
		}
	}
}

// streamerSettings fills unset parameters with defaults the encoders accept.
func (m *Manager) streamerSettings(cfg config.SessionConfig) (*settings.Streamer, error) {
	res, err := capability.ParseResolution(cfg.Video.Resolution)
	if err != nil {
		return nil, err
	}
	videoRange, err := m.resolver.SupportedVideoBitrates(cfg.Video.Encoder)
	if err != nil {
		return nil, err
	}

	fps := cfg.Video.FPS
	if fps == 0 {
		rates, err := m.resolver.SupportedFramerates(cfg.Video.Encoder, cfg.Device)
		if err != nil {
			return nil, err
		}
		for _, r := range rates {
			fps = max(fps, r.Max)
		}
	}

	video := settings.Video{
		Encoder:      cfg.Video.Encoder,
		Resolution:   res,
		Framerate:    fps,
		Bitrate:      orDefault(cfg.Video.Bitrate, DefaultVideoBitrate, videoRange),
		BitrateRange: videoRange,
	}

	var audio *settings.Audio
	if cfg.Audio.Encoder != "" {
		audioRange, err := m.resolver.SupportedAudioBitrates(cfg.Audio.Encoder)
		if err != nil {
			return nil, err
		}
		channels, err := m.resolver.SupportedChannelCounts(cfg.Audio.Encoder)
		if err != nil {
			return nil, err
		}
		rates, err := m.resolver.SupportedSampleRates(cfg.Audio.Encoder)
		if err != nil {
			return nil, err
		}

		sampleRate := cfg.Audio.SampleRate
		if sampleRate == 0 && len(rates) > 0 {
			sampleRate = rates[0]
			if slices.Contains(rates, DefaultSampleRate) {
				sampleRate = DefaultSampleRate
			}
		}
		audio = &settings.Audio{
			Encoder:      cfg.Audio.Encoder,
			Channels:     orDefault(cfg.Audio.Channels, DefaultChannels, channels),
			SampleRate:   sampleRate,
			Bitrate:      orDefault(cfg.Audio.Bitrate, DefaultAudioBitrate, audioRange),
			BitrateRange: audioRange,
		}
	}

	return settings.NewStreamer(video, audio)
}

func orDefault(v, def int, r capability.Range) int {
	if v != 0 {
		return v
	}
	return min(max(def, r.Min), r.Max)
}
