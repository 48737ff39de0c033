package encoders

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/config"
	"github.com/smazurov/streamcaps/internal/events"
	"github.com/smazurov/streamcaps/internal/logging"
)

// Store holds the current catalog and swaps it atomically on reload.
// Its providers read the live snapshot on every call.
type Store struct {
	current atomic.Pointer[Catalog]
	path    string
	bus     events.Publisher
	logger  *slog.Logger

	mu      sync.Mutex
	watcher *config.Watcher[*Catalog]

	// catalogMu serializes filtering and installing a snapshot.
	catalogMu sync.Mutex
	compiled  []string
}

// NewStore wraps an already loaded catalog. bus may be nil.
func NewStore(c *Catalog, path string, bus events.Publisher) *Store {
	if bus == nil {
		bus = events.Discard
	}
	s := &Store{path: path, bus: bus, logger: logging.GetLogger("encoders")}
	s.current.Store(c)
	return s
}

// OpenStore loads path, or the built-in catalog when path is empty.
func OpenStore(path string, bus events.Publisher) (*Store, error) {
	if path == "" {
		return NewStore(Default(), "", bus), nil
	}
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewStore(c, path, bus), nil
}

// Catalog returns the current snapshot.
func (s *Store) Catalog() *Catalog {
	return s.current.Load()
}

// Replace installs c and announces it. When the store is restricted, only
// encoders with a compiled implementation are kept.
func (s *Store) Replace(c *Catalog) {
	s.catalogMu.Lock()
	if s.compiled != nil {
		c = c.Available(s.compiled)
	}
	s.current.Store(c)
	s.catalogMu.Unlock()

	s.announce(c)
}

// Restrict keeps only encoders implemented by one of compiled, the encoder
// names of the local ffmpeg, now and on every reload.
func (s *Store) Restrict(compiled []string) {
	s.catalogMu.Lock()
	s.compiled = compiled
	c := s.current.Load().Available(compiled)
	s.current.Store(c)
	s.catalogMu.Unlock()

	s.announce(c)
}

func (s *Store) announce(c *Catalog) {
	s.logger.Info("Encoder catalog loaded",
		"path", s.path,
		"video_encoders", len(c.video),
		"audio_encoders", len(c.audio))
	s.bus.Publish(events.CatalogReloadedEvent{
		Path:          s.path,
		VideoEncoders: len(c.video),
		AudioEncoders: len(c.audio),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

// Watch reloads the catalog file whenever it changes. A file that fails to
// load leaves the current catalog in place.
func (s *Store) Watch(debounce time.Duration) error {
	if s.path == "" {
		return errors.New("built-in catalog cannot be watched")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		return nil
	}

	w := config.NewConfigWatcher(s.path, Load, s.logger, config.WithDebounce[*Catalog](debounce))
	w.OnReload(s.Replace)
	if err := w.Start(); err != nil {
		return err
	}
	s.watcher = w
	return nil
}

// Close stops watching.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Stop()
	s.watcher = nil
	return err
}

// Carries reports whether container can carry identity in the current catalog.
func (s *Store) Carries(container, identity string) bool {
	return s.Catalog().Carries(container, identity)
}

// Video returns a video provider over the live snapshot.
func (s *Store) Video() capability.VideoProvider { return liveVideo{s} }

// Audio returns an audio provider over the live snapshot.
func (s *Store) Audio() capability.AudioProvider { return liveAudio{s} }

type liveVideo struct{ s *Store }

func (l liveVideo) SupportedEncoders() []string {
	return l.s.Catalog().Video().SupportedEncoders()
}

func (l liveVideo) ResolutionBounds(encoder string) (capability.ResolutionBounds, error) {
	return l.s.Catalog().Video().ResolutionBounds(encoder)
}

func (l liveVideo) FramerateBound(encoder string) (capability.FramerateRange, error) {
	return l.s.Catalog().Video().FramerateBound(encoder)
}

func (l liveVideo) BitrateRange(encoder string) (capability.BitrateRange, error) {
	return l.s.Catalog().Video().BitrateRange(encoder)
}

type liveAudio struct{ s *Store }

func (l liveAudio) SupportedEncoders() []string {
	return l.s.Catalog().Audio().SupportedEncoders()
}

func (l liveAudio) ChannelRange(encoder string) (capability.ChannelRange, error) {
	return l.s.Catalog().Audio().ChannelRange(encoder)
}

func (l liveAudio) BitrateRange(encoder string) (capability.BitrateRange, error) {
	return l.s.Catalog().Audio().BitrateRange(encoder)
}

func (l liveAudio) SampleRates(encoder string) ([]int, error) {
	return l.s.Catalog().Audio().SampleRates(encoder)
}
