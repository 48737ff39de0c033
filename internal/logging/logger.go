package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config represents logging configuration.
type Config struct {
	Level   string            `toml:"level"`
	Format  string            `toml:"format"`
	Modules map[string]string `toml:"modules"`
}

var (
	mutex       sync.RWMutex
	config      = Config{Level: "info", Format: "text"}
	output      io.Writer = os.Stdout
	useJournal            = IsJournalAvailable
	loggers               = make(map[string]*slog.Logger)
	levelVars             = make(map[string]*slog.LevelVar)
	globalLevel           = &slog.LevelVar{}
)

// Initialize applies cfg to the default logger and to every module logger,
// including those handed out before Initialize was called.
func Initialize(cfg Config) {
	mutex.Lock()
	defer mutex.Unlock()

	config = cfg
	globalLevel.Set(levelOrDefault(cfg.Level, slog.LevelInfo))

	for module, levelVar := range levelVars {
		levelVar.Set(moduleLevel(module))
		loggers[module] = slog.New(newHandler(cfg.Format, levelVar)).With("module", module)
	}

	slog.SetDefault(slog.New(newHandler(cfg.Format, globalLevel)))
}

// GetLogger returns the logger for module, creating it on first use.
func GetLogger(module string) *slog.Logger {
	mutex.RLock()
	logger, ok := loggers[module]
	mutex.RUnlock()
	if ok {
		return logger
	}

	mutex.Lock()
	defer mutex.Unlock()

	if logger, ok := loggers[module]; ok {
		return logger
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(moduleLevel(module))

	logger = slog.New(newHandler(config.Format, levelVar)).With("module", module)
	loggers[module] = logger
	levelVars[module] = levelVar
	return logger
}

// SetModuleLevel changes the level of one module at runtime.
func SetModuleLevel(module, level string) bool {
	parsed, ok := ParseLevel(level)
	if !ok {
		return false
	}

	GetLogger(module)

	mutex.Lock()
	defer mutex.Unlock()
	levelVars[module].Set(parsed)
	return true
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// moduleLevel must be called with mutex held.
func moduleLevel(module string) slog.Level {
	base := levelOrDefault(config.Level, slog.LevelInfo)
	if override, ok := config.Modules[module]; ok {
		return levelOrDefault(override, base)
	}
	return base
}

func levelOrDefault(level string, fallback slog.Level) slog.Level {
	if parsed, ok := ParseLevel(level); ok {
		return parsed
	}
	return fallback
}

// newHandler writes to the configured output and, when running under systemd, the journal.
func newHandler(format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var stdout slog.Handler
	if format == "json" {
		stdout = slog.NewJSONHandler(output, opts)
	} else {
		stdout = slog.NewTextHandler(output, opts)
	}

	if !useJournal() {
		return stdout
	}
	return NewMultiHandler(stdout, NewJournalHandler(level))
}
