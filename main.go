package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/streamcaps/cmd"
	"github.com/smazurov/streamcaps/internal/api"
	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/config"
	"github.com/smazurov/streamcaps/internal/devices"
	"github.com/smazurov/streamcaps/internal/encoders"
	"github.com/smazurov/streamcaps/internal/events"
	"github.com/smazurov/streamcaps/internal/logging"
	"github.com/smazurov/streamcaps/internal/metrics/collectors"
	"github.com/smazurov/streamcaps/internal/metrics/exporters"
	"github.com/smazurov/streamcaps/internal/session"
	"github.com/smazurov/streamcaps/internal/systemd"
	"github.com/smazurov/streamcaps/internal/validation"
	"github.com/smazurov/streamcaps/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port       string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`
	CORSOrigin string `help:"Allowed CORS origin" default:"*" toml:"server.cors_origin" env:"SERVER_CORS_ORIGIN"`

	// Encoder catalog settings
	EncodersCatalog string `help:"Encoder catalog file, empty for the built-in catalog" default:"" toml:"encoders.catalog" env:"ENCODERS_CATALOG"`
	EncodersWatch   bool   `help:"Reload the catalog file when it changes" default:"true" toml:"encoders.watch" env:"ENCODERS_WATCH"`
	EncodersProbe   bool   `help:"Keep only encoders the local ffmpeg implements" default:"false" toml:"encoders.probe_ffmpeg" env:"ENCODERS_PROBE_FFMPEG"`
	FFmpegBinary    string `help:"ffmpeg binary used for probing" default:"ffmpeg" toml:"encoders.ffmpeg" env:"ENCODERS_FFMPEG"`

	// Session settings
	SessionsFile string `help:"Sessions opened at startup" default:"sessions.toml" toml:"sessions.file" env:"SESSIONS_FILE"`

	// Metrics settings
	MetricsPrometheusEnabled bool `help:"Serve Prometheus metrics on /metrics" default:"true" toml:"metrics.prometheus_enabled" env:"METRICS_PROMETHEUS_ENABLED"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel    string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat   string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingAPI      string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingCapture  string `help:"Capture logging level" default:"info" toml:"logging.capture" env:"LOGGING_CAPTURE"`
	LoggingDevices  string `help:"Devices logging level" default:"info" toml:"logging.devices" env:"LOGGING_DEVICES"`
	LoggingEncoders string `help:"Encoders logging level" default:"info" toml:"logging.encoders" env:"LOGGING_ENCODERS"`
	LoggingSession  string `help:"Session logging level" default:"info" toml:"logging.session" env:"LOGGING_SESSION"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"api":      opts.LoggingAPI,
				"capture":  opts.LoggingCapture,
				"devices":  opts.LoggingDevices,
				"encoders": opts.LoggingEncoders,
				"session":  opts.LoggingSession,
			},
		})
		logger := logging.GetLogger("main")
		logger.Info("Starting", "version", version.String())

		eventBus := events.New()
		metricsCollector := collectors.NewEventCollector(eventBus)

		store, err := encoders.OpenStore(opts.EncodersCatalog, eventBus)
		if err != nil {
			logger.Error("Failed to load encoder catalog", "path", opts.EncodersCatalog, "error", err)
			os.Exit(1)
		}
		if opts.EncodersProbe {
			probeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			compiled, probeErr := encoders.ProbeFFmpeg(probeCtx, opts.FFmpegBinary)
			cancel()
			if probeErr != nil {
				logger.Warn("Failed to probe ffmpeg, keeping full catalog", "error", probeErr)
			} else {
				store.Restrict(encoders.Names(compiled))
			}
		}

		deviceProvider := devices.NewProvider(devices.NewDetector())
		resolver := capability.NewResolver(store.Video(), store.Audio(), deviceProvider)
		validator := validation.New(resolver, store)
		sessions := session.NewManager(session.Options{
			Resolver:    resolver,
			Validator:   validator,
			ResolvePath: deviceProvider.ResolvePath,
			Bus:         eventBus,
		})
		unsubRemoved := eventBus.Subscribe(sessions.HandleDeviceRemoved)

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			CORSOrigin:   opts.CORSOrigin,
			Resolver:     resolver,
			Catalog:      store,
			Devices:      deviceProvider,
			Validator:    validator,
			Sessions:     sessions,
			EventBus:     eventBus,
		}
		if opts.MetricsPrometheusEnabled {
			apiOpts.PrometheusHandler = exporters.HTTPHandler()
		}
		server := api.NewServer(apiOpts)

		monitorCtx, stopMonitor := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			metricsCollector.Start()
			// Publish the initial catalog so the gauges start populated.
			store.Replace(store.Catalog())

			if opts.EncodersWatch && opts.EncodersCatalog != "" {
				if watchErr := store.Watch(500 * time.Millisecond); watchErr != nil {
					logger.Warn("Failed to watch encoder catalog", "error", watchErr)
				}
			}
			if monErr := devices.Monitor(monitorCtx, eventBus); monErr != nil {
				logger.Warn("Device hotplug monitoring unavailable", "error", monErr)
			}

			openSessions(sessions, opts.SessionsFile)

			systemd.Status(fmt.Sprintf("%d sessions", len(sessions.List())))
			systemd.Ready()

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			systemd.Stopping()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if stopErr := server.Stop(ctx); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			stopMonitor()
			unsubRemoved()
			if closeErr := sessions.Close(); closeErr != nil {
				logger.Warn("Error closing sessions", "error", closeErr)
			}
			if closeErr := store.Close(); closeErr != nil {
				logger.Warn("Error stopping catalog watcher", "error", closeErr)
			}
			metricsCollector.Stop()
		})
	})

	cli.Root().Use = version.Name
	cli.Root().Version = version.Get().Version
	cli.Root().AddCommand(cmd.CreateValidateCmd())
	cli.Root().AddCommand(cmd.CreateCapsCmd())

	cli.Run()
}

// openSessions creates the enabled sessions of path. Failures are logged and skipped.
func openSessions(sessions *session.Manager, path string) {
	logger := logging.GetLogger("main")

	configs, err := config.LoadSessions(path)
	if err != nil {
		logger.Warn("Failed to load sessions file", "path", path, "error", err)
		return
	}
	for _, cfg := range configs {
		if !cfg.IsEnabled() {
			logger.Debug("Skipping disabled session", "session_id", cfg.ID)
			continue
		}
		if _, createErr := sessions.Create(cfg); createErr != nil {
			logger.Warn("Failed to open session", "session_id", cfg.ID, "error", createErr)
		}
	}
}
