// Package logging provides structured logging with per-module log levels.
//
// Records go to stdout (text or json) and, when journald is reachable, to the
// systemd journal as well.
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"capture": "debug",
//			"api":     "warn",
//		},
//	})
//
// Then get a logger per module:
//
//	logger := logging.GetLogger("capture").With("device_id", id)
//	logger.Info("Camera opened")
//
// Loggers obtained before Initialize are retuned by it, so package-level
// loggers are safe.
//
// TOML form:
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[logging.modules]
//	encoders = "debug"
package logging
