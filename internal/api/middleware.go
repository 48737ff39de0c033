package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/streamcaps/internal/logging"
)

// quietOperations are polled by supervisors and only logged at debug level.
var quietOperations = map[string]bool{
	"health-check": true,
	"get-version":  true,
}

// HTTPLoggingMiddleware logs each request once it completes. The level follows
// the status code; preflights and polling endpoints log at debug.
func HTTPLoggingMiddleware(ctx huma.Context, next func(huma.Context)) {
	start := time.Now()
	logger := logging.GetLogger("http")

	attrs := []slog.Attr{
		slog.String("method", ctx.Method()),
		slog.String("path", ctx.URL().Path),
		slog.String("remote_addr", ctx.RemoteAddr()),
	}
	if query := ctx.URL().RawQuery; query != "" {
		attrs = append(attrs, slog.String("query", query))
	}

	var operation string
	if op := ctx.Operation(); op != nil {
		operation = op.OperationID
		attrs = append(attrs, slog.String("operation", operation))
	}
	if id := ctx.Param("id"); id != "" {
		attrs = append(attrs, slog.String("session_id", id))
	}

	next(ctx)

	status := ctx.Status()
	attrs = append(attrs,
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
	)

	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	case ctx.Method() == http.MethodOptions, quietOperations[operation]:
		level = slog.LevelDebug
	}
	logger.LogAttrs(ctx.Context(), level, "HTTP request completed", attrs...)
}
