package api

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/capture"
	"github.com/smazurov/streamcaps/internal/session"
	"github.com/smazurov/streamcaps/internal/settings"
)

// toHTTPError maps domain errors to API errors:
// unknown encoder, device or session -> 404, backend unavailable -> 503,
// invalid configuration or control value -> 422, duplicate session -> 409.
func toHTTPError(err error) error {
	var serr *session.Error
	switch {
	case errors.Is(err, capability.ErrUnknownEncoder):
		return huma.Error404NotFound("Encoder not found", err)
	case errors.Is(err, capability.ErrUnknownDevice):
		return huma.Error404NotFound("Capture device not found", err)
	case errors.Is(err, session.ErrNotFound):
		return huma.Error404NotFound("Session not found", err)
	case errors.Is(err, capability.ErrBackendUnavailable):
		return huma.Error503ServiceUnavailable("Capture backend unavailable", err)
	case errors.Is(err, session.ErrExists):
		return huma.Error409Conflict("Session already exists", err)
	case errors.As(err, &serr) && serr.Code == session.ErrCodeInvalidConfig:
		details := make([]error, 0, len(serr.Violations))
		for _, v := range serr.Violations {
			details = append(details, &huma.ErrorDetail{
				Location: "body." + v.Field,
				Message:  v.Message,
				Value:    v.Allowed,
			})
		}
		if len(details) == 0 {
			details = append(details, err)
		}
		return huma.Error422UnprocessableEntity("Invalid session configuration", details...)
	case errors.Is(err, capture.ErrControlOutOfRange),
		errors.Is(err, capture.ErrControlUnsupported),
		errors.Is(err, settings.ErrBitrateOutOfRange):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("Internal error", err)
	}
}
