package session

import (
	"fmt"

	"github.com/smazurov/streamcaps/internal/validation"
)

// Error codes.
const (
	ErrCodeNotFound      = "SESSION_NOT_FOUND"
	ErrCodeExists        = "SESSION_EXISTS"
	ErrCodeInvalidConfig = "INVALID_CONFIG"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrNotFound      = &Error{Code: ErrCodeNotFound}
	ErrExists        = &Error{Code: ErrCodeExists}
	ErrInvalidConfig = &Error{Code: ErrCodeInvalidConfig}
)

// Error is a session management failure. Violations is set for ErrCodeInvalidConfig.
type Error struct {
	Code       string
	Message    string
	Cause      error
	Violations []validation.Violation
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func notFound(id string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("session %q not found", id)}
}

func invalidConfig(report validation.Report) *Error {
	return &Error{
		Code:       ErrCodeInvalidConfig,
		Message:    report.Summary(),
		Violations: report.Violations,
	}
}
