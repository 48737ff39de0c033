package capability

import "fmt"

// Error codes.
const (
	ErrCodeUnknownEncoder     = "UNKNOWN_ENCODER"
	ErrCodeUnknownDevice      = "UNKNOWN_DEVICE"
	ErrCodeBackendUnavailable = "BACKEND_UNAVAILABLE"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrUnknownEncoder     = &Error{Code: ErrCodeUnknownEncoder}
	ErrUnknownDevice      = &Error{Code: ErrCodeUnknownDevice}
	ErrBackendUnavailable = &Error{Code: ErrCodeBackendUnavailable}
)

// Error is a capability negotiation or capture backend failure.
type Error struct {
	Code    string
	Message string
	Cause   error
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

// UnknownEncoder returns an error for an encoder identity the provider does not know.
func UnknownEncoder(encoder string) *Error {
	if encoder == "" {
		return &Error{Code: ErrCodeUnknownEncoder, Message: "empty encoder identity"}
	}
	return &Error{Code: ErrCodeUnknownEncoder, Message: fmt.Sprintf("encoder %q is not supported", encoder)}
}

// UnknownDevice returns an error for a capture device the registry does not know.
func UnknownDevice(deviceID string) *Error {
	return &Error{Code: ErrCodeUnknownDevice, Message: fmt.Sprintf("capture device %q not found", deviceID)}
}

// BackendUnavailable returns an error for a capture backend that cannot be queried.
func BackendUnavailable(message string, cause error) *Error {
	return &Error{Code: ErrCodeBackendUnavailable, Message: message, Cause: cause}
}
