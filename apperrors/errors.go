package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can map it to a
// protocol-specific code without inspecting messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidationFailed
	KindForbidden
	KindNotFound
	KindInvariantViolation
	KindInvalidTransition
	KindConflict
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidationFailed:
		return "validation failed"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindInvariantViolation:
		return "invariant violation"
	case KindInvalidTransition:
		return "invalid transition"
	case KindConflict:
		return "conflict"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the typed failure every service method returns. Raw store errors
// never cross the service boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying cause for logging while exposing a clean message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
