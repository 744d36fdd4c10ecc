package apperror

import (
	"errors"
	"fmt"
)

// Error is a classified domain failure.
// Its retryability is fixed when it is constructed.
type Error struct {
	kind      Kind
	message   string
	retryable bool
	cause     error
}

// New creates an Error whose retryability follows the kind's default.
func New(kind Kind, message string) *Error {
	return &Error{
		kind:      kind,
		message:   message,
		retryable: kind.IsRetryable(),
	}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// NewWithRetry creates an Error with an explicit retry classification.
// Use it for caller-defined kinds that have no default.
func NewWithRetry(kind Kind, message string, retryable bool) *Error {
	return &Error{
		kind:      kind,
		message:   message,
		retryable: retryable,
	}
}

// Wrap creates an Error that keeps err as its cause.
// The classification follows the new kind, not the cause.
//
// Returns nil if err is nil.
func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(kind, message)
	e.cause = err
	return e
}

// LocationLookupFailed creates a retryable location failure.
func LocationLookupFailed(message string) *Error {
	return New(KindLocationLookupFailed, message)
}

// InvalidLocationData creates a permanent location parsing failure.
func InvalidLocationData(message string) *Error {
	return New(KindInvalidLocationData, message)
}

// WeatherLookupFailed creates a retryable weather failure.
func WeatherLookupFailed(message string) *Error {
	return New(KindWeatherLookupFailed, message)
}

// Timeout creates a retryable timeout failure.
func Timeout(message string) *Error {
	return New(KindTimeout, message)
}

// Configuration creates a permanent configuration failure.
func Configuration(message string) *Error {
	return New(KindConfiguration, message)
}

// Error returns "[KIND] message" or "[KIND] message: cause".
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.kind, e.message)
}

// Kind returns the failure kind.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the human-readable message without the kind prefix.
func (e *Error) Message() string {
	return e.message
}

// Retryable reports whether retrying may succeed.
func (e *Error) Retryable() bool {
	return e.retryable
}

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf returns the kind of the first *Error in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return ""
}

// IsRetryable reports whether err carries a retryable *Error.
// Errors outside the taxonomy are never retried.
func IsRetryable(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.retryable
	}
	return false
}
