// Package errors provides the error kinds shared by sentimeter's packages.
// It extends the standard errors package with context wrapping and a coarse
// classification used by the CLI exit codes, the HTTP layer and metrics.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors. Domain and adapter errors wrap one of these so callers can
// branch on the kind without knowing the concrete error.
var (
	// ErrInvalidInput indicates the caller supplied unusable input (blank text, empty score set).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidResponse indicates a classifier response could not be parsed or was unusable.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrServiceUnavailable indicates the classifier is temporarily unavailable.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrRateLimit indicates a rate limit was exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrUnauthorized indicates the classifier rejected our credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested model or endpoint does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrTimeout indicates an operation exceeded its time limit.
	ErrTimeout = errors.New("operation timed out")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
//
// Example:
//
//	scores, err := classifier.Classify(ctx, text)
//	if err != nil {
//	    return errors.Wrap(err, "classification failed")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsInvalidInput reports whether the error is an invalid input error
func IsInvalidInput(err error) bool {
	return Is(err, ErrInvalidInput)
}

// IsInvalidResponse reports whether the error is an invalid response error
func IsInvalidResponse(err error) bool {
	return Is(err, ErrInvalidResponse)
}

// IsServiceUnavailable reports whether the error is a service unavailable error
func IsServiceUnavailable(err error) bool {
	return Is(err, ErrServiceUnavailable)
}

// IsRateLimit reports whether the error is a rate limit error
func IsRateLimit(err error) bool {
	return Is(err, ErrRateLimit)
}

// IsUnauthorized reports whether the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return Is(err, ErrUnauthorized)
}

// IsTimeout reports whether the error is a timeout, including context deadlines.
func IsTimeout(err error) bool {
	return Is(err, ErrTimeout) || Is(err, context.DeadlineExceeded)
}

// IsCanceled reports whether the error comes from a canceled context.
func IsCanceled(err error) bool {
	return Is(err, context.Canceled)
}

// Kind returns a short, stable name for the error's kind.
// Used as a metrics label and in structured logs; "" for nil.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsInvalidInput(err):
		return "invalid_input"
	case IsInvalidResponse(err):
		return "invalid_response"
	case IsRateLimit(err):
		return "rate_limit"
	case IsServiceUnavailable(err):
		return "unavailable"
	case IsUnauthorized(err):
		return "unauthorized"
	case Is(err, ErrNotFound):
		return "not_found"
	case IsTimeout(err):
		return "timeout"
	case IsCanceled(err):
		return "canceled"
	default:
		return "internal"
	}
}
