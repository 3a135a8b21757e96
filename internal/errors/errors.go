package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorSample   = 3   // Indicates a sampling pass failed (enumeration failure).
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Sentinel errors for the pass-level failure classes. Typed errors below
// match them through errors.Is.
var (
	// ErrInvalidFilter is matched by InvalidFilterError.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrEnumeration is matched by EnumerationError.
	ErrEnumeration = errors.New("process enumeration failed")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// InvalidFilterError is returned when a sampling pass is requested with an
// empty or whitespace-only name prefix. No OS call is made in that case.
type InvalidFilterError struct {
	// Filter is the raw value that was rejected.
	Filter string
}

// Error returns a formatted message describing the rejected filter.
func (e InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter %q: process name prefix must not be empty", e.Filter)
}

// Is reports whether target is ErrInvalidFilter.
func (e InvalidFilterError) Is(target error) bool { return target == ErrInvalidFilter }

// EnumerationError reports that the process list could not be obtained at
// all. Failures affecting a single process are never reported this way.
type EnumerationError struct {
	// Cause is the error returned by the host enumeration call.
	Cause error
}

// Error returns the enumeration failure message including its cause.
func (e EnumerationError) Error() string {
	if e.Cause == nil {
		return ErrEnumeration.Error()
	}
	return fmt.Sprintf("%s: %v", ErrEnumeration, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e EnumerationError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrEnumeration.
func (e EnumerationError) Is(target error) bool { return target == ErrEnumeration }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error returned by the application to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var configErr ConfigError
	var validationErr ValidationError
	switch {
	case IsContextError(err):
		return ExitErrorCanceled
	case errors.Is(err, ErrInvalidFilter),
		errors.As(err, &configErr),
		errors.As(err, &validationErr):
		return ExitErrorConfig
	case errors.Is(err, ErrEnumeration):
		return ExitErrorSample
	default:
		return ExitErrorGeneric
	}
}
