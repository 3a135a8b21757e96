// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// invalid filter, enumeration failure) and for carrying the underlying cause.
//
// Only pass-level failures are represented here. Per-process failures
// (a process that vanished, a denied handle, a missing counter) never become
// errors outside the sampling code; they degrade to zero or absent fields.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() or Is() methods to support errors.Is()
// and errors.As().
package apperrors
