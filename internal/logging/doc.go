// Package logging provides the structured logging interface used by the
// sampler, the poll scheduler and the application shell. The default backend
// is zerolog; a standard library adapter exists for callers that already hold
// a *log.Logger.
package logging
