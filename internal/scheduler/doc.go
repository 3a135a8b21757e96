// Package scheduler drives sampling passes on demand or on a repeating
// interval, guaranteeing that at most one pass runs at a time. Results are
// handed to the presentation layer through a Sink callback.
package scheduler
