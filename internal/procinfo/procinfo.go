//go:generate mockgen -source=procinfo.go -destination=mocks/mock_procinfo.go -package=mocks

// Package procinfo reads per-process resource metadata from the host: handle
// and thread counts, start time, paged-pool usage and GUI object counts.
//
// Every read is independent. A failure on one metric of one process yields
// a zero or absent value for that metric only; it is never reported past the
// process boundary.
package procinfo

import (
	"context"
	"errors"
	"time"
)

// ErrCounterUnavailable is returned by a PagedPoolCounter when no counter
// exists for the requested process name. Readers treat it as "no data".
var ErrCounterUnavailable = errors.New("paged pool counter unavailable")

// Process is one enumerated OS process. Each accessor performs (or replays)
// a single host query and may fail independently of the others.
type Process interface {
	// PID returns the OS process identifier. PIDs are recycled by the OS.
	PID() int32
	// Name returns the image name without path or ".exe" extension.
	Name(ctx context.Context) (string, error)
	// HandleCount returns the number of open OS handles.
	HandleCount(ctx context.Context) (int64, error)
	// ThreadCount returns the number of threads.
	ThreadCount(ctx context.Context) (int64, error)
	// CreateTime returns when the process started.
	CreateTime(ctx context.Context) (time.Time, error)
}

// Host enumerates the processes visible to the caller.
type Host interface {
	Processes(ctx context.Context) ([]Process, error)
}

// PagedPool holds paged-pool usage in bytes.
type PagedPool struct {
	Bytes     uint64
	PeakBytes uint64
}

// PagedPoolCounter reads paged-pool usage keyed by process image name, the
// way the OS performance counters are keyed. When several processes share a
// name the counter reports a single instance for all of them.
type PagedPoolCounter interface {
	PagedPool(ctx context.Context, name string) (PagedPool, error)
}

// GuiResources holds the GUI object handle counts of one process.
type GuiResources struct {
	User int64
	GDI  int64
}

// GuiResourceCounter reads GUI object counts for a process. It requires
// inspection rights on the target; callers treat any error as zero usage.
type GuiResourceCounter interface {
	GuiResources(ctx context.Context, pid int32) (GuiResources, error)
}

// ProcessSample is the immutable per-process record of one sampling pass.
type ProcessSample struct {
	PID             int32     `json:"pid"`
	Name            string    `json:"name"`
	HandleCount     int64     `json:"handleCount"`
	ThreadCount     int64     `json:"threadCount"`
	PagedPoolKB     uint64    `json:"pagedPoolKB"`
	PagedPoolPeakKB uint64    `json:"pagedPoolPeakKB"`
	StartTime       time.Time `json:"startTime,omitzero"`
}

// HasStartTime reports whether the start time could be read.
func (s ProcessSample) HasStartTime() bool { return !s.StartTime.IsZero() }
