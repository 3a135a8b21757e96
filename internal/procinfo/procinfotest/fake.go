// Package procinfotest provides in-memory procinfo implementations for tests.
package procinfotest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agbru/handlewatch/internal/procinfo"
)

// ErrAccessDenied simulates a protected process.
var ErrAccessDenied = errors.New("access is denied")

// ErrVanished simulates a process that exited between listing and inspection.
var ErrVanished = errors.New("process does not exist")

// Process is a scripted procinfo.Process. A non-nil error field makes the
// matching accessor fail.
type Process struct {
	Pid       int32
	ImageName string
	Handles   int64
	Threads   int64
	Started   time.Time

	NameErr    error
	HandlesErr error
	ThreadsErr error
	StartErr   error
}

var _ procinfo.Process = (*Process)(nil)

func (p *Process) PID() int32 { return p.Pid }

func (p *Process) Name(context.Context) (string, error) {
	if p.NameErr != nil {
		return "", p.NameErr
	}
	return p.ImageName, nil
}

func (p *Process) HandleCount(context.Context) (int64, error) {
	if p.HandlesErr != nil {
		return 0, p.HandlesErr
	}
	return p.Handles, nil
}

func (p *Process) ThreadCount(context.Context) (int64, error) {
	if p.ThreadsErr != nil {
		return 0, p.ThreadsErr
	}
	return p.Threads, nil
}

func (p *Process) CreateTime(context.Context) (time.Time, error) {
	if p.StartErr != nil {
		return time.Time{}, p.StartErr
	}
	return p.Started, nil
}

// Host returns a fixed process list, or Err when set.
type Host struct {
	Procs []*Process
	Err   error

	calls atomic.Int64
}

var _ procinfo.Host = (*Host)(nil)

// Processes returns the scripted list.
func (h *Host) Processes(context.Context) ([]procinfo.Process, error) {
	h.calls.Add(1)
	if h.Err != nil {
		return nil, h.Err
	}
	out := make([]procinfo.Process, len(h.Procs))
	for i, p := range h.Procs {
		out[i] = p
	}
	return out, nil
}

// Calls reports how many times Processes was invoked.
func (h *Host) Calls() int64 { return h.calls.Load() }

// GuiCounter returns per-PID GUI counts. PIDs listed in Denied fail with
// ErrAccessDenied.
type GuiCounter struct {
	Counts map[int32]procinfo.GuiResources
	Denied map[int32]bool

	mu   sync.Mutex
	seen []int32
}

var _ procinfo.GuiResourceCounter = (*GuiCounter)(nil)

// GuiResources returns the scripted counts for pid.
func (g *GuiCounter) GuiResources(_ context.Context, pid int32) (procinfo.GuiResources, error) {
	g.mu.Lock()
	g.seen = append(g.seen, pid)
	g.mu.Unlock()
	if g.Denied[pid] {
		return procinfo.GuiResources{User: 999, GDI: 999}, ErrAccessDenied
	}
	return g.Counts[pid], nil
}

// Seen returns the PIDs queried so far, in call order.
func (g *GuiCounter) Seen() []int32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int32(nil), g.seen...)
}

// PagedPool returns per-name paged-pool usage; unknown names report
// procinfo.ErrCounterUnavailable.
type PagedPool map[string]procinfo.PagedPool

var _ procinfo.PagedPoolCounter = PagedPool(nil)

// PagedPool returns the scripted usage for name.
func (p PagedPool) PagedPool(_ context.Context, name string) (procinfo.PagedPool, error) {
	v, ok := p[name]
	if !ok {
		return procinfo.PagedPool{}, procinfo.ErrCounterUnavailable
	}
	return v, nil
}
