package tui

import (
	"time"

	"github.com/agbru/handlewatch/internal/metrics"
	"github.com/agbru/handlewatch/internal/scheduler"
)

// ResultMsg carries a completed sampling pass from the poller goroutine.
type ResultMsg struct {
	Result scheduler.Result
}

// TickMsg drives the periodic refresh of state and runtime panels.
type TickMsg time.Time

// RuntimeMsg carries the monitor's own runtime statistics.
type RuntimeMsg struct {
	Stats metrics.RuntimeSnapshot
}

// SysStatsMsg carries system-wide CPU and memory usage.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// HostRAMMsg carries the installed physical memory, read once at startup.
type HostRAMMsg struct {
	Bytes uint64
	Err   error
}

// SessionMsg reports the outcome of starting or restarting a repeating
// session.
type SessionMsg struct {
	Interval time.Duration
	Err      error
}

// StoppedMsg is sent once a stopped session's loop has exited.
type StoppedMsg struct{}

// PassDoneMsg is sent when an on-demand pass returns. The snapshot itself
// arrives through the sink as a ResultMsg.
type PassDoneMsg struct{}

// ContextCancelledMsg signals that the parent context was cancelled.
type ContextCancelledMsg struct {
	Err error
}
