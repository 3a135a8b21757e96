package procinfo

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// SystemHost enumerates live processes through gopsutil.
type SystemHost struct{}

// NewSystemHost returns the host-backed process source.
func NewSystemHost() SystemHost { return SystemHost{} }

// Processes lists every process visible to the caller. A failure here means
// the process table itself could not be read.
func (SystemHost) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		out = append(out, &systemProcess{p: p})
	}
	return out, nil
}

// systemProcess adapts *process.Process. The name is cached after the first
// successful read so that filtering and sampling agree on it.
type systemProcess struct {
	p    *process.Process
	name string
}

func (s *systemProcess) PID() int32 { return s.p.Pid }

func (s *systemProcess) Name(ctx context.Context) (string, error) {
	if s.name != "" {
		return s.name, nil
	}
	n, err := s.p.NameWithContext(ctx)
	if err != nil {
		return "", err
	}
	s.name = ImageName(n)
	return s.name, nil
}

// HandleCount uses NumFDs, which on Windows is GetProcessHandleCount and on
// other platforms the number of open file descriptors.
func (s *systemProcess) HandleCount(ctx context.Context) (int64, error) {
	n, err := s.p.NumFDsWithContext(ctx)
	return int64(n), err
}

func (s *systemProcess) ThreadCount(ctx context.Context) (int64, error) {
	n, err := s.p.NumThreadsWithContext(ctx)
	return int64(n), err
}

func (s *systemProcess) CreateTime(ctx context.Context) (time.Time, error) {
	ms, err := s.p.CreateTimeWithContext(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}
