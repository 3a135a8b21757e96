package procinfo

import "context"

// Reader extracts a ProcessSample from a Process.
type Reader struct {
	pool PagedPoolCounter
}

// NewReader creates a Reader. A nil counter reports zero paged-pool usage
// for every process.
func NewReader(pool PagedPoolCounter) *Reader {
	return &Reader{pool: pool}
}

// Read builds the sample for p. It returns false only when the process
// identity (its name) cannot be read; every other failed metric is left at
// its zero value. Nothing is retried.
func (r *Reader) Read(ctx context.Context, p Process) (ProcessSample, bool) {
	name, err := p.Name(ctx)
	if err != nil || name == "" {
		return ProcessSample{}, false
	}

	s := ProcessSample{PID: p.PID(), Name: name}
	if n, err := p.HandleCount(ctx); err == nil && n > 0 {
		s.HandleCount = n
	}
	if n, err := p.ThreadCount(ctx); err == nil && n > 0 {
		s.ThreadCount = n
	}
	if t, err := p.CreateTime(ctx); err == nil && !t.IsZero() {
		s.StartTime = t
	}
	if r.pool != nil {
		if pp, err := r.pool.PagedPool(ctx, name); err == nil {
			s.PagedPoolKB = pp.Bytes / 1024
			s.PagedPoolPeakKB = pp.PeakBytes / 1024
		}
	}
	return s, true
}
