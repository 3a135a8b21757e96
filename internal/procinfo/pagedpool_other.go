//go:build !windows

package procinfo

import "context"

type hostPagedPool struct{}

// NewPagedPoolCounter returns the host paged-pool counter. Only Windows
// exposes per-process paged-pool quotas; elsewhere every read reports
// ErrCounterUnavailable.
func NewPagedPoolCounter() PagedPoolCounter { return hostPagedPool{} }

func (hostPagedPool) PagedPool(context.Context, string) (PagedPool, error) {
	return PagedPool{}, ErrCounterUnavailable
}
