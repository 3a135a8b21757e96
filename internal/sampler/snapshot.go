package sampler

import (
	"math"
	"time"

	"github.com/agbru/handlewatch/internal/procinfo"
)

// UserHandleCeiling is the practical USER object exhaustion threshold used
// to compute UserSaturationPercent.
const UserHandleCeiling = 32768

// Totals sums the metrics of the matched processes.
type Totals struct {
	Handles         int64  `json:"handles"`
	PagedPoolKB     uint64 `json:"pagedPoolKB"`
	PagedPoolPeakKB uint64 `json:"pagedPoolPeakKB"`
	Threads         int64  `json:"threads"`
}

// Snapshot is the immutable result of one sampling pass.
type Snapshot struct {
	// Matched holds the processes whose name starts with FilterUsed, sorted
	// by descending handle count.
	Matched []procinfo.ProcessSample `json:"matched"`
	// FilteredTotals sums Matched.
	FilteredTotals Totals `json:"filteredTotals"`
	// SystemUserHandles and SystemGdiHandles sum every enumerated process,
	// regardless of the filter.
	SystemUserHandles int64 `json:"systemUserHandles"`
	SystemGdiHandles  int64 `json:"systemGdiHandles"`
	// UserHandleCeiling is always UserHandleCeiling.
	UserHandleCeiling int64 `json:"userHandleCeiling"`
	// UserSaturationPercent is SystemUserHandles against the ceiling, in
	// [0,100] with one decimal.
	UserSaturationPercent float64 `json:"userSaturationPercent"`
	// FilterUsed is the trimmed prefix that produced this snapshot.
	FilterUsed string `json:"filterUsed"`
	// ProcessCount is the number of processes enumerated in the pass.
	ProcessCount int `json:"processCount"`
	// Timestamp is when the pass completed.
	Timestamp time.Time `json:"timestamp"`
	// Duration is how long the pass took.
	Duration time.Duration `json:"duration"`
}

// SaturationPercent returns users as a percentage of UserHandleCeiling,
// rounded to one decimal and clamped to [0,100].
func SaturationPercent(users int64) float64 {
	if users <= 0 {
		return 0
	}
	pct := math.Round(float64(users)/UserHandleCeiling*100*10) / 10
	return math.Min(100, pct)
}

// SumTotals sums the per-process metrics of samples.
func SumTotals(samples []procinfo.ProcessSample) Totals {
	var t Totals
	for _, s := range samples {
		t.Handles += s.HandleCount
		t.Threads += s.ThreadCount
		t.PagedPoolKB += s.PagedPoolKB
		t.PagedPoolPeakKB += s.PagedPoolPeakKB
	}
	return t
}

// Equivalent reports whether two snapshots are equal in every field except
// Timestamp and Duration.
func (s Snapshot) Equivalent(o Snapshot) bool {
	if len(s.Matched) != len(o.Matched) {
		return false
	}
	for i := range s.Matched {
		if s.Matched[i] != o.Matched[i] {
			return false
		}
	}
	return s.FilteredTotals == o.FilteredTotals &&
		s.SystemUserHandles == o.SystemUserHandles &&
		s.SystemGdiHandles == o.SystemGdiHandles &&
		s.UserHandleCeiling == o.UserHandleCeiling &&
		s.UserSaturationPercent == o.UserSaturationPercent &&
		s.FilterUsed == o.FilterUsed &&
		s.ProcessCount == o.ProcessCount
}
