package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatKB renders a kilobyte quantity with binary units ("12 MiB").
func FormatKB(kb uint64) string {
	return humanize.IBytes(kb * 1024)
}

// FormatBytes renders a byte quantity with binary units.
func FormatBytes(b uint64) string {
	return humanize.IBytes(b)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatStartTime renders a process start time relative to now. A zero time
// renders as "-".
func FormatStartTime(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
