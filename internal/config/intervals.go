package config

import (
	"slices"
	"strings"
	"time"
)

// AllowedIntervals is the enumerated set of repeat intervals the poll
// scheduler accepts.
var AllowedIntervals = []time.Duration{
	1 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	60 * time.Second,
}

// IsAllowedInterval reports whether d is one of AllowedIntervals.
func IsAllowedInterval(d time.Duration) bool {
	return slices.Contains(AllowedIntervals, d)
}

// FormatAllowedIntervals renders AllowedIntervals for help and error text.
func FormatAllowedIntervals() string {
	parts := make([]string, len(AllowedIntervals))
	for i, d := range AllowedIntervals {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}

// NextInterval returns the allowed interval following d, wrapping around.
// Values outside the set map to the first entry.
func NextInterval(d time.Duration) time.Duration {
	i := slices.Index(AllowedIntervals, d)
	return AllowedIntervals[(i+1)%len(AllowedIntervals)]
}

// PrevInterval returns the allowed interval preceding d, wrapping around.
// Values outside the set map to the last entry.
func PrevInterval(d time.Duration) time.Duration {
	i := slices.Index(AllowedIntervals, d)
	if i <= 0 {
		return AllowedIntervals[len(AllowedIntervals)-1]
	}
	return AllowedIntervals[i-1]
}
