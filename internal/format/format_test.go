package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatInterval(t *testing.T) {
	t.Parallel()
	tests := map[time.Duration]string{
		time.Second:      "1s",
		30 * time.Second: "30s",
		time.Minute:      "1m",
		90 * time.Second: "1m30s",
	}
	for d, want := range tests {
		if got := FormatInterval(d); got != want {
			t.Errorf("FormatInterval(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestFormatSizesAndCounts(t *testing.T) {
	t.Parallel()
	if got := FormatKB(0); got != "0 B" {
		t.Errorf("FormatKB(0) = %q", got)
	}
	if got := FormatKB(2048); got != "2.0 MiB" {
		t.Errorf("FormatKB(2048) = %q, want 2.0 MiB", got)
	}
	if got := FormatBytes(16 << 30); got != "16 GiB" {
		t.Errorf("FormatBytes(16GiB) = %q", got)
	}
	if got := FormatCount(29000); got != "29,000" {
		t.Errorf("FormatCount(29000) = %q", got)
	}
	if got := FormatPercent(88.5); got != "88.5%" {
		t.Errorf("FormatPercent(88.5) = %q", got)
	}
}

func TestFormatStartTime(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	if got := FormatStartTime(time.Time{}, now); got != "-" {
		t.Errorf("zero start time = %q, want -", got)
	}
	if got := FormatStartTime(now.Add(-3*time.Hour), now); got != "3 hours ago" {
		t.Errorf("FormatStartTime(-3h) = %q, want \"3 hours ago\"", got)
	}
}
