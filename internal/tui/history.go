package tui

import (
	"math"
	"strings"
)

// sparkBlocks are the eight bar heights of a sparkline, lowest first.
const sparkBlocks = "▁▂▃▄▅▆▇█"

// PercentHistory keeps the most recent percentage readings of a series,
// oldest first, up to a limit that follows the width of the sparkline
// drawing it. Readings are clamped to [0,100] on the way in.
type PercentHistory struct {
	values []float64
	limit  int
}

// NewPercentHistory creates an empty history holding at most limit readings.
func NewPercentHistory(limit int) *PercentHistory {
	return &PercentHistory{limit: max(limit, 1)}
}

// Add appends a reading, dropping the oldest one when the history is full.
func (h *PercentHistory) Add(pct float64) {
	h.values = append(h.values, math.Max(0, math.Min(100, pct)))
	h.trim()
}

// SetLimit changes how many readings are kept. Shrinking drops the oldest.
func (h *PercentHistory) SetLimit(limit int) {
	h.limit = max(limit, 1)
	h.trim()
}

func (h *PercentHistory) trim() {
	if over := len(h.values) - h.limit; over > 0 {
		h.values = append(h.values[:0], h.values[over:]...)
	}
}

// Limit returns the maximum number of readings kept.
func (h *PercentHistory) Limit() int { return h.limit }

// Len returns the number of readings held.
func (h *PercentHistory) Len() int { return len(h.values) }

// Latest returns the most recent reading, or 0 when empty.
func (h *PercentHistory) Latest() float64 {
	if len(h.values) == 0 {
		return 0
	}
	return h.values[len(h.values)-1]
}

// Values returns a copy of the readings, oldest first.
func (h *PercentHistory) Values() []float64 {
	return append([]float64(nil), h.values...)
}

// Sparkline draws the readings as one block per reading, 0% as the lowest
// bar and 100% as a full one.
func (h *PercentHistory) Sparkline() string {
	blocks := []rune(sparkBlocks)
	var b strings.Builder
	for _, v := range h.values {
		b.WriteRune(blocks[int(math.Round(v/100*float64(len(blocks)-1)))])
	}
	return b.String()
}
