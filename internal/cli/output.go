// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySnapshot], [DisplayError].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatSummary].
//
//   - Write* functions write machine-readable output.
//     Examples: [WriteJSON].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	apperrors "github.com/agbru/handlewatch/internal/errors"
	"github.com/agbru/handlewatch/internal/format"
	"github.com/agbru/handlewatch/internal/sampler"
	"github.com/agbru/handlewatch/internal/ui"
)

// OutputConfig holds configuration for snapshot output.
type OutputConfig struct {
	// Top limits the printed rows; 0 prints all.
	Top int
	// JSON selects machine-readable output.
	JSON bool
	// Now is the reference time for relative start times. Zero means
	// time.Now.
	Now time.Time
}

// FormatSummary returns the headline lines of a snapshot: system pressure
// first, then the filtered totals.
func FormatSummary(s sampler.Snapshot) string {
	color := ui.ColorPressure(s.UserSaturationPercent)
	return fmt.Sprintf(
		"USER objects %s%s%s / %s  %s%s %s%s  GDI objects %s\n"+
			"Filter %s%q%s  matched %d of %d processes  handles %s  threads %s  paged pool %s (peak %s)  in %s\n",
		ui.ColorBold(), format.FormatCount(s.SystemUserHandles), ui.ColorReset(),
		format.FormatCount(s.UserHandleCeiling),
		color, gauge(s.UserSaturationPercent, GaugeWidth), format.FormatPercent(s.UserSaturationPercent), ui.ColorReset(),
		format.FormatCount(s.SystemGdiHandles),
		ui.ColorCyan(), s.FilterUsed, ui.ColorReset(),
		len(s.Matched), s.ProcessCount,
		format.FormatCount(s.FilteredTotals.Handles),
		format.FormatCount(s.FilteredTotals.Threads),
		format.FormatKB(s.FilteredTotals.PagedPoolKB),
		format.FormatKB(s.FilteredTotals.PagedPoolPeakKB),
		format.FormatExecutionDuration(s.Duration),
	)
}

// DisplaySnapshot writes a snapshot as a summary followed by a process table.
func DisplaySnapshot(out io.Writer, s sampler.Snapshot, config OutputConfig) {
	now := config.Now
	if now.IsZero() {
		now = time.Now()
	}

	fmt.Fprintf(out, "\n%s--- %s ---%s\n", ui.ColorBlue(), s.Timestamp.Format(time.DateTime), ui.ColorReset())
	fmt.Fprint(out, FormatSummary(s))

	if len(s.Matched) == 0 {
		fmt.Fprintf(out, "%sNo process name starts with %q.%s\n", ui.ColorYellow(), s.FilterUsed, ui.ColorReset())
		return
	}

	rows := s.Matched
	if config.Top > 0 && len(rows) > config.Top {
		rows = rows[:config.Top]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PID", "NAME", "HANDLES", "THREADS", "PAGED POOL", "PEAK", "STARTED").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if col != 1 && col != 6 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})
	for _, p := range rows {
		t.Row(
			strconv.Itoa(int(p.PID)),
			p.Name,
			format.FormatCount(p.HandleCount),
			format.FormatCount(p.ThreadCount),
			format.FormatKB(p.PagedPoolKB),
			format.FormatKB(p.PagedPoolPeakKB),
			format.FormatStartTime(p.StartTime, now),
		)
	}
	fmt.Fprintln(out, t.Render())

	if hidden := len(s.Matched) - len(rows); hidden > 0 {
		fmt.Fprintf(out, "%s... %d more (use --top 0 to show all)%s\n", ui.ColorCyan(), hidden, ui.ColorReset())
	}
}

// WriteJSON writes a snapshot as a single JSON document followed by a
// newline, so repeated passes form a JSON Lines stream.
func WriteJSON(out io.Writer, s sampler.Snapshot) error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// DisplayError writes a pass-level error and returns its exit code.
func DisplayError(out io.Writer, err error) int {
	code := apperrors.ExitCode(err)
	switch {
	case apperrors.IsContextError(err):
		fmt.Fprintf(out, "%sSampling canceled.%s\n", ui.ColorYellow(), ui.ColorReset())
	default:
		fmt.Fprintf(out, "%sSampling failed: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return code
}
