package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/handlewatch/internal/format"
	"github.com/agbru/handlewatch/internal/scheduler"
)

// HeaderModel renders the top bar: title, filter, interval, scheduler state,
// host RAM and uptime.
type HeaderModel struct {
	startTime time.Time
	version   string
	filter    string
	interval  time.Duration
	state     scheduler.State
	hostRAM   uint64
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, filter string, interval time.Duration) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		filter:    filter,
		interval:  interval,
	}
}

// SetFilter updates the displayed filter.
func (h *HeaderModel) SetFilter(f string) { h.filter = f }

// SetInterval updates the displayed interval.
func (h *HeaderModel) SetInterval(d time.Duration) { h.interval = d }

// SetState updates the displayed scheduler state.
func (h *HeaderModel) SetState(s scheduler.State) { h.state = s }

// SetHostRAM records the installed physical memory. Zero hides it.
func (h *HeaderModel) SetHostRAM(b uint64) { h.hostRAM = b }

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "handlewatch"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")

	left := titleStyle.Render(titleText) +
		pipe + metricLabelStyle.Render("Filter: ") + metricValueStyle.Render(fmt.Sprintf("%q", h.filter)) +
		pipe + metricLabelStyle.Render("Every ") + metricValueStyle.Render(format.FormatInterval(h.interval)) +
		pipe + stateStyle(h.state).Render(h.state.String())

	var right string
	if h.hostRAM > 0 {
		right = metricLabelStyle.Render("RAM ") + metricValueStyle.Render(format.FormatBytes(h.hostRAM)) + pipe
	}
	right += elapsedStyle.Render("Up " + time.Since(h.startTime).Truncate(time.Second).String())

	innerWidth := h.width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}

	gap := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	row := left + spaces(gap) + right

	return headerStyle.Width(h.width).Render(row)
}

func stateStyle(s scheduler.State) lipgloss.Style {
	switch s {
	case scheduler.Repeating:
		return statusRepeatStyle
	case scheduler.Running:
		return statusRunningStyle
	default:
		return statusIdleStyle
	}
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
