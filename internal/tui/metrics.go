package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/handlewatch/internal/format"
	"github.com/agbru/handlewatch/internal/metrics"
)

// MetricsModel displays the monitor's own runtime footprint and host CPU and
// memory usage history.
type MetricsModel struct {
	runtime    metrics.RuntimeSnapshot
	cpuHistory *PercentHistory
	memHistory *PercentHistory
	width      int
	height     int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpuHistory: NewPercentHistory(30),
		memHistory: NewPercentHistory(30),
	}
}

// SetSize updates dimensions and resizes the sparkline buffers to fit.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if cols := m.sparklineWidth(); cols > 0 {
		m.cpuHistory.SetLimit(cols)
		m.memHistory.SetLimit(cols)
	}
}

func (m MetricsModel) sparklineWidth() int {
	return m.width - 4 - len("CPU  100.0% ")
}

// UpdateRuntime stores the latest runtime statistics.
func (m *MetricsModel) UpdateRuntime(s metrics.RuntimeSnapshot) {
	m.runtime = s
}

// UpdateSysStats appends host CPU and memory readings.
func (m *MetricsModel) UpdateSysStats(cpuPct, memPct float64) {
	m.cpuHistory.Add(cpuPct)
	m.memHistory.Add(memPct)
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render("Monitor"))

	colWidth := m.width - 4
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("Heap:", format.FormatBytes(m.runtime.HeapAlloc)+" / "+format.FormatBytes(m.runtime.HeapSys), colWidth))
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("GC:", fmt.Sprintf("%d (%s)", m.runtime.NumGC, format.FormatExecutionDuration(m.runtime.PauseTotal)), colWidth))
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.runtime.Goroutines), colWidth))

	if m.cpuHistory.Len() > 0 && m.height >= 9 {
		rows.WriteString("\n\n")
		rows.WriteString(renderSysLine("CPU", m.cpuHistory, cpuSparklineStyle))
		rows.WriteString("\n")
		rows.WriteString(renderSysLine("MEM", m.memHistory, memSparklineStyle))
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func renderSysLine(label string, history *PercentHistory, style lipgloss.Style) string {
	return fmt.Sprintf(" %s %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-4s", label)),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", history.Latest())),
		style.Render(history.Sparkline()))
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
