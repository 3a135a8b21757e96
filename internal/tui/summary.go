package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/handlewatch/internal/format"
	"github.com/agbru/handlewatch/internal/sampler"
)

// SummaryPanelHeight is the height of the summary panel, borders included.
const SummaryPanelHeight = 9

// SummaryModel renders the system-wide GUI object gauge, the filtered
// totals and the saturation history of the last passes.
type SummaryModel struct {
	snap    sampler.Snapshot
	hasData bool
	history *PercentHistory
	width   int
	height  int
}

// NewSummaryModel creates an empty summary panel.
func NewSummaryModel() SummaryModel {
	return SummaryModel{history: NewPercentHistory(60)}
}

// SetSize updates dimensions and resizes the history to the gauge width.
func (s *SummaryModel) SetSize(w, h int) {
	s.width = w
	s.height = h
	if cols := s.historyWidth(); cols > 0 {
		s.history.SetLimit(cols)
	}
}

// Update records a successful snapshot.
func (s *SummaryModel) Update(snap sampler.Snapshot) {
	s.snap = snap
	s.hasData = true
	s.history.Add(snap.UserSaturationPercent)
}

// Snapshot returns the last recorded snapshot and whether there is one.
func (s SummaryModel) Snapshot() (sampler.Snapshot, bool) {
	return s.snap, s.hasData
}

func (s SummaryModel) historyWidth() int {
	return s.width - 4 - len("History ")
}

// View renders the summary panel.
func (s SummaryModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("GUI objects"))

	if !s.hasData {
		b.WriteString("\n  ")
		b.WriteString(metricLabelStyle.Render("Waiting for the first pass..."))
	} else {
		snap := s.snap
		gaugeWidth := s.width - 48
		if gaugeWidth < 10 {
			gaugeWidth = 10
		}
		pct := snap.UserSaturationPercent
		fmt.Fprintf(&b, "\n  %s %s %s  %s",
			metricLabelStyle.Render(fmt.Sprintf("%-9s", "USER")),
			renderGauge(pct, gaugeWidth),
			pressureStyle(pct).Render(format.FormatPercent(pct)),
			metricValueStyle.Render(format.FormatCount(snap.SystemUserHandles)+" / "+format.FormatCount(snap.UserHandleCeiling)))
		fmt.Fprintf(&b, "\n  %s %s",
			metricLabelStyle.Render(fmt.Sprintf("%-9s", "GDI")),
			metricValueStyle.Render(format.FormatCount(snap.SystemGdiHandles)))

		t := snap.FilteredTotals
		fmt.Fprintf(&b, "\n  %s %s %s",
			metricLabelStyle.Render(fmt.Sprintf("%-9s", "Matched")),
			metricValueStyle.Render(fmt.Sprintf("%d", len(snap.Matched))),
			metricLabelStyle.Render(fmt.Sprintf("of %d processes", snap.ProcessCount)))
		fmt.Fprintf(&b, "\n  %s %s %s %s %s %s",
			metricLabelStyle.Render(fmt.Sprintf("%-9s", "Filtered")),
			metricValueStyle.Render(format.FormatCount(t.Handles)), metricLabelStyle.Render("handles |"),
			metricValueStyle.Render(format.FormatCount(t.Threads)), metricLabelStyle.Render("threads |"),
			metricValueStyle.Render(format.FormatKB(t.PagedPoolKB)+" paged pool (peak "+format.FormatKB(t.PagedPoolPeakKB)+")"))

		if s.history.Len() > 0 && s.height >= SummaryPanelHeight {
			fmt.Fprintf(&b, "\n  %s%s",
				metricLabelStyle.Render("History "),
				pressureStyle(s.history.Latest()).Render(s.history.Sparkline()))
		}
		fmt.Fprintf(&b, "\n  %s %s",
			metricLabelStyle.Render("Last pass"),
			metricValueStyle.Render(snap.Timestamp.Format("15:04:05")+" in "+format.FormatExecutionDuration(snap.Duration)))
	}

	return panelStyle.
		Width(max(s.width-2, 0)).
		Height(max(s.height-2, 0)).
		Render(b.String())
}

// renderGauge renders pct (0..100) as a bar of the given width, colored by
// pressure level.
func renderGauge(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = max(0, min(100, pct))
	filled := int(pct / 100 * float64(width))
	return pressureStyle(pct).Render(strings.Repeat("█", filled)) +
		gaugeEmptyStyle.Render(strings.Repeat("░", width-filled))
}
