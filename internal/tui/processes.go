package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/handlewatch/internal/format"
	"github.com/agbru/handlewatch/internal/procinfo"
)

// Fixed column widths; NAME absorbs the remaining width.
const (
	pidColWidth     = 8
	handlesColWidth = 9
	threadsColWidth = 8
	poolColWidth    = 11
	startedColWidth = 16
	minNameColWidth = 12
)

// ProcessTableModel lists the matched processes of the last snapshot.
type ProcessTableModel struct {
	table   table.Model
	filter  string
	matched int
	width   int
	height  int
}

// NewProcessTableModel creates an empty process table.
func NewProcessTableModel() ProcessTableModel {
	t := table.New(
		table.WithColumns(processColumns(0)),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles)
	return ProcessTableModel{table: t}
}

func processColumns(width int) []table.Column {
	fixed := pidColWidth + handlesColWidth + threadsColWidth + 2*poolColWidth + startedColWidth
	// Each column carries one cell of padding on both sides.
	name := width - fixed - 2*7
	if name < minNameColWidth {
		name = minNameColWidth
	}
	return []table.Column{
		{Title: "PID", Width: pidColWidth},
		{Title: "NAME", Width: name},
		{Title: "HANDLES", Width: handlesColWidth},
		{Title: "THREADS", Width: threadsColWidth},
		{Title: "PAGED POOL", Width: poolColWidth},
		{Title: "PEAK", Width: poolColWidth},
		{Title: "STARTED", Width: startedColWidth},
	}
}

// SetSize updates dimensions. The table fills the panel minus its border
// and title line.
func (p *ProcessTableModel) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.table.SetColumns(processColumns(w - 2))
	p.table.SetWidth(max(w-2, 0))
	p.table.SetHeight(max(h-3, 1))
}

// SetSamples replaces the rows. Rows keep the snapshot order.
func (p *ProcessTableModel) SetSamples(filter string, samples []procinfo.ProcessSample, now time.Time) {
	p.filter = filter
	p.matched = len(samples)
	rows := make([]table.Row, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, table.Row{
			strconv.FormatInt(int64(s.PID), 10),
			s.Name,
			format.FormatCount(s.HandleCount),
			format.FormatCount(s.ThreadCount),
			format.FormatKB(s.PagedPoolKB),
			format.FormatKB(s.PagedPoolPeakKB),
			format.FormatStartTime(s.StartTime, now),
		})
	}
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Rows returns the current table rows.
func (p ProcessTableModel) Rows() []table.Row {
	return p.table.Rows()
}

// Update forwards navigation keys to the table.
func (p ProcessTableModel) Update(msg tea.Msg) (ProcessTableModel, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// View renders the process table panel.
func (p ProcessTableModel) View() string {
	title := panelTitleStyle.Render("Processes")
	if p.filter != "" {
		title += metricLabelStyle.Render(fmt.Sprintf("  %d matching %q", p.matched, p.filter))
	}
	body := p.table.View()
	if p.filter != "" && p.matched == 0 {
		body = metricLabelStyle.Render(fmt.Sprintf("No process name starts with %q.", p.filter))
	}
	return panelStyle.
		Width(max(p.width-2, 0)).
		Height(max(p.height-2, 0)).
		Render(title + "\n" + body)
}
