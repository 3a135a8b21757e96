package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/handlewatch/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	gaugeEmptyStyle    lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	footerErrorStyle   lipgloss.Style
	statusIdleStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusRepeatStyle  lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
	tableStyles        table.Styles
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Bg).
		Foreground(t.Text)

	panelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	gaugeEmptyStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	footerErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	statusIdleStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Bold(true)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusRepeatStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	cpuSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	memSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	tableStyles = table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Info).
		Bold(true)
	tableStyles.Cell = tableStyles.Cell.Foreground(t.Text)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(t.Bg).
		Background(t.Accent).
		Bold(false)
}

// pressureStyle returns the gauge style for a USER object saturation.
func pressureStyle(pct float64) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ui.PressureFor(pct).TUIColor(ui.GetCurrentTUITheme())).
		Bold(true)
}
