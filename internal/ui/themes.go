package ui

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colors of both presentations: ANSI escape codes for the
// text reporter and lipgloss colors for the dashboard. Every field of a
// colorless theme is empty.
type Theme struct {
	Name string

	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string

	TUI TUITheme
}

// TUITheme is the dashboard palette.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

// fg256 returns the escape code selecting color n of the 256-color palette.
func fg256(n int) string { return fmt.Sprintf("\033[38;5;%dm", n) }

var (
	// DarkTUITheme is the dashboard palette for dark terminals.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#4488FF"),
	}

	// NoColorTUITheme renders everything in the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}

	// DarkTheme is the default.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   fg256(208),
		Secondary: fg256(245),
		Success:   fg256(82),
		Warning:   fg256(214),
		Error:     fg256(196),
		Info:      fg256(69),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		TUI:       DarkTUITheme,
	}

	// NoColorTheme is selected by --no-color or NO_COLOR.
	NoColorTheme = Theme{Name: "none", TUI: NoColorTUITheme}
)

var current atomic.Pointer[Theme]

func init() { SetCurrentTheme(DarkTheme) }

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme { return *current.Load() }

// GetCurrentTUITheme returns the dashboard palette of the active theme.
func GetCurrentTUITheme() TUITheme { return current.Load().TUI }

// SetCurrentTheme makes t the active theme.
func SetCurrentTheme(t Theme) { current.Store(&t) }

// InitTheme selects the colorless theme when noColor is set or NO_COLOR is
// present in the environment (https://no-color.org/), and DarkTheme
// otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}

// Pressure classifies USER object saturation for coloring.
type Pressure int

const (
	// PressureLow is below WarnSaturation.
	PressureLow Pressure = iota
	// PressureElevated is at or above WarnSaturation.
	PressureElevated
	// PressureCritical is at or above CriticalSaturation.
	PressureCritical
)

// Saturation thresholds, in percent of the USER object ceiling.
const (
	WarnSaturation     = 60.0
	CriticalSaturation = 85.0
)

// PressureFor classifies a saturation percentage.
func PressureFor(pct float64) Pressure {
	switch {
	case pct >= CriticalSaturation:
		return PressureCritical
	case pct >= WarnSaturation:
		return PressureElevated
	default:
		return PressureLow
	}
}

// Color returns the escape code for p in t.
func (p Pressure) Color(t Theme) string {
	return [...]string{t.Success, t.Warning, t.Error}[p.clamp()]
}

// TUIColor returns the dashboard color for p in t.
func (p Pressure) TUIColor(t TUITheme) lipgloss.TerminalColor {
	return [...]lipgloss.TerminalColor{t.Success, t.Warning, t.Error}[p.clamp()]
}

func (p Pressure) clamp() Pressure {
	return min(max(p, PressureLow), PressureCritical)
}
