package ui

// The Color* functions return the escape code of the active theme for the
// given role. They return "" when colors are disabled.

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorPressure returns the color for a USER object saturation percentage.
func ColorPressure(pct float64) string {
	return PressureFor(pct).Color(GetCurrentTheme())
}
