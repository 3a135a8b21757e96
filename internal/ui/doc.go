// Package ui provides the color themes shared by the text reporter and the
// dashboard, and maps USER object saturation to a pressure color.
package ui
