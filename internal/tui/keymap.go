package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	RunOnce      key.Binding
	Toggle       key.Binding
	IntervalUp   key.Binding
	IntervalDown key.Binding
	Filter       key.Binding
	Quit         key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding

	// Active only while the filter is being edited.
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		RunOnce: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "sample now"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start/stop"),
		),
		IntervalUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "interval"),
		),
		IntervalDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "shorter interval"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns the bindings listed in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.RunOnce, k.Toggle, k.IntervalUp, k.Filter, k.Quit}
}

// EditHelp returns the bindings listed while the filter is being edited.
func (k KeyMap) EditHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
