package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders key help, the last pass error and, while editing,
// the filter input.
type FooterModel struct {
	keymap  KeyMap
	input   textinput.Model
	editing bool
	err     error
	width   int
}

// NewFooterModel creates a footer.
func NewFooterModel(km KeyMap) FooterModel {
	in := textinput.New()
	in.Prompt = "Filter: "
	in.Placeholder = "process name prefix"
	in.CharLimit = 64
	return FooterModel{keymap: km, input: in}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	// Leave room for the prompt, the cursor and the edit help.
	f.input.Width = max(w-len(f.input.Prompt)-len(editHelpText)-8, 8)
}

// SetError records the error of the last pass. Nil clears it.
func (f *FooterModel) SetError(err error) { f.err = err }

// Err returns the displayed error, if any.
func (f FooterModel) Err() error { return f.err }

// Editing reports whether the filter input has focus.
func (f FooterModel) Editing() bool { return f.editing }

// StartEditing focuses the filter input, prefilled with current.
func (f *FooterModel) StartEditing(current string) tea.Cmd {
	f.editing = true
	f.input.SetValue(current)
	f.input.CursorEnd()
	return f.input.Focus()
}

// StopEditing blurs the filter input and returns its value.
func (f *FooterModel) StopEditing() string {
	f.editing = false
	f.input.Blur()
	return f.input.Value()
}

// Update forwards a message to the filter input while editing.
func (f FooterModel) Update(msg tea.Msg) (FooterModel, tea.Cmd) {
	if !f.editing {
		return f, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the footer.
func (f FooterModel) View() string {
	if f.editing {
		return lipgloss.NewStyle().Width(f.width).Render(
			f.input.View() + "  " + renderHelp(f.keymap.EditHelp()))
	}

	// The error comes first so it survives truncation on narrow terminals.
	line := renderHelp(f.keymap.ShortHelp())
	if f.err != nil {
		line = " " + footerErrorStyle.Render("Error: "+f.err.Error()) + " " + line
	}
	return lipgloss.NewStyle().Width(f.width).MaxHeight(1).Render(line)
}

// editHelpText is the plain text of the edit help, used for sizing.
const editHelpText = " enter apply  esc cancel"

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return " " + strings.Join(parts, "  ")
}
