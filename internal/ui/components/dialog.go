package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/ui/theme"
)

// DialogKind selects between a yes/no question and a text prompt.
type DialogKind int

const (
	DialogConfirm DialogKind = iota
	DialogPrompt
)

// DialogResultMsg is sent when a dialog closes. OK is false on cancel.
type DialogResultMsg struct {
	ID   string
	OK   bool
	Text string
}

// Dialog is a modal confirm or prompt. Open reports whether it is shown.
type Dialog struct {
	ID      string
	Kind    DialogKind
	Message string
	Open    bool
	input   textinput.Model
}

// NewConfirm opens a yes/no dialog.
func NewConfirm(id, message string) Dialog {
	return Dialog{ID: id, Kind: DialogConfirm, Message: message, Open: true}
}

// NewPrompt opens a text prompt prefilled with initial.
func NewPrompt(id, message, initial string) Dialog {
	ti := textinput.New()
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return Dialog{ID: id, Kind: DialogPrompt, Message: message, Open: true, input: ti}
}

// Update handles keys while the dialog is open.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.Open {
		return d, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	key := kmsg.String()
	if key == "esc" {
		return d.close(false, "")
	}

	if d.Kind == DialogConfirm {
		switch key {
		case "y", "Y", "enter":
			return d.close(true, "")
		case "n", "N":
			return d.close(false, "")
		}
		return d, nil
	}

	if key == "enter" {
		return d.close(true, d.input.Value())
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d Dialog) close(ok bool, text string) (Dialog, tea.Cmd) {
	d.Open = false
	res := DialogResultMsg{ID: d.ID, OK: ok, Text: text}
	return d, func() tea.Msg { return res }
}

// View renders the dialog box.
func (d Dialog) View(width int) string {
	w := width / 2
	if w < 40 {
		w = 40
	}
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(w - 8).Render(d.Message)
	if d.Kind == DialogPrompt {
		body += "\n\n" + d.input.View() + "\n\n" + theme.Hint.Render("enter confirm · esc cancel")
	} else {
		body += "\n\n" + theme.Hint.Render("y confirm · n/esc cancel")
	}
	return theme.Modal.Width(w).Render(body)
}
