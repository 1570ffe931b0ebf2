package components

import "github.com/abhisek/careerlens/internal/ui/theme"

// Button is a styled button. Active means focused; the owning screen
// handles the key press.
type Button struct {
	Label    string
	Active   bool
	Disabled bool
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Active && !b.Disabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
