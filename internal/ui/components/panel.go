package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/ui/theme"
)

// ContentWidth returns the inner width used for stacked cards so they
// line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(title, content string, cw int) string {
	body := content
	if title != "" {
		body = theme.Heading.Render(title) + "\n" + content
	}
	return theme.Card.Width(cw).Render(body)
}

// StatusLine renders an inline status message. Errors are red.
func StatusLine(msg string, isErr bool) string {
	if msg == "" {
		return ""
	}
	if isErr {
		return lipgloss.NewStyle().Foreground(theme.Error).Render(msg)
	}
	return lipgloss.NewStyle().Foreground(theme.Success).Render(msg)
}

// AccessDenied renders the panel shown to non-staff users on staff views.
func AccessDenied(width, height int) string {
	msg := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Access Denied") +
		"\n\n" +
		theme.Hint.Render("Admins only.")
	return Center(msg, width, height)
}
