package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/ui/theme"
)

const titleFull = ` ╔═╗┌─┐┬─┐┌─┐┌─┐┬─┐  ╦  ┌─┐┌┐┌┌─┐
 ║  ├─┤├┬┘├┤ ├┤ ├┬┘  ║  ├┤ │││└─┐
 ╚═╝┴ ┴┴└─└─┘└─┘┴└─  ╩═╝└─┘┘└┘└─┘`

const titleCompact = "C A R E E R L E N S"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

func renderGreeting(username string, isStaff bool, cw int) string {
	greet := "Welcome"
	if username != "" {
		greet += ", " + username
	}
	line := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(greet)
	if isStaff {
		line += lipgloss.NewStyle().Foreground(theme.Accent).Render("  (admin)")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Render(line)
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Padding(0, 1)

	rows := make([]string, 0, len(items))
	for i, label := range items {
		btn := normalBtn.Render(label)
		if i == selected {
			btn = selectedBtn.Render("▸ " + label)
		}
		rows = append(rows, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(btn))
	}
	return strings.Join(rows, "\n")
}
