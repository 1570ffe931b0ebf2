package admin

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/table"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/admin"
	"github.com/abhisek/careerlens/internal/ui/components"
	"github.com/abhisek/careerlens/internal/ui/theme"
)

const maxColumnWidth = 36

func newTable() table.Model {
	km := table.DefaultKeyMap()
	// Letters are console actions; keep only arrow and page keys.
	km.LineUp = key.NewBinding(key.WithKeys("up", "k"))
	km.LineDown = key.NewBinding(key.WithKeys("down", "j"))
	km.PageUp = key.NewBinding(key.WithKeys("pgup"))
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	km.GotoTop = key.NewBinding(key.WithKeys("home"))
	km.GotoBottom = key.NewBinding(key.WithKeys("end"))

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.Secondary)
	styles.Selected = styles.Selected.Foreground(theme.Text).Background(theme.Primary)

	return table.New(
		table.WithKeyMap(km),
		table.WithStyles(styles),
		table.WithFocused(true),
		table.WithHeight(10),
	)
}

// syncTable rebuilds the table for the current tab from console state.
func (a *AdminScreen) syncTable() {
	var t admin.Table
	switch tab := a.console.Tab; {
	case tab.IsPredictionTab():
		t = admin.PredictionTable(a.console.Visible(), admin.Columns(tab))
	case tab == admin.TabUsers:
		t = admin.UserTable(a.console.Users())
	default:
		a.table.SetRows(nil)
		return
	}

	cols := make([]table.Column, len(t.Headers))
	for i, h := range t.Headers {
		w := lipgloss.Width(h)
		for _, r := range t.Rows {
			w = max(w, lipgloss.Width(r[i]))
		}
		cols[i] = table.Column{Title: h, Width: min(w, maxColumnWidth)}
	}
	rows := make([]table.Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = table.Row(r)
	}

	// Columns first: SetRows renders against the current columns.
	a.table.SetRows(nil)
	a.table.SetColumns(cols)
	a.table.SetRows(rows)
	a.table.SetHeight(max(a.height-10, 5))
	if a.table.Cursor() >= len(rows) {
		a.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (a *AdminScreen) View(width, height int) string {
	if a.denied {
		return components.AccessDenied(width, height)
	}
	if a.dialog.Open {
		return components.Center(a.dialog.View(width), width, height)
	}

	var sections []string
	sections = append(sections, a.renderStats(width), a.renderTabs())
	sections = append(sections, theme.Heading.Render(a.console.Tab.Heading()))
	if a.status != "" {
		sections = append(sections, components.StatusLine(a.status, a.isErr))
	}

	switch tab := a.console.Tab; {
	case !a.console.Loaded():
		sections = append(sections, theme.Hint.Render("Loading..."))
	case tab == admin.TabSettings:
		sections = append(sections, a.renderSettings())
	case len(a.table.Rows()) == 0:
		sections = append(sections, theme.Hint.Render("Nothing to show."))
	default:
		sections = append(sections, a.table.View())
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(sections, "\n\n"))
}

func (a *AdminScreen) renderStats(width int) string {
	s := a.console.Stats()
	cw := (components.ContentWidth(width) - 8) / 4
	value := func(n int, alert bool) string {
		st := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
		if alert && n > 0 {
			st = st.Foreground(theme.Error)
		}
		return st.Render(fmt.Sprint(n))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		components.Card("Users", value(s.TotalUsers, false), cw), " ",
		components.Card("Predictions", value(s.TotalPredictions, false), cw), " ",
		components.Card("Flagged", value(s.FlaggedPredictions, true), cw), " ",
		components.Card("Reviews", value(a.console.ReviewCount(), false), cw),
	)
}

func (a *AdminScreen) renderTabs() string {
	parts := make([]string, 0, len(admin.AllTabs))
	for i, t := range admin.AllTabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == a.console.Tab {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (a *AdminScreen) renderSettings() string {
	if a.picking {
		return theme.Hint.Render("Select a training CSV:") + "\n" + a.picker.View()
	}

	file := theme.Hint.Render("none (retrain on the existing dataset)")
	if a.file != "" {
		file = lipgloss.NewStyle().Foreground(theme.Text).Render(a.file)
	}
	check := "[ ]"
	if a.includeFeedback {
		check = "[x]"
	}

	lines := []string{
		"Training data  " + file,
		"Feedback       " + check + " Include user feedback and admin corrections",
		"",
		components.Button{Label: "Retrain Model", Active: !a.retraining}.View(),
	}
	if msg := a.console.RetrainMsg(); msg != "" {
		status := components.StatusLine(msg, strings.HasPrefix(msg, "Error: "))
		if a.retraining {
			status = a.spinner.View() + " " + theme.Hint.Render(msg)
		}
		lines = append(lines, "", status)
	}
	return strings.Join(lines, "\n")
}
