package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/admin"
	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/dashboard"
	"github.com/abhisek/careerlens/internal/ui/components"
	"github.com/abhisek/careerlens/internal/ui/theme"
)

func (d *DashboardScreen) View(width, height int) string {
	if fb := d.flow.Feedback(); fb.Open {
		return components.Center(d.renderModal(fb), width, height)
	}

	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, renderStats(d.flow.Summary(), cw))
	if d.status != "" {
		sections = append(sections, components.StatusLine(d.status, d.isErr))
	}

	switch {
	case d.loading:
		sections = append(sections, theme.Hint.Render("Loading history..."))
	case len(d.flow.History()) == 0:
		sections = append(sections, theme.Hint.Render("No predictions yet. Press P to predict your career."))
	default:
		listHeight := height - lipgloss.Height(strings.Join(sections, "\n\n")) - 4
		sections = append(sections, d.renderHistory(cw, listHeight))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n\n"))
}

func renderStats(s dashboard.Summary, cw int) string {
	latest := "N/A"
	if !s.Latest.IsZero() {
		latest = s.Latest.Local().Format("2006-01-02")
	}
	cardW := cw/2 - 2
	total := components.Card("TOTAL PREDICTIONS",
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprint(s.Total)), cardW)
	last := components.Card("LATEST ACTIVITY",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(latest), cardW)
	return lipgloss.JoinHorizontal(lipgloss.Top, total, " ", last)
}

func (d *DashboardScreen) renderHistory(cw, maxHeight int) string {
	history := d.flow.History()
	var rows []string
	for i, p := range history {
		rows = append(rows, renderRow(p, i == d.selected, cw))
		if i == d.selected && d.expanded {
			rows = append(rows, renderMatches(p, cw))
		}
	}

	// Keep the selected row on screen.
	out := strings.Join(rows, "\n")
	lines := strings.Split(out, "\n")
	if maxHeight > 0 && len(lines) > maxHeight {
		start := 0
		for i := 0; i < d.selected && i < len(rows); i++ {
			start += lipgloss.Height(rows[i])
		}
		if start+maxHeight > len(lines) {
			start = len(lines) - maxHeight
		}
		lines = lines[start : start+maxHeight]
	}
	return theme.Heading.Render("Prediction History") + "\n" + strings.Join(lines, "\n")
}

func renderRow(p api.Prediction, selected bool, cw int) string {
	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		prefix = "▸ "
		style = theme.Selected
	}
	date := p.Timestamp.Local().Format("2006-01-02 15:04")
	line := fmt.Sprintf("%s%s  %s", prefix, date, p.Data.TopRole())

	feedback := theme.Hint.Render("no feedback")
	if p.Rating != nil && *p.Rating > 0 {
		feedback = theme.Stars.Render(admin.Stars(*p.Rating))
	}
	gap := cw - lipgloss.Width(line) - lipgloss.Width(feedback)
	if gap < 2 {
		gap = 2
	}
	return style.Render(line) + strings.Repeat(" ", gap) + feedback
}

func renderMatches(p api.Prediction, cw int) string {
	matches := dashboard.TopMatches(p)
	if len(matches) == 0 {
		return theme.Hint.Render("    No details for this prediction.")
	}
	var parts []string
	for _, m := range matches {
		head := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Role) +
			"  " + lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("%.0f%% Match", m.MatchScore))
		body := []string{head}
		if m.Justification != "" {
			body = append(body, theme.Hint.Render(m.Justification))
		}
		if len(m.MissingSkills) > 0 {
			body = append(body, "Missing: "+strings.Join(m.MissingSkills, ", "))
		}
		if len(m.RecommendedCerts) > 0 {
			body = append(body, "Certs: "+strings.Join(m.RecommendedCerts, ", "))
		}
		parts = append(parts, strings.Join(body, "\n"))
	}
	return lipgloss.NewStyle().PaddingLeft(4).Width(cw).Render(strings.Join(parts, "\n\n"))
}

func (d *DashboardScreen) renderModal(fb dashboard.Feedback) string {
	sections := []string{
		theme.Title.Render("Rate this prediction"),
		theme.Subtitle.Render(fmt.Sprintf("Prediction #%d", fb.PredictionID)),
		"",
		d.rating.View(),
		"",
		d.comment.View(),
	}
	switch {
	case fb.Submitting:
		sections = append(sections, "", theme.Hint.Render("Submitting..."))
	case d.status != "" && d.isErr:
		sections = append(sections, "", components.StatusLine(d.status, true))
	}

	submit := components.Button{Label: "Submit Feedback", Active: !d.focusText, Disabled: !d.flow.CanSubmit()}
	sections = append(sections, "", submit.View())
	return theme.Modal.Render(strings.Join(sections, "\n"))
}
