// Package insights is the market insights screen.
package insights

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/insights"
	"github.com/abhisek/careerlens/internal/router"
	"github.com/abhisek/careerlens/internal/screen"
	"github.com/abhisek/careerlens/internal/ui/components"
	"github.com/abhisek/careerlens/internal/ui/layout"
	"github.com/abhisek/careerlens/internal/ui/theme"
)

// Client fetches the insights payload.
type Client interface {
	Insights(ctx context.Context) (*api.Insights, error)
}

type loadedMsg struct {
	data *api.Insights
	err  error
}

// InsightsScreen renders the personalized market analysis.
type InsightsScreen struct {
	client      Client
	openProfile func() screen.Screen

	data    *api.Insights
	loading bool
	err     error
	offset  int
}

var _ screen.Screen = (*InsightsScreen)(nil)

// New creates the screen. openProfile builds the profile screen for the
// call to action and may be nil.
func New(client Client, openProfile func() screen.Screen) *InsightsScreen {
	return &InsightsScreen{client: client, openProfile: openProfile, loading: true}
}

func (s *InsightsScreen) Init() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		data, err := client.Insights(context.Background())
		return loadedMsg{data: data, err: err}
	}
}

func (s *InsightsScreen) Title() string {
	return "Market Insights"
}

func (s *InsightsScreen) KeyHints() []layout.KeyHint {
	if !s.loading && !insights.Available(s.data) && s.openProfile != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Update profile"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InsightsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loading = false
		s.data, s.err = msg.data, msg.err
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		case "enter":
			if !s.loading && !insights.Available(s.data) && s.openProfile != nil {
				next := s.openProfile()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *InsightsScreen) View(width, height int) string {
	switch {
	case s.loading:
		return components.Center(theme.Hint.Render("Loading market data..."), width, height)
	case s.err != nil:
		return components.Center(components.StatusLine("Could not load insights: "+api.Message(s.err), true), width, height)
	case !insights.Available(s.data):
		msg := theme.Title.Render(insights.NoInsightsTitle) + "\n\n" +
			theme.Body.Render(insights.NoInsightsMessage)
		if s.openProfile != nil {
			msg += "\n\n" + components.Button{Label: "Update Profile", Active: true}.View()
		}
		return components.Center(theme.Card.Render(msg), width, height)
	}

	cw := components.ContentWidth(width)
	lines := strings.Split(renderPersonalized(s.data.Personalized, cw), "\n")

	// Clamp scrolling to the rendered content.
	maxOffset := max(len(lines)-height, 0)
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := min(s.offset+height, len(lines))
	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines[s.offset:end], "\n"))
}

func renderPersonalized(p *api.Personalized, cw int) string {
	var sections []string

	title := "Market Insights"
	if p.Context.Specialization != "" {
		title += ": " + p.Context.Specialization
	}
	sub := "Personalized analysis"
	if p.Context.Degree != "" {
		sub += " for " + p.Context.Degree
	}
	sections = append(sections, theme.Heading.Render(title)+"\n"+theme.Hint.Render(sub))

	if o := p.FutureOutlook; o != nil {
		verdict := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		if insights.IsRising(o) {
			verdict = theme.Positive
		}
		body := verdict.Render(o.Verdict) + "\n" + o.Summary
		for _, f := range o.ImpactFactors {
			body += "\n  • " + f
		}
		sections = append(sections, components.Card("Future Outlook", body, cw))
	}

	if len(p.MarketOverview) > 0 {
		pcts := insights.TrendPercents(p.MarketOverview)
		var rows []string
		for i, pt := range p.MarketOverview {
			bar := components.NewProgressBar(fmt.Sprint(pt.Year), pcts[i], fmt.Sprintf("%.0f", pt.Demand), cw-6)
			bar.LabelWidth = 6
			rows = append(rows, bar.View())
		}
		sections = append(sections, components.Card("Market Demand Trend", strings.Join(rows, "\n"), cw))
	}

	if len(p.Comparison) > 0 {
		var rows []string
		for _, c := range p.Comparison {
			name := c.Name
			if c.IsUser {
				name += " (you)"
			}
			salary := components.NewProgressBar("Salary", insights.SalaryPercent(c.Salary), insights.FormatINR(c.Salary), cw-6)
			salary.LabelWidth = 8
			demand := components.NewProgressBar("Demand", insights.DemandPercent(c.Demand), fmt.Sprintf("%.0f/100", c.Demand), cw-6)
			demand.LabelWidth = 8
			demand.FilledStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
			rows = append(rows, lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(name), salary.View(), demand.View())
		}
		sections = append(sections, components.Card("Salary & Demand Comparison", strings.Join(rows, "\n"), cw))
	}

	if len(p.SkillGap) > 0 {
		var rows []string
		for _, g := range p.SkillGap {
			market := components.NewProgressBar("Market", insights.MarketPercent(g), "", cw-6)
			market.LabelWidth = 8
			market.FilledStyle = theme.ProgressMarket
			you := components.NewProgressBar("You", insights.SkillPercent(g), "", cw-6)
			you.LabelWidth = 8
			rows = append(rows, lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(g.Subject), market.View(), you.View())
		}
		sections = append(sections, components.Card("Skill Gap", strings.Join(rows, "\n"), cw))
	}

	if len(p.CareerPaths) > 0 {
		var rows []string
		for _, cp := range p.CareerPaths {
			growth := theme.Hint.Render(cp.Growth)
			if insights.IsHighGrowth(cp) {
				growth = theme.Positive.Render(cp.Growth)
			}
			rows = append(rows,
				lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(cp.Title)+"  "+growth,
				"  "+insights.PathDescription(cp, p.Context))
		}
		sections = append(sections, components.Card("Career Paths", strings.Join(rows, "\n"), cw))
	}

	return strings.Join(sections, "\n")
}
