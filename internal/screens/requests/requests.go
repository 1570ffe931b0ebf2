// Package requests is the request log screen: the API calls this client
// made, newest first, from the local store.
package requests

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/screen"
	"github.com/abhisek/careerlens/internal/store"
	"github.com/abhisek/careerlens/internal/ui/layout"
	"github.com/abhisek/careerlens/internal/ui/theme"
)

const pageSize = 100

type loadedMsg struct {
	events []store.RequestEventRecord
	err    error
}

// RequestsScreen lists recorded API calls.
type RequestsScreen struct {
	repo       store.RequestRepo
	events     []store.RequestEventRecord
	selected   int
	expanded   map[int64]bool
	failedOnly bool
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*RequestsScreen)(nil)
var _ screen.KeyHintProvider = (*RequestsScreen)(nil)

// New creates a RequestsScreen over repo.
func New(repo store.RequestRepo) *RequestsScreen {
	return &RequestsScreen{
		repo:     repo,
		expanded: make(map[int64]bool),
	}
}

func (s *RequestsScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		events, err := repo.QueryRequests(context.Background(), store.QueryOpts{Limit: pageSize})
		return loadedMsg{events: events, err: err}
	}
}

func (s *RequestsScreen) Title() string {
	return "Request Log"
}

func (s *RequestsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "F", Description: "Failed only"},
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

// visible applies the failed-only filter.
func (s *RequestsScreen) visible() []store.RequestEventRecord {
	if !s.failedOnly {
		return s.events
	}
	var out []store.RequestEventRecord
	for _, e := range s.events {
		if !e.Success {
			out = append(out, e)
		}
	}
	return out
}

func (s *RequestsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.errMsg = ""
			s.events = msg.events
		}
		s.loaded = true
		s.selected = min(s.selected, max(len(s.visible())-1, 0))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.visible())-1 {
				s.selected++
			}
		case "enter":
			if v := s.visible(); s.selected < len(v) {
				id := v[s.selected].ID
				s.expanded[id] = !s.expanded[id]
			}
		case "f", "F":
			s.failedOnly = !s.failedOnly
			s.selected = 0
		case "r", "R":
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *RequestsScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim)
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return dim.Render("\n\n  Loading requests...")
	}

	events := s.visible()
	if len(events) == 0 {
		msg := "No requests recorded yet."
		if s.failedOnly {
			msg = "No failed requests."
		}
		return dim.Italic(true).Render("\n\n  " + msg)
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection on screen; expanded rows take two extra lines.
	first := max(0, s.selected-(height-4)/2)
	for i := first; i < len(events); i++ {
		e := events[i]
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !e.Success {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
		status := "-"
		if e.Status != 0 {
			status = fmt.Sprint(e.Status)
		}

		line := fmt.Sprintf("%s%s  %-6s %-34s %4s %6dms",
			prefix, e.Timestamp.Local().Format("Jan 02 15:04:05"), e.Method, e.Path, status, e.LatencyMs)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+" "+mark))
		b.WriteString("\n")

		if s.expanded[e.ID] {
			detail := "    request id " + e.RequestID
			if e.ErrorMessage != "" {
				detail += "\n    " + e.ErrorMessage
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
