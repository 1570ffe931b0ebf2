package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/ui/theme"
)

// StarRating is a 1..5 star picker. Value 0 means unset.
type StarRating struct {
	Value int
}

// Update sets the rating from digit keys and left/right.
func (r StarRating) Update(msg tea.Msg) (StarRating, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch k := kmsg.String(); k {
	case "1", "2", "3", "4", "5":
		r.Value = int(k[0] - '0')
	case "right", "l":
		if r.Value < 5 {
			r.Value++
		}
	case "left", "h":
		if r.Value > 1 {
			r.Value--
		}
	}
	return r, nil
}

// View renders filled and empty stars.
func (r StarRating) View() string {
	filled := lipgloss.NewStyle().Foreground(theme.Accent).Render(strings.Repeat("★ ", r.Value))
	empty := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("☆ ", 5-r.Value))
	return strings.TrimSpace(filled + empty)
}
