package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/ui/theme"
)

// Choice is a single-line selector cycled with left and right. Index -1
// means nothing is chosen yet.
type Choice struct {
	Label   string
	Options []string
	Index   int
	focused bool
}

// NewChoice creates a selector with nothing chosen.
func NewChoice(label string, options []string) Choice {
	return Choice{Label: label, Options: options, Index: -1}
}

// Focus focuses the selector.
func (c *Choice) Focus() { c.focused = true }

// Blur removes focus.
func (c *Choice) Blur() { c.focused = false }

// Value returns the chosen option or "".
func (c Choice) Value() string {
	if c.Index < 0 || c.Index >= len(c.Options) {
		return ""
	}
	return c.Options[c.Index]
}

// SetOptions replaces the options and clears the choice.
func (c *Choice) SetOptions(opts []string) {
	c.Options = opts
	c.Index = -1
}

// Reset clears the choice.
func (c *Choice) Reset() {
	c.Index = -1
}

// Update handles left/right cycling.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "right", "l", "space", " ":
		c.Index = (c.Index + 1) % len(c.Options)
	case "left", "h":
		if c.Index <= 0 {
			c.Index = len(c.Options) - 1
		} else {
			c.Index--
		}
	}
	return c, nil
}

// View renders the label and the current option.
func (c Choice) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16)
	if c.focused {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}

	value := c.Value()
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if value == "" {
		value = "Select " + c.Label
		valueStyle = valueStyle.Foreground(theme.TextDim).Italic(true)
	}
	if c.focused {
		value = "◂ " + value + " ▸"
	}
	return labelStyle.Render(c.Label) + valueStyle.Render(value)
}
