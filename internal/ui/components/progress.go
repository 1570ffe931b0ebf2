package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/ui/theme"
)

// ProgressBar displays a horizontal bar. Percent is 0..100.
type ProgressBar struct {
	Label       string
	LabelWidth  int
	Percent     float64
	Suffix      string
	Width       int
	FilledStyle lipgloss.Style
}

// NewProgressBar creates a new progress bar. An empty suffix shows the
// rounded percentage.
func NewProgressBar(label string, percent float64, suffix string, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		Suffix:      suffix,
		Width:       width,
		FilledStyle: theme.ProgressFilled,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.LabelWidth > 0 {
			style = style.Width(p.LabelWidth).MaxWidth(p.LabelWidth)
		}
		result += style.Render(p.Label) + "  "
	}

	suffix := p.Suffix
	if suffix == "" {
		suffix = fmt.Sprintf("%d%%", int(p.Percent+0.5))
	}
	suffix = "  " + suffix

	labelWidth := lipgloss.Width(result)
	barWidth := p.Width - labelWidth - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	pct := p.Percent
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(float64(barWidth)*pct/100 + 0.5)
	empty := barWidth - filled

	result += p.FilledStyle.Render(strings.Repeat("█", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat("░", empty))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)

	return result
}
