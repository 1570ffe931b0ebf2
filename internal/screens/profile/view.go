package profile

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/ui/components"
	"github.com/abhisek/careerlens/internal/ui/theme"
)

var sectionTitles = map[section]string{
	sectionBasics:       "Academic Basics",
	sectionEducation:    "Education",
	sectionCertificates: "Certifications",
	sectionSkills:       "Skills",
}

var buttonLabels = map[string]string{
	keyAddEducation:   "Add Education",
	keyAddCertificate: "Add Certificate",
	keyAddSkill:       "Add Skill",
	keySave:           "Save Profile",
}

func (s *ProfileScreen) View(width, height int) string {
	if s.loading {
		return components.Center(theme.Hint.Render("Loading profile..."), width, height)
	}

	cw := components.ContentWidth(width)
	var lines []string
	focusLine := 0

	header := theme.Heading.Render(s.editor.Username)
	if s.editor.Email != "" {
		header += "  " + theme.Hint.Render(s.editor.Email)
	}
	if s.editor.Dirty() {
		header += "  " + lipgloss.NewStyle().Foreground(theme.Accent).Render("• unsaved changes")
	}
	lines = append(lines, header)
	if s.status != "" {
		lines = append(lines, components.StatusLine(s.status, s.isErr))
	}

	rows := s.rows()
	prev := section(-1)
	for i, r := range rows {
		if r.section != prev {
			if title, ok := sectionTitles[r.section]; ok {
				lines = append(lines, "", theme.Heading.Render(title))
			} else {
				lines = append(lines, "")
			}
			prev = r.section
		}
		if i == s.focus {
			focusLine = len(lines)
		}
		lines = append(lines, s.renderRow(r, i == s.focus))
	}

	// Scroll so the focused row stays visible.
	if len(lines) > height && height > 0 {
		start := focusLine - height/2
		start = max(0, min(start, len(lines)-height))
		lines = lines[start : start+height]
	}

	return lipgloss.NewStyle().Width(cw).PaddingLeft(2).Render(strings.Join(lines, "\n"))
}

func (s *ProfileScreen) renderRow(r row, focused bool) string {
	switch r.kind {
	case rowText:
		return "  " + s.form.inputs[r.key].View()
	case rowChoice:
		return "  " + s.form.choices[r.key].View()
	case rowButton:
		b := components.Button{Label: buttonLabels[r.key], Active: focused}
		return "  " + b.View()
	}

	text := s.itemText(r)
	if focused {
		return theme.Selected.Render("▸ "+text) + "  " + theme.Hint.Render("x to remove")
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render("  • " + text)
}

func (s *ProfileScreen) itemText(r row) string {
	switch r.section {
	case sectionEducation:
		return educationLine(s.editor.Education()[r.index])
	case sectionCertificates:
		return certificateLine(s.editor.Certificates()[r.index])
	case sectionSkills:
		return s.editor.Skills()[r.index]
	}
	return ""
}

func educationLine(e api.Education) string {
	parts := []string{e.Degree}
	if e.Specialization != "" {
		parts = append(parts, e.Specialization)
	}
	parts = append(parts, e.Institution, "CGPA "+e.CGPA, e.Year)
	return strings.Join(parts, " · ")
}

func certificateLine(c api.Certificate) string {
	line := c.Name + " · " + c.Issuer
	if c.Year != "" {
		line += " (" + c.Year + ")"
	}
	return line
}
