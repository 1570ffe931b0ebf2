// Package profile is the academic profile editor screen.
package profile

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/profile"
	"github.com/abhisek/careerlens/internal/screen"
	"github.com/abhisek/careerlens/internal/ui/layout"
)

const (
	savedMessage      = "Profile updated successfully!"
	saveFailedMessage = "Failed to update profile."
)

// Client is the subset of the API the screen uses.
type Client interface {
	GetProfile(ctx context.Context) (*api.Profile, error)
	UpdateProfile(ctx context.Context, info api.AcademicInfo) (*api.Profile, error)
}

type loadedMsg struct {
	profile *api.Profile
	err     error
}

type savedMsg struct {
	profile *api.Profile
	err     error
}

// ProfileScreen edits the academic profile. Nothing is sent until Save.
type ProfileScreen struct {
	client  Client
	editor  *profile.Editor
	form    form
	focus   int
	loading bool
	saving  bool
	status  string
	isErr   bool
}

var _ screen.Screen = (*ProfileScreen)(nil)

// New creates the profile screen. The profile loads on Init.
func New(client Client) *ProfileScreen {
	return &ProfileScreen{
		client:  client,
		editor:  profile.NewEditor(),
		form:    newForm(time.Now()),
		loading: true,
	}
}

func (s *ProfileScreen) Init() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		p, err := client.GetProfile(context.Background())
		return loadedMsg{profile: p, err: err}
	}
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓/Tab", Description: "Move"}}
	switch s.current().kind {
	case rowChoice:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Choose"})
	case rowItem:
		hints = append(hints, layout.KeyHint{Key: "X", Description: "Remove"})
	case rowButton:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Press"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Save"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loading = false
		if msg.err != nil {
			s.setStatus("Could not load profile: "+api.Message(msg.err), true)
			return s, nil
		}
		s.editor.Load(msg.profile)
		s.form.inputs[keyGPA].SetValue(s.editor.GPA())
		s.form.inputs[keyMajor].SetValue(s.editor.Major())
		return s, s.setFocus(0)

	case savedMsg:
		s.saving = false
		if msg.err != nil {
			s.setStatus(saveFailedMessage, true)
			return s, nil
		}
		s.editor.Saved(msg.profile)
		s.setStatus(savedMessage, false)
		return s, nil

	case tea.KeyMsg:
		if s.loading || s.saving {
			return s, nil
		}
		return s, s.handleKey(msg)
	}

	if r := s.current(); r.kind == rowText {
		var cmd tea.Cmd
		*s.form.inputs[r.key], cmd = s.form.inputs[r.key].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ProfileScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	rows := s.rows()
	switch msg.String() {
	case "down", "tab":
		return s.setFocus((s.focus + 1) % len(rows))
	case "up", "shift+tab":
		return s.setFocus((s.focus + len(rows) - 1) % len(rows))
	case "ctrl+s":
		return s.save()
	}

	r := s.current()
	switch r.kind {
	case rowText:
		var cmd tea.Cmd
		*s.form.inputs[r.key], cmd = s.form.inputs[r.key].Update(msg)
		switch r.key {
		case keyGPA:
			s.editor.SetGPA(s.form.inputs[keyGPA].Value())
		case keyMajor:
			s.editor.SetMajor(s.form.inputs[keyMajor].Value())
		}
		if msg.String() == "enter" {
			return tea.Batch(cmd, s.setFocus((s.focus+1)%len(rows)))
		}
		return cmd

	case rowChoice:
		before := s.form.choices[r.key].Value()
		*s.form.choices[r.key], _ = s.form.choices[r.key].Update(msg)
		if r.key == keyState && s.form.choices[keyState].Value() != before {
			s.form.choices[keyInst].SetOptions(profile.Institutions(s.form.choices[keyState].Value()))
		}
		if msg.String() == "enter" {
			return s.setFocus((s.focus + 1) % len(rows))
		}

	case rowItem:
		switch msg.String() {
		case "x", "X", "delete", "backspace":
			s.removeItem(r)
			return s.setFocus(min(s.focus, len(s.rows())-1))
		}

	case rowButton:
		if msg.String() == "enter" {
			return s.press(r.key)
		}
	}
	return nil
}

func (s *ProfileScreen) removeItem(r row) {
	var err error
	switch r.section {
	case sectionEducation:
		err = s.editor.RemoveEducation(r.index)
	case sectionCertificates:
		err = s.editor.RemoveCertificate(r.index)
	case sectionSkills:
		err = s.editor.RemoveSkill(r.index)
	}
	if err != nil {
		s.setStatus(err.Error(), true)
		return
	}
	s.setStatus("", false)
}

func (s *ProfileScreen) press(key string) tea.Cmd {
	s.syncDrafts()
	var err error
	switch key {
	case keyAddEducation:
		if err = s.editor.AddEducation(); err == nil {
			s.clearEducationDraft()
		}
	case keyAddCertificate:
		if err = s.editor.AddCertificate(); err == nil {
			s.clearCertificateDraft()
		}
	case keyAddSkill:
		if err = s.editor.AddSkill(); err == nil {
			s.form.inputs[keySkill].SetValue("")
		}
	case keySave:
		return s.save()
	}

	var fe *profile.FieldError
	switch {
	case errors.As(err, &fe):
		s.setStatus(fe.Message, true)
	case err != nil:
		s.setStatus(err.Error(), true)
	default:
		s.setStatus("", false)
	}
	// Lists above the focused row may have grown.
	return s.focusKey(key)
}

func (s *ProfileScreen) save() tea.Cmd {
	s.saving = true
	s.setStatus("Saving...", false)
	client, info := s.client, s.editor.Snapshot()
	return func() tea.Msg {
		p, err := client.UpdateProfile(context.Background(), info)
		return savedMsg{profile: p, err: err}
	}
}

func (s *ProfileScreen) current() row {
	rows := s.rows()
	if s.focus >= len(rows) {
		s.focus = len(rows) - 1
	}
	return rows[s.focus]
}

func (s *ProfileScreen) focusKey(key string) tea.Cmd {
	for i, r := range s.rows() {
		if r.key == key {
			return s.setFocus(i)
		}
	}
	return nil
}

func (s *ProfileScreen) setFocus(i int) tea.Cmd {
	for _, in := range s.form.inputs {
		in.Blur()
	}
	for _, c := range s.form.choices {
		c.Blur()
	}
	s.focus = i
	r := s.current()
	switch r.kind {
	case rowText:
		return s.form.inputs[r.key].Focus()
	case rowChoice:
		s.form.choices[r.key].Focus()
	}
	return nil
}

func (s *ProfileScreen) setStatus(msg string, isErr bool) {
	s.status = msg
	s.isErr = isErr
}
