// Package register is the sign-up screen.
package register

import (
	"context"
	"net/mail"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/router"
	"github.com/abhisek/careerlens/internal/screen"
	"github.com/abhisek/careerlens/internal/ui/components"
	"github.com/abhisek/careerlens/internal/ui/layout"
	"github.com/abhisek/careerlens/internal/ui/theme"
)

// FailedMessage is shown when the backend rejects a registration.
const FailedMessage = "Registration failed. Please try again."

// Registrar creates accounts. *session.Session satisfies it.
type Registrar interface {
	Register(ctx context.Context, in api.RegisterInput) error
}

// DoneMsg is delivered to the screen below after a successful sign-up.
type DoneMsg struct {
	Username string
}

type resultMsg struct {
	username string
	err      error
}

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// RegisterScreen collects the new account details.
type RegisterScreen struct {
	reg    Registrar
	inputs [fieldCount]components.TextInput
	focus  int
	busy   bool
	status string
}

var _ screen.Screen = (*RegisterScreen)(nil)

// New creates the sign-up screen.
func New(reg Registrar) *RegisterScreen {
	return &RegisterScreen{
		reg: reg,
		inputs: [fieldCount]components.TextInput{
			components.NewTextInput("Username", "username", false, 150),
			components.NewTextInput("Email", "you@example.com", false, 254),
			components.NewPasswordInput("Password"),
		},
	}
}

func (r *RegisterScreen) Init() tea.Cmd {
	return r.inputs[r.focus].Focus()
}

func (r *RegisterScreen) Title() string {
	return "Create Account"
}

func (r *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign up"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		r.busy = false
		if msg.err != nil {
			r.status = FailedMessage
			if detail := api.Message(msg.err); detail != "" {
				r.status += " (" + detail + ")"
			}
			return r, nil
		}
		done := DoneMsg{Username: msg.username}
		return r, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return done },
		)

	case tea.KeyMsg:
		if r.busy {
			return r, nil
		}
		switch msg.String() {
		case "tab", "down":
			return r, r.setFocus((r.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return r, r.setFocus((r.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if r.focus < fieldPassword {
				return r, r.setFocus(r.focus + 1)
			}
			return r, r.submit()
		}
	}

	var cmd tea.Cmd
	r.inputs[r.focus], cmd = r.inputs[r.focus].Update(msg)
	return r, cmd
}

func (r *RegisterScreen) setFocus(i int) tea.Cmd {
	r.inputs[r.focus].Blur()
	r.focus = i
	return r.inputs[i].Focus()
}

// form reads and validates the inputs. problem is empty when valid.
func (r *RegisterScreen) form() (api.RegisterInput, string) {
	in := api.RegisterInput{
		Username: strings.TrimSpace(r.inputs[fieldUsername].Value()),
		Email:    strings.TrimSpace(r.inputs[fieldEmail].Value()),
		Password: r.inputs[fieldPassword].Value(),
	}
	switch {
	case in.Username == "" || in.Email == "" || in.Password == "":
		return in, "Please fill in all fields."
	case !validEmail(in.Email):
		return in, "Please enter a valid email address."
	}
	return in, ""
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func (r *RegisterScreen) submit() tea.Cmd {
	in, problem := r.form()
	if problem != "" {
		r.status = problem
		return nil
	}
	r.busy = true
	r.status = ""
	reg := r.reg
	return func() tea.Msg {
		return resultMsg{username: in.Username, err: reg.Register(context.Background(), in)}
	}
}

func (r *RegisterScreen) View(width, height int) string {
	sections := []string{
		theme.Title.Render("Create Account"),
		theme.Subtitle.Render("Join to get your career predictions"),
		"",
	}
	for _, in := range r.inputs {
		sections = append(sections, in.View())
	}
	if r.busy {
		sections = append(sections, "", theme.Hint.Render("Creating account..."))
	}
	if r.status != "" {
		sections = append(sections, "", components.StatusLine(r.status, true))
	}

	card := theme.Card.Width(60).Render(strings.Join(sections, "\n"))
	return components.Center(card, width, height)
}
