// Package login is the sign-in screen: username and password, or the
// Google loopback flow when it is configured.
package login

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/oauth"
	"github.com/abhisek/careerlens/internal/router"
	"github.com/abhisek/careerlens/internal/screen"
	"github.com/abhisek/careerlens/internal/screens/register"
	"github.com/abhisek/careerlens/internal/ui/components"
	"github.com/abhisek/careerlens/internal/ui/layout"
	"github.com/abhisek/careerlens/internal/ui/theme"
)

// Session is the part of the session the screen drives.
type Session interface {
	Login(ctx context.Context, username, password string) (*api.User, error)
	LoginGoogle(ctx context.Context, idToken, email string) (*api.User, error)
	Register(ctx context.Context, in api.RegisterInput) error
}

// GoogleFlow runs the browser sign-in. *oauth.Flow satisfies it.
type GoogleFlow interface {
	Run(ctx context.Context, showURL func(string)) (*oauth.Identity, error)
}

// googleTimeout bounds how long the screen waits for the browser.
const googleTimeout = 3 * time.Minute

type loginResultMsg struct {
	user *api.User
	err  error
}

type googleURLMsg string

type googleResultMsg struct {
	id  *oauth.Identity
	err error
}

// LoginScreen collects credentials and hands off to the home screen.
type LoginScreen struct {
	session Session
	google  GoogleFlow
	onLogin func() screen.Screen

	inputs  [2]components.TextInput
	focus   int
	busy    bool
	status  string
	isErr   bool
	authURL string
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates the login screen. google may be nil. onLogin builds the
// screen shown after a successful sign-in.
func New(sess Session, google GoogleFlow, onLogin func() screen.Screen) *LoginScreen {
	l := &LoginScreen{
		session: sess,
		google:  google,
		onLogin: onLogin,
		inputs: [2]components.TextInput{
			components.NewTextInput("Username", "username", false, 150),
			components.NewPasswordInput("Password"),
		},
	}
	return l
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.inputs[l.focus].Focus()
}

func (l *LoginScreen) Title() string {
	return "Sign In"
}

// CapturingInput keeps Esc from leaving the screen while typing.
func (l *LoginScreen) CapturingInput() bool {
	return true
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Login"},
		{Key: "Ctrl+N", Description: "Sign up"},
	}
	if l.google != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+G", Description: "Google"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		l.busy = false
		if msg.err != nil {
			l.setStatus("Login failed: "+api.Message(msg.err), true)
			return l, nil
		}
		next := l.onLogin()
		return l, func() tea.Msg { return router.ResetScreenMsg{Screen: next} }

	case googleURLMsg:
		l.authURL = string(msg)
		return l, nil

	case googleResultMsg:
		if msg.err != nil {
			l.busy = false
			l.authURL = ""
			l.setStatus("Google sign-in failed: "+api.Message(msg.err), true)
			return l, nil
		}
		return l, l.loginGoogle(msg.id)

	case register.DoneMsg:
		l.inputs[0].SetValue(msg.Username)
		l.inputs[1].SetValue("")
		l.setStatus("Registration successful. Please log in.", false)
		return l, l.setFocus(1)

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		switch msg.String() {
		case "tab", "down":
			return l, l.setFocus((l.focus + 1) % len(l.inputs))
		case "shift+tab", "up":
			return l, l.setFocus((l.focus + len(l.inputs) - 1) % len(l.inputs))
		case "enter":
			if l.focus == 0 {
				return l, l.setFocus(1)
			}
			return l, l.submit()
		case "ctrl+n":
			return l, func() tea.Msg {
				return router.PushScreenMsg{Screen: register.New(l.session)}
			}
		case "ctrl+g":
			return l, l.startGoogle()
		case "esc":
			l.status = ""
			return l, nil
		}
	}

	var cmd tea.Cmd
	l.inputs[l.focus], cmd = l.inputs[l.focus].Update(msg)
	return l, cmd
}

func (l *LoginScreen) setFocus(i int) tea.Cmd {
	l.inputs[l.focus].Blur()
	l.focus = i
	return l.inputs[i].Focus()
}

func (l *LoginScreen) setStatus(msg string, isErr bool) {
	l.status = msg
	l.isErr = isErr
}

func (l *LoginScreen) submit() tea.Cmd {
	username := strings.TrimSpace(l.inputs[0].Value())
	password := l.inputs[1].Value()
	if username == "" || password == "" {
		l.setStatus("Please enter your username and password.", true)
		return nil
	}
	l.busy = true
	l.setStatus("Signing in...", false)
	sess := l.session
	return func() tea.Msg {
		u, err := sess.Login(context.Background(), username, password)
		return loginResultMsg{user: u, err: err}
	}
}

func (l *LoginScreen) startGoogle() tea.Cmd {
	if l.google == nil {
		l.setStatus("Google sign-in is not configured.", true)
		return nil
	}
	l.busy = true
	l.setStatus("Waiting for Google sign-in in your browser...", false)

	urls := make(chan string, 1)
	flow := l.google
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), googleTimeout)
		defer cancel()
		id, err := flow.Run(ctx, func(u string) { urls <- u })
		close(urls)
		return googleResultMsg{id: id, err: err}
	}
	waitURL := func() tea.Msg {
		u, ok := <-urls
		if !ok {
			return nil
		}
		return googleURLMsg(u)
	}
	return tea.Batch(run, waitURL)
}

func (l *LoginScreen) loginGoogle(id *oauth.Identity) tea.Cmd {
	sess := l.session
	return func() tea.Msg {
		u, err := sess.LoginGoogle(context.Background(), id.IDToken, id.Email)
		return loginResultMsg{user: u, err: err}
	}
}

func (l *LoginScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render("Welcome Back"))
	sections = append(sections, theme.Subtitle.Render("Sign in to continue your journey"))
	sections = append(sections, "")
	for _, in := range l.inputs {
		sections = append(sections, in.View())
	}

	if l.authURL != "" {
		sections = append(sections, "",
			theme.Hint.Render("Open this URL to continue:"),
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(l.authURL))
	}
	if l.status != "" {
		sections = append(sections, "", components.StatusLine(l.status, l.isErr))
	}

	card := theme.Card.Width(60).Render(strings.Join(sections, "\n"))
	return components.Center(card, width, height)
}
