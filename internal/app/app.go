// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/logger"
	"github.com/abhisek/careerlens/internal/oauth"
	"github.com/abhisek/careerlens/internal/router"
	"github.com/abhisek/careerlens/internal/screen"
	adminscreen "github.com/abhisek/careerlens/internal/screens/admin"
	dashboardscreen "github.com/abhisek/careerlens/internal/screens/dashboard"
	"github.com/abhisek/careerlens/internal/screens/home"
	insightsscreen "github.com/abhisek/careerlens/internal/screens/insights"
	"github.com/abhisek/careerlens/internal/screens/login"
	"github.com/abhisek/careerlens/internal/screens/requests"
	profilescreen "github.com/abhisek/careerlens/internal/screens/profile"
	"github.com/abhisek/careerlens/internal/screens/welcome"
	"github.com/abhisek/careerlens/internal/session"
	"github.com/abhisek/careerlens/internal/store"
	"github.com/abhisek/careerlens/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Session  *session.Session
	Client   *api.Client
	Google   *oauth.Flow // nil when Google sign-in is not configured
	Requests store.RequestRepo
	Logger   *logger.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *session.Session
	log     *logger.Logger
	width   int
	height  int
}

// newAppModel builds the screen graph and starts on the splash, which hands
// off to home when a stored session was restored and to login otherwise.
func newAppModel(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	sess, client := opts.Session, opts.Client

	var google login.GoogleFlow
	if opts.Google != nil {
		google = opts.Google
	}

	var homeScreen, loginScreen func() screen.Screen
	profileScreen := func() screen.Screen { return profilescreen.New(client) }
	routes := home.Routes{
		Dashboard: func() screen.Screen { return dashboardscreen.New(client) },
		Profile:   profileScreen,
		Insights:  func() screen.Screen { return insightsscreen.New(client, profileScreen) },
		Admin:     func() screen.Screen { return adminscreen.New(client, sess) },
		Requests:  func() screen.Screen { return requests.New(opts.Requests) },
		Login:     func() screen.Screen { return loginScreen() },
	}
	homeScreen = func() screen.Screen { return home.New(sess, routes) }
	loginScreen = func() screen.Screen { return login.New(sess, google, homeScreen) }

	first := loginScreen
	if sess.LoggedIn() {
		first = homeScreen
	}

	return AppModel{
		router:  router.New(welcome.New(first)),
		session: sess,
		log:     log,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.router.Update(msg)

	case router.PushScreenMsg, router.ReplaceScreenMsg, router.ResetScreenMsg:
		m.log.Debug("navigate", "msg", fmt.Sprintf("%T", msg))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var who layout.Identity
	if u := m.session.User(); u != nil {
		who = layout.Identity{Username: u.Username, IsStaff: u.IsStaff}
	}
	header := layout.RenderHeader(title, who, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); hints != nil {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
