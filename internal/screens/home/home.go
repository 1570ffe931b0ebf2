package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/router"
	"github.com/abhisek/careerlens/internal/screen"
	"github.com/abhisek/careerlens/internal/ui/components"
	"github.com/abhisek/careerlens/internal/ui/layout"
)

// Session is the part of the session the home screen reads.
type Session interface {
	User() *api.User
	IsStaff() bool
	Logout(ctx context.Context) error
}

// Routes builds the screens reachable from home.
type Routes struct {
	Dashboard func() screen.Screen
	Profile   func() screen.Screen
	Insights  func() screen.Screen
	Admin     func() screen.Screen
	Requests  func() screen.Screen
	Login     func() screen.Screen
}

type loggedOutMsg struct{}

// HomeScreen is the main menu shown after login.
type HomeScreen struct {
	session    Session
	routes     Routes
	menu       components.Menu
	menuLabels []string
	username   string
	isStaff    bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. The admin entry is offered to staff only.
func New(sess Session, routes Routes) *HomeScreen {
	h := &HomeScreen{session: sess, routes: routes}
	if u := sess.User(); u != nil {
		h.username = u.Username
	}
	h.isStaff = sess.IsStaff()

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: "DASHBOARD", Action: push(routes.Dashboard)},
		{Label: "PROFILE", Action: push(routes.Profile)},
		{Label: "MARKET INSIGHTS", Action: push(routes.Insights)},
	}
	if h.isStaff {
		items = append(items, components.MenuItem{Label: "ADMIN CONSOLE", Action: push(routes.Admin)})
	}
	items = append(items,
		components.MenuItem{Label: "REQUEST LOG", Action: push(routes.Requests)},
		components.MenuItem{Label: "LOGOUT", Action: h.logout},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	)

	h.menu = components.NewMenu(items)
	for _, it := range items {
		h.menuLabels = append(h.menuLabels, it.Label)
	}
	return h
}

func (h *HomeScreen) logout() tea.Cmd {
	sess := h.session
	return func() tea.Msg {
		// A failed credential wipe still ends the in-memory session.
		_ = sess.Logout(context.Background())
		return loggedOutMsg{}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(loggedOutMsg); ok {
		next := h.routes.Login()
		return h, func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)
	if cw > 60 {
		cw = 60
	}

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderGreeting(h.username, h.isStaff, cw))
	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
