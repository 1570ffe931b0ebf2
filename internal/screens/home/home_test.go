package home

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/router"
	"github.com/abhisek/careerlens/internal/screen"
)

type fakeSession struct {
	user      *api.User
	loggedOut bool
}

func (f *fakeSession) User() *api.User { return f.user }
func (f *fakeSession) IsStaff() bool   { return f.user != nil && f.user.IsStaff }

func (f *fakeSession) Logout(context.Context) error {
	f.loggedOut = true
	return errors.New("keyring unavailable")
}

type named struct {
	screen.Screen
	name string
}

func routes() Routes {
	build := func(name string) func() screen.Screen {
		return func() screen.Screen { return &named{name: name} }
	}
	return Routes{
		Dashboard: build("dashboard"),
		Profile:   build("profile"),
		Insights:  build("insights"),
		Admin:     build("admin"),
		Requests:  build("requests"),
		Login:     build("login"),
	}
}

func TestMenuHidesAdminForRegularUsers(t *testing.T) {
	h := New(&fakeSession{user: &api.User{Username: "asha"}}, routes())
	assert.Equal(t, []string{"DASHBOARD", "PROFILE", "MARKET INSIGHTS", "REQUEST LOG", "LOGOUT", "EXIT"}, h.menuLabels)

	staff := New(&fakeSession{user: &api.User{Username: "root", IsStaff: true}}, routes())
	assert.Contains(t, staff.menuLabels, "ADMIN CONSOLE")
}

func TestMenuPushesScreens(t *testing.T) {
	h := New(&fakeSession{user: &api.User{Username: "asha"}}, routes())
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "profile", msg.Screen.(*named).name)
}

func TestLogoutResetsToLogin(t *testing.T) {
	sess := &fakeSession{user: &api.User{Username: "asha"}}
	h := New(sess, routes())
	for range 4 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, cmd = h.Update(cmd())
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "login", msg.Screen.(*named).name)
	assert.True(t, sess.loggedOut)
}

func TestViewGreetsUser(t *testing.T) {
	h := New(&fakeSession{user: &api.User{Username: "asha"}}, routes())
	assert.Contains(t, h.View(120, 40), "asha")
}
