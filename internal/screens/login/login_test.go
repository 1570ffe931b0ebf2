package login

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/oauth"
	"github.com/abhisek/careerlens/internal/router"
	"github.com/abhisek/careerlens/internal/screen"
	"github.com/abhisek/careerlens/internal/screens/register"
)

type fakeSession struct {
	loginErr  error
	username  string
	password  string
	idToken   string
	googleErr error
}

func (f *fakeSession) Login(_ context.Context, username, password string) (*api.User, error) {
	f.username, f.password = username, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.User{ID: 7, Username: username}, nil
}

func (f *fakeSession) LoginGoogle(_ context.Context, idToken, email string) (*api.User, error) {
	f.idToken = idToken
	if f.googleErr != nil {
		return nil, f.googleErr
	}
	return &api.User{ID: 8, Username: email}, nil
}

func (f *fakeSession) Register(context.Context, api.RegisterInput) error { return nil }

type fakeFlow struct {
	url string
	id  *oauth.Identity
	err error
}

func (f fakeFlow) Run(_ context.Context, showURL func(string)) (*oauth.Identity, error) {
	showURL(f.url)
	return f.id, f.err
}

type stubScreen struct{ screen.Screen }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(l *LoginScreen, s string) {
	for _, r := range s {
		l.Update(keyPress(r))
	}
}

func newScreen(sess Session, flow GoogleFlow) (*LoginScreen, *stubScreen) {
	home := &stubScreen{}
	l := New(sess, flow, func() screen.Screen { return home })
	l.Init()
	return l, home
}

func TestLoginSuccessResetsToHome(t *testing.T) {
	sess := &fakeSession{}
	l, home := newScreen(sess, nil)

	typeText(l, "asha")
	l.Update(specialKey(tea.KeyTab))
	typeText(l, "secret")
	_, cmd := l.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, l.busy)

	_, cmd = l.Update(cmd())
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Same(t, home, msg.Screen)
	assert.Equal(t, "asha", sess.username)
	assert.Equal(t, "secret", sess.password)
}

func TestLoginFailureShowsBackendMessage(t *testing.T) {
	sess := &fakeSession{loginErr: &api.StatusError{StatusCode: 401, Message: "Invalid credentials"}}
	l, _ := newScreen(sess, nil)

	typeText(l, "asha")
	l.Update(specialKey(tea.KeyEnter))
	typeText(l, "wrong")
	_, cmd := l.Update(specialKey(tea.KeyEnter))
	l.Update(cmd())

	assert.False(t, l.busy)
	assert.True(t, l.isErr)
	assert.Contains(t, l.status, "Login failed")
	assert.Contains(t, l.status, "Invalid credentials")
}

func TestEmptyFieldsAreRejected(t *testing.T) {
	l, _ := newScreen(&fakeSession{}, nil)
	l.Update(specialKey(tea.KeyTab))
	_, cmd := l.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.True(t, l.isErr)
}

func TestRegisterDonePrefillsUsername(t *testing.T) {
	l, _ := newScreen(&fakeSession{}, nil)
	l.Update(register.DoneMsg{Username: "ravi"})

	assert.Equal(t, "ravi", l.inputs[0].Value())
	assert.Equal(t, 1, l.focus)
	assert.Equal(t, "Registration successful. Please log in.", l.status)
	assert.False(t, l.isErr)
}

func TestCtrlNOpensRegistration(t *testing.T) {
	l, _ := newScreen(&fakeSession{}, nil)
	_, cmd := l.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &register.RegisterScreen{}, msg.Screen)
}

func TestGoogleWithoutConfigIsAnError(t *testing.T) {
	l, _ := newScreen(&fakeSession{}, nil)
	_, cmd := l.Update(tea.KeyPressMsg{Code: 'g', Mod: tea.ModCtrl})
	assert.Nil(t, cmd)
	assert.True(t, l.isErr)
}

func TestGoogleFlowSignsIn(t *testing.T) {
	sess := &fakeSession{}
	flow := fakeFlow{url: "https://accounts.example/auth", id: &oauth.Identity{IDToken: "tok", Email: "a@b.c"}}
	l, home := newScreen(sess, flow)

	l.startGoogle()
	l.Update(googleURLMsg(flow.url))
	assert.Contains(t, l.View(100, 30), "accounts.example")

	_, cmd := l.Update(googleResultMsg{id: flow.id})
	require.NotNil(t, cmd)
	_, cmd = l.Update(cmd())
	msg := cmd().(router.ResetScreenMsg)
	assert.Same(t, home, msg.Screen)
	assert.Equal(t, "tok", sess.idToken)
}

func TestGoogleFlowFailure(t *testing.T) {
	l, _ := newScreen(&fakeSession{}, fakeFlow{})
	l.startGoogle()
	l.Update(googleResultMsg{err: errors.New("state mismatch")})

	assert.False(t, l.busy)
	assert.Empty(t, l.authURL)
	assert.Contains(t, l.status, "state mismatch")
}
