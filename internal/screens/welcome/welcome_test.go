package welcome

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerlens/internal/router"
	"github.com/abhisek/careerlens/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "login" }
func (s *stubScreen) Title() string                          { return "Sign In" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestTaglineAppearsAfterFirstPhase(t *testing.T) {
	w, _ := newTestWelcome()
	assert.NotContains(t, w.View(80, 24), Tagline)

	sendTicks(w, 4)
	assert.Contains(t, w.View(80, 24), Tagline)
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.ReplaceScreenMsg)
	assert.True(t, ok)
	assert.Equal(t, 1, *calls)
}

func TestAutoTransitionAfterAnimation(t *testing.T) {
	w, calls := newTestWelcome()

	cmd := sendTicks(w, int(totalDur/tickInterval))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.NotNil(t, msg.Screen)
	assert.Equal(t, 1, *calls)

	// Late ticks stop the loop.
	assert.Nil(t, sendTicks(w, 1))
}

func TestNextBuiltOnce(t *testing.T) {
	w, calls := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)
}

func TestBannerFallsBackWhenNarrow(t *testing.T) {
	assert.Contains(t, RenderBanner(40), bannerCompact)
	assert.NotContains(t, RenderBanner(80), bannerCompact)
}
