package admin

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerlens/internal/admin"
	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/ui/components"
)

type fakeBackend struct {
	mu          sync.Mutex
	predictions []api.Prediction
	users       []api.User
	patches     []api.FlagPatch
	retrains    []api.RetrainInput
}

func (f *fakeBackend) AdminStats(context.Context) (*api.AdminStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &api.AdminStats{
		TotalUsers:         len(f.users),
		TotalPredictions:   len(f.predictions),
		FlaggedPredictions: len(admin.Flagged(f.predictions)),
	}, nil
}

func (f *fakeBackend) AdminPredictions(context.Context) ([]api.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Prediction(nil), f.predictions...), nil
}

func (f *fakeBackend) AdminUsers(context.Context) ([]api.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.User(nil), f.users...), nil
}

func (f *fakeBackend) UpdatePrediction(_ context.Context, id int64, patch api.FlagPatch) (*api.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patch)
	for i := range f.predictions {
		if f.predictions[i].ID == id {
			f.predictions[i].IsFlagged = patch.IsFlagged
			f.predictions[i].Correction = patch.Correction
			p := f.predictions[i]
			return &p, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeBackend) DeleteUser(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeBackend) Retrain(_ context.Context, in api.RetrainInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retrains = append(f.retrains, in)
	return "Model retrained successfully.", nil
}

type guard struct{ err error }

func (g guard) RequireStaff() error { return g.err }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// drain runs cmd and everything it produces, feeding messages back into
// the screen. Spinner ticks are not followed.
func drain(a *AdminScreen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(a, c)
		}
	case nil:
	default:
		_, next := a.Update(msg)
		if _, isDialog := msg.(components.DialogResultMsg); isDialog {
			drain(a, next)
		}
		if _, isAction := msg.(actionMsg); isAction {
			drain(a, next)
		}
	}
}

func seed() *fakeBackend {
	r := 4
	return &fakeBackend{
		predictions: []api.Prediction{
			{ID: 1, Username: "asha", Data: api.PredictionData{Result: "SDE"}, Rating: &r, FeedbackText: "good"},
			{ID: 2, Username: "ravi", Data: api.PredictionData{Result: "Analyst"}, IsFlagged: true, Correction: "Data Engineer"},
		},
		users: []api.User{
			{ID: 1, Username: "root", IsStaff: true},
			{ID: 2, Username: "asha"},
		},
	}
}

func loaded(t *testing.T, f *fakeBackend) *AdminScreen {
	t.Helper()
	a := New(f, guard{})
	drain(a, a.Init())
	require.True(t, a.console.Loaded())
	return a
}

func TestNonStaffSeesAccessDenied(t *testing.T) {
	a := New(seed(), guard{err: errors.New("denied")})
	assert.Nil(t, a.Init())
	assert.Contains(t, a.View(100, 30), "Access Denied")
}

func TestLoadAndTabs(t *testing.T) {
	a := loaded(t, seed())
	assert.Equal(t, 2, a.console.Stats().TotalPredictions)
	assert.Len(t, a.table.Rows(), 2)

	a.Update(keyPress('3'))
	assert.Equal(t, admin.TabFlagged, a.console.Tab)
	assert.Len(t, a.table.Rows(), 1)

	a.Update(specialKey(tea.KeyRight))
	assert.Equal(t, admin.TabReviews, a.console.Tab)
	assert.Len(t, a.table.Rows(), 1)

	a.Update(keyPress('2'))
	assert.Len(t, a.table.Rows(), 2)
}

func TestFlagSendsFlipAndCorrection(t *testing.T) {
	f := seed()
	a := loaded(t, f)

	a.Update(specialKey(tea.KeyEnter))
	require.True(t, a.dialog.Open)
	assert.True(t, a.CapturingInput())

	for _, r := range "wrong" {
		a.Update(keyPress(r))
	}
	_, cmd := a.Update(specialKey(tea.KeyEnter))
	drain(a, cmd)

	require.Len(t, f.patches, 1)
	assert.Equal(t, api.FlagPatch{IsFlagged: true, Correction: "wrong"}, f.patches[0])
	assert.Equal(t, 2, a.console.Stats().FlaggedPredictions)
	assert.False(t, a.isErr)
}

func TestCancelledFlagSendsNothing(t *testing.T) {
	f := seed()
	a := loaded(t, f)

	a.Update(specialKey(tea.KeyEnter))
	_, cmd := a.Update(specialKey(tea.KeyEscape))
	drain(a, cmd)

	assert.Empty(t, f.patches)
	assert.False(t, a.dialog.Open)
}

func TestDeleteUserAfterConfirm(t *testing.T) {
	f := seed()
	a := loaded(t, f)
	a.Update(keyPress('2'))

	// Staff row is protected.
	a.Update(keyPress('x'))
	assert.False(t, a.dialog.Open)
	assert.True(t, a.isErr)

	a.Update(specialKey(tea.KeyDown))
	a.Update(keyPress('x'))
	require.True(t, a.dialog.Open)

	_, cmd := a.Update(keyPress('y'))
	drain(a, cmd)

	assert.Len(t, a.console.Users(), 1)
	assert.Equal(t, 1, a.console.Stats().TotalUsers)
}

func TestRetrainWithNothingNewNeedsConfirmation(t *testing.T) {
	f := seed()
	a := loaded(t, f)
	a.Update(keyPress('6'))

	a.Update(specialKey(tea.KeyEnter))
	require.True(t, a.dialog.Open)
	assert.Empty(t, f.retrains)

	_, cmd := a.Update(keyPress('y'))
	drain(a, cmd)

	require.Len(t, f.retrains, 1)
	assert.Equal(t, api.RetrainInput{}, f.retrains[0])
	assert.Equal(t, "Model retrained successfully.", a.console.RetrainMsg())
	assert.False(t, a.retraining)
}

func TestRetrainWithFeedbackSkipsConfirmation(t *testing.T) {
	f := seed()
	a := loaded(t, f)
	a.Update(keyPress('6'))
	a.Update(keyPress(' '))

	_, cmd := a.Update(specialKey(tea.KeyEnter))
	assert.False(t, a.dialog.Open)
	assert.Equal(t, admin.RetrainProcessing, a.console.RetrainMsg())
	drain(a, cmd)

	require.Len(t, f.retrains, 1)
	assert.True(t, f.retrains[0].IncludeFeedback)
}
