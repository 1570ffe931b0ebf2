package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerlens/internal/api"
)

type fakeClient struct {
	history     []api.Prediction
	predict     *api.PredictResult
	predictErr  error
	feedbackErr error
	patches     []api.FeedbackPatch
	patchIDs    []int64

	// historyErr fails every History call after the first.
	historyErr   error
	historyCalls int
}

func (f *fakeClient) History(context.Context) ([]api.Prediction, error) {
	f.historyCalls++
	if f.historyErr != nil && f.historyCalls > 1 {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeClient) Predict(context.Context) (*api.PredictResult, error) {
	if f.predictErr != nil {
		return nil, f.predictErr
	}
	f.history = append([]api.Prediction{{ID: f.predict.HistoryID, Timestamp: time.Now(),
		Data: api.PredictionData{Result: f.predict.Prediction}}}, f.history...)
	return f.predict, nil
}

func (f *fakeClient) SubmitFeedback(_ context.Context, id int64, patch api.FeedbackPatch) (*api.Prediction, error) {
	if f.feedbackErr != nil {
		return nil, f.feedbackErr
	}
	f.patchIDs = append(f.patchIDs, id)
	f.patches = append(f.patches, patch)
	return &api.Prediction{ID: id}, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// run executes a command and feeds its message back into the screen.
func run(t *testing.T, d *DashboardScreen, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	d.Update(cmd())
}

func TestInitLoadsHistory(t *testing.T) {
	c := &fakeClient{history: []api.Prediction{{ID: 1, Timestamp: time.Now()}}}
	d := New(c)
	run(t, d, d.Init())

	assert.False(t, d.loading)
	assert.Len(t, d.flow.History(), 1)
	assert.Equal(t, 1, d.flow.Summary().Total)
}

func TestPredictOpensFeedbackAndSubmits(t *testing.T) {
	c := &fakeClient{predict: &api.PredictResult{Prediction: "Data Scientist", HistoryID: 42}}
	d := New(c)
	run(t, d, d.Init())

	_, cmd := d.Update(keyPress('p'))
	run(t, d, cmd)

	fb := d.flow.Feedback()
	require.True(t, fb.Open)
	assert.Equal(t, int64(42), fb.PredictionID)
	assert.True(t, d.CapturingInput())
	assert.Contains(t, d.status, "Data Scientist")

	// Submitting without a rating is blocked.
	_, cmd = d.Update(ctrlKey('s'))
	assert.Nil(t, cmd)
	assert.Empty(t, c.patches)

	d.Update(keyPress('4'))
	assert.True(t, d.flow.CanSubmit())

	d.Update(specialKey(tea.KeyTab))
	for _, r := range "great" {
		d.Update(keyPress(r))
	}

	_, cmd = d.Update(ctrlKey('s'))
	run(t, d, cmd)

	require.Len(t, c.patches, 1)
	assert.Equal(t, int64(42), c.patchIDs[0])
	assert.Equal(t, api.FeedbackPatch{Rating: 4, FeedbackText: "great"}, c.patches[0])
	assert.False(t, d.flow.Feedback().Open)
	assert.Equal(t, thanksMessage, d.status)
}

func TestFeedbackFailureKeepsModal(t *testing.T) {
	c := &fakeClient{
		history:     []api.Prediction{{ID: 7, Timestamp: time.Now()}},
		feedbackErr: errors.New("boom"),
	}
	d := New(c)
	run(t, d, d.Init())

	d.Update(keyPress('f'))
	require.True(t, d.flow.Feedback().Open)
	d.Update(keyPress('5'))

	_, cmd := d.Update(specialKey(tea.KeyEnter))
	run(t, d, cmd)

	fb := d.flow.Feedback()
	assert.True(t, fb.Open)
	assert.False(t, fb.Submitting)
	assert.Equal(t, 5, fb.Rating)
	assert.Equal(t, feedbackFailedMessage, d.status)
}

func TestFeedbackReportsFailedRefresh(t *testing.T) {
	c := &fakeClient{
		history:    []api.Prediction{{ID: 7, Timestamp: time.Now(), Data: api.PredictionData{Result: "Data Analyst"}}},
		historyErr: errors.New("connection reset"),
	}
	d := New(c)
	run(t, d, d.Init())

	d.Update(keyPress('f'))
	d.Update(keyPress('4'))
	_, cmd := d.Update(specialKey(tea.KeyEnter))
	run(t, d, cmd)

	require.Len(t, c.patches, 1)
	assert.False(t, d.flow.Feedback().Open)
	assert.True(t, d.isErr)
	assert.Contains(t, d.status, thanksMessage)
	assert.Contains(t, d.status, "history not refreshed: connection reset")
	assert.Len(t, d.flow.History(), 1, "stale history is kept")
}

func TestPredictReportsFailedRefresh(t *testing.T) {
	c := &fakeClient{
		predict:    &api.PredictResult{Prediction: "Data Scientist"},
		historyErr: errors.New("timeout"),
	}
	d := New(c)
	run(t, d, d.Init())

	_, cmd := d.Update(keyPress('p'))
	run(t, d, cmd)

	assert.True(t, d.isErr)
	assert.Contains(t, d.status, "Prediction: Data Scientist")
	assert.Contains(t, d.status, "history not refreshed: timeout")
}

func TestPredictFailureShowsHint(t *testing.T) {
	c := &fakeClient{predictErr: &api.StatusError{StatusCode: 400, Message: "Profile incomplete"}}
	d := New(c)
	run(t, d, d.Init())

	_, cmd := d.Update(keyPress('p'))
	run(t, d, cmd)

	assert.True(t, d.isErr)
	assert.Contains(t, d.status, "Make sure your profile has GPA and Major.")
	assert.False(t, d.flow.Feedback().Open)
}

func TestEscSkipsFeedback(t *testing.T) {
	c := &fakeClient{history: []api.Prediction{{ID: 3, Timestamp: time.Now()}}}
	d := New(c)
	run(t, d, d.Init())

	d.Update(keyPress('f'))
	d.Update(specialKey(tea.KeyEscape))
	assert.False(t, d.flow.Feedback().Open)
	assert.False(t, d.CapturingInput())
}

func TestViewRendersHistory(t *testing.T) {
	rating := 3
	c := &fakeClient{history: []api.Prediction{{
		ID: 1, Timestamp: time.Now(), Rating: &rating,
		Data: api.PredictionData{Result: "Backend Developer", Details: []api.RoleMatch{{Role: "Backend Developer", MatchScore: 87}}},
	}}}
	d := New(c)
	run(t, d, d.Init())
	d.Update(specialKey(tea.KeyEnter))

	view := d.View(100, 30)
	assert.Contains(t, view, "Backend Developer")
	assert.Contains(t, view, "87% Match")
	assert.Contains(t, view, "★★★")
}
