package admin

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerlens/internal/api"
)

// fakeBackend keeps admin state in memory and derives stats from it.
type fakeBackend struct {
	mu          sync.Mutex
	predictions []api.Prediction
	users       []api.User

	usersErr   error
	patches    []api.FlagPatch
	deleted    []int64
	retrains   []api.RetrainInput
	retrainMsg string
	retrainErr error
}

func (f *fakeBackend) AdminStats(context.Context) (*api.AdminStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &api.AdminStats{
		TotalUsers:         len(f.users),
		TotalPredictions:   len(f.predictions),
		FlaggedPredictions: len(Flagged(f.predictions)),
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
	if f.usersErr != nil {
		return nil, f.usersErr
	}
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
	return nil, &api.StatusError{StatusCode: 404, Message: "Not found."}
}

func (f *fakeBackend) DeleteUser(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return &api.StatusError{StatusCode: 404}
}

func (f *fakeBackend) Retrain(_ context.Context, in api.RetrainInput) (string, error) {
	f.retrains = append(f.retrains, in)
	return f.retrainMsg, f.retrainErr
}

type answer struct {
	ok   bool
	text string
}

func (a answer) Confirm(string) (bool, error) { return a.ok, nil }

func (a answer) Prompt(_, _ string) (string, bool, error) { return a.text, a.ok, nil }

func rating(n int) *int { return &n }

func seed() *fakeBackend {
	return &fakeBackend{
		predictions: []api.Prediction{
			{ID: 1, Username: "asha", Data: api.PredictionData{Result: "SDE"}, Rating: rating(4), FeedbackText: "good"},
			{ID: 2, Username: "ravi", Data: api.PredictionData{TopPrediction: "Analyst"}, IsFlagged: true, Correction: "Data Engineer"},
			{ID: 3, Username: "mei", Data: api.PredictionData{Details: []api.RoleMatch{{Role: "DevOps"}}}, FeedbackText: "meh"},
			{ID: 4, Username: "", Data: api.PredictionData{}},
		},
		users: []api.User{
			{ID: 1, Username: "root", IsStaff: true},
			{ID: 2, Username: "asha"},
			{ID: 3, Username: "ravi"},
		},
	}
}

func TestFilters(t *testing.T) {
	ps := seed().predictions

	ids := func(ps []api.Prediction) []int64 {
		var out []int64
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []int64{2}, ids(Flagged(ps)))
	assert.Equal(t, []int64{1, 3}, ids(Reviews(ps)))
	assert.Equal(t, []int64{2}, ids(Corrections(ps)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(ForTab(TabAllLogs, ps)))
	assert.Empty(t, ForTab(TabUsers, ps))
}

func TestTopRoleFallback(t *testing.T) {
	ps := seed().predictions
	assert.Equal(t, "SDE", TopRole(ps[0]))
	assert.Equal(t, "Analyst", TopRole(ps[1]))
	assert.Equal(t, "DevOps", TopRole(ps[2]))
	assert.Equal(t, "Unknown", TopRole(ps[3]))
}

func TestColumns(t *testing.T) {
	assert.Equal(t, TableSpec{}, Columns(TabAllLogs))
	assert.Equal(t, TableSpec{ShowUserFeedback: true, ShowAdminFeedback: true}, Columns(TabFlagged))
	assert.Equal(t, TableSpec{ShowUserFeedback: true}, Columns(TabReviews))
	assert.Equal(t, TableSpec{ShowAdminFeedback: true}, Columns(TabCorrections))
}

func TestPredictionTable(t *testing.T) {
	ps := seed().predictions
	tbl := PredictionTable(ps, Columns(TabFlagged))

	assert.Equal(t, []string{"ID", "Date", "User", "Prediction", "User Rating/Feedback", "Admin Correction", "Status", "Action"}, tbl.Headers)
	require.Len(t, tbl.Rows, 4)
	assert.Equal(t, `★★★★ "good"`, tbl.Rows[0][4])
	assert.Equal(t, "-", tbl.Rows[0][5])
	assert.Equal(t, "Data Engineer", tbl.Rows[1][5])
	assert.Equal(t, "Flagged", tbl.Rows[1][6])
	assert.Equal(t, "Resolve / Edit", tbl.Rows[1][7])
	assert.Equal(t, "Anonymous", tbl.Rows[3][2])

	plain := PredictionTable(ps, TableSpec{})
	assert.Len(t, plain.Headers, 6)
}

func TestUserTableHidesStaffDelete(t *testing.T) {
	tbl := UserTable(seed().users)
	assert.Equal(t, "Admin", tbl.Rows[0][4])
	assert.Equal(t, "", tbl.Rows[0][5])
	assert.Equal(t, "Delete", tbl.Rows[1][5])
	assert.Equal(t, "Unknown", tbl.Rows[1][3])
}

func TestFlagPatch(t *testing.T) {
	assert.Equal(t, api.FlagPatch{IsFlagged: true, Correction: "x"}, FlagPatch(false, "x"))
	assert.Equal(t, api.FlagPatch{IsFlagged: false, Correction: ""}, FlagPatch(true, ""))
}

func TestRefreshLoadsEverything(t *testing.T) {
	c := NewConsole(seed())
	require.NoError(t, c.Refresh(context.Background()))

	assert.True(t, c.Loaded())
	assert.Equal(t, api.AdminStats{TotalUsers: 3, TotalPredictions: 4, FlaggedPredictions: 1}, c.Stats())
	assert.Len(t, c.Predictions(), 4)
	assert.Len(t, c.Users(), 3)
	assert.Equal(t, 2, c.ReviewCount())
}

func TestRefreshPartialFailure(t *testing.T) {
	b := seed()
	b.usersErr = &api.StatusError{StatusCode: 500, Message: "boom"}
	c := NewConsole(b)

	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load users")
	assert.Len(t, c.Predictions(), 4, "other resources still applied")
	assert.Nil(t, c.Users())
}

func TestStaleSnapshotDropped(t *testing.T) {
	b := seed()
	c := NewConsole(b)

	old := c.BeginRefresh()
	newer := c.BeginRefresh()

	stale := Fetch(context.Background(), b, old)
	b.predictions = b.predictions[:1]
	fresh := Fetch(context.Background(), b, newer)

	assert.True(t, c.Apply(fresh))
	assert.False(t, c.Apply(stale))
	assert.Len(t, c.Predictions(), 1)
}

func TestToggleFlag(t *testing.T) {
	b := seed()
	c := NewConsole(b)
	require.NoError(t, c.Refresh(context.Background()))

	target := c.Predictions()[0]
	require.NoError(t, c.ToggleFlag(context.Background(), target, answer{ok: true, text: "Should be QA"}))

	require.Len(t, b.patches, 1)
	assert.Equal(t, api.FlagPatch{IsFlagged: true, Correction: "Should be QA"}, b.patches[0])

	got := c.Predictions()[0]
	assert.True(t, got.IsFlagged)
	assert.Equal(t, "Should be QA", got.Correction)
	assert.Equal(t, 4, *got.Rating, "feedback untouched")
	assert.Equal(t, "good", got.FeedbackText)
	assert.Equal(t, 2, c.Stats().FlaggedPredictions)
}

func TestToggleFlagEmptyCorrection(t *testing.T) {
	b := seed()
	c := NewConsole(b)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.ToggleFlag(context.Background(), c.Predictions()[1], answer{ok: true, text: ""}))
	assert.Equal(t, api.FlagPatch{IsFlagged: false, Correction: ""}, b.patches[0])
}

func TestToggleFlagCancelled(t *testing.T) {
	b := seed()
	c := NewConsole(b)

	err := c.ToggleFlag(context.Background(), b.predictions[0], answer{ok: false})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, b.patches)
}

func TestDeleteUser(t *testing.T) {
	b := seed()
	c := NewConsole(b)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.DeleteUser(context.Background(), c.Users()[1], answer{ok: true}))
	assert.Equal(t, []int64{2}, b.deleted)
	assert.Equal(t, 2, c.Stats().TotalUsers)
	for _, u := range c.Users() {
		assert.NotEqual(t, int64(2), u.ID)
	}
}

func TestDeleteUserCancelled(t *testing.T) {
	b := seed()
	c := NewConsole(b)
	require.NoError(t, c.Refresh(context.Background()))

	err := c.DeleteUser(context.Background(), c.Users()[1], answer{ok: false})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, b.deleted)
	assert.Len(t, c.Users(), 3)
}

func TestDeleteStaffRefused(t *testing.T) {
	b := seed()
	c := NewConsole(b)

	err := c.DeleteUser(context.Background(), b.users[0], answer{ok: true})
	assert.ErrorIs(t, err, ErrStaffNotDeletable)
	assert.Empty(t, b.deleted)
}

func TestRetrainNeedsConfirmation(t *testing.T) {
	b := &fakeBackend{retrainMsg: "Model retrained successfully."}
	c := NewConsole(b)

	err := c.Retrain(context.Background(), api.RetrainInput{}, answer{ok: false})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, b.retrains)

	require.NoError(t, c.Retrain(context.Background(), api.RetrainInput{}, answer{ok: true}))
	require.Len(t, b.retrains, 1)
	assert.Equal(t, api.RetrainInput{}, b.retrains[0])
	assert.Equal(t, "Model retrained successfully.", c.RetrainMsg())
}

func TestRetrainMsgReadableWhileRunning(t *testing.T) {
	b := &fakeBackend{retrainMsg: "Model retrained successfully."}
	c := NewConsole(b)

	done := make(chan error)
	go func() {
		done <- c.Retrain(context.Background(), api.RetrainInput{IncludeFeedback: true}, Preset{Accepted: true})
	}()
	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			assert.Equal(t, "Model retrained successfully.", c.RetrainMsg())
			return
		default:
			assert.Contains(t, []string{"", RetrainProcessing, "Model retrained successfully."}, c.RetrainMsg())
		}
	}
}

func TestRetrainSkipsConfirmationWithFeedback(t *testing.T) {
	b := &fakeBackend{retrainMsg: "ok"}
	c := NewConsole(b)

	confirmCalled := false
	err := c.Retrain(context.Background(), api.RetrainInput{IncludeFeedback: true}, confirmFunc(func() bool {
		confirmCalled = true
		return false
	}))
	require.NoError(t, err)
	assert.False(t, confirmCalled)
}

func TestRetrainFailureMessage(t *testing.T) {
	b := &fakeBackend{retrainErr: &api.StatusError{StatusCode: 400, Message: "No file provided and no existing dataset found."}}
	c := NewConsole(b)

	err := c.Retrain(context.Background(), api.RetrainInput{IncludeFeedback: true}, answer{ok: true})
	require.Error(t, err)
	assert.Equal(t, "Error: No file provided and no existing dataset found.", c.RetrainMsg())
	assert.True(t, errors.As(err, new(*api.StatusError)))
}

type confirmFunc func() bool

func (f confirmFunc) Confirm(string) (bool, error) { return f(), nil }

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("Flagged")
	require.NoError(t, err)
	assert.Equal(t, TabFlagged, tab)

	tab, err = ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabAllLogs, tab)

	_, err = ParseTab("users")
	assert.Error(t, err)
}
