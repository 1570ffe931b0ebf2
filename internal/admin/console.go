package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/careerlens/internal/api"
)

const (
	// DeleteConfirmText asks before removing an account.
	DeleteConfirmText = "Are you sure you want to delete this user? This action cannot be undone."

	// CorrectionPromptText asks for the correction when flagging.
	CorrectionPromptText = "Enter correction/feedback details (optional):"

	// RetrainConfirmText asks before retraining with nothing new.
	RetrainConfirmText = "No file selected and 'Include Feedback' is unchecked. This will just retrain on the existing dataset. Continue?"

	// RetrainProcessing is shown while a retrain request is in flight.
	RetrainProcessing = "Processing... please wait."
)

var (
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled")

	// ErrStaffNotDeletable is returned when deleting a staff account.
	ErrStaffNotDeletable = errors.New("staff accounts cannot be deleted from the console")
)

// Client is the subset of the API the console uses.
type Client interface {
	AdminStats(ctx context.Context) (*api.AdminStats, error)
	AdminPredictions(ctx context.Context) ([]api.Prediction, error)
	AdminUsers(ctx context.Context) ([]api.User, error)
	UpdatePrediction(ctx context.Context, id int64, patch api.FlagPatch) (*api.Prediction, error)
	DeleteUser(ctx context.Context, id int64) error
	Retrain(ctx context.Context, in api.RetrainInput) (string, error)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Prompter asks for free text with a default. ok is false when the user
// cancels, which is distinct from submitting an empty string.
type Prompter interface {
	Prompt(message, initial string) (text string, ok bool, err error)
}

// Preset answers a confirmation or prompt with a value collected
// elsewhere, such as a dialog that already closed.
type Preset struct {
	Text     string
	Accepted bool
}

func (p Preset) Confirm(string) (bool, error) { return p.Accepted, nil }

func (p Preset) Prompt(_, _ string) (string, bool, error) { return p.Text, p.Accepted, nil }

// Snapshot is the result of one refresh. Resources that failed to load
// are nil; Err holds the first failure.
type Snapshot struct {
	Generation  uint64
	Stats       *api.AdminStats
	Predictions []api.Prediction
	Users       []api.User
	Err         error
}

// Console is the admin state. The fetched prediction list is the single
// source of truth for every prediction tab.
type Console struct {
	client Client

	mu          sync.Mutex
	generation  uint64
	stats       api.AdminStats
	predictions []api.Prediction
	users       []api.User
	loaded      bool
	retrainMsg  string

	Tab Tab
}

// NewConsole creates a console on the all-logs tab.
func NewConsole(c Client) *Console {
	return &Console{client: c, Tab: TabAllLogs}
}

// BeginRefresh starts a new load generation and returns its number.
// Results from older generations are discarded by Apply.
func (c *Console) BeginRefresh() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// Fetch loads stats, predictions, and users concurrently. It does not
// touch console state, so it can run inside a command.
func Fetch(ctx context.Context, client Client, gen uint64) Snapshot {
	snap := Snapshot{Generation: gen}

	var g errgroup.Group
	g.Go(func() error {
		s, err := client.AdminStats(ctx)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		snap.Stats = s
		return nil
	})
	g.Go(func() error {
		ps, err := client.AdminPredictions(ctx)
		if err != nil {
			return fmt.Errorf("load predictions: %w", err)
		}
		if ps == nil {
			ps = []api.Prediction{}
		}
		snap.Predictions = ps
		return nil
	})
	g.Go(func() error {
		us, err := client.AdminUsers(ctx)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		if us == nil {
			us = []api.User{}
		}
		snap.Users = us
		return nil
	})
	snap.Err = g.Wait()
	return snap
}

// Apply installs a snapshot unless a newer refresh has started. Partial
// snapshots update only the resources that loaded. It reports whether the
// snapshot was applied.
func (c *Console) Apply(s Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.Generation != c.generation {
		return false
	}
	if s.Stats != nil {
		c.stats = *s.Stats
	}
	if s.Predictions != nil {
		c.predictions = s.Predictions
	}
	if s.Users != nil {
		c.users = s.Users
	}
	c.loaded = true
	return true
}

// Refresh reloads everything and returns the first load error.
func (c *Console) Refresh(ctx context.Context) error {
	snap := Fetch(ctx, c.client, c.BeginRefresh())
	c.Apply(snap)
	return snap.Err
}

// Stats returns the counters.
func (c *Console) Stats() api.AdminStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Predictions returns the full prediction list.
func (c *Console) Predictions() []api.Prediction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.predictions
}

// Users returns the account list.
func (c *Console) Users() []api.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.users
}

// Loaded reports whether any refresh has been applied.
func (c *Console) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// RetrainMsg is the progress or outcome line of the last retrain.
func (c *Console) RetrainMsg() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retrainMsg
}

// BeginRetrain marks a retrain as in flight.
func (c *Console) BeginRetrain() {
	c.setRetrainMsg(RetrainProcessing)
}

func (c *Console) setRetrainMsg(msg string) {
	c.mu.Lock()
	c.retrainMsg = msg
	c.mu.Unlock()
}

// ReviewCount is the number of predictions with user feedback.
func (c *Console) ReviewCount() int {
	return len(Reviews(c.Predictions()))
}

// Visible returns the predictions for the current tab.
func (c *Console) Visible() []api.Prediction {
	return ForTab(c.Tab, c.Predictions())
}

// ToggleFlag prompts for a correction and sends the flipped flag with it.
// A cancelled prompt sends nothing and returns ErrCancelled.
func (c *Console) ToggleFlag(ctx context.Context, p api.Prediction, prompt Prompter) error {
	text, ok, err := prompt.Prompt(CorrectionPromptText, p.Correction)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	if _, err := c.client.UpdatePrediction(ctx, p.ID, FlagPatch(p.IsFlagged, text)); err != nil {
		return fmt.Errorf("update prediction %d: %w", p.ID, err)
	}
	return c.Refresh(ctx)
}

// Deletable reports whether the console offers deletion for an account.
func Deletable(u api.User) bool {
	return !u.IsStaff
}

// DeleteUser asks for confirmation and removes the account.
func (c *Console) DeleteUser(ctx context.Context, u api.User, confirm Confirmer) error {
	if !Deletable(u) {
		return ErrStaffNotDeletable
	}
	ok, err := confirm.Confirm(DeleteConfirmText)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	if err := c.client.DeleteUser(ctx, u.ID); err != nil {
		return fmt.Errorf("delete user %d: %w", u.ID, err)
	}
	return c.Refresh(ctx)
}

// NeedsRetrainConfirmation reports whether a retrain would only reuse the
// existing dataset.
func NeedsRetrainConfirmation(in api.RetrainInput) bool {
	return in.File == "" && !in.IncludeFeedback
}

// RetrainStatus is the status line after a retrain request.
func RetrainStatus(message string, err error) string {
	if err != nil {
		return "Error: " + api.Message(err)
	}
	return message
}

// Retrain confirms when nothing new is supplied, then submits the retrain
// request. RetrainMsg tracks progress and outcome. No polling.
func (c *Console) Retrain(ctx context.Context, in api.RetrainInput, confirm Confirmer) error {
	if NeedsRetrainConfirmation(in) {
		ok, err := confirm.Confirm(RetrainConfirmText)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}

	c.BeginRetrain()
	msg, err := c.client.Retrain(ctx, in)
	c.setRetrainMsg(RetrainStatus(msg, err))
	if err != nil {
		return fmt.Errorf("retrain: %w", err)
	}
	return nil
}
