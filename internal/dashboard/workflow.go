// Package dashboard holds the prediction history and the feedback
// workflow shown after each prediction.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/careerlens/internal/api"
)

// PredictionFailedHint is shown when a prediction cannot be made.
const PredictionFailedHint = "Prediction failed. Make sure your profile has GPA and Major."

var (
	ErrNoFeedbackOpen = errors.New("no feedback form is open")
	ErrRatingRequired = errors.New("please choose a rating")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrSubmitting     = errors.New("feedback is already being submitted")
)

// PredictionError wraps a failed predict call with the user-facing hint.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	if msg := api.Message(e.Err); msg != "" {
		return fmt.Sprintf("%s (%s)", PredictionFailedHint, msg)
	}
	return PredictionFailedHint
}

func (e *PredictionError) Unwrap() error { return e.Err }

// Client is the subset of the API the dashboard uses.
type Client interface {
	History(ctx context.Context) ([]api.Prediction, error)
	Predict(ctx context.Context) (*api.PredictResult, error)
	SubmitFeedback(ctx context.Context, id int64, patch api.FeedbackPatch) (*api.Prediction, error)
}

// Feedback is the state of the feedback form. Rating 0 means unset.
type Feedback struct {
	Open         bool
	PredictionID int64
	Rating       int
	Text         string
	Submitting   bool
}

// Summary is the stat row above the history.
type Summary struct {
	Total  int
	Latest time.Time // zero when there is no history
}

// Workflow is the dashboard state machine.
type Workflow struct {
	history  []api.Prediction
	feedback Feedback
}

// New returns an empty Workflow.
func New() *Workflow {
	return &Workflow{}
}

// SetHistory replaces the history with a fresh fetch.
func (w *Workflow) SetHistory(h []api.Prediction) {
	w.history = h
}

// History returns the predictions, newest first as the backend sends them.
func (w *Workflow) History() []api.Prediction {
	return w.history
}

// Summary computes the stat row.
func (w *Workflow) Summary() Summary {
	s := Summary{Total: len(w.history)}
	if len(w.history) > 0 {
		s.Latest = w.history[0].Timestamp
	}
	return s
}

// Feedback returns the feedback form state.
func (w *Workflow) Feedback() Feedback {
	return w.feedback
}

// OpenFeedback opens the form for a prediction with a blank draft.
func (w *Workflow) OpenFeedback(id int64) {
	w.feedback = Feedback{Open: true, PredictionID: id}
}

// CloseFeedback dismisses the form without submitting.
func (w *Workflow) CloseFeedback() {
	if w.feedback.Submitting {
		return
	}
	w.feedback = Feedback{}
}

// SetRating sets the star rating.
func (w *Workflow) SetRating(n int) error {
	if !w.feedback.Open {
		return ErrNoFeedbackOpen
	}
	if n < 1 || n > 5 {
		return ErrInvalidRating
	}
	w.feedback.Rating = n
	return nil
}

// SetText sets the free-text comment.
func (w *Workflow) SetText(s string) {
	if w.feedback.Open {
		w.feedback.Text = s
	}
}

// CanSubmit reports whether the submit action is enabled.
func (w *Workflow) CanSubmit() bool {
	f := w.feedback
	return f.Open && f.Rating >= 1 && !f.Submitting
}

// BeginSubmit marks the form in flight and returns what to send.
func (w *Workflow) BeginSubmit() (int64, api.FeedbackPatch, error) {
	f := w.feedback
	switch {
	case !f.Open:
		return 0, api.FeedbackPatch{}, ErrNoFeedbackOpen
	case f.Submitting:
		return 0, api.FeedbackPatch{}, ErrSubmitting
	case f.Rating < 1:
		return 0, api.FeedbackPatch{}, ErrRatingRequired
	}
	w.feedback.Submitting = true
	return f.PredictionID, api.FeedbackPatch{Rating: f.Rating, FeedbackText: f.Text}, nil
}

// FinishSubmit records the outcome. Success closes the form; failure
// keeps the draft so the user can retry.
func (w *Workflow) FinishSubmit(err error) {
	if err != nil {
		w.feedback.Submitting = false
		return
	}
	w.feedback = Feedback{}
}

// ApplyPredictResult opens the feedback form for a new prediction.
func (w *Workflow) ApplyPredictResult(res *api.PredictResult) {
	if res != nil && res.HistoryID > 0 {
		w.OpenFeedback(res.HistoryID)
	}
}

// RequestPrediction runs a prediction, refreshes the history, and opens
// the feedback form for the new record.
func (w *Workflow) RequestPrediction(ctx context.Context, c Client) (*api.PredictResult, error) {
	res, err := c.Predict(ctx)
	if err != nil {
		return nil, &PredictionError{Err: err}
	}
	h, err := c.History(ctx)
	if err != nil {
		return res, fmt.Errorf("refresh history: %w", err)
	}
	w.SetHistory(h)
	w.ApplyPredictResult(res)
	return res, nil
}

// Submit sends the open feedback form and refreshes the history.
func (w *Workflow) Submit(ctx context.Context, c Client) error {
	id, patch, err := w.BeginSubmit()
	if err != nil {
		return err
	}
	_, err = c.SubmitFeedback(ctx, id, patch)
	w.FinishSubmit(err)
	if err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}

	h, err := c.History(ctx)
	if err != nil {
		return fmt.Errorf("refresh history: %w", err)
	}
	w.SetHistory(h)
	return nil
}
