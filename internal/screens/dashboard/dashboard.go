// Package dashboard is the prediction screen: run a prediction, browse
// the history, and rate results.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/dashboard"
	"github.com/abhisek/careerlens/internal/screen"
	"github.com/abhisek/careerlens/internal/ui/components"
	"github.com/abhisek/careerlens/internal/ui/layout"
)

const (
	thanksMessage         = "Thank you for your feedback!"
	feedbackFailedMessage = "Failed to submit feedback."
)

// DashboardScreen shows the stat row, the history, and the feedback modal.
type DashboardScreen struct {
	client   dashboard.Client
	flow     *dashboard.Workflow
	loading  bool
	busy     bool
	selected int
	expanded bool

	rating    components.StarRating
	comment   textarea.Model
	focusText bool

	status string
	isErr  bool
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates the dashboard. History loads on Init.
func New(client dashboard.Client) *DashboardScreen {
	ta := textarea.New()
	ta.Placeholder = "Tell us more (optional)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(4)

	return &DashboardScreen{
		client:  client,
		flow:    dashboard.New(),
		loading: true,
		comment: ta,
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	client := d.client
	return func() tea.Msg {
		h, err := client.History(context.Background())
		return historyMsg{history: h, err: err}
	}
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

// CapturingInput is true while the feedback modal is open.
func (d *DashboardScreen) CapturingInput() bool {
	return d.flow.Feedback().Open
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	if d.flow.Feedback().Open {
		return []layout.KeyHint{
			{Key: "1-5", Description: "Rate"},
			{Key: "Tab", Description: "Comment"},
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Esc", Description: "Skip"},
		}
	}
	return []layout.KeyHint{
		{Key: "P", Description: "Predict"},
		{Key: "↑↓", Description: "Browse"},
		{Key: "Enter", Description: "Details"},
		{Key: "F", Description: "Feedback"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyMsg:
		d.loading = false
		if msg.err != nil {
			d.setStatus("Could not load history: "+api.Message(msg.err), true)
			return d, nil
		}
		d.setHistory(msg.history)
		return d, nil

	case predictMsg:
		d.busy = false
		if msg.err != nil {
			d.setStatus(msg.err.Error(), true)
			return d, nil
		}
		if msg.history != nil {
			d.setHistory(msg.history)
		}
		d.selected = 0
		d.expanded = true
		d.setStatus(withRefresh("Prediction: "+msg.result.Prediction, msg.refreshErr))
		if msg.result.HistoryID > 0 {
			d.flow.ApplyPredictResult(msg.result)
			return d, d.openModal()
		}
		return d, nil

	case feedbackMsg:
		d.flow.FinishSubmit(msg.err)
		if msg.err != nil {
			d.setStatus(feedbackFailedMessage, true)
			return d, nil
		}
		if msg.history != nil {
			d.setHistory(msg.history)
		}
		d.setStatus(withRefresh(thanksMessage, msg.refreshErr))
		return d, nil

	case tea.KeyMsg:
		if d.flow.Feedback().Open {
			return d, d.updateModal(msg)
		}
		return d, d.updateList(msg)
	}

	if d.flow.Feedback().Open && d.focusText {
		var cmd tea.Cmd
		d.comment, cmd = d.comment.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DashboardScreen) updateList(msg tea.KeyMsg) tea.Cmd {
	history := d.flow.History()
	switch msg.String() {
	case "p", "P":
		return d.predict()
	case "up", "k":
		if d.selected > 0 {
			d.selected--
		}
	case "down", "j":
		if d.selected < len(history)-1 {
			d.selected++
		}
	case "enter":
		d.expanded = !d.expanded
	case "f", "F":
		if d.selected < len(history) {
			d.flow.OpenFeedback(history[d.selected].ID)
			return d.openModal()
		}
	}
	return nil
}

func (d *DashboardScreen) updateModal(msg tea.KeyMsg) tea.Cmd {
	fb := d.flow.Feedback()
	if fb.Submitting {
		return nil
	}

	switch msg.String() {
	case "esc":
		d.flow.CloseFeedback()
		d.comment.Blur()
		return nil
	case "tab", "shift+tab":
		d.focusText = !d.focusText
		if d.focusText {
			return d.comment.Focus()
		}
		d.comment.Blur()
		return nil
	case "ctrl+s":
		return d.submit()
	case "enter":
		if !d.focusText {
			return d.submit()
		}
	}

	if d.focusText {
		var cmd tea.Cmd
		d.comment, cmd = d.comment.Update(msg)
		d.flow.SetText(d.comment.Value())
		return cmd
	}

	d.rating, _ = d.rating.Update(msg)
	if d.rating.Value > 0 {
		// The picker only produces 1..5.
		_ = d.flow.SetRating(d.rating.Value)
	}
	return nil
}

func (d *DashboardScreen) openModal() tea.Cmd {
	d.rating = components.StarRating{}
	d.comment.Reset()
	d.comment.Blur()
	d.focusText = false
	return nil
}

func (d *DashboardScreen) predict() tea.Cmd {
	if d.busy {
		return nil
	}
	d.busy = true
	d.setStatus("Predicting...", false)
	client := d.client
	return func() tea.Msg {
		ctx := context.Background()
		res, err := client.Predict(ctx)
		if err != nil {
			return predictMsg{err: &dashboard.PredictionError{Err: err}}
		}
		// A failed refresh keeps the current history.
		h, herr := client.History(ctx)
		return predictMsg{result: res, history: h, refreshErr: herr}
	}
}

func (d *DashboardScreen) submit() tea.Cmd {
	d.flow.SetText(d.comment.Value())
	id, patch, err := d.flow.BeginSubmit()
	if err != nil {
		if errors.Is(err, dashboard.ErrRatingRequired) {
			d.setStatus("Please choose a rating before submitting.", true)
		} else {
			d.setStatus(err.Error(), true)
		}
		return nil
	}
	d.setStatus("", false)
	client := d.client
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := client.SubmitFeedback(ctx, id, patch); err != nil {
			return feedbackMsg{err: fmt.Errorf("submit feedback: %w", err)}
		}
		// A failed refresh keeps the current history.
		h, herr := client.History(ctx)
		return feedbackMsg{history: h, refreshErr: herr}
	}
}

func (d *DashboardScreen) setHistory(h []api.Prediction) {
	d.flow.SetHistory(h)
	if d.selected >= len(h) {
		d.selected = max(len(h)-1, 0)
	}
}

// withRefresh appends a failed history reload to a success message.
func withRefresh(msg string, refreshErr error) (string, bool) {
	if refreshErr == nil {
		return msg, false
	}
	return msg + " (history not refreshed: " + api.Message(refreshErr) + ")", true
}

func (d *DashboardScreen) setStatus(msg string, isErr bool) {
	d.status = msg
	d.isErr = isErr
}
