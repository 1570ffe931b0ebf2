// Package admin is the staff console screen.
package admin

import (
	"context"
	"errors"
	"os"

	"charm.land/bubbles/v2/filepicker"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerlens/internal/admin"
	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/screen"
	"github.com/abhisek/careerlens/internal/ui/components"
	"github.com/abhisek/careerlens/internal/ui/layout"
)

// Guard decides whether the current user may see the console.
// *session.Session satisfies it.
type Guard interface {
	RequireStaff() error
}

// AdminScreen is the moderation console.
type AdminScreen struct {
	client  admin.Client
	console *admin.Console
	denied  bool

	table   table.Model
	dialog  components.Dialog
	pending any // prediction or user the open dialog acts on

	picker          filepicker.Model
	picking         bool
	file            string
	includeFeedback bool
	retraining      bool
	spinner         spinner.Model

	busy   bool
	status string
	isErr  bool
	width  int
	height int
}

var _ screen.Screen = (*AdminScreen)(nil)

// New creates the console. Non-staff users get an access denied panel and
// nothing is fetched.
func New(client admin.Client, guard Guard) *AdminScreen {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv"}
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	return &AdminScreen{
		client:  client,
		console: admin.NewConsole(client),
		denied:  guard.RequireStaff() != nil,
		table:   newTable(),
		picker:  fp,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   layout.MinWidth,
		height:  layout.ContentHeight(layout.MinHeight),
	}
}

func (a *AdminScreen) Init() tea.Cmd {
	if a.denied {
		return nil
	}
	return a.refresh()
}

func (a *AdminScreen) Title() string {
	return "Admin Console"
}

// CapturingInput is true while a dialog or the file picker is open.
func (a *AdminScreen) CapturingInput() bool {
	return a.dialog.Open || a.picking
}

func (a *AdminScreen) KeyHints() []layout.KeyHint {
	switch {
	case a.denied:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case a.dialog.Open:
		return nil
	case a.picking:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Browse"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Cancel"},
		}
	}

	hints := []layout.KeyHint{{Key: "←→", Description: "Tabs"}}
	switch {
	case a.console.Tab.IsPredictionTab():
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Flag / Resolve"})
	case a.console.Tab == admin.TabUsers:
		hints = append(hints, layout.KeyHint{Key: "X", Description: "Delete"})
	case a.console.Tab == admin.TabSettings:
		hints = append(hints,
			layout.KeyHint{Key: "O", Description: "Pick CSV"},
			layout.KeyHint{Key: "Space", Description: "Include feedback"},
			layout.KeyHint{Key: "Enter", Description: "Retrain"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "R", Description: "Refresh"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (a *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if a.denied {
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, layout.ContentHeight(msg.Height)
		return a, nil

	case snapshotMsg:
		if a.console.Apply(msg.snap) {
			a.busy = false
			if msg.snap.Err != nil {
				a.setStatus("Could not load console data: "+api.Message(msg.snap.Err), true)
			}
			a.syncTable()
		}
		return a, nil

	case actionMsg:
		a.busy = false
		switch {
		case errors.Is(msg.err, admin.ErrCancelled):
			a.setStatus("", false)
		case msg.err != nil:
			a.setStatus(msg.done+" failed: "+api.Message(msg.err), true)
		default:
			a.setStatus(msg.done+".", false)
		}
		a.syncTable()
		return a, nil

	case retrainMsg:
		// The console already recorded the outcome.
		a.retraining = false
		return a, nil

	case spinner.TickMsg:
		if !a.retraining {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case components.DialogResultMsg:
		return a, a.handleDialog(msg)
	}

	if a.dialog.Open {
		var cmd tea.Cmd
		a.dialog, cmd = a.dialog.Update(msg)
		return a, cmd
	}

	if a.picking {
		return a, a.updatePicker(msg)
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		return a, a.handleKey(kmsg)
	}

	// Directory listings arrive after the picker closes too.
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

func (a *AdminScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch k := msg.String(); k {
	case "right", "l", "tab":
		return a.switchTab(int(a.console.Tab) + 1)
	case "left", "h", "shift+tab":
		return a.switchTab(int(a.console.Tab) + len(admin.AllTabs) - 1)
	case "1", "2", "3", "4", "5", "6":
		return a.switchTab(int(k[0] - '1'))
	case "r", "R":
		if !a.busy {
			return a.refresh()
		}
		return nil
	}

	switch tab := a.console.Tab; {
	case tab.IsPredictionTab():
		return a.handlePredictionKey(msg)
	case tab == admin.TabUsers:
		return a.handleUserKey(msg)
	case tab == admin.TabSettings:
		return a.handleSettingsKey(msg)
	}
	return nil
}

func (a *AdminScreen) handlePredictionKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "f", "F":
		visible := a.console.Visible()
		i := a.table.Cursor()
		if a.busy || i < 0 || i >= len(visible) {
			return nil
		}
		p := visible[i]
		a.pending = p
		a.dialog = components.NewPrompt(dialogFlag, admin.CorrectionPromptText, p.Correction)
		return nil
	}
	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return cmd
}

func (a *AdminScreen) handleUserKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "x", "X", "delete":
		users := a.console.Users()
		i := a.table.Cursor()
		if a.busy || i < 0 || i >= len(users) {
			return nil
		}
		u := users[i]
		if !admin.Deletable(u) {
			a.setStatus(admin.ErrStaffNotDeletable.Error(), true)
			return nil
		}
		a.pending = u
		a.dialog = components.NewConfirm(dialogDelete, admin.DeleteConfirmText)
		return nil
	}
	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return cmd
}

func (a *AdminScreen) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	if a.retraining {
		return nil
	}
	switch msg.String() {
	case "o", "O":
		a.picking = true
		a.picker.SetHeight(max(a.height-8, 5))
		return a.picker.Init()
	case "c", "C":
		a.file = ""
	case "space", " ":
		a.includeFeedback = !a.includeFeedback
	case "enter":
		in := a.retrainInput()
		if admin.NeedsRetrainConfirmation(in) {
			a.dialog = components.NewConfirm(dialogRetrain, admin.RetrainConfirmText)
			return nil
		}
		return a.retrain(in)
	}
	return nil
}

func (a *AdminScreen) updatePicker(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		a.picking = false
		return nil
	}
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	if ok, path := a.picker.DidSelectFile(msg); ok {
		a.file = path
		a.picking = false
	}
	return cmd
}

func (a *AdminScreen) handleDialog(res components.DialogResultMsg) tea.Cmd {
	pending := a.pending
	a.pending = nil
	if !res.OK {
		return nil
	}

	ctx := context.Background()
	console := a.console
	switch res.ID {
	case dialogFlag:
		p, ok := pending.(api.Prediction)
		if !ok {
			return nil
		}
		a.busy = true
		answer := admin.Preset{Text: res.Text, Accepted: true}
		done := "Flagged prediction"
		if p.IsFlagged {
			done = "Resolved prediction"
		}
		return func() tea.Msg {
			return actionMsg{done: done, err: console.ToggleFlag(ctx, p, answer)}
		}

	case dialogDelete:
		u, ok := pending.(api.User)
		if !ok {
			return nil
		}
		a.busy = true
		return func() tea.Msg {
			return actionMsg{done: "Deleted " + u.Username, err: console.DeleteUser(ctx, u, admin.Preset{Accepted: true})}
		}

	case dialogRetrain:
		return a.retrain(a.retrainInput())
	}
	return nil
}

func (a *AdminScreen) retrainInput() api.RetrainInput {
	return api.RetrainInput{File: a.file, IncludeFeedback: a.includeFeedback}
}

func (a *AdminScreen) retrain(in api.RetrainInput) tea.Cmd {
	a.retraining = true
	a.console.BeginRetrain()
	console := a.console
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		// Any confirmation already happened in the dialog.
		return retrainMsg{err: console.Retrain(context.Background(), in, admin.Preset{Accepted: true})}
	})
}

func (a *AdminScreen) refresh() tea.Cmd {
	a.busy = true
	gen := a.console.BeginRefresh()
	client := a.client
	return func() tea.Msg {
		return snapshotMsg{snap: admin.Fetch(context.Background(), client, gen)}
	}
}

func (a *AdminScreen) switchTab(i int) tea.Cmd {
	a.console.Tab = admin.AllTabs[i%len(admin.AllTabs)]
	a.setStatus("", false)
	a.syncTable()
	return nil
}

func (a *AdminScreen) setStatus(msg string, isErr bool) {
	a.status = msg
	a.isErr = isErr
}
