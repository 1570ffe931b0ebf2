// Package admin implements the moderation console: tabbed views over the
// prediction log, flagging, user removal, and model retraining.
package admin

import (
	"fmt"
	"strings"

	"github.com/abhisek/careerlens/internal/api"
)

// Tab selects a console view. Switching tabs never re-fetches.
type Tab int

const (
	TabAllLogs Tab = iota
	TabUsers
	TabFlagged
	TabReviews
	TabCorrections
	TabSettings
)

// AllTabs lists tabs in display order.
var AllTabs = []Tab{TabAllLogs, TabUsers, TabFlagged, TabReviews, TabCorrections, TabSettings}

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabAllLogs:
		return "All Logs"
	case TabUsers:
		return "Users"
	case TabFlagged:
		return "Flagged"
	case TabReviews:
		return "Reviews"
	case TabCorrections:
		return "Corrections"
	case TabSettings:
		return "Settings"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// Heading is the section title shown above the tab's content.
func (t Tab) Heading() string {
	switch t {
	case TabAllLogs:
		return "All Prediction Logs"
	case TabUsers:
		return "User Management"
	case TabFlagged:
		return "Flagged Predictions"
	case TabReviews:
		return "User Feedback & Ratings"
	case TabCorrections:
		return "Admin Feedback History"
	case TabSettings:
		return "System Settings & Model"
	default:
		return t.String()
	}
}

// IsPredictionTab reports whether the tab shows the prediction table.
func (t Tab) IsPredictionTab() bool {
	switch t {
	case TabAllLogs, TabFlagged, TabReviews, TabCorrections:
		return true
	}
	return false
}

// ParseTab maps a CLI name to a prediction tab.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "all-logs", "logs", "overview":
		return TabAllLogs, nil
	case "flagged":
		return TabFlagged, nil
	case "reviews":
		return TabReviews, nil
	case "corrections":
		return TabCorrections, nil
	}
	return 0, fmt.Errorf("unknown tab %q (want all, flagged, reviews, or corrections)", s)
}

// TableSpec toggles the optional prediction table columns.
type TableSpec struct {
	ShowUserFeedback  bool
	ShowAdminFeedback bool
}

// Columns returns the column toggles for a prediction tab.
func Columns(t Tab) TableSpec {
	switch t {
	case TabFlagged:
		return TableSpec{ShowUserFeedback: true, ShowAdminFeedback: true}
	case TabReviews:
		return TableSpec{ShowUserFeedback: true}
	case TabCorrections:
		return TableSpec{ShowAdminFeedback: true}
	default:
		return TableSpec{}
	}
}

// Flagged returns predictions currently flagged.
func Flagged(ps []api.Prediction) []api.Prediction {
	return filter(ps, func(p api.Prediction) bool { return p.IsFlagged })
}

// Reviews returns predictions with a rating or feedback text.
func Reviews(ps []api.Prediction) []api.Prediction {
	return filter(ps, api.Prediction.HasFeedback)
}

// Corrections returns predictions with an admin correction.
func Corrections(ps []api.Prediction) []api.Prediction {
	return filter(ps, func(p api.Prediction) bool { return p.Correction != "" })
}

// ForTab returns the predictions a tab shows.
func ForTab(t Tab, ps []api.Prediction) []api.Prediction {
	switch t {
	case TabFlagged:
		return Flagged(ps)
	case TabReviews:
		return Reviews(ps)
	case TabCorrections:
		return Corrections(ps)
	case TabAllLogs:
		return ps
	default:
		return nil
	}
}

func filter(ps []api.Prediction, keep func(api.Prediction) bool) []api.Prediction {
	out := make([]api.Prediction, 0, len(ps))
	for _, p := range ps {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// TopRole is the role shown for a prediction.
func TopRole(p api.Prediction) string {
	return p.Data.TopRole()
}

// FlagPatch builds the moderation update: the flag is flipped and the
// correction replaced, always together.
func FlagPatch(current bool, correction string) api.FlagPatch {
	return api.FlagPatch{IsFlagged: !current, Correction: correction}
}
