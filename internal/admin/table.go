package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/careerlens/internal/api"
)

const (
	dateLayout = "2006-01-02"
	emptyCell  = "-"
)

// Table is a rendered grid, shared by the TUI and the CLI.
type Table struct {
	Headers []string
	Rows    [][]string
}

// PredictionTable renders predictions with the given column toggles.
func PredictionTable(ps []api.Prediction, spec TableSpec) Table {
	headers := []string{"ID", "Date", "User", "Prediction"}
	if spec.ShowUserFeedback {
		headers = append(headers, "User Rating/Feedback")
	}
	if spec.ShowAdminFeedback {
		headers = append(headers, "Admin Correction")
	}
	headers = append(headers, "Status", "Action")

	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		row := []string{
			strconv.FormatInt(p.ID, 10),
			formatDate(p.Timestamp),
			orDefault(p.Username, "Anonymous"),
			TopRole(p),
		}
		if spec.ShowUserFeedback {
			row = append(row, feedbackCell(p))
		}
		if spec.ShowAdminFeedback {
			row = append(row, orDefault(p.Correction, emptyCell))
		}
		row = append(row, Status(p), ActionLabel(p))
		rows = append(rows, row)
	}
	return Table{Headers: headers, Rows: rows}
}

// UserTable renders the account list.
func UserTable(users []api.User) Table {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		action := "Delete"
		if !Deletable(u) {
			action = ""
		}
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Email,
			orDefault(formatDate(u.DateJoined), "Unknown"),
			RoleLabel(u),
			action,
		})
	}
	return Table{
		Headers: []string{"ID", "Username", "Email", "Date Joined", "Role", "Action"},
		Rows:    rows,
	}
}

// Status is the moderation badge text.
func Status(p api.Prediction) string {
	if p.IsFlagged {
		return "Flagged"
	}
	return "Normal"
}

// ActionLabel is the moderation button text.
func ActionLabel(p api.Prediction) string {
	if p.IsFlagged {
		return "Resolve / Edit"
	}
	return "Flag"
}

// RoleLabel is the account role badge text.
func RoleLabel(u api.User) string {
	if u.IsStaff {
		return "Admin"
	}
	return "User"
}

// Stars renders a 1..5 rating.
func Stars(rating int) string {
	if rating < 1 {
		return ""
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating)
}

func feedbackCell(p api.Prediction) string {
	var parts []string
	if p.Rating != nil && *p.Rating > 0 {
		parts = append(parts, Stars(*p.Rating))
	}
	if p.FeedbackText != "" {
		parts = append(parts, strconv.Quote(p.FeedbackText))
	}
	if len(parts) == 0 {
		return emptyCell
	}
	return strings.Join(parts, " ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
