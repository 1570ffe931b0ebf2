package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerlens/internal/admin"
	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/dashboard"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run a career prediction from the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		if err := e.requireUser(); err != nil {
			return err
		}

		flow := dashboard.New()
		res, err := flow.RequestPrediction(ctxOf(cmd), e.client)
		var perr *dashboard.PredictionError
		if errors.As(err, &perr) {
			return fmt.Errorf("prediction failed: %s", api.Message(perr.Err))
		}
		// A failed history refresh still leaves a result to show.

		w := cmdOut(cmd)
		fmt.Fprintf(w, "Top match: %s\n\n", bold(res.Prediction))
		printMatches(w, dashboard.TopMatches(api.Prediction{Data: api.PredictionData{Details: res.Predictions}}))
		if res.HistoryID > 0 {
			fmt.Fprintf(w, "\nRate it with: careerlens feedback %d --rating 1-5\n", res.HistoryID)
		}
		return nil
	},
}

func printMatches(w io.Writer, matches []api.RoleMatch) {
	for i, m := range matches {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, bold(m.Role), cyan(fmt.Sprintf("%.0f%% match", m.MatchScore)))
		if m.Justification != "" {
			fmt.Fprintf(w, "   %s\n", m.Justification)
		}
		if len(m.MissingSkills) > 0 {
			fmt.Fprintf(w, "   %s %s\n", gray("Missing skills:"), strings.Join(m.MissingSkills, ", "))
		}
		if len(m.RecommendedCerts) > 0 {
			fmt.Fprintf(w, "   %s %s\n", gray("Recommended:"), strings.Join(m.RecommendedCerts, ", "))
		}
	}
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		if err := e.requireUser(); err != nil {
			return err
		}

		h, err := e.client.History(ctxOf(cmd))
		if err != nil {
			return fmt.Errorf("load history: %s", api.Message(err))
		}
		if len(h) == 0 {
			fmt.Fprintln(cmdOut(cmd), "No predictions yet. Run 'careerlens predict'.")
			return nil
		}

		t := admin.Table{Headers: []string{"ID", "Date", "Prediction", "Rating", "Feedback"}}
		for _, p := range h {
			rating := ""
			if p.Rating != nil {
				rating = admin.Stars(*p.Rating)
			}
			t.Rows = append(t.Rows, []string{
				strconv.FormatInt(p.ID, 10),
				p.Timestamp.Local().Format("2006-01-02 15:04"),
				admin.TopRole(p),
				rating,
				p.FeedbackText,
			})
		}
		printTable(cmdOut(cmd), t)
		return nil
	},
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback <prediction-id>",
	Short: "Rate a prediction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		rating, _ := cmd.Flags().GetInt("rating")
		text, _ := cmd.Flags().GetString("text")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		if err := e.requireUser(); err != nil {
			return err
		}

		flow := dashboard.New()
		flow.OpenFeedback(id)
		if err := flow.SetRating(rating); err != nil {
			return fmt.Errorf("--rating: %w", err)
		}
		flow.SetText(text)

		if err := flow.Submit(ctxOf(cmd), e.client); err != nil {
			if flow.Feedback().Open {
				return fmt.Errorf("failed to submit feedback: %s", api.Message(err))
			}
			// Submitted; only the refresh failed.
			e.log.Warn("history refresh after feedback failed", "error", err)
		}
		fmt.Fprintln(cmdOut(cmd), green("Thank you for your feedback!"))
		return nil
	},
}

func init() {
	feedbackCmd.Flags().IntP("rating", "r", 0, "Star rating from 1 to 5")
	feedbackCmd.Flags().StringP("text", "t", "", "Optional comment")
	_ = feedbackCmd.MarkFlagRequired("rating")
}
