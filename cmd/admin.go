package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerlens/internal/admin"
	"github.com/abhisek/careerlens/internal/api"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Moderation console (staff only)",
}

// openConsole sets up the env, checks the staff flag, and loads the
// console data.
func openConsole(cmd *cobra.Command) (*env, *admin.Console, error) {
	e, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := e.requireUser(); err != nil {
		e.close()
		return nil, nil, err
	}
	if err := e.session.RequireStaff(); err != nil {
		e.close()
		return nil, nil, err
	}

	c := admin.NewConsole(e.client)
	if err := c.Refresh(ctxOf(cmd)); err != nil {
		e.close()
		return nil, nil, fmt.Errorf("load console: %s", api.Message(err))
	}
	return e, c, nil
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show user and prediction counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, c, err := openConsole(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		s := c.Stats()
		w := cmdOut(cmd)
		field(w, "Users", s.TotalUsers)
		field(w, "Predictions", s.TotalPredictions)
		flagged := fmt.Sprint(s.FlaggedPredictions)
		if s.FlaggedPredictions > 0 {
			flagged = red(flagged)
		}
		field(w, "Flagged", flagged)
		field(w, "Reviews", c.ReviewCount())
		return nil
	},
}

var adminPredictionsCmd = &cobra.Command{
	Use:   "predictions",
	Short: "List predictions for a console tab",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("tab")
		tab, err := admin.ParseTab(name)
		if err != nil {
			return err
		}

		e, c, err := openConsole(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		c.Tab = tab
		visible := c.Visible()
		fmt.Fprintln(cmdOut(cmd), bold(tab.Heading()))
		if len(visible) == 0 {
			fmt.Fprintln(cmdOut(cmd), gray("No predictions."))
			return nil
		}
		printTable(cmdOut(cmd), admin.PredictionTable(visible, admin.Columns(tab)))
		return nil
	},
}

var adminFlagCmd = &cobra.Command{
	Use:   "flag <prediction-id>",
	Short: "Flag or resolve a prediction, recording a correction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, c, err := openConsole(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		p, ok := findPrediction(c.Predictions(), id)
		if !ok {
			return fmt.Errorf("prediction %d not found", id)
		}

		var prompt admin.Prompter = cliPrompter{}
		if cmd.Flags().Changed("correction") {
			text, _ := cmd.Flags().GetString("correction")
			prompt = admin.Preset{Text: text, Accepted: true}
		}

		err = c.ToggleFlag(ctxOf(cmd), p, prompt)
		if errors.Is(err, admin.ErrCancelled) {
			fmt.Fprintln(cmdOut(cmd), "Cancelled.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("update prediction: %s", api.Message(err))
		}

		if p.IsFlagged {
			fmt.Fprintf(cmdOut(cmd), "Prediction %d resolved.\n", id)
		} else {
			fmt.Fprintf(cmdOut(cmd), "Prediction %d %s.\n", id, red("flagged"))
		}
		return nil
	},
}

func findPrediction(ps []api.Prediction, id int64) (api.Prediction, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return api.Prediction{}, false
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, c, err := openConsole(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		fmt.Fprintln(cmdOut(cmd), bold(admin.TabUsers.Heading()))
		printTable(cmdOut(cmd), admin.UserTable(c.Users()))
		return nil
	},
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user <user-id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		yes, _ := cmd.Flags().GetBool("yes")

		e, c, err := openConsole(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		var user *api.User
		for _, u := range c.Users() {
			if u.ID == id {
				user = &u
				break
			}
		}
		if user == nil {
			return fmt.Errorf("user %d not found", id)
		}

		var confirm admin.Confirmer = cliPrompter{}
		if yes {
			confirm = admin.Preset{Accepted: true}
		}
		err = c.DeleteUser(ctxOf(cmd), *user, confirm)
		switch {
		case errors.Is(err, admin.ErrCancelled):
			fmt.Fprintln(cmdOut(cmd), "Cancelled.")
			return nil
		case errors.Is(err, admin.ErrStaffNotDeletable):
			return err
		case err != nil:
			return fmt.Errorf("delete user: %s", api.Message(err))
		}
		fmt.Fprintf(cmdOut(cmd), "Deleted %s. %d users remain.\n", user.Username, c.Stats().TotalUsers)
		return nil
	},
}

var adminRetrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Retrain the prediction model",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		includeFeedback, _ := cmd.Flags().GetBool("include-feedback")
		yes, _ := cmd.Flags().GetBool("yes")

		e, c, err := openConsole(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		var confirm admin.Confirmer = cliPrompter{}
		if yes {
			confirm = admin.Preset{Accepted: true}
		}

		in := api.RetrainInput{File: file, IncludeFeedback: includeFeedback}
		err = c.Retrain(ctxOf(cmd), in, confirm)
		if errors.Is(err, admin.ErrCancelled) {
			fmt.Fprintln(cmdOut(cmd), "Cancelled.")
			return nil
		}
		if err != nil {
			return errors.New(c.RetrainMsg())
		}
		fmt.Fprintln(cmdOut(cmd), green(c.RetrainMsg()))
		return nil
	},
}

func init() {
	adminPredictionsCmd.Flags().String("tab", "all", "Tab to list: all, flagged, reviews, or corrections")
	adminFlagCmd.Flags().String("correction", "", "Correction text (prompted when omitted)")
	adminDeleteUserCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation")
	adminRetrainCmd.Flags().StringP("file", "f", "", "CSV dataset to upload")
	adminRetrainCmd.Flags().Bool("include-feedback", false, "Include user feedback in training")
	adminRetrainCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation")

	adminCmd.AddCommand(adminStatsCmd)
	adminCmd.AddCommand(adminPredictionsCmd)
	adminCmd.AddCommand(adminFlagCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminDeleteUserCmd)
	adminCmd.AddCommand(adminRetrainCmd)
}
