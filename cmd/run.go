package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerlens/internal/app"
	"github.com/abhisek/careerlens/internal/oauth"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	opts := app.Options{
		Session:  e.session,
		Client:   e.client,
		Requests: e.store.RequestRepo(),
		Logger:   e.log,
	}

	flow, err := oauth.NewGoogleFlow(e.cfg.Google)
	switch {
	case errors.Is(err, oauth.ErrNotConfigured):
		e.log.Debug("google sign-in disabled")
	case err != nil:
		fmt.Fprintln(os.Stderr, "Google sign-in unavailable:", err)
	default:
		opts.Google = flow
	}

	return app.Run(opts)
}
