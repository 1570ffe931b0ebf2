package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/oauth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		useGoogle, _ := cmd.Flags().GetBool("google")
		username, _ := cmd.Flags().GetString("username")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		ctx := ctxOf(cmd)

		var user *api.User
		if useGoogle {
			user, err = loginGoogle(ctx, e, cmdOut(cmd))
		} else {
			user, err = loginPassword(ctx, e, username)
		}
		if err != nil {
			return fmt.Errorf("login failed: %s", api.Message(err))
		}

		fmt.Fprintf(cmdOut(cmd), "Logged in as %s", bold(user.Username))
		if user.IsStaff {
			fmt.Fprint(cmdOut(cmd), yellow(" (admin)"))
		}
		fmt.Fprintln(cmdOut(cmd))
		return nil
	},
}

func loginPassword(ctx context.Context, e *env, username string) (*api.User, error) {
	var err error
	if username == "" {
		if username, err = readLine("Username"); err != nil {
			return nil, err
		}
	}
	password, err := readPassword("Password")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	return e.session.Login(ctx, strings.TrimSpace(username), password)
}

func loginGoogle(ctx context.Context, e *env, w io.Writer) (*api.User, error) {
	flow, err := oauth.NewGoogleFlow(e.cfg.Google)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	id, err := flow.Run(ctx, func(url string) {
		fmt.Fprintln(w, "Open this URL in your browser to continue:")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+cyan(url))
		fmt.Fprintln(w)
	})
	if err != nil {
		return nil, err
	}
	return e.session.LoginGoogle(ctx, id.IDToken, id.Email)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.session.Logout(ctxOf(cmd)); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Fprintln(cmdOut(cmd), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		u := e.session.User()
		if u == nil {
			fmt.Fprintln(cmdOut(cmd), "Not logged in.")
			return nil
		}
		field(cmdOut(cmd), "User", bold(u.Username))
		field(cmdOut(cmd), "ID", u.ID)
		role := "User"
		if u.IsStaff {
			role = yellow("Admin")
		}
		field(cmdOut(cmd), "Role", role)
		field(cmdOut(cmd), "API", e.client.BaseURL())
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if username == "" {
			if username, err = readLine("Username"); err != nil {
				return err
			}
		}
		if email == "" {
			if email, err = readLine("Email"); err != nil {
				return err
			}
		}
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			return fmt.Errorf("invalid email address %q", email)
		}
		password, err := readPassword("Password")
		if err != nil {
			return err
		}

		in := api.RegisterInput{Username: strings.TrimSpace(username), Email: email, Password: password}
		if err := e.session.Register(ctxOf(cmd), in); err != nil {
			return fmt.Errorf("registration failed: %s", api.Message(err))
		}
		fmt.Fprintln(cmdOut(cmd), green("Registration successful."), "Run 'careerlens login' to sign in.")
		return nil
	},
}

func init() {
	loginCmd.Flags().Bool("google", false, "Sign in with Google in the browser")
	loginCmd.Flags().StringP("username", "u", "", "Username (prompted when omitted)")

	registerCmd.Flags().StringP("username", "u", "", "Username (prompted when omitted)")
	registerCmd.Flags().StringP("email", "e", "", "Email (prompted when omitted)")
}
