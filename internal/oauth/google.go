// Package oauth runs the Google sign-in flow for a terminal client: a
// loopback redirect listener, PKCE, and a userinfo lookup for the email
// the backend needs.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/abhisek/careerlens/internal/config"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	callbackPath      = "/callback"
)

// ErrNotConfigured is returned when no Google client ID is configured.
var ErrNotConfigured = errors.New("google sign-in is not configured (set google.client_id)")

// Identity is the result of a successful sign-in.
type Identity struct {
	IDToken string
	Email   string
}

// Flow signs in with Google through a loopback redirect. Each Run uses
// its own listener and state.
type Flow struct {
	cfg         *oauth2.Config
	port        int
	userInfoURL string
	httpClient  *http.Client
}

// NewGoogleFlow builds a Flow from configuration.
func NewGoogleFlow(c config.GoogleConfig) (*Flow, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}
	return &Flow{
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Scopes: []string{
				"openid",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: google.Endpoint,
		},
		port:        c.RedirectPort,
		userInfoURL: googleUserInfoURL,
	}, nil
}

type callbackResult struct {
	code string
	err  error
}

// Run starts the loopback listener, hands the consent URL to showURL, and
// waits for the browser to come back. It returns when the callback
// arrives or ctx is done.
func (f *Flow) Run(ctx context.Context, showURL func(string)) (*Identity, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", f.port))
	if err != nil {
		return nil, fmt.Errorf("listen for oauth callback: %w", err)
	}
	cfg := *f.cfg
	cfg.RedirectURL = fmt.Sprintf("http://%s%s", ln.Addr().String(), callbackPath)

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var res callbackResult
		switch {
		case q.Get("state") != state:
			res.err = errors.New("oauth state mismatch")
		case q.Get("error") != "":
			res.err = fmt.Errorf("google sign-in refused: %s", q.Get("error"))
		case q.Get("code") == "":
			res.err = errors.New("oauth callback without code")
		default:
			res.code = q.Get("code")
		}
		if res.err != nil {
			http.Error(w, res.err.Error(), http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "Signed in. You can close this window and return to the terminal.")
		}
		select {
		case results <- res:
		default:
		}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go srv.Serve(ln)
	defer srv.Close()

	showURL(cfg.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(verifier)))

	var res callbackResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-results:
	}
	if res.err != nil {
		return nil, res.err
	}

	if f.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
	}
	tok, err := cfg.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange oauth code: %w", err)
	}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		idToken = tok.AccessToken
	}

	email, err := f.fetchEmail(ctx, cfg.Client(ctx, tok))
	if err != nil {
		return nil, err
	}
	return &Identity{IDToken: idToken, Email: email}, nil
}

func (f *Flow) fetchEmail(ctx context.Context, client *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.userInfoURL, nil)
	if err != nil {
		return "", fmt.Errorf("build userinfo request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read userinfo: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo returned %s", resp.Status)
	}

	var info struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Email == "" {
		return "", errors.New("google account has no email")
	}
	return info.Email, nil
}
