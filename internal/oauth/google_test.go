package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/abhisek/careerlens/internal/config"
)

// fakeGoogle serves the token and userinfo endpoints.
func fakeGoogle(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.FormValue("code"))
		assert.NotEmpty(t, r.FormValue("code_verifier"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600,"id_token":"idt"}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		w.Write([]byte(`{"email":"asha@example.com","email_verified":true}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testFlow(t *testing.T, g *httptest.Server) *Flow {
	t.Helper()
	f, err := NewGoogleFlow(config.GoogleConfig{ClientID: "cid", ClientSecret: "sec"})
	require.NoError(t, err)
	f.cfg.Endpoint = oauth2.Endpoint{AuthURL: g.URL + "/auth", TokenURL: g.URL + "/token"}
	f.userInfoURL = g.URL + "/userinfo"
	f.port = 0
	return f
}

// browser simulates the user completing consent by hitting the redirect.
func browser(t *testing.T, mutate func(q url.Values)) func(string) {
	return func(authURL string) {
		u, err := url.Parse(authURL)
		require.NoError(t, err)
		q := u.Query()
		assert.Equal(t, "S256", q.Get("code_challenge_method"))

		cb, err := url.Parse(q.Get("redirect_uri"))
		require.NoError(t, err)
		v := url.Values{"state": {q.Get("state")}, "code": {"the-code"}}
		if mutate != nil {
			mutate(v)
		}
		cb.RawQuery = v.Encode()
		go func() {
			resp, err := http.Get(cb.String())
			if err == nil {
				resp.Body.Close()
			}
		}()
	}
}

func TestNewGoogleFlowRequiresClientID(t *testing.T) {
	_, err := NewGoogleFlow(config.GoogleConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRunSuccess(t *testing.T) {
	g := fakeGoogle(t)
	f := testFlow(t, g)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := f.Run(ctx, browser(t, nil))
	require.NoError(t, err)
	assert.Equal(t, &Identity{IDToken: "idt", Email: "asha@example.com"}, id)
}

func TestRunStateMismatch(t *testing.T) {
	g := fakeGoogle(t)
	f := testFlow(t, g)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := f.Run(ctx, browser(t, func(q url.Values) { q.Set("state", "forged") }))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state mismatch")
}

func TestRunConsentDenied(t *testing.T) {
	g := fakeGoogle(t)
	f := testFlow(t, g)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := f.Run(ctx, browser(t, func(q url.Values) {
		q.Del("code")
		q.Set("error", "access_denied")
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_denied")
}

func TestRunContextCancelled(t *testing.T) {
	g := fakeGoogle(t)
	f := testFlow(t, g)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := f.Run(ctx, func(string) { cancel() })
	assert.True(t, errors.Is(err, context.Canceled))
}
