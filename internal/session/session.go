// Package session owns the logged-in identity: the token pair, the decoded
// user, and their persistence between runs.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/logger"
	"github.com/abhisek/careerlens/internal/store"
)

var (
	// ErrNotLoggedIn is returned by operations that need a user.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrAccessDenied is returned when a non-staff user reaches a staff view.
	ErrAccessDenied = errors.New("access denied: admins only")
)

// Authenticator is the subset of the API client the session needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.TokenPair, error)
	Refresh(ctx context.Context, refresh string) (string, error)
	GoogleLogin(ctx context.Context, idToken, email string) (*api.TokenPair, error)
	Register(ctx context.Context, in api.RegisterInput) error
}

// Session is the scoped authentication state. Construct one per process
// and pass it to whatever needs the current user.
type Session struct {
	auth  Authenticator
	creds store.CredentialRepo
	log   *logger.Logger
	now   func() time.Time

	mu      sync.RWMutex
	access  string
	refresh string
	user    *api.User
}

// New creates a logged-out Session. Call Hydrate to restore a saved login.
func New(auth Authenticator, creds store.CredentialRepo, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{auth: auth, creds: creds, log: log, now: time.Now}
}

// Hydrate restores the saved credential. An expired access token is
// refreshed once; if that fails the credential is discarded and the
// session stays logged out. Only storage failures are returned.
func (s *Session) Hydrate(ctx context.Context) error {
	cred, err := s.creds.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if cred == nil {
		return nil
	}

	claims, err := decodeToken(cred.AccessToken)
	if err != nil {
		s.log.Warn("discarding unreadable credential", "error", err)
		return s.creds.Clear(ctx)
	}

	access := cred.AccessToken
	if claims.expired(s.now()) {
		if cred.RefreshToken == "" {
			s.log.Info("saved session expired")
			return s.creds.Clear(ctx)
		}
		fresh, err := s.auth.Refresh(ctx, cred.RefreshToken)
		if err != nil {
			s.log.Info("session refresh failed", "error", err)
			return s.creds.Clear(ctx)
		}
		claims, err = decodeToken(fresh)
		if err != nil {
			s.log.Warn("discarding unreadable refreshed token", "error", err)
			return s.creds.Clear(ctx)
		}
		access = fresh
		if err := s.creds.Save(ctx, store.Credential{AccessToken: access, RefreshToken: cred.RefreshToken}); err != nil {
			return fmt.Errorf("save refreshed credential: %w", err)
		}
	}

	s.set(access, cred.RefreshToken, claims.user())
	s.log.Debug("session restored", "username", claims.Username)
	return nil
}

// Login authenticates with a username and password and persists the
// resulting tokens.
func (s *Session) Login(ctx context.Context, username, password string) (*api.User, error) {
	pair, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, pair)
}

// LoginGoogle authenticates with a Google identity token.
func (s *Session) LoginGoogle(ctx context.Context, idToken, email string) (*api.User, error) {
	pair, err := s.auth.GoogleLogin(ctx, idToken, email)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, pair)
}

// Register creates an account. It does not log in; callers send the user
// to the login view afterwards.
func (s *Session) Register(ctx context.Context, in api.RegisterInput) error {
	return s.auth.Register(ctx, in)
}

// Logout forgets the tokens locally and on disk.
func (s *Session) Logout(ctx context.Context) error {
	s.set("", "", nil)
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func (s *Session) establish(ctx context.Context, pair *api.TokenPair) (*api.User, error) {
	claims, err := decodeToken(pair.Access)
	if err != nil {
		return nil, err
	}
	user := claims.user()
	if pair.User != nil {
		u := *pair.User
		user = &u
	}

	if err := s.creds.Save(ctx, store.Credential{AccessToken: pair.Access, RefreshToken: pair.Refresh}); err != nil {
		return nil, fmt.Errorf("save credential: %w", err)
	}
	s.set(pair.Access, pair.Refresh, user)
	s.log.Info("logged in", "username", user.Username, "staff", user.IsStaff)
	return s.User(), nil
}

func (s *Session) set(access, refresh string, user *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	s.user = user
}

// AccessToken implements api.TokenSource.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// User returns a copy of the current user, or nil when logged out.
func (s *Session) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether a user is present.
func (s *Session) LoggedIn() bool {
	return s.User() != nil
}

// IsStaff reports whether the current user has the staff flag.
func (s *Session) IsStaff() bool {
	u := s.User()
	return u != nil && u.IsStaff
}

// RequireUser returns ErrNotLoggedIn when nobody is logged in.
func (s *Session) RequireUser() error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

// RequireStaff guards admin views. It is a UI gate only; the backend
// enforces authorization on every admin endpoint.
func (s *Session) RequireStaff() error {
	if !s.IsStaff() {
		return ErrAccessDenied
	}
	return nil
}

var _ api.TokenSource = (*Session)(nil)
