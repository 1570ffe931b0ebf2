package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abhisek/careerlens/internal/api"
)

// accessClaims are the custom claims the backend adds to access tokens.
type accessClaims struct {
	UserID   userID `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

// userID accepts the id as a JSON number or a numeric string; backend
// versions differ.
type userID int64

func (u *userID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*u = 0
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("user_id: %w", err)
	}
	*u = userID(n)
	return nil
}

// decodeToken reads the claims of an access token without verifying its
// signature. The backend verifies; the client only needs identity and expiry.
func decodeToken(token string) (*accessClaims, error) {
	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}
	return &claims, nil
}

func (c *accessClaims) user() *api.User {
	return &api.User{
		ID:       int64(c.UserID),
		Username: c.Username,
		Email:    c.Email,
		IsStaff:  c.IsStaff,
	}
}

// expired reports whether the token's exp is at or before now. Tokens
// without exp never expire.
func (c *accessClaims) expired(now time.Time) bool {
	exp, err := c.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

var _ json.Unmarshaler = (*userID)(nil)
