package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	After int64     // id > After
	From  time.Time // timestamp >= From
}

// Credential is the persisted token pair from the last successful login.
type Credential struct {
	AccessToken  string
	RefreshToken string
	SavedAt      time.Time
}

// CredentialRepo persists at most one credential.
type CredentialRepo interface {
	// Save replaces the stored credential.
	Save(ctx context.Context, cred Credential) error

	// Load returns the stored credential, or nil if none exists.
	Load(ctx context.Context) (*Credential, error)

	// Clear removes the stored credential. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// RequestEventData captures one API call.
type RequestEventData struct {
	RequestID    string
	Method       string
	Path         string
	Status       int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestEventRecord is a stored RequestEventData.
type RequestEventRecord struct {
	ID        int64
	Timestamp time.Time
	RequestEventData
}

// RequestRepo provides append and query access to the API request log.
type RequestRepo interface {
	// AppendRequest records a finished API call.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// QueryRequests returns events newest first.
	QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error)

	// GetRequest returns one event, or nil if it does not exist.
	GetRequest(ctx context.Context, id int64) (*RequestEventRecord, error)
}
