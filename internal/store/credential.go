package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const credentialsTable = "credentials"

// credentialRepo implements CredentialRepo. The table holds a single row
// pinned to id 1.
type credentialRepo struct {
	db *sql.DB
}

func (r *credentialRepo) Save(ctx context.Context, cred Credential) error {
	if cred.SavedAt.IsZero() {
		cred.SavedAt = time.Now()
	}
	query, args := builder().Insert(credentialsTable).
		Columns("id", "access_token", "refresh_token", "saved_at").
		Values(1, cred.AccessToken, cred.RefreshToken, cred.SavedAt.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (r *credentialRepo) Load(ctx context.Context) (*Credential, error) {
	query, args := builder().Select("access_token", "refresh_token", "saved_at").
		From(builder().Table(credentialsTable)).
		Where(entsql.EQ("id", 1)).
		Query()

	var (
		cred    Credential
		savedAt int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&cred.AccessToken, &cred.RefreshToken, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	cred.SavedAt = time.UnixMilli(savedAt)
	return &cred, nil
}

func (r *credentialRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(credentialsTable).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
