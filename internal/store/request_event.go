package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const requestEventsTable = "request_events"

var requestEventColumns = []string{
	"id", "timestamp", "request_id", "method", "path",
	"status", "latency_ms", "success", "error_message",
}

// requestRepo implements RequestRepo.
type requestRepo struct {
	db *sql.DB
}

func (r *requestRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	query, args := builder().Insert(requestEventsTable).
		Columns("timestamp", "request_id", "method", "path", "status", "latency_ms", "success", "error_message").
		Values(time.Now().UnixMilli(), data.RequestID, data.Method, data.Path,
			data.Status, data.LatencyMs, data.Success, data.ErrorMessage).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *requestRepo) QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error) {
	sel := builder().Select(requestEventColumns...).
		From(builder().Table(requestEventsTable)).
		OrderBy(entsql.Desc("id"))

	if opts.After > 0 {
		sel = sel.Where(entsql.GT("id", opts.After))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	defer rows.Close()

	var records []RequestEventRecord
	for rows.Next() {
		rec, err := scanRequestEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request event: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *requestRepo) GetRequest(ctx context.Context, id int64) (*RequestEventRecord, error) {
	query, args := builder().Select(requestEventColumns...).
		From(builder().Table(requestEventsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanRequestEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get request event %d: %w", id, err)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequestEvent(row rowScanner) (*RequestEventRecord, error) {
	var (
		rec RequestEventRecord
		ts  int64
	)
	err := row.Scan(&rec.ID, &ts, &rec.RequestID, &rec.Method, &rec.Path,
		&rec.Status, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage)
	if err != nil {
		return nil, err
	}
	rec.Timestamp = time.UnixMilli(ts)
	return &rec, nil
}
