package api

import (
	"context"
	"net/http"
	"time"

	"github.com/abhisek/careerlens/internal/logger"
	"github.com/abhisek/careerlens/internal/store"
)

// recordingTransport is a RoundTripper decorator that records every
// request as a RequestEvent and logs it.
type recordingTransport struct {
	inner http.RoundTripper
	repo  store.RequestRepo
	log   *logger.Logger
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.inner.RoundTrip(req)

	data := store.RequestEventData{
		RequestID: req.Header.Get(RequestIDHeader),
		Method:    req.Method,
		Path:      req.URL.Path,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if resp != nil {
		data.Status = resp.StatusCode
		data.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
		if !data.Success {
			data.ErrorMessage = resp.Status
		}
	}
	if err != nil {
		data.Success = false
		data.ErrorMessage = err.Error()
	}

	t.log.Debug("api request",
		"method", data.Method,
		"path", data.Path,
		"status", data.Status,
		"latency_ms", data.LatencyMs,
		"request_id", data.RequestID,
	)

	// Record the event but don't fail the request if recording fails.
	// The request context may already be cancelled, so use a fresh one.
	if recErr := t.repo.AppendRequest(context.Background(), data); recErr != nil {
		t.log.Warn("failed to record request event", "error", recErr)
	}

	return resp, err
}
