package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/careerlens/internal/logger"
	"github.com/abhisek/careerlens/internal/store"
)

// RequestIDHeader carries a per-request UUID so client and server logs
// can be correlated.
const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the current access token. An empty string means
// the request is sent without an Authorization header.
type TokenSource interface {
	AccessToken() string
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Recorder   store.RequestRepo // optional; records every call
	Logger     *logger.Logger    // optional
	HTTPClient *http.Client      // optional; overrides Timeout
}

// Client is the single HTTP client for the backend. It attaches the bearer
// token, stamps a request ID, and decodes JSON. It never retries.
type Client struct {
	base *url.URL
	http *http.Client
	log  *logger.Logger

	mu     sync.RWMutex
	tokens TokenSource
}

// New creates a Client for the backend rooted at opts.BaseURL.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	raw := opts.BaseURL
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api: base URL must be http or https, got %q", opts.BaseURL)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Recorder != nil {
		inner := hc.Transport
		if inner == nil {
			inner = http.DefaultTransport
		}
		copied := *hc
		copied.Transport = &recordingTransport{inner: inner, repo: opts.Recorder, log: log}
		hc = &copied
	}

	return &Client{base: base, http: hc, log: log}, nil
}

// SetTokenSource installs the source of access tokens. The session calls
// this once it is constructed around the client.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.AccessToken()
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// doJSON sends in as a JSON body (when non-nil) and decodes the response
// into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	raw, err := c.do(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &InvalidResponseError{Content: raw, Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return nil
}

// do sends one request and returns the body of a 2xx response.
// Non-2xx responses become *StatusError and transport failures
// *TransportError.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	target := c.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.accessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, raw)
	}
	return raw, nil
}
