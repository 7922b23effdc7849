// Package client is a Go client for the cliptube API.
//
// Every outgoing request runs through a refresh coordinator: when a
// request comes back authentication-expired, exactly one refresh call is
// made no matter how many requests observed the expiry concurrently, and
// each affected request is replayed at most once.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	perr "cliptube/internal/platform/errors"
)

// Credentials is the access/refresh token pair the client holds
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Client talks to the API with automatic credential refresh
type Client struct {
	base string
	http *http.Client

	mu    sync.Mutex
	creds Credentials

	coord *refreshCoordinator
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient swaps the underlying http client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the API at base, e.g. "https://api.example.com/api/v1"
func New(base string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: 30 * time.Second},
		creds: creds,
	}
	for _, o := range opts {
		o(c)
	}
	c.coord = newRefreshCoordinator(c.refresh)
	return c
}

// Credentials returns the pair the client currently holds
func (c *Client) Credentials() Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creds
}

// envelope mirrors the server's response wrapper
type envelope struct {
	StatusCode int             `json:"status_code"`
	Status     string          `json:"status"`
	Code       int             `json:"code,omitempty"`
	Error      *wireError      `json:"error,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type wireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Do issues a request and decodes the envelope's data into out (out may be
// nil). A 401 on a not-yet-retried request routes through the coordinator
// and replays once; a second 401 is terminal for that request.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	status, data, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		if err := c.coord.run(ctx); err != nil {
			return err
		}
		// replay exactly once; the coordinator is not consulted again
		status, data, err = c.roundTrip(ctx, method, path, body)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			return perr.Unauthorizedf("request unauthorized after refresh")
		}
	}

	return decode(status, data, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, perr.Wrap(err, perr.ErrorCodeJSON, "request encode failed")
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Credentials().AccessToken; tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

// refresh exchanges the stored refresh token for a new pair. Called by the
// coordinator only. A rejected exchange clears the local credentials; a
// transport failure does not, since the server never consumed the token
// and a later attempt can still succeed with the same pair.
func (c *Client) refresh(ctx context.Context) error {
	cur := c.Credentials()
	if cur.RefreshToken == "" {
		return ErrReauthRequired
	}

	status, data, err := c.roundTrip(ctx, http.MethodPost, "/auth/refresh", map[string]string{
		"refresh_token": cur.RefreshToken,
	})
	if err != nil {
		// transient: the stored pair may still be good
		return err
	}

	var pair Credentials
	if derr := decode(status, data, &pair); derr != nil {
		c.mu.Lock()
		c.creds = Credentials{}
		c.mu.Unlock()
		return ErrReauthRequired
	}

	c.mu.Lock()
	c.creds = pair
	c.mu.Unlock()
	return nil
}

func decode(status int, data []byte, out any) error {
	var env envelope
	if len(data) > 0 {
		if err := json.Unmarshal(data, &env); err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "response decode failed")
		}
	}

	if status >= 400 {
		if env.Error != nil {
			return perr.Newf(perr.ErrorCode(env.Error.Code), "%s", env.Error.Message)
		}
		return perr.Newf(perr.ErrorCodeUnknown, "request failed with status %d", status)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "response decode failed")
	}
	return nil
}
