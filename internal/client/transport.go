package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/session"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

type Response struct {
	StatusCode int
	Data       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport handles low-level HTTP and authentication. Credentialed calls go
// through an oauth2.Transport fed by the session; a 401 on one of them logs
// the session out before the error reaches the caller.
type Transport struct {
	BaseURL string

	session      *session.Session
	authClient   *http.Client
	publicClient *http.Client
}

type Option func(*options)

type options struct {
	roundTripper http.RoundTripper
}

// WithRoundTripper replaces the network transport underneath both clients.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *options) {
		o.roundTripper = rt
	}
}

// NewTransport creates a transport with base URL and session
func NewTransport(baseURL string, timeout time.Duration, sess *session.Session, opts ...Option) *Transport {
	o := options{roundTripper: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	return &Transport{
		BaseURL: baseURL,
		session: sess,
		authClient: &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: sess.TokenSource(),
				Base:   o.roundTripper,
			},
		},
		publicClient: &http.Client{
			Timeout:   timeout,
			Transport: o.roundTripper,
		},
	}
}

// helper: build full URL with query params
func (t *Transport) buildURL(path string, query map[string]string) (string, error) {
	u, err := url.Parse(strings.TrimRight(t.BaseURL, "/") + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("build url: %w", err)
	}
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (t *Transport) Get(ctx context.Context, path string, query map[string]string) (*Response, error) {
	return t.do(ctx, http.MethodGet, path, query, nil, true)
}

func (t *Transport) Post(ctx context.Context, path string, data any) (*Response, error) {
	return t.do(ctx, http.MethodPost, path, nil, data, true)
}

func (t *Transport) Put(ctx context.Context, path string, data any) (*Response, error) {
	return t.do(ctx, http.MethodPut, path, nil, data, true)
}

func (t *Transport) Delete(ctx context.Context, path string) (*Response, error) {
	return t.do(ctx, http.MethodDelete, path, nil, nil, true)
}

// PostPublic sends a POST without credentials (login, registration).
func (t *Transport) PostPublic(ctx context.Context, path string, data any) (*Response, error) {
	return t.do(ctx, http.MethodPost, path, nil, data, false)
}

// do returns a Response for every completed HTTP exchange, whatever its
// status. The error is reserved for transport failures and for the
// authentication rejection that ends the session.
func (t *Transport) do(ctx context.Context, method, path string, query map[string]string, data any, authed bool) (*Response, error) {
	fullURL, err := t.buildURL(path, query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := t.publicClient
	if authed {
		httpClient = t.authClient
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		slog.Debug("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	resdata, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	slog.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if authed && resp.StatusCode == http.StatusUnauthorized {
		if err := t.session.Logout(); err != nil {
			slog.Warn("failed to clear session after 401", "error", err)
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, auth.ErrSessionExpired)
	}

	return &Response{StatusCode: resp.StatusCode, Data: resdata}, nil
}

// decode unmarshals a 2xx body into v, or turns any other status into an
// *APIError.
func decode(resp *Response, v any) error {
	if !resp.OK() {
		return newAPIError(resp)
	}
	if v == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
