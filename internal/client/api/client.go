// Package api is the HTTP gateway: the single egress point for every call to
// the dashboard API. It attaches the bearer credential from the session
// store, enforces the request timeout, classifies failure responses into
// typed errors, and on a 401 clears local session state and forces
// navigation to the login route.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/avdeyev/bizdash/internal/client/session"
	"github.com/avdeyev/bizdash/internal/common"
	"github.com/avdeyev/bizdash/internal/logging"
	"github.com/google/uuid"
)

// Navigator is the navigation primitive the gateway needs for the forced
// login redirect. The client router satisfies it.
type Navigator interface {
	Path() string
	Navigate(path string)
}

const defaultTimeout = 10 * time.Second

// Config holds the gateway settings.
type Config struct {
	// BaseURL is the API origin, e.g. "http://127.0.0.1:8080".
	BaseURL string
	// Timeout bounds every request end to end. Zero means the default.
	Timeout time.Duration
	// LoginPath is the route the gateway redirects to on session loss.
	LoginPath string
}

// Client is the gateway. All remote calls in the application go through it.
type Client struct {
	baseURL   string
	loginPath string
	http      *http.Client
	store     *session.Store
	cache     *session.Cache
	nav       Navigator
	log       logging.Logger
}

// New builds a gateway over the given session store, cache and navigator.
func New(cfg Config, store *session.Store, cache *session.Cache, nav Navigator, log logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		loginPath: cfg.LoginPath,
		http: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				store: store,
				base:  http.DefaultTransport,
			},
		},
		store: store,
		cache: cache,
		nav:   nav,
		log:   log,
	}
}

// authTransport attaches the bearer token to every outgoing request when the
// store holds one. This is the only place the token leaves the store.
type authTransport struct {
	store *session.Store
	base  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := t.store.GetToken(req.Context()); ok {
		req = req.Clone(req.Context())
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}
	return t.base.RoundTrip(req)
}

type callOpts struct {
	// skipSessionGuard disables the global 401 handling. Used by the auth
	// endpoints themselves: a 401 from /login means bad credentials, not a
	// lost session.
	skipSessionGuard bool
}

// errorBody is the error envelope the API uses for failure responses.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, opts callOpts) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RequestError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &NetworkError{Err: err}
		}
		if len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &ServerError{Status: resp.StatusCode, Message: "malformed response body"}
		}
		return nil
	}

	return c.classifyFailure(ctx, resp, opts)
}

// classifyFailure maps a non-2xx response to exactly one typed error.
// Only the 401 path mutates session state.
func (c *Client) classifyFailure(ctx context.Context, resp *http.Response, opts callOpts) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if opts.skipSessionGuard {
			return ErrInvalidCredentials
		}
		c.invalidateSession(ctx)
		return ErrSessionExpired

	case resp.StatusCode == http.StatusForbidden:
		return ErrPermissionDenied

	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound

	default:
		var eb errorBody
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
			_ = json.Unmarshal(data, &eb)
		}
		return &ServerError{Status: resp.StatusCode, Message: eb.Error.Message}
	}
}

// invalidateSession is the global 401 reaction: wipe the persisted session,
// clear the observable user mirror, and land on the login route. Safe to run
// while already on the login path; the extra navigation is skipped then.
func (c *Client) invalidateSession(ctx context.Context) {
	c.log.Warn(ctx, "session invalidated by server, clearing local state")

	c.store.Clear(ctx)
	c.cache.SetUser(nil)

	if c.nav != nil && c.nav.Path() != c.loginPath {
		c.nav.Navigate(c.loginPath)
	}
}

func classifyTransportError(err error) error {
	var nerr net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &nerr) && nerr.Timeout())
	return &NetworkError{Timeout: timeout, Err: err}
}

// Get performs a GET against an API path and decodes the JSON response into
// out. Business endpoints pass through here unchanged.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, callOpts{})
}

// Post performs a POST with a JSON body against an API path.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out, callOpts{})
}
