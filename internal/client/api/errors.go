package api

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired is returned after the gateway has already handled a
	// 401 by clearing local session state and redirecting to login. Callers
	// may show nothing for it: by the time they see it, the user is back at
	// the login page.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidCredentials is the login-specific rejection. Kept distinct
	// from NetworkError so the login form can say "wrong password" instead
	// of "server unreachable".
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPermissionDenied maps HTTP 403. No session mutation is performed.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound maps HTTP 404.
	ErrNotFound = errors.New("not found")
)

// NetworkError means no usable response was received. Timeout distinguishes
// a deadline from a connectivity failure so the UI can pick a retry message.
// The raw transport error stays wrapped underneath, never surfaced as-is.
type NetworkError struct {
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return "request timed out"
	}
	return "server unreachable"
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a failure response the gateway does not classify more
// precisely (5xx and any unexpected status).
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}

// RequestError is a caller-side failure constructing or encoding the
// request, kept distinct from network failures.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request setup error: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
