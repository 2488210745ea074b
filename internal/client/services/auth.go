// Package services contains the application services of the dashboard
// client: the login/logout flows that mutate session state, and the read
// services pages use to fetch dashboard data through the gateway.
package services

import (
	"context"
	"errors"

	"github.com/avdeyev/bizdash/internal/client/api"
	"github.com/avdeyev/bizdash/internal/client/session"
	"github.com/avdeyev/bizdash/internal/logging"
)

// AuthClient is the slice of the gateway the auth flows need.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (string, *session.UserRecord, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*session.UserRecord, error)
}

// AuthService owns the login and logout flows. It is the only writer of
// session state besides the gateway's 401 path.
type AuthService struct {
	client AuthClient
	store  *session.Store
	cache  *session.Cache
	log    logging.Logger
}

func NewAuthService(client AuthClient, store *session.Store, cache *session.Cache, log logging.Logger) *AuthService {
	return &AuthService{client: client, store: store, cache: cache, log: log}
}

// Login exchanges credentials for a session. Ordering matters: both store
// writes complete before the cache update, and the cache update is what
// makes the mounted guards re-evaluate and perform the post-login redirect —
// so no observer ever sees a navigation before the session is authenticated.
// On failure nothing is written.
func (a *AuthService) Login(ctx context.Context, email, password string) error {
	token, user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.store.SetToken(ctx, token)
	a.store.SetUser(ctx, user)
	a.cache.SetUser(user)
	return nil
}

// Logout notifies the server on a best-effort basis and then unconditionally
// wipes local session state. A failed logout call never blocks the local
// cleanup.
func (a *AuthService) Logout(ctx context.Context) {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
	}

	a.store.Clear(ctx)
	a.cache.SetUser(nil)
}

// Restore refreshes the persisted user record at startup. A stale token is
// detected here: the gateway's 401 path clears the session before we see the
// error, so Restore only reports failures that need the caller's attention.
func (a *AuthService) Restore(ctx context.Context) error {
	if !a.store.IsAuthenticated(ctx) {
		return nil
	}

	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return nil
		}
		// Keep the locally cached record when the server is unreachable.
		var nerr *api.NetworkError
		if errors.As(err, &nerr) {
			a.log.Warn(ctx, "profile refresh skipped, server unreachable")
			return nil
		}
		return err
	}

	a.store.SetUser(ctx, user)
	a.cache.SetUser(user)
	return nil
}
