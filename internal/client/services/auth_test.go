package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/avdeyev/bizdash/internal/client/api"
	"github.com/avdeyev/bizdash/internal/client/session"
	"github.com/avdeyev/bizdash/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthClient struct {
	loginToken string
	loginUser  *session.UserRecord
	loginErr   error

	logoutErr   error
	logoutCalls int

	currentUser *session.UserRecord
	currentErr  error
}

func (f *fakeAuthClient) Login(ctx context.Context, email, password string) (string, *session.UserRecord, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeAuthClient) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuthClient) CurrentUser(ctx context.Context) (*session.UserRecord, error) {
	return f.currentUser, f.currentErr
}

func newAuthFixture(ctx context.Context, client *fakeAuthClient) (*AuthService, *session.Store, *session.Cache) {
	store := session.NewStore(session.NewMemoryBackend())
	cache := session.NewCache(ctx, store)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewAuthService(client, store, cache, log), store, cache
}

func TestAuthService_LoginStoresBeforeNotifying(t *testing.T) {
	ctx := context.Background()
	u := &session.UserRecord{ID: 1, Name: "Admin", Email: "admin@example.com"}
	svc, store, cache := newAuthFixture(ctx, &fakeAuthClient{loginToken: "abc123", loginUser: u})

	// Subscribers run synchronously inside SetUser, which makes the write
	// ordering observable: at notification time the store must already be
	// authenticated.
	var authedAtNotify bool
	var tokenAtNotify string
	unsub := cache.Subscribe(func(got *session.UserRecord) {
		authedAtNotify = store.IsAuthenticated(ctx)
		tokenAtNotify, _ = store.GetToken(ctx)
	})
	defer unsub()

	require.NoError(t, svc.Login(ctx, "admin@example.com", "password"))

	assert.True(t, authedAtNotify)
	assert.Equal(t, "abc123", tokenAtNotify)
	require.NotNil(t, cache.User())
	assert.Equal(t, "admin@example.com", cache.User().Email)
}

func TestAuthService_LoginFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newAuthFixture(ctx, &fakeAuthClient{loginErr: api.ErrInvalidCredentials})

	notified := false
	unsub := cache.Subscribe(func(*session.UserRecord) { notified = true })
	defer unsub()

	err := svc.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, api.ErrInvalidCredentials)

	assert.False(t, store.IsAuthenticated(ctx))
	assert.Nil(t, cache.User())
	assert.False(t, notified)
}

func TestAuthService_LogoutClearsEvenWhenServerFails(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{logoutErr: errors.New("boom")}
	svc, store, cache := newAuthFixture(ctx, client)

	u := &session.UserRecord{ID: 1, Name: "Admin", Email: "admin@example.com"}
	store.SetToken(ctx, "t")
	store.SetUser(ctx, u)
	cache.SetUser(u)

	svc.Logout(ctx)

	assert.Equal(t, 1, client.logoutCalls)
	assert.False(t, store.IsAuthenticated(ctx))
	assert.Nil(t, cache.User())
}

func TestAuthService_RestoreSkipsWhenSignedOut(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{currentErr: errors.New("should not be called")}
	svc, _, _ := newAuthFixture(ctx, client)

	assert.NoError(t, svc.Restore(ctx))
}

func TestAuthService_RestoreRefreshesProfile(t *testing.T) {
	ctx := context.Background()
	fresh := &session.UserRecord{ID: 1, Name: "Admin Renamed", Email: "admin@example.com"}
	client := &fakeAuthClient{currentUser: fresh}
	svc, store, cache := newAuthFixture(ctx, client)

	stale := &session.UserRecord{ID: 1, Name: "Admin", Email: "admin@example.com"}
	store.SetToken(ctx, "t")
	store.SetUser(ctx, stale)

	require.NoError(t, svc.Restore(ctx))

	got, ok := store.GetUser(ctx)
	require.True(t, ok)
	assert.Equal(t, "Admin Renamed", got.Name)
	require.NotNil(t, cache.User())
	assert.Equal(t, "Admin Renamed", cache.User().Name)
}

func TestAuthService_RestoreToleratesExpiredSession(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{currentErr: api.ErrSessionExpired}
	svc, store, _ := newAuthFixture(ctx, client)

	store.SetToken(ctx, "stale")
	store.SetUser(ctx, &session.UserRecord{ID: 1, Name: "Admin", Email: "admin@example.com"})

	assert.NoError(t, svc.Restore(ctx))
}

func TestAuthService_RestoreKeepsCachedUserWhenOffline(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{currentErr: &api.NetworkError{Err: errors.New("refused")}}
	svc, store, _ := newAuthFixture(ctx, client)

	u := &session.UserRecord{ID: 1, Name: "Admin", Email: "admin@example.com"}
	store.SetToken(ctx, "t")
	store.SetUser(ctx, u)

	assert.NoError(t, svc.Restore(ctx))
	assert.True(t, store.IsAuthenticated(ctx))
}
