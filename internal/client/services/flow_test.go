package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avdeyev/bizdash/internal/client/api"
	"github.com/avdeyev/bizdash/internal/client/router"
	"github.com/avdeyev/bizdash/internal/client/session"
	"github.com/avdeyev/bizdash/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests wire the real gateway, router and auth service together
// against a stub API, covering the two flows end to end: a successful login
// landing on the dashboard, and a mid-session 401 bouncing back to login.

type flowFixture struct {
	store  *session.Store
	cache  *session.Cache
	router *router.Router
	auth   *AuthService
	gw     *api.Client
	out    bytes.Buffer
}

func newFlowFixture(t *testing.T, baseURL string) *flowFixture {
	t.Helper()
	ctx := context.Background()

	f := &flowFixture{}
	f.store = session.NewStore(session.NewMemoryBackend())
	f.cache = session.NewCache(ctx, f.store)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	f.router = router.New(router.Config{
		LoginPath:   "/login",
		DefaultPath: "/sales/daily-follow-up",
	}, f.store, f.cache, &f.out, log)
	t.Cleanup(f.router.Close)

	f.router.Register(router.Route{Path: "/login", Access: router.AccessPublic,
		Render: marker("login")})
	f.router.Register(router.Route{Path: "/sales/daily-follow-up", Access: router.AccessPrivate,
		Render: marker("daily-follow-up")})

	f.gw = api.New(api.Config{BaseURL: baseURL, LoginPath: "/login"},
		f.store, f.cache, f.router, log)
	f.auth = NewAuthService(f.gw, f.store, f.cache, log)
	return f
}

func marker(name string) router.RenderFunc {
	return func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "["+name+"]")
		return err
	}
}

func stubAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := jsonDecode(r, &creds); err != nil ||
			creds.Email != "admin@example.com" || creds.Password != "password" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"token":"abc123","user":{"id":1,"name":"Admin","email":"admin@example.com"}}`))
	})
	mux.HandleFunc("GET /api/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":1,"name":"Admin","email":"admin@example.com"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func jsonDecode(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

func TestFlow_LoginLandsOnDashboard(t *testing.T) {
	ctx := context.Background()
	srv := stubAPI(t)
	f := newFlowFixture(t, srv.URL)

	f.router.Navigate("/sales/daily-follow-up")
	assert.Equal(t, "/login", f.router.Path())
	assert.NotContains(t, f.out.String(), "[daily-follow-up]")

	require.NoError(t, f.auth.Login(ctx, "admin@example.com", "password"))

	token, ok := f.store.GetToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc123", token)

	assert.Equal(t, "/sales/daily-follow-up", f.router.Path())
	assert.True(t, strings.HasSuffix(f.out.String(), "[daily-follow-up]"))
}

func TestFlow_WrongPasswordStaysOnLogin(t *testing.T) {
	ctx := context.Background()
	srv := stubAPI(t)
	f := newFlowFixture(t, srv.URL)

	f.router.Navigate("/login")

	err := f.auth.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, api.ErrInvalidCredentials)

	assert.Equal(t, "/login", f.router.Path())
	assert.False(t, f.store.IsAuthenticated(ctx))
}

func TestFlow_Mid_Session401ReturnsToLogin(t *testing.T) {
	ctx := context.Background()
	srv := stubAPI(t)
	f := newFlowFixture(t, srv.URL)

	require.NoError(t, f.auth.Login(ctx, "admin@example.com", "password"))
	require.Equal(t, "/sales/daily-follow-up", f.router.Path())

	// simulate server-side token revocation
	f.store.SetToken(ctx, "revoked")

	var out map[string]any
	err := f.gw.Get(ctx, "/api/user", &out)
	assert.ErrorIs(t, err, api.ErrSessionExpired)

	assert.False(t, f.store.IsAuthenticated(ctx))
	assert.Nil(t, f.cache.User())
	assert.Equal(t, "/login", f.router.Path())
	assert.True(t, strings.HasSuffix(f.out.String(), "[login]"))
}
