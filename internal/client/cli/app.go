// Package cli is the terminal front end of the dashboard: a small REPL that
// navigates between pages through the guarded router.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	"github.com/avdeyev/bizdash/internal/client/api"
	"github.com/avdeyev/bizdash/internal/client/config"
	"github.com/avdeyev/bizdash/internal/client/router"
	"github.com/avdeyev/bizdash/internal/client/services"
	"github.com/avdeyev/bizdash/internal/client/session"
	"github.com/avdeyev/bizdash/internal/logging"
)

const (
	loginPath          = "/login"
	defaultLandingPath = "/sales/daily-follow-up"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	store     *session.Store
	cache     *session.Cache
	router    *router.Router
	auth      *services.AuthService
	dashboard *services.DashboardService
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// A failed local database is not fatal: the store degrades to an
	// in-memory-absent state and every route settles to unauthenticated.
	var backend session.Backend
	db, err := session.OpenStateDB(ctx, c.StateDBPath)
	if err != nil {
		log.Warn(ctx, "local state unavailable, session will not persist", "error", err)
	} else {
		backend = session.NewSQLiteBackend(db)
	}

	store := session.NewStore(backend)
	cache := session.NewCache(ctx, store)

	out := os.Stdout

	rt := router.New(router.Config{
		LoginPath:   loginPath,
		DefaultPath: defaultLandingPath,
	}, store, cache, out, log)

	client := api.New(api.Config{
		BaseURL:   c.ServerBaseURL,
		Timeout:   c.RequestTimeout,
		LoginPath: loginPath,
	}, store, cache, rt, log)

	app := &App{
		config:    c,
		log:       log,
		db:        db,
		store:     store,
		cache:     cache,
		router:    rt,
		auth:      services.NewAuthService(client, store, cache, log),
		dashboard: services.NewDashboardService(client),
		reader:    bufio.NewReader(os.Stdin),
		out:       out,
	}

	rt.Register(
		router.Route{Path: loginPath, Access: router.AccessPublic, Render: app.loginPage},
		router.Route{Path: defaultLandingPath, Access: router.AccessPrivate, Render: app.dailyFollowUpPage},
		router.Route{Path: "/sales/companies", Access: router.AccessPrivate, Render: app.companiesPage},
		router.Route{Path: "/projects", Access: router.AccessPrivate, Render: placeholderPage("Projects")},
		router.Route{Path: "/financial", Access: router.AccessPrivate, Render: placeholderPage("Financial")},
		router.Route{Path: "/measurements", Access: router.AccessPrivate, Render: placeholderPage("Measurements")},
	)

	return app, nil
}

func (a *App) Close() {
	a.router.Close()
	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	// Refresh the persisted profile; an expired token gets detected and
	// cleaned up here before the first page renders.
	if err := a.auth.Restore(ctx); err != nil {
		a.log.Warn(ctx, "profile refresh failed", "error", err)
	}

	a.router.Navigate(defaultLandingPath)
	a.Root(ctx)
}
