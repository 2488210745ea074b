// Package server initializes and runs the API server: storage, services,
// HTTP endpoint, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdeyev/bizdash/internal/logging"
	"github.com/avdeyev/bizdash/internal/server/api"
	"github.com/avdeyev/bizdash/internal/server/config"
	"github.com/avdeyev/bizdash/internal/server/db"
	"github.com/avdeyev/bizdash/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     *db.PostgresRepositoryManager
	userService *users.Service
	handler     *api.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	manager, err := db.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(manager.Users(), c)
	if err := us.EnsureDemoUser(ctx); err != nil {
		return nil, fmt.Errorf("demo user error: %w", err)
	}

	handler := api.NewHandler(logger, us, manager.Sales())

	return &App{
		config:      c,
		logger:      logger,
		manager:     manager,
		userService: us,
		handler:     handler,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	mux := http.NewServeMux()
	app.handler.Register(mux)

	srv := &http.Server{
		Addr:              app.config.EndpointAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return app.manager.Conn().Close()
}
