package app

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

	httpapi "github.com/aussiebroadwan/authsvc/internal/auth/http"
	"github.com/aussiebroadwan/authsvc/internal/auth/service"
	"github.com/aussiebroadwan/authsvc/internal/auth/store"
	"github.com/aussiebroadwan/authsvc/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/authsvc/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/authsvc/pkg/jwtx"
	"github.com/aussiebroadwan/authsvc/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	connectTimeout = 10 * time.Second
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	tokens *jwtx.HS256

	authService *service.AuthService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.UsesDevSecret() {
		app.logger.Warn("AUTH_TOKEN_SECRET not set, signing tokens with the development placeholder")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	tokens, err := jwtx.NewHS256([]byte(cfg.TokenSecret), cfg.TokenTTL, jwtx.VerifyOptions{
		Issuer: cfg.Issuer,
		Leeway: cfg.TokenLeeway,
	})
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}
	app.tokens = tokens

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database_driver", app.cfg.DatabaseDriver,
		"token_ttl", app.cfg.TokenTTL.String(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	db, err := openStore(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func openStore(cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return postgres.NewStore(ctx, cfg.DatabaseURL)
	case DriverSQLite:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		return sqlite.NewStore(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		Tokens: app.tokens,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)
	router.AuthService = app.authService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
