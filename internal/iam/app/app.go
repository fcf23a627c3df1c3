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

	httpapi "github.com/cobaltgate/iam/internal/iam/http"
	"github.com/cobaltgate/iam/internal/iam/service"
	"github.com/cobaltgate/iam/internal/iam/store"
	"github.com/cobaltgate/iam/internal/iam/store/drivers/sqlite"
	"github.com/cobaltgate/iam/pkg/cryptox"
	"github.com/cobaltgate/iam/pkg/jwtx"
	"github.com/cobaltgate/iam/pkg/mailx"
	"github.com/cobaltgate/iam/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the IAM service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	authService         *service.AuthService
	otpService          *service.OTPService
	userService         *service.UserService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "iam-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.TokenSecret == "" {
		return nil, errors.New("IAM_TOKEN_SECRET is required")
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("iam service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down iam service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("iam service stopped")
	return nil
}

// initDatabase opens the SQLite store and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices wires all business logic services.
func (app *Application) initServices() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.TokenSecret))
	if err != nil {
		return fmt.Errorf("failed to build token signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(app.cfg.TokenSecret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to build token verifier: %w", err)
	}

	app.otpService = &service.OTPService{
		Store:  app.db,
		Mailer: app.buildMailer(),
		TTL:    app.cfg.OTPTTL,
	}

	app.authService = &service.AuthService{
		Store:    app.db,
		Signer:   signer,
		Verifier: verifier,
		OTP:      app.otpService,
		Issuer:   app.cfg.Issuer,
		TokenTTL: app.cfg.TokenTTL,
	}

	app.userService = &service.UserService{
		Store:          app.db,
		BootstrapToken: app.cfg.BootstrapToken,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

// buildMailer picks the SMTP mailer when configured, otherwise the log
// mailer so dev setups work without a mail account.
func (app *Application) buildMailer() mailx.Mailer {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("SMTP not configured, OTP mail will only be logged")
		return &mailx.LogMailer{Logger: app.logger}
	}
	return &mailx.SMTPMailer{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	}
}

// initHTTP builds the router and HTTP server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)
	router.AuthService = app.authService
	router.OTPService = app.otpService
	router.UserService = app.userService
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
