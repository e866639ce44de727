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

	httpapi "github.com/aussiebroadwan/staffdesk/internal/auth/http"
	"github.com/aussiebroadwan/staffdesk/internal/auth/mail"
	"github.com/aussiebroadwan/staffdesk/internal/auth/service"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/staffdesk/pkg/cryptox"
	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager
	mailer     mail.Sender

	tokenService        *service.TokenService
	otpService          *service.OTPService
	userService         *service.UserService
	authService         *service.AuthService
	profileService      *service.ProfileService
	partnerService      *service.PartnerService
	mfaService          *service.MFAService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "staffdesk-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitAuthKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.keyManager = keyManager

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
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

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initMailer() {
	switch app.cfg.MailDriver {
	case MailDriverSMTP:
		app.mailer = mail.NewSMTPSender(app.cfg.smtp())
		app.logger.Info("smtp mail driver enabled", "host", app.cfg.SMTP.Host, "port", app.cfg.SMTP.Port)
	default:
		app.mailer = mail.NewLogSender()
		app.logger.Warn("log mail driver enabled, emails are not delivered")
	}
}

func (app *Application) initServices() error {
	app.initMailer()

	renderer, err := mail.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load mail templates: %w", err)
	}

	app.tokenService = &service.TokenService{
		KeyManager: app.keyManager,
		Store:      app.db,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}
	app.otpService = &service.OTPService{
		Store:  app.db,
		Length: app.cfg.OTPLength,
		TTL:    app.cfg.OTPTTL,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}
	app.userService = &service.UserService{Store: app.db}
	app.authService = &service.AuthService{
		Store:           app.db,
		Tokens:          app.tokenService,
		OTP:             app.otpService,
		MFA:             app.mfaService,
		Mailer:          app.mailer,
		Renderer:        renderer,
		FrontendURL:     app.cfg.FrontendURL,
		DebugResetLinks: app.cfg.DebugResetLinks,
	}
	if app.cfg.DebugResetLinks {
		app.logger.Warn("debug reset links enabled, reset links are returned to callers")
	}
	app.profileService = &service.ProfileService{Store: app.db}
	app.partnerService = &service.PartnerService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Users: app.userService,
		Token: app.cfg.BootstrapToken,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		app.db,
		app.logger,
		httpapi.RouterOptions{
			BuildVersion:   BuildVersion,
			RequestTimeout: app.cfg.RequestTimeout,
			AllowedOrigins: app.cfg.CORSAllowOrigins,
			RateLimits:     app.cfg.RateLimits,
		},
	)

	router.AuthService = app.authService
	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.ProfileService = app.profileService
	router.PartnerService = app.partnerService
	router.MFAService = app.mfaService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
