package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/carecamp/carecamp-api/internal/api"
	"github.com/carecamp/carecamp-api/internal/config"
	"github.com/carecamp/carecamp-api/internal/platform/firebase"
	"github.com/carecamp/carecamp-api/internal/platform/mongodb"
	"github.com/carecamp/carecamp-api/internal/platform/postgres"
	"github.com/carecamp/carecamp-api/internal/platform/stripe"
	"github.com/carecamp/carecamp-api/internal/service/auth"
	"github.com/carecamp/carecamp-api/internal/service/payment"
	"github.com/carecamp/carecamp-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	pinger store.Pinger
	close  func(ctx context.Context) error

	// Stores (using interfaces for proper abstraction)
	userStore         store.UserStore
	campStore         store.CampStore
	registrationStore store.RegistrationStore
	feedbackStore     store.FeedbackStore

	// Service interfaces
	jwtService    auth.JWTService
	verifier      auth.TokenVerifier
	adminVerifier auth.TokenVerifier
	payments      api.PaymentService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.openStores(ctx); err != nil {
		return nil, err
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT service initialized", "token_lifetime", cfg.Auth.TokenLifetime.String())

	verifiers := &verifierSet{ctx: ctx, cfg: cfg, local: app.jwtService}
	if app.verifier, err = verifiers.get(cfg.Auth.Verifier); err == nil {
		app.adminVerifier, err = verifiers.get(cfg.Auth.AdminVerifierMode())
	}
	if err != nil {
		app.cleanup(ctx)
		return nil, err
	}
	logger.Info("token verifiers selected",
		"verifier", cfg.Auth.Verifier,
		"admin_verifier", cfg.Auth.AdminVerifierMode())

	gateway, err := stripe.NewGateway(cfg.Payment.StripeSecretKey)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to initialize payment gateway: %w", err)
	}
	app.payments, err = payment.NewService(gateway, payment.Config{
		Currency:       cfg.Payment.Currency,
		ConversionRate: cfg.Payment.ConversionRate,
		FrontendURL:    cfg.Payment.FrontendURL,
	})
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to initialize payment service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// openStores connects the configured backend and binds every store to it.
func (app *application) openStores(ctx context.Context) error {
	cfg := app.config.Database

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg, app.logger)
		if err != nil {
			return err
		}
		if err := postgres.Migrate(db, app.logger); err != nil {
			_ = db.Close()
			return err
		}

		app.userStore = postgres.NewPostgresUserStore(db, cfg.OperationTimeout, app.logger)
		app.campStore = postgres.NewPostgresCampStore(db, cfg.OperationTimeout, app.logger)
		app.registrationStore = postgres.NewPostgresRegistrationStore(db, cfg.OperationTimeout, app.logger)
		app.feedbackStore = postgres.NewPostgresFeedbackStore(db, cfg.OperationTimeout, app.logger)
		app.pinger = sqlPinger{db: db}
		app.close = func(context.Context) error { return db.Close() }

	default:
		client, err := mongodb.Connect(ctx, cfg, app.logger)
		if err != nil {
			return err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			_ = client.Close(ctx)
			return err
		}

		app.userStore = client.UserStore()
		app.campStore = client.CampStore()
		app.registrationStore = client.RegistrationStore()
		app.feedbackStore = client.FeedbackStore()
		app.pinger = client
		app.close = client.Close
	}

	app.logger.Info("stores ready", "driver", cfg.Driver)
	return nil
}

// verifierSet builds the verifier for each auth.verifier mode, connecting to
// the identity provider at most once.
type verifierSet struct {
	ctx      context.Context
	cfg      *config.Config
	local    auth.TokenVerifier
	identity auth.TokenVerifier
}

func (s *verifierSet) get(mode string) (auth.TokenVerifier, error) {
	if mode == config.VerifierLocal {
		return s.local, nil
	}

	if s.identity == nil {
		identity, err := firebase.NewVerifier(s.ctx, s.cfg.Identity.ServiceAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize identity verifier: %w", err)
		}
		s.identity = identity
	}

	if mode == config.VerifierIdentity {
		return s.identity, nil
	}
	return auth.NewChainVerifier(s.identity, s.local), nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.close != nil {
		if err := app.close(ctx); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

// sqlPinger adapts *sql.DB to store.Pinger.
type sqlPinger struct {
	db *sql.DB
}

func (p sqlPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
