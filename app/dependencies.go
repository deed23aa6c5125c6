package app

import (
	"context"
	"fmt"

	"github.com/carromarket/backend/config"
	"github.com/carromarket/backend/middleware"
	"github.com/carromarket/backend/repositories"
	"github.com/carromarket/backend/repositories/postgres"
	"github.com/carromarket/backend/services/auth"
	"github.com/carromarket/backend/services/dealers"
	"github.com/carromarket/backend/services/vehicles"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repositories
	Users          repositories.UserRepository
	Vehicles       repositories.VehicleRepository
	DealerProfiles repositories.DealerProfileRepository
	TxManager      repositories.TransactionManager

	// Services
	AuthService    *auth.Service
	VehicleService *vehicles.Service
	DealerService  *dealers.Service

	// Middleware
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()

	if err := deps.initServices(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase opens the PostgreSQL connection and applies the schema
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.NewDB(cfg.Database, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	d.DB = db

	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	txManager := postgres.NewTransactionManager(d.DB, d.Logger)

	d.TxManager = txManager
	d.Users = postgres.NewUserRepository(d.DB, d.Logger)
	d.Vehicles = postgres.NewVehicleRepository(d.DB, txManager, d.Logger)
	d.DealerProfiles = postgres.NewDealerProfileRepository(d.DB, d.Logger)

	d.Logger.Info("repositories initialized")
}

// initServices wires the domain services and the auth middleware
func (d *Dependencies) initServices(cfg *config.Config) error {
	tokens, err := auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	d.AuthService = auth.NewService(d.Users, hasher, tokens, d.Logger)
	d.VehicleService = vehicles.NewService(d.Vehicles, d.Logger)
	d.DealerService = dealers.NewService(d.DealerProfiles, d.Users, d.Logger)

	d.AuthMiddleware = middleware.NewAuthMiddleware(d.AuthService, d.Logger)

	d.Logger.Info("services initialized",
		zap.Duration("token_ttl", tokens.TTL()))
	return nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
