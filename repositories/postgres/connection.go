package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carromarket/backend/config"
	"github.com/carromarket/backend/repositories"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// InitSchema initializes the database schema
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
		-- Users table (identities)
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(320) NOT NULL UNIQUE,
			password_hash VARCHAR(1024) NOT NULL,
			role VARCHAR(20) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			is_superuser BOOLEAN NOT NULL DEFAULT false,
			is_verified BOOLEAN NOT NULL DEFAULT false,
			first_name VARCHAR(50),
			last_name VARCHAR(50),
			business_name VARCHAR(255),
			business_registration VARCHAR(100),
			phone VARCHAR(20),
			address VARCHAR(500),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Vehicle listings
		CREATE TABLE IF NOT EXISTS vehicles (
			id UUID PRIMARY KEY,
			posted_by_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			vehicle_type VARCHAR(20) NOT NULL,
			title VARCHAR(255) NOT NULL,
			make VARCHAR(100) NOT NULL,
			model VARCHAR(100) NOT NULL,
			variant VARCHAR(100),
			year INTEGER NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			mileage INTEGER NOT NULL,
			fuel_type VARCHAR(20) NOT NULL,
			transmission VARCHAR(20) NOT NULL,
			body_type VARCHAR(50) NOT NULL,
			color VARCHAR(50) NOT NULL,
			engine_size DOUBLE PRECISION NOT NULL,
			doors INTEGER NOT NULL,
			registration_date DATE,
			tax_due_date DATE,
			insurance_expiry DATE,
			location VARCHAR(255) NOT NULL,
			seller_type VARCHAR(20) NOT NULL,
			import_status VARCHAR(20) NOT NULL,
			condition VARCHAR(20) NOT NULL,
			ownership_history INTEGER NOT NULL DEFAULT 0,
			description VARCHAR(1000) NOT NULL,
			vin VARCHAR(100),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Listing photos
		CREATE TABLE IF NOT EXISTS vehicle_images (
			id UUID PRIMARY KEY,
			vehicle_id UUID NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
			url VARCHAR(500) NOT NULL
		);

		-- Dealer storefront profiles (one per user)
		CREATE TABLE IF NOT EXISTS dealer_profiles (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			business_id VARCHAR(50) UNIQUE,
			business_name VARCHAR(255),
			address VARCHAR(500),
			phone VARCHAR(20),
			website VARCHAR(255),
			logo_url VARCHAR(500),
			images TEXT[],
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			about_us VARCHAR(2000),
			favorites TEXT[],
			services TEXT[],
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Indexes for performance
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
		CREATE INDEX IF NOT EXISTS idx_vehicles_posted_by_id ON vehicles(posted_by_id);
		CREATE INDEX IF NOT EXISTS idx_vehicles_created_at ON vehicles(created_at);
		CREATE INDEX IF NOT EXISTS idx_vehicle_images_vehicle_id ON vehicle_images(vehicle_id);
		CREATE INDEX IF NOT EXISTS idx_dealer_profiles_user_id ON dealer_profiles(user_id);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized successfully")
	return nil
}

// translateError converts driver errors into repository sentinels so callers
// never inspect pq types
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repositories.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", repositories.ErrDuplicate, pqErr.Constraint)
	}
	return err
}
