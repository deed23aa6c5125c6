package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const dealerProfileColumns = `id, user_id, business_id, business_name, address, phone, website,
		logo_url, images, rating, about_us, favorites, services, created_at, updated_at`

// DealerProfileRepository implements the repositories.DealerProfileRepository interface
type DealerProfileRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDealerProfileRepository creates a new dealer profile repository
func NewDealerProfileRepository(db *DB, logger *zap.Logger) repositories.DealerProfileRepository {
	return &DealerProfileRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a profile. The unique constraint on user_id makes a second
// profile surface as repositories.ErrDuplicate.
func (r *DealerProfileRepository) Create(ctx context.Context, profile *models.DealerProfile) error {
	query := `
		INSERT INTO dealer_profiles (` + dealerProfileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		nullable(profile.BusinessID),
		nullable(profile.BusinessName),
		nullable(profile.Address),
		nullable(profile.Phone),
		nullable(profile.Website),
		nullable(profile.LogoURL),
		pq.Array(profile.Images),
		profile.Rating,
		nullable(profile.AboutUs),
		pq.Array(profile.Favorites),
		pq.Array(profile.Services),
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create dealer profile: %w", err)
	}

	r.logger.Debug("dealer profile created", zap.String("id", profile.ID.String()))
	return nil
}

// GetByUserID retrieves the profile owned by the given user
func (r *DealerProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DealerProfile, error) {
	query := `
		SELECT ` + dealerProfileColumns + `
		FROM dealer_profiles
		WHERE user_id = $1
	`

	executor := GetExecutor(ctx, r.db)
	profile := &models.DealerProfile{}
	var businessID, businessName, address, phone, website, logoURL, aboutUs sql.NullString
	var images, favorites, services pq.StringArray

	err := executor.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&businessID,
		&businessName,
		&address,
		&phone,
		&website,
		&logoURL,
		&images,
		&profile.Rating,
		&aboutUs,
		&favorites,
		&services,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get dealer profile: %w", err)
	}

	profile.BusinessID = businessID.String
	profile.BusinessName = businessName.String
	profile.Address = address.String
	profile.Phone = phone.String
	profile.Website = website.String
	profile.LogoURL = logoURL.String
	profile.AboutUs = aboutUs.String
	profile.Images = images
	profile.Favorites = favorites
	profile.Services = services

	return profile, nil
}

// Update replaces the mutable profile fields
func (r *DealerProfileRepository) Update(ctx context.Context, profile *models.DealerProfile) error {
	query := `
		UPDATE dealer_profiles
		SET business_id = $2,
		    business_name = $3,
		    address = $4,
		    phone = $5,
		    website = $6,
		    logo_url = $7,
		    images = $8,
		    rating = $9,
		    about_us = $10,
		    favorites = $11,
		    services = $12,
		    updated_at = $13
		WHERE user_id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		profile.UserID,
		nullable(profile.BusinessID),
		nullable(profile.BusinessName),
		nullable(profile.Address),
		nullable(profile.Phone),
		nullable(profile.Website),
		nullable(profile.LogoURL),
		pq.Array(profile.Images),
		profile.Rating,
		nullable(profile.AboutUs),
		pq.Array(profile.Favorites),
		pq.Array(profile.Services),
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update dealer profile: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("dealer profile updated", zap.String("user_id", profile.UserID.String()))
	return nil
}

// DeleteByUserID removes the profile owned by the given user
func (r *DealerProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM dealer_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete dealer profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("dealer profile deleted", zap.String("user_id", userID.String()))
	return nil
}
