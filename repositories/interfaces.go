package repositories

import (
	"context"
	"errors"

	"github.com/carromarket/backend/models"
	"github.com/google/uuid"
)

// Storage sentinels. Repositories translate driver errors into these so the
// service layer never inspects driver types.
var (
	// ErrNotFound is returned when no row matches the lookup
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint is violated
	ErrDuplicate = errors.New("duplicate record")
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// InTransaction executes a function within a transaction.
	// Automatically commits if the function succeeds, rolls back on error.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository handles identity persistence. Email is unique-constrained
// and stored lowercased; lookups are case-insensitive.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *models.User) error

	// GetByEmail retrieves a user by case-insensitive email.
	// Returns ErrNotFound when no user matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// VehicleRepository handles vehicle listings and their images
type VehicleRepository interface {
	// Create inserts a vehicle together with its image rows
	Create(ctx context.Context, vehicle *models.Vehicle) error

	// List returns a page of vehicles with images eager-loaded
	List(ctx context.Context, offset, limit int) ([]*models.Vehicle, error)

	// GetByID retrieves a vehicle with its images
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)

	// Update replaces the mutable listing fields
	Update(ctx context.Context, vehicle *models.Vehicle) error

	// Delete removes a vehicle and its images
	Delete(ctx context.Context, id uuid.UUID) error
}

// DealerProfileRepository handles dealer storefront profiles.
// user_id is unique-constrained: one profile per identity.
type DealerProfileRepository interface {
	// Create inserts a profile. Returns ErrDuplicate when the user already owns one.
	Create(ctx context.Context, profile *models.DealerProfile) error

	// GetByUserID retrieves the profile owned by the given user
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DealerProfile, error)

	// Update replaces the mutable profile fields
	Update(ctx context.Context, profile *models.DealerProfile) error

	// DeleteByUserID removes the profile owned by the given user
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
