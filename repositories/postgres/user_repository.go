package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const userColumns = `id, email, password_hash, role, is_active, is_superuser, is_verified,
		first_name, last_name, business_name, business_registration, phone, address,
		created_at, updated_at`

// UserRepository implements the repositories.UserRepository interface
type UserRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB, logger *zap.Logger) repositories.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user. A taken email surfaces as repositories.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.IsSuperuser,
		user.IsVerified,
		nullable(user.FirstName),
		nullable(user.LastName),
		nullable(user.BusinessName),
		nullable(user.BusinessRegistration),
		nullable(user.Phone),
		nullable(user.Address),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug("user created", zap.String("id", user.ID.String()))
	return nil
}

// GetByEmail retrieves a user by case-insensitive email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	executor := GetExecutor(ctx, r.db)
	return r.scanUser(executor.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	return r.scanUser(executor.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var firstName, lastName, businessName, businessRegistration, phone, address sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.IsSuperuser,
		&user.IsVerified,
		&firstName,
		&lastName,
		&businessName,
		&businessRegistration,
		&phone,
		&address,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.BusinessName = businessName.String
	user.BusinessRegistration = businessRegistration.String
	user.Phone = phone.String
	user.Address = address.String

	return user, nil
}

// nullable converts an empty string into a SQL NULL
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
