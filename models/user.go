package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole represents the account type of a user
type UserRole string

const (
	RoleIndividual UserRole = "Individual"
	RoleDealership UserRole = "Dealership"
)

// Valid reports whether the role is one of the known account types
func (r UserRole) Valid() bool {
	return r == RoleIndividual || r == RoleDealership
}

// User represents a registered identity. PasswordHash is never serialized.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"user_type" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsSuperuser  bool      `json:"is_superuser" db:"is_superuser"`
	IsVerified   bool      `json:"is_verified" db:"is_verified"`

	// Profile fields
	FirstName string `json:"first_name,omitempty" db:"first_name"`
	LastName  string `json:"last_name,omitempty" db:"last_name"`

	// Dealership specific fields (only used when Role is RoleDealership)
	BusinessName         string `json:"business_name,omitempty" db:"business_name"`
	BusinessRegistration string `json:"business_registration,omitempty" db:"business_registration"`
	Phone                string `json:"phone,omitempty" db:"phone"`
	Address              string `json:"address,omitempty" db:"address"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new User instance. The email is normalized to lower case
// so the unique constraint and lookups stay case-insensitive.
func NewUser(email, passwordHash string, role UserRole) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail lowercases and trims an email for lookup and storage
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsDealership returns true if the user holds a dealership account
func (u *User) IsDealership() bool {
	return u.Role == RoleDealership
}
