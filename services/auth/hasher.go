package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a plaintext password into a storable digest and checks
// a plaintext against a stored digest.
type PasswordHasher interface {
	// Hash produces a salted one-way digest. Two calls with the same input
	// yield different digests; Verify still matches either.
	Hash(password string) (string, error)

	// Verify reports whether password produced digest. A malformed digest is
	// a verification failure, never an error.
	Verify(password, digest string) bool
}

// BcryptHasher implements PasswordHasher on bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. Costs outside the
// bcrypt range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash generates a bcrypt digest for the password
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify compares the password against the stored digest. Any failure,
// including a corrupted digest, reports false rather than propagating an
// error, so bad stored data cannot turn into an authentication bypass.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
