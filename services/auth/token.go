package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Internal token diagnostics. Callers map both to the same externally
// visible unauthorized outcome; the distinction exists for logs only.
var (
	// ErrMalformedToken covers anything that fails to parse or whose
	// signature does not verify
	ErrMalformedToken = errors.New("malformed token")

	// ErrTokenExpired covers a well-signed token past its expiry
	ErrTokenExpired = errors.New("token expired")
)

// TokenManager issues and verifies stateless bearer tokens. Tokens embed the
// subject and a fixed-TTL expiry, signed HS256 with a process-wide secret.
// The manager holds no per-token state; validity is recomputed on every call.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager from the signing secret and TTL
func NewTokenManager(secret []byte, ttl time.Duration) (*TokenManager, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token TTL must be positive")
	}
	return &TokenManager{secret: secret, ttl: ttl}, nil
}

// TTL returns the configured token lifetime
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue mints a signed token bound to the subject, expiring after the
// configured TTL
func (m *TokenManager) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject must not be empty")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature first, then the expiry, and returns the
// embedded subject. Signature failures and garbage input report
// ErrMalformedToken; a valid signature past expiry reports ErrTokenExpired.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrMalformedToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrMalformedToken
	}

	return claims.Subject, nil
}
