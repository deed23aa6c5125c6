package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/utils"
	"go.uber.org/zap"
)

// IdentityResolver turns a bearer token back into the identity it names
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	resolver IdentityResolver
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver IdentityResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

// unauthorizedMessage is the single externally visible wording for every
// authentication failure. Missing, malformed, and expired tokens must be
// indistinguishable to the caller.
const unauthorizedMessage = "authentication failed"

// RequireAuth rejects requests without a valid bearer token and puts the
// resolved identity on the context
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := extractBearerToken(r)
		if token == "" {
			m.logger.Warn("missing bearer token", zap.String("path", r.URL.Path))
			_ = utils.WriteUnauthorized(w, unauthorizedMessage)
			return
		}

		user, err := m.resolver.Resolve(ctx, token)
		if err != nil {
			m.logger.Warn("token resolution failed",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, unauthorizedMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
	})
}

// OptionalAuth resolves a bearer token when present but lets anonymous
// requests through with no identity on the context. Used on public read
// paths that behave the same either way.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.resolver.Resolve(ctx, token)
		if err != nil {
			// A presented-but-bad token is still rejected; only absence is anonymous
			m.logger.Warn("token resolution failed",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, unauthorizedMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
	})
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
