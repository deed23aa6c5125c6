package auth

import (
	"context"
	"errors"

	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/repositories"
	"github.com/carromarket/backend/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service resolves identities from credentials or bearer tokens. It is
// stateless across requests; the only shared state is the signing secret
// inside the token manager and the identity store behind the repository.
type Service struct {
	users  repositories.UserRepository
	hasher PasswordHasher
	tokens *TokenManager
	logger *zap.Logger

	// decoy is a throwaway digest verified on unknown-email logins so the
	// cost of "no such user" stays close to "wrong password"
	decoy string
}

// NewService creates the auth service
func NewService(users repositories.UserRepository, hasher PasswordHasher, tokens *TokenManager, logger *zap.Logger) *Service {
	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		// Hash only fails on an empty input or a broken cost; a random UUID
		// cannot trigger either, but keep a non-empty fallback regardless.
		decoy = "$2a$10$0000000000000000000000000000000000000000000000000000"
	}
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		decoy:  decoy,
	}
}

// RegisterInput carries the fields accepted at account creation
type RegisterInput struct {
	Email                string
	Password             string
	Role                 models.UserRole
	FirstName            string
	LastName             string
	BusinessName         string
	BusinessRegistration string
	Phone                string
	Address              string
}

// Register creates a new identity with a hashed credential. A taken email
// surfaces as a conflict.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleIndividual
	}
	if !role.Valid() {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "unknown user role", nil)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "invalid password", err)
	}

	user := models.NewUser(input.Email, digest, role)
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.BusinessName = input.BusinessName
	user.BusinessRegistration = input.BusinessRegistration
	user.Phone = input.Phone
	user.Address = input.Address

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, services.ErrEmailTaken
		}
		return nil, services.WrapUnavailable("create user", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return user, nil
}

// Authenticate verifies email+password and mints a bearer token for the
// identity. Unknown email, wrong password, and inactive account all collapse
// into the same invalid-credentials outcome.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Burn a hash comparison anyway to keep latency close to the
			// wrong-password path.
			s.hasher.Verify(password, s.decoy)
			return nil, "", services.ErrInvalidCredentials
		}
		return nil, "", services.WrapUnavailable("look up user", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", services.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", services.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", services.WrapInternal("issue token", err)
	}

	s.logger.Debug("user authenticated", zap.String("user_id", user.ID.String()))
	return user, token, nil
}

// IssueToken mints a bearer token for an already-resolved identity
func (s *Service) IssueToken(user *models.User) (string, error) {
	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", services.WrapInternal("issue token", err)
	}
	return token, nil
}

// Resolve validates a bearer token and loads the identity it names. Any
// token defect and any identity problem collapse into unauthorized; the
// internal reason is logged, never returned.
func (s *Service) Resolve(ctx context.Context, tokenString string) (*models.User, error) {
	subject, err := s.tokens.Verify(tokenString)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, services.ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, models.NormalizeEmail(subject))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrUnauthorized
		}
		return nil, services.WrapUnavailable("look up user", err)
	}

	if !user.IsActive {
		return nil, services.ErrUnauthorized
	}

	return user, nil
}
