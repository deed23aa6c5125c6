package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/repositories"
	"github.com/carromarket/backend/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestService(t *testing.T, users repositories.UserRepository) *Service {
	t.Helper()
	tokens, err := NewTokenManager([]byte("test-secret"), 30*time.Minute)
	require.NoError(t, err)
	return NewService(users, NewBcryptHasher(bcrypt.MinCost), tokens, zap.NewNop())
}

func activeUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	digest, err := NewBcryptHasher(bcrypt.MinCost).Hash(password)
	require.NoError(t, err)
	return models.NewUser(email, digest, models.RoleIndividual)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed credential", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)

		users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		user, err := svc.Register(ctx, RegisterInput{
			Email:    "New.User@Example.com",
			Password: "password1234",
		})
		require.NoError(t, err)

		assert.Equal(t, "new.user@example.com", user.Email)
		assert.Equal(t, models.RoleIndividual, user.Role)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "password1234", user.PasswordHash)
		assert.True(t, NewBcryptHasher(bcrypt.MinCost).Verify("password1234", user.PasswordHash))
		users.AssertExpectations(t)
	})

	t.Run("dealership role is preserved", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)

		users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		user, err := svc.Register(ctx, RegisterInput{
			Email:        "dealer@example.com",
			Password:     "password1234",
			Role:         models.RoleDealership,
			BusinessName: "Prime Motors",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleDealership, user.Role)
		assert.Equal(t, "Prime Motors", user.BusinessName)
	})

	t.Run("unknown role is a validation error", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "user@example.com",
			Password: "password1234",
			Role:     "Admin",
		})
		assert.True(t, services.IsValidationError(err))
		users.AssertNotCalled(t, "Create")
	})

	t.Run("taken email is a conflict", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)

		users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicate)

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "taken@example.com",
			Password: "password1234",
		})
		assert.ErrorIs(t, err, services.ErrEmailTaken)
		assert.True(t, services.IsConflictError(err))
	})

	t.Run("store failure surfaces as unavailable", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)

		users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(errors.New("connection refused"))

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "user@example.com",
			Password: "password1234",
		})
		assert.True(t, services.IsUnavailableError(err))
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield identity and token", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)
		user := activeUser(t, "user@example.com", "password1234")

		users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)

		got, token, err := svc.Authenticate(ctx, "User@Example.com", "password1234")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		require.NotEmpty(t, token)

		// The minted token resolves straight back to the same identity
		resolved, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)
		user := activeUser(t, "known@example.com", "password1234")

		users.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, repositories.ErrNotFound)
		users.On("GetByEmail", mock.Anything, "known@example.com").Return(user, nil)

		_, _, errUnknown := svc.Authenticate(ctx, "unknown@example.com", "whatever")
		_, _, errWrong := svc.Authenticate(ctx, "known@example.com", "wrong-password")

		assert.ErrorIs(t, errUnknown, services.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, services.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("inactive account cannot authenticate", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)
		user := activeUser(t, "dormant@example.com", "password1234")
		user.IsActive = false

		users.On("GetByEmail", mock.Anything, "dormant@example.com").Return(user, nil)

		_, _, err := svc.Authenticate(ctx, "dormant@example.com", "password1234")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("store failure is not an auth verdict", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)

		users.On("GetByEmail", mock.Anything, "user@example.com").Return(nil, errors.New("connection refused"))

		_, _, err := svc.Authenticate(ctx, "user@example.com", "password1234")
		assert.True(t, services.IsUnavailableError(err))
		assert.False(t, services.IsInvalidCredentialsError(err))
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token resolves to active identity", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)
		user := activeUser(t, "user@example.com", "password1234")

		users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)

		token, err := svc.IssueToken(user)
		require.NoError(t, err)

		resolved, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("resolution is idempotent within the ttl", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)
		user := activeUser(t, "user@example.com", "password1234")

		users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)

		token, err := svc.IssueToken(user)
		require.NoError(t, err)

		first, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		second, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)

		_, err := svc.Resolve(ctx, "not-a-token")
		assert.ErrorIs(t, err, services.ErrUnauthorized)
		users.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("token for a vanished identity is unauthorized", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)
		user := activeUser(t, "gone@example.com", "password1234")

		users.On("GetByEmail", mock.Anything, "gone@example.com").Return(nil, repositories.ErrNotFound)

		token, err := svc.IssueToken(user)
		require.NoError(t, err)

		_, err = svc.Resolve(ctx, token)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})

	t.Run("token for a deactivated identity is unauthorized", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(t, users)
		user := activeUser(t, "dormant@example.com", "password1234")

		token, err := svc.IssueToken(user)
		require.NoError(t, err)

		user.IsActive = false
		users.On("GetByEmail", mock.Anything, "dormant@example.com").Return(user, nil)

		_, err = svc.Resolve(ctx, token)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens, err := NewTokenManager([]byte("test-secret"), time.Nanosecond)
		require.NoError(t, err)
		svc := NewService(users, NewBcryptHasher(bcrypt.MinCost), tokens, zap.NewNop())
		user := activeUser(t, "user@example.com", "password1234")

		token, err := svc.IssueToken(user)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = svc.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})
}
