package vehicles

import (
	"context"
	"errors"
	"testing"

	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/repositories"
	"github.com/carromarket/backend/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockVehicleRepository is a mock implementation of repositories.VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) List(ctx context.Context, offset, limit int) ([]*models.Vehicle, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func activeUser() *models.User {
	return &models.User{ID: uuid.New(), Role: models.RoleIndividual, IsActive: true}
}

func sampleInput() CreateInput {
	return CreateInput{
		Type:      models.VehicleCar,
		Title:     "2019 Toyota Corolla 1.8 Hybrid",
		Make:      "Toyota",
		Model:     "Corolla",
		Year:      2019,
		Price:     18500,
		Mileage:   42000,
		FuelType:  models.FuelHybrid,
		Condition: models.ConditionGood,
		ImageURLs: []string{"https://img.example.com/corolla-front.jpg"},
	}
}

func TestCreateVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("poster owns the new listing", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())
		user := activeUser()

		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Vehicle")).Return(nil)

		vehicle, err := svc.Create(ctx, user, sampleInput())
		require.NoError(t, err)

		assert.Equal(t, user.ID, vehicle.PostedByID)
		assert.NotEqual(t, uuid.Nil, vehicle.ID)
		require.Len(t, vehicle.Images, 1)
		assert.Equal(t, vehicle.ID, vehicle.Images[0].VehicleID)
		repo.AssertExpectations(t)
	})

	t.Run("anonymous caller is forbidden", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())

		_, err := svc.Create(ctx, nil, sampleInput())
		assert.ErrorIs(t, err, services.ErrForbidden)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("inactive caller is forbidden", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())
		user := activeUser()
		user.IsActive = false

		_, err := svc.Create(ctx, user, sampleInput())
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("store failure surfaces as unavailable", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Vehicle")).Return(errors.New("connection refused"))

		_, err := svc.Create(ctx, activeUser(), sampleInput())
		assert.True(t, services.IsUnavailableError(err))
	})
}

func TestListVehicles(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes page and limit", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("List", mock.Anything, 0, 10).Return([]*models.Vehicle{}, nil).Once()
		_, err := svc.List(ctx, 0, 0)
		require.NoError(t, err)

		repo.On("List", mock.Anything, 0, 100).Return([]*models.Vehicle{}, nil).Once()
		_, err = svc.List(ctx, 1, 5000)
		require.NoError(t, err)

		repo.On("List", mock.Anything, 40, 20).Return([]*models.Vehicle{}, nil).Once()
		_, err = svc.List(ctx, 3, 20)
		require.NoError(t, err)

		repo.AssertExpectations(t)
	})

	t.Run("returns the repository page", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())
		page := []*models.Vehicle{{ID: uuid.New()}, {ID: uuid.New()}}

		repo.On("List", mock.Anything, 0, 10).Return(page, nil)

		got, err := svc.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, page, got)
	})
}

func TestGetVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id maps to not found", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())
		id := uuid.New()

		repo.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrNotFound)

		_, err := svc.Get(ctx, id)
		assert.ErrorIs(t, err, services.ErrVehicleNotFound)
	})
}

func TestUpdateVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("poster updates mutable fields", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())
		user := activeUser()
		existing := &models.Vehicle{ID: uuid.New(), PostedByID: user.ID, Title: "old", Price: 10000}

		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Update", mock.Anything, existing).Return(nil)

		title := "2019 Toyota Corolla, one owner"
		price := 17900.0
		updated, err := svc.Update(ctx, user, existing.ID, UpdateInput{Title: &title, Price: &price})
		require.NoError(t, err)

		assert.Equal(t, title, updated.Title)
		assert.Equal(t, price, updated.Price)
		repo.AssertExpectations(t)
	})

	t.Run("nil fields leave stored values untouched", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())
		user := activeUser()
		existing := &models.Vehicle{ID: uuid.New(), PostedByID: user.ID, Title: "keep me", Price: 10000}

		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Update", mock.Anything, existing).Return(nil)

		price := 9500.0
		updated, err := svc.Update(ctx, user, existing.ID, UpdateInput{Price: &price})
		require.NoError(t, err)

		assert.Equal(t, "keep me", updated.Title)
		assert.Equal(t, price, updated.Price)
	})

	t.Run("non-poster is forbidden", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())
		existing := &models.Vehicle{ID: uuid.New(), PostedByID: uuid.New()}

		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

		title := "hijacked"
		_, err := svc.Update(ctx, activeUser(), existing.ID, UpdateInput{Title: &title})
		assert.ErrorIs(t, err, services.ErrForbidden)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("unknown listing is not found", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())
		id := uuid.New()

		repo.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrNotFound)

		_, err := svc.Update(ctx, activeUser(), id, UpdateInput{})
		assert.ErrorIs(t, err, services.ErrVehicleNotFound)
	})
}

func TestDeleteVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("poster deletes their listing", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())
		user := activeUser()
		existing := &models.Vehicle{ID: uuid.New(), PostedByID: user.ID}

		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Delete", mock.Anything, existing.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, user, existing.ID))
		repo.AssertExpectations(t)
	})

	t.Run("non-poster is forbidden", func(t *testing.T) {
		repo := new(MockVehicleRepository)
		svc := NewService(repo, zap.NewNop())
		existing := &models.Vehicle{ID: uuid.New(), PostedByID: uuid.New()}

		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

		err := svc.Delete(ctx, activeUser(), existing.ID)
		assert.ErrorIs(t, err, services.ErrForbidden)
		repo.AssertNotCalled(t, "Delete")
	})
}
