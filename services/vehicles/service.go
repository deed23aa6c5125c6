package vehicles

import (
	"context"
	"errors"
	"time"

	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/repositories"
	"github.com/carromarket/backend/services"
	"github.com/carromarket/backend/services/policy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service owns vehicle listing operations. Ownership rules are delegated to
// the policy package; storage to the repository.
type Service struct {
	vehicles repositories.VehicleRepository
	logger   *zap.Logger
}

// NewService creates the vehicle service
func NewService(vehicles repositories.VehicleRepository, logger *zap.Logger) *Service {
	return &Service{vehicles: vehicles, logger: logger}
}

// CreateInput carries the fields accepted when posting a listing
type CreateInput struct {
	Type             models.VehicleType
	Title            string
	Make             string
	Model            string
	Variant          string
	Year             int
	Price            float64
	Mileage          int
	FuelType         models.FuelType
	Transmission     models.TransmissionType
	BodyType         string
	Color            string
	EngineSize       float64
	Doors            int
	RegistrationDate *time.Time
	TaxDueDate       *time.Time
	InsuranceExpiry  *time.Time
	Location         string
	SellerType       models.SellerType
	ImportStatus     models.ImportStatus
	Condition        models.VehicleCondition
	OwnershipHistory int
	Description      string
	VIN              string
	ImageURLs        []string
}

// UpdateInput carries the mutable listing fields; nil pointers leave the
// stored value untouched
type UpdateInput struct {
	Title       *string
	Price       *float64
	Mileage     *int
	Location    *string
	Condition   *models.VehicleCondition
	Description *string
}

// Create posts a new listing owned by the caller
func (s *Service) Create(ctx context.Context, user *models.User, input CreateInput) (*models.Vehicle, error) {
	if !policy.CanCreateVehicle(user) {
		return nil, services.ErrForbidden
	}

	now := time.Now().UTC()
	vehicle := &models.Vehicle{
		ID:               uuid.New(),
		PostedByID:       user.ID,
		Type:             input.Type,
		Title:            input.Title,
		Make:             input.Make,
		Model:            input.Model,
		Variant:          input.Variant,
		Year:             input.Year,
		Price:            input.Price,
		Mileage:          input.Mileage,
		FuelType:         input.FuelType,
		Transmission:     input.Transmission,
		BodyType:         input.BodyType,
		Color:            input.Color,
		EngineSize:       input.EngineSize,
		Doors:            input.Doors,
		RegistrationDate: input.RegistrationDate,
		TaxDueDate:       input.TaxDueDate,
		InsuranceExpiry:  input.InsuranceExpiry,
		Location:         input.Location,
		SellerType:       input.SellerType,
		ImportStatus:     input.ImportStatus,
		Condition:        input.Condition,
		OwnershipHistory: input.OwnershipHistory,
		Description:      input.Description,
		VIN:              input.VIN,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, url := range input.ImageURLs {
		vehicle.Images = append(vehicle.Images, models.VehicleImage{
			ID:        uuid.New(),
			VehicleID: vehicle.ID,
			URL:       url,
		})
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, services.WrapUnavailable("create vehicle", err)
	}

	s.logger.Info("vehicle posted",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("posted_by", user.ID.String()))

	return vehicle, nil
}

// NormalizePaging clamps page and limit to the bounds List actually serves,
// so callers can echo the values that produced the page
func NormalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// List returns a page of listings. Both the public and the authenticated
// paths use it; neither applies an ownership filter.
func (s *Service) List(ctx context.Context, page, limit int) ([]*models.Vehicle, error) {
	page, limit = NormalizePaging(page, limit)

	listings, err := s.vehicles.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, services.WrapUnavailable("list vehicles", err)
	}
	return listings, nil
}

// Get retrieves a single listing
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrVehicleNotFound
		}
		return nil, services.WrapUnavailable("get vehicle", err)
	}
	return vehicle, nil
}

// Update modifies a listing. Only the poster may do so.
func (s *Service) Update(ctx context.Context, user *models.User, id uuid.UUID, input UpdateInput) (*models.Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanModifyVehicle(user, vehicle.PostedByID) {
		return nil, services.ErrForbidden
	}

	if input.Title != nil {
		vehicle.Title = *input.Title
	}
	if input.Price != nil {
		vehicle.Price = *input.Price
	}
	if input.Mileage != nil {
		vehicle.Mileage = *input.Mileage
	}
	if input.Location != nil {
		vehicle.Location = *input.Location
	}
	if input.Condition != nil {
		vehicle.Condition = *input.Condition
	}
	if input.Description != nil {
		vehicle.Description = *input.Description
	}
	vehicle.UpdatedAt = time.Now().UTC()

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrVehicleNotFound
		}
		return nil, services.WrapUnavailable("update vehicle", err)
	}

	return vehicle, nil
}

// Delete removes a listing. Only the poster may do so.
func (s *Service) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanModifyVehicle(user, vehicle.PostedByID) {
		return services.ErrForbidden
	}

	if err := s.vehicles.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrVehicleNotFound
		}
		return services.WrapUnavailable("delete vehicle", err)
	}

	s.logger.Info("vehicle deleted",
		zap.String("vehicle_id", id.String()),
		zap.String("deleted_by", user.ID.String()))

	return nil
}
