package dealers

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

// Service owns dealer storefront profiles. Role and ownership gates come
// from the policy package; the one-profile-per-user rule is backed by the
// store's unique constraint on user_id.
type Service struct {
	profiles repositories.DealerProfileRepository
	users    repositories.UserRepository
	logger   *zap.Logger
}

// NewService creates the dealer profile service
func NewService(profiles repositories.DealerProfileRepository, users repositories.UserRepository, logger *zap.Logger) *Service {
	return &Service{profiles: profiles, users: users, logger: logger}
}

// ProfileInput carries the profile fields a dealership may set
type ProfileInput struct {
	BusinessID   string
	BusinessName string
	Address      string
	Phone        string
	Website      string
	LogoURL      string
	Images       []string
	Rating       float64
	AboutUs      string
	Favorites    []string
	Services     []string
}

// Create makes the storefront profile for a dealership account. A second
// profile for the same identity is a conflict.
func (s *Service) Create(ctx context.Context, user *models.User, input ProfileInput) (*models.DealerProfile, error) {
	if !policy.CanCreateDealerProfile(user) {
		return nil, services.ErrForbidden
	}

	profile := models.NewDealerProfile(user.ID)
	applyInput(profile, input)

	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, services.ErrProfileExists
		}
		return nil, services.WrapUnavailable("create dealer profile", err)
	}

	s.logger.Info("dealer profile created",
		zap.String("profile_id", profile.ID.String()),
		zap.String("user_id", user.ID.String()))

	return profile, nil
}

// GetMine returns the caller's own profile. Only dealership accounts have one.
func (s *Service) GetMine(ctx context.Context, user *models.User) (*models.DealerProfile, error) {
	if !policy.CanAccessDealerProfile(user, user.ID, true) {
		return nil, services.ErrForbidden
	}
	return s.GetByUserID(ctx, user.ID)
}

// GetByUserID returns the profile owned by the given user. Reads are public;
// anonymous callers are allowed. Contact fields the dealership left blank
// fall back to the account's registration details, the same defaulting the
// register flow seeds new profiles with.
func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DealerProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrProfileNotFound
		}
		return nil, services.WrapUnavailable("get dealer profile", err)
	}

	if profile.BusinessName == "" || profile.Address == "" || profile.Phone == "" {
		owner, err := s.users.GetByID(ctx, userID)
		if err != nil {
			// The profile row is the source of truth; serve it as stored
			s.logger.Warn("profile owner lookup failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			return profile, nil
		}
		if profile.BusinessName == "" {
			profile.BusinessName = owner.BusinessName
		}
		if profile.Address == "" {
			profile.Address = owner.Address
		}
		if profile.Phone == "" {
			profile.Phone = owner.Phone
		}
	}

	return profile, nil
}

// Update modifies the caller's own profile
func (s *Service) Update(ctx context.Context, user *models.User, input ProfileInput) (*models.DealerProfile, error) {
	if !policy.CanAccessDealerProfile(user, user.ID, true) {
		return nil, services.ErrForbidden
	}

	profile, err := s.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	applyInput(profile, input)
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrProfileNotFound
		}
		return nil, services.WrapUnavailable("update dealer profile", err)
	}

	return profile, nil
}

// Delete removes the caller's own profile
func (s *Service) Delete(ctx context.Context, user *models.User) error {
	if !policy.CanAccessDealerProfile(user, user.ID, true) {
		return services.ErrForbidden
	}

	if err := s.profiles.DeleteByUserID(ctx, user.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrProfileNotFound
		}
		return services.WrapUnavailable("delete dealer profile", err)
	}

	s.logger.Info("dealer profile deleted", zap.String("user_id", user.ID.String()))
	return nil
}

func applyInput(profile *models.DealerProfile, input ProfileInput) {
	profile.BusinessID = input.BusinessID
	profile.BusinessName = input.BusinessName
	profile.Address = input.Address
	profile.Phone = input.Phone
	profile.Website = input.Website
	profile.LogoURL = input.LogoURL
	profile.Images = input.Images
	profile.Rating = input.Rating
	profile.AboutUs = input.AboutUs
	profile.Favorites = input.Favorites
	profile.Services = input.Services
}
