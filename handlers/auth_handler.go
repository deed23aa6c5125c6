package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/carromarket/backend/middleware"
	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/services"
	"github.com/carromarket/backend/services/auth"
	"github.com/carromarket/backend/services/dealers"
	"github.com/carromarket/backend/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService is the part of the auth core the handler needs
type AuthService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, string, error)
}

// DealerProfileCreator creates dealer profiles during registration
type DealerProfileCreator interface {
	Create(ctx context.Context, user *models.User, input dealers.ProfileInput) (*models.DealerProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DealerProfile, error)
}

// AuthHandler handles registration, login, and the current-user endpoint
type AuthHandler struct {
	auth    AuthService
	dealers DealerProfileCreator
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthService, dealerService DealerProfileCreator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:    authService,
		dealers: dealerService,
		logger:  logger,
	}
}

// RegisterRequest is the body for POST /auth/register
type RegisterRequest struct {
	Email                string                `json:"email" validate:"required,email"`
	Password             string                `json:"password" validate:"required,min=8,max=128"`
	FirstName            string                `json:"first_name" validate:"omitempty,max=50"`
	LastName             string                `json:"last_name" validate:"omitempty,max=50"`
	UserType             string                `json:"user_type" validate:"omitempty,oneof=Individual Dealership"`
	BusinessName         string                `json:"business_name" validate:"omitempty,max=255"`
	BusinessRegistration string                `json:"business_registration" validate:"omitempty,max=100"`
	Phone                string                `json:"phone" validate:"omitempty,max=20"`
	Address              string                `json:"address" validate:"omitempty,max=500"`
	DealerProfile        *DealerProfileRequest `json:"dealer_profile,omitempty"`
}

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the body returned on successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse carries a user plus their dealer profile when one exists
type UserResponse struct {
	*models.User
	DealerProfile *models.DealerProfile `json:"dealer_profile,omitempty"`
}

// HandleRegister handles POST /auth/register. A dealership account may
// create its storefront profile inline.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	user, err := h.auth.Register(r.Context(), auth.RegisterInput{
		Email:                req.Email,
		Password:             req.Password,
		Role:                 models.UserRole(req.UserType),
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		BusinessName:         req.BusinessName,
		BusinessRegistration: req.BusinessRegistration,
		Phone:                req.Phone,
		Address:              req.Address,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	response := UserResponse{User: user}

	if user.IsDealership() && req.DealerProfile != nil {
		profile, err := h.dealers.Create(r.Context(), user, req.DealerProfile.toInput(req.BusinessName, req.Address, req.Phone))
		if err != nil {
			HandleServiceError(w, err, h.logger)
			return
		}
		response.DealerProfile = profile
	}

	_ = utils.WriteCreated(w, response)
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	_, token, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// HandleMe handles GET /auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "authentication failed")
		return
	}

	response := UserResponse{User: user}

	if user.IsDealership() {
		profile, err := h.dealers.GetByUserID(r.Context(), user.ID)
		switch {
		case err == nil:
			response.DealerProfile = profile
		case services.IsNotFoundError(err):
			// Dealership without a storefront yet; nothing to attach
		default:
			HandleServiceError(w, err, h.logger)
			return
		}
	}

	_ = utils.WriteOK(w, response)
}
