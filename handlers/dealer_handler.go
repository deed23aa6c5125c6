package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/carromarket/backend/middleware"
	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/services/dealers"
	"github.com/carromarket/backend/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DealerService is the part of the dealer core the handler needs
type DealerService interface {
	Create(ctx context.Context, user *models.User, input dealers.ProfileInput) (*models.DealerProfile, error)
	GetMine(ctx context.Context, user *models.User) (*models.DealerProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DealerProfile, error)
	Update(ctx context.Context, user *models.User, input dealers.ProfileInput) (*models.DealerProfile, error)
	Delete(ctx context.Context, user *models.User) error
}

// DealerHandler handles dealer storefront profile endpoints
type DealerHandler struct {
	dealers DealerService
	logger  *zap.Logger
}

// NewDealerHandler creates a new DealerHandler
func NewDealerHandler(dealerService DealerService, logger *zap.Logger) *DealerHandler {
	return &DealerHandler{dealers: dealerService, logger: logger}
}

// DealerProfileRequest is the body for creating or replacing a storefront profile
type DealerProfileRequest struct {
	BusinessID   string   `json:"business_id" validate:"omitempty,max=100"`
	BusinessName string   `json:"business_name" validate:"omitempty,max=255"`
	Address      string   `json:"address" validate:"omitempty,max=500"`
	Phone        string   `json:"phone" validate:"omitempty,max=20"`
	Website      string   `json:"website" validate:"omitempty,url,max=255"`
	LogoURL      string   `json:"logo_url" validate:"omitempty,url,max=500"`
	Images       []string `json:"images" validate:"omitempty,dive,url"`
	Rating       float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	AboutUs      string   `json:"about_us" validate:"omitempty,max=5000"`
	Favorites    []string `json:"favorites"`
	Services     []string `json:"services" validate:"omitempty,dive,max=100"`
}

// toInput maps the request to a service input, defaulting the contact fields
// from the account when the profile body leaves them empty.
func (r *DealerProfileRequest) toInput(businessName, address, phone string) dealers.ProfileInput {
	input := dealers.ProfileInput{
		BusinessID:   r.BusinessID,
		BusinessName: r.BusinessName,
		Address:      r.Address,
		Phone:        r.Phone,
		Website:      r.Website,
		LogoURL:      r.LogoURL,
		Images:       r.Images,
		Rating:       r.Rating,
		AboutUs:      r.AboutUs,
		Favorites:    r.Favorites,
		Services:     r.Services,
	}
	if input.BusinessName == "" {
		input.BusinessName = businessName
	}
	if input.Address == "" {
		input.Address = address
	}
	if input.Phone == "" {
		input.Phone = phone
	}
	return input
}

// HandleCreate handles POST /api/dealer-profile
func (h *DealerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "authentication failed")
		return
	}

	var req DealerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	profile, err := h.dealers.Create(r.Context(), user, req.toInput(user.BusinessName, user.Address, user.Phone))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, profile)
}

// HandleGetMine handles GET /api/dealer-profile
func (h *DealerHandler) HandleGetMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "authentication failed")
		return
	}

	profile, err := h.dealers.GetMine(r.Context(), user)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, profile)
}

// HandleGetByUserID handles GET /api/dealer-profile/{userID}. Public read.
func (h *DealerHandler) HandleGetByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "invalid user id", nil)
		return
	}

	profile, err := h.dealers.GetByUserID(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, profile)
}

// HandleUpdate handles PUT /api/dealer-profile
func (h *DealerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "authentication failed")
		return
	}

	var req DealerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	profile, err := h.dealers.Update(r.Context(), user, req.toInput(user.BusinessName, user.Address, user.Phone))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, profile)
}

// HandleDelete handles DELETE /api/dealer-profile
func (h *DealerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "authentication failed")
		return
	}

	if err := h.dealers.Delete(r.Context(), user); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}
