package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/carromarket/backend/middleware"
	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/services/vehicles"
	"github.com/carromarket/backend/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VehicleService is the part of the vehicle core the handler needs
type VehicleService interface {
	Create(ctx context.Context, user *models.User, input vehicles.CreateInput) (*models.Vehicle, error)
	List(ctx context.Context, page, limit int) ([]*models.Vehicle, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	Update(ctx context.Context, user *models.User, id uuid.UUID, input vehicles.UpdateInput) (*models.Vehicle, error)
	Delete(ctx context.Context, user *models.User, id uuid.UUID) error
}

// VehicleHandler handles vehicle listing endpoints
type VehicleHandler struct {
	vehicles VehicleService
	logger   *zap.Logger
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleService VehicleService, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicleService, logger: logger}
}

// CreateVehicleRequest is the body for POST /api/vehicles
type CreateVehicleRequest struct {
	Type             string     `json:"vehicle_type" validate:"required,oneof=Car Motorbike Truck Van Other"`
	Title            string     `json:"title" validate:"required,max=255"`
	Make             string     `json:"make" validate:"required,max=100"`
	Model            string     `json:"model" validate:"required,max=100"`
	Variant          string     `json:"variant" validate:"omitempty,max=100"`
	Year             int        `json:"year" validate:"required,gte=1900,lte=2100"`
	Price            float64    `json:"price" validate:"required,gt=0"`
	Mileage          int        `json:"mileage" validate:"gte=0"`
	FuelType         string     `json:"fuel_type" validate:"omitempty,oneof=Petrol Diesel Electric Hybrid"`
	Transmission     string     `json:"transmission" validate:"omitempty,oneof=Manual Automatic"`
	BodyType         string     `json:"body_type" validate:"omitempty,max=50"`
	Color            string     `json:"color" validate:"omitempty,max=50"`
	EngineSize       float64    `json:"engine_size" validate:"omitempty,gt=0"`
	Doors            int        `json:"doors" validate:"omitempty,gte=0,lte=10"`
	RegistrationDate *time.Time `json:"registration_date"`
	TaxDueDate       *time.Time `json:"tax_due_date"`
	InsuranceExpiry  *time.Time `json:"insurance_expiry"`
	Location         string     `json:"location" validate:"omitempty,max=255"`
	SellerType       string     `json:"seller_type" validate:"omitempty,oneof=Dealer Private"`
	ImportStatus     string     `json:"import_status" validate:"omitempty,oneof='Used Import' 'New Import' Reconditioned"`
	Condition        string     `json:"condition" validate:"omitempty,oneof=Excellent Good Fair Poor"`
	OwnershipHistory int        `json:"ownership_history" validate:"gte=0"`
	Description      string     `json:"description" validate:"omitempty,max=10000"`
	VIN              string     `json:"vin" validate:"omitempty,max=17"`
	ImageURLs        []string   `json:"image_urls" validate:"omitempty,dive,url"`
}

// UpdateVehicleRequest is the body for PUT /api/vehicles/{vehicleID}; absent
// fields leave the stored values untouched
type UpdateVehicleRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Mileage     *int     `json:"mileage" validate:"omitempty,gte=0"`
	Location    *string  `json:"location" validate:"omitempty,max=255"`
	Condition   *string  `json:"condition" validate:"omitempty,oneof=Excellent Good Fair Poor"`
	Description *string  `json:"description" validate:"omitempty,max=10000"`
}

// VehicleListResponse is the paged listing envelope
type VehicleListResponse struct {
	Vehicles []*models.Vehicle `json:"vehicles"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// HandleCreate handles POST /api/vehicles
func (h *VehicleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "authentication failed")
		return
	}

	var req CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	vehicle, err := h.vehicles.Create(r.Context(), user, vehicles.CreateInput{
		Type:             models.VehicleType(req.Type),
		Title:            req.Title,
		Make:             req.Make,
		Model:            req.Model,
		Variant:          req.Variant,
		Year:             req.Year,
		Price:            req.Price,
		Mileage:          req.Mileage,
		FuelType:         models.FuelType(req.FuelType),
		Transmission:     models.TransmissionType(req.Transmission),
		BodyType:         req.BodyType,
		Color:            req.Color,
		EngineSize:       req.EngineSize,
		Doors:            req.Doors,
		RegistrationDate: req.RegistrationDate,
		TaxDueDate:       req.TaxDueDate,
		InsuranceExpiry:  req.InsuranceExpiry,
		Location:         req.Location,
		SellerType:       models.SellerType(req.SellerType),
		ImportStatus:     models.ImportStatus(req.ImportStatus),
		Condition:        models.VehicleCondition(req.Condition),
		OwnershipHistory: req.OwnershipHistory,
		Description:      req.Description,
		VIN:              req.VIN,
		ImageURLs:        req.ImageURLs,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, vehicle)
}

// HandleList handles GET /api/vehicles and GET /api/vehicles/public
func (h *VehicleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	// Echo the values the service actually serves, not the raw query input
	page, limit := vehicles.NormalizePaging(queryInt(r, "page", 1), queryInt(r, "limit", 10))

	listings, err := h.vehicles.List(r.Context(), page, limit)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if listings == nil {
		listings = []*models.Vehicle{}
	}

	_ = utils.WriteOK(w, VehicleListResponse{
		Vehicles: listings,
		Page:     page,
		Limit:    limit,
	})
}

// HandleGet handles GET /api/vehicles/{vehicleID}
func (h *VehicleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "vehicleID"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "invalid vehicle id", nil)
		return
	}

	vehicle, err := h.vehicles.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, vehicle)
}

// HandleUpdate handles PUT /api/vehicles/{vehicleID}
func (h *VehicleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "authentication failed")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "vehicleID"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "invalid vehicle id", nil)
		return
	}

	var req UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	var condition *models.VehicleCondition
	if req.Condition != nil {
		c := models.VehicleCondition(*req.Condition)
		condition = &c
	}

	vehicle, err := h.vehicles.Update(r.Context(), user, id, vehicles.UpdateInput{
		Title:       req.Title,
		Price:       req.Price,
		Mileage:     req.Mileage,
		Location:    req.Location,
		Condition:   condition,
		Description: req.Description,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, vehicle)
}

// HandleDelete handles DELETE /api/vehicles/{vehicleID}
func (h *VehicleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "authentication failed")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "vehicleID"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "invalid vehicle id", nil)
		return
	}

	if err := h.vehicles.Delete(r.Context(), user, id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
