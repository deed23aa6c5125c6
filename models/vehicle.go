package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleType classifies a listing
type VehicleType string

const (
	VehicleCar       VehicleType = "Car"
	VehicleMotorbike VehicleType = "Motorbike"
	VehicleTruck     VehicleType = "Truck"
	VehicleVan       VehicleType = "Van"
	VehicleOther     VehicleType = "Other"
)

// FuelType is the vehicle's fuel
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// TransmissionType is the gearbox kind
type TransmissionType string

const (
	TransmissionManual    TransmissionType = "Manual"
	TransmissionAutomatic TransmissionType = "Automatic"
)

// SellerType distinguishes dealer listings from private ones
type SellerType string

const (
	SellerDealer  SellerType = "Dealer"
	SellerPrivate SellerType = "Private"
)

// ImportStatus describes how the vehicle entered the market
type ImportStatus string

const (
	ImportUsed          ImportStatus = "Used Import"
	ImportNew           ImportStatus = "New Import"
	ImportReconditioned ImportStatus = "Reconditioned"
)

// VehicleCondition is the seller-declared condition
type VehicleCondition string

const (
	ConditionExcellent VehicleCondition = "Excellent"
	ConditionGood      VehicleCondition = "Good"
	ConditionFair      VehicleCondition = "Fair"
	ConditionPoor      VehicleCondition = "Poor"
)

// Vehicle represents a marketplace listing. PostedByID binds the listing to
// the identity allowed to modify it.
type Vehicle struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	PostedByID uuid.UUID   `json:"posted_by_id" db:"posted_by_id"`
	Type       VehicleType `json:"vehicle_type" db:"vehicle_type"`
	Title      string      `json:"title" db:"title"`
	Make       string      `json:"make" db:"make"`
	Model      string      `json:"model" db:"model"`
	Variant    string      `json:"variant,omitempty" db:"variant"`
	Year       int         `json:"year" db:"year"`
	Price      float64     `json:"price" db:"price"`
	Mileage    int         `json:"mileage" db:"mileage"` // kilometers

	FuelType     FuelType         `json:"fuel_type" db:"fuel_type"`
	Transmission TransmissionType `json:"transmission" db:"transmission"`
	BodyType     string           `json:"body_type" db:"body_type"`
	Color        string           `json:"color" db:"color"`
	EngineSize   float64          `json:"engine_size" db:"engine_size"`
	Doors        int              `json:"doors" db:"doors"`

	RegistrationDate *time.Time `json:"registration_date,omitempty" db:"registration_date"`
	TaxDueDate       *time.Time `json:"tax_due_date,omitempty" db:"tax_due_date"`
	InsuranceExpiry  *time.Time `json:"insurance_expiry,omitempty" db:"insurance_expiry"`

	Location         string           `json:"location" db:"location"`
	SellerType       SellerType       `json:"seller_type" db:"seller_type"`
	ImportStatus     ImportStatus     `json:"import_status" db:"import_status"`
	Condition        VehicleCondition `json:"condition" db:"condition"`
	OwnershipHistory int              `json:"ownership_history" db:"ownership_history"` // previous owners
	Description      string           `json:"description" db:"description"`
	VIN              string           `json:"vin,omitempty" db:"vin"`

	Images []VehicleImage `json:"images"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}

// VehicleImage is a photo attached to a listing
type VehicleImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	VehicleID uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	URL       string    `json:"url" db:"url"`
}

// TableName returns the table name for the VehicleImage model
func (VehicleImage) TableName() string {
	return "vehicle_images"
}
