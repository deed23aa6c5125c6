package models

import (
	"time"

	"github.com/google/uuid"
)

// DealerProfile is the public storefront of a dealership account.
// UserID is unique: at most one profile per identity.
type DealerProfile struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`

	BusinessID   string `json:"business_id,omitempty" db:"business_id"`
	BusinessName string `json:"business_name,omitempty" db:"business_name"`
	Address      string `json:"address,omitempty" db:"address"`
	Phone        string `json:"phone,omitempty" db:"phone"`
	Website      string `json:"website,omitempty" db:"website"`

	LogoURL   string   `json:"logo_url,omitempty" db:"logo_url"`
	Images    []string `json:"images,omitempty" db:"images"`
	Rating    float64  `json:"rating" db:"rating"` // 0-5
	AboutUs   string   `json:"about_us,omitempty" db:"about_us"`
	Favorites []string `json:"favorites,omitempty" db:"favorites"`
	Services  []string `json:"services,omitempty" db:"services"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the DealerProfile model
func (DealerProfile) TableName() string {
	return "dealer_profiles"
}

// NewDealerProfile creates a profile owned by the given user
func NewDealerProfile(userID uuid.UUID) *DealerProfile {
	now := time.Now().UTC()
	return &DealerProfile{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
