// Package policy holds every role and ownership rule in one place. The
// functions are pure: they see a resolved identity (nil means anonymous) and
// a target, and answer allow or deny. Transport concerns and storage lookups
// stay with the callers.
package policy

import (
	"github.com/carromarket/backend/models"
	"github.com/google/uuid"
)

// CanCreateVehicle allows any valid, active identity to post a listing
func CanCreateVehicle(user *models.User) bool {
	return user != nil && user.IsActive
}

// CanListVehicles always allows the public listing path. The authenticated
// listing path gates on a valid identity upstream but applies no ownership
// filter here: any signed-in user may browse all listings.
func CanListVehicles(_ *models.User) bool {
	return true
}

// CanModifyVehicle allows updates and deletes only by the identity that
// posted the listing
func CanModifyVehicle(user *models.User, postedByID uuid.UUID) bool {
	return user != nil && user.ID == postedByID
}

// CanCreateDealerProfile requires a dealership account. The one-profile-per
// -user rule is enforced by the profile store's unique constraint, not here.
func CanCreateDealerProfile(user *models.User) bool {
	return user != nil && user.IsDealership()
}

// CanAccessDealerProfile allows anyone, including anonymous callers, to read
// a profile. Writes require a dealership account that owns the profile.
func CanAccessDealerProfile(user *models.User, targetUserID uuid.UUID, write bool) bool {
	if !write {
		return true
	}
	return user != nil && user.IsDealership() && user.ID == targetUserID
}
