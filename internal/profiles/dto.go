package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// CustomerProfileDTO is the transport shape for a customer profile.
type CustomerProfileDTO struct {
	ID          uuid.UUID                 `json:"id"`
	UserID      uuid.UUID                 `json:"user_id"`
	Preferences types.CustomerPreferences `json:"preferences"`
	SavedBrands []string                  `json:"saved_brands"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// AdminProfileDTO is the transport shape for an admin profile.
type AdminProfileDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Permissions  []string  `json:"permissions"`
	Department   *string   `json:"department,omitempty"`
	IsSuperadmin bool      `json:"is_superadmin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCustomerProfileDTO holds the customer profile attributes at attach time.
type CreateCustomerProfileDTO struct {
	Preferences types.CustomerPreferences `json:"preferences"`
	SavedBrands []string                  `json:"saved_brands"`
}

// CreateAdminProfileDTO holds the admin profile attributes at attach time.
type CreateAdminProfileDTO struct {
	Permissions []string `json:"permissions"`
	Department  *string  `json:"department,omitempty"`
	Superadmin  bool     `json:"is_superadmin"`
}

func customerFromModel(p *models.CustomerProfile) *CustomerProfileDTO {
	if p == nil {
		return nil
	}
	return &CustomerProfileDTO{
		ID:          p.ID,
		UserID:      p.UserID,
		Preferences: p.Preferences,
		SavedBrands: append([]string(nil), p.SavedBrands...),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func adminFromModel(p *models.AdminProfile) *AdminProfileDTO {
	if p == nil {
		return nil
	}
	return &AdminProfileDTO{
		ID:           p.ID,
		UserID:       p.UserID,
		Permissions:  append([]string(nil), p.Permissions...),
		Department:   p.Department,
		IsSuperadmin: p.IsSuperadmin,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
