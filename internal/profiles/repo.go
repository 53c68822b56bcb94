package profiles

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/maresdigital/brandhub-backend/internal/repo"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
)

// Repository exposes profile persistence for both profile kinds.
type Repository struct {
	repo.Base
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// CreateCustomer inserts a customer profile row for the user.
func (r *Repository) CreateCustomer(ctx context.Context, userID uuid.UUID, dto CreateCustomerProfileDTO) (*models.CustomerProfile, error) {
	profile := &models.CustomerProfile{
		ID:          uuid.New(),
		UserID:      userID,
		Preferences: dto.Preferences,
		SavedBrands: pq.StringArray(dto.SavedBrands),
	}
	if err := r.DB(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateAdmin inserts an admin profile row for the user.
func (r *Repository) CreateAdmin(ctx context.Context, userID uuid.UUID, dto CreateAdminProfileDTO) (*models.AdminProfile, error) {
	profile := &models.AdminProfile{
		ID:           uuid.New(),
		UserID:       userID,
		Permissions:  pq.StringArray(dto.Permissions),
		Department:   dto.Department,
		IsSuperadmin: dto.Superadmin,
	}
	if err := r.DB(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// FindCustomerByUserID loads the customer profile attached to the user.
func (r *Repository) FindCustomerByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.DB(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindAdminByUserID loads the admin profile attached to the user.
func (r *Repository) FindAdminByUserID(ctx context.Context, userID uuid.UUID) (*models.AdminProfile, error) {
	var profile models.AdminProfile
	if err := r.DB(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
