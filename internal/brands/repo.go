package brands

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maresdigital/brandhub-backend/internal/repo"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
)

// Repository exposes brand persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a brands repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new brand and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateBrandDTO) (*models.Brand, error) {
	brand := dto.ToModel()
	if err := r.DB(ctx).Create(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// FindByID loads a brand by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := r.DB(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// ListByUser returns all brands owned by the user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Brand, error) {
	var rows []models.Brand
	err := r.DB(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// Update applies the provided column map and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Brand, error) {
	if len(updates) > 0 {
		result := r.DB(ctx).
			Model(&models.Brand{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes the brand row inside the supplied transaction; files,
// reviews, landing pages and QR codes cascade in storage.
func (r *Repository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	conn := r.DB(ctx)
	if tx != nil {
		conn = tx.WithContext(ctx)
	}
	result := conn.Delete(&models.Brand{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
