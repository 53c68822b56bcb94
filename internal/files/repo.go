package files

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maresdigital/brandhub-backend/internal/repo"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
)

// Repository exposes file persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a files repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new file record and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateFileDTO, fileType enums.FileType) (*models.File, error) {
	file := dto.toModel(fileType)
	if err := r.DB(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

// FindByID loads a file by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var file models.File
	if err := r.DB(ctx).First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByBrand returns a brand's files, newest first.
func (r *Repository) ListByBrand(ctx context.Context, brandID uuid.UUID) ([]models.File, error) {
	var rows []models.File
	err := r.DB(ctx).
		Where("brand_id = ?", brandID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// RecordUse bumps usage_count with a single arithmetic UPDATE and refreshes
// last_used_at so concurrent calls never lose increments.
func (r *Repository) RecordUse(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.DB(ctx).
		Model(&models.File{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"usage_count":  gorm.Expr("usage_count + 1"),
			"last_used_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the file record.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.DB(ctx).Delete(&models.File{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
