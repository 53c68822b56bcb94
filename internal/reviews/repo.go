package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maresdigital/brandhub-backend/internal/repo"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/pagination"
)

// Repository exposes review persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a reviews repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new review and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateReviewDTO) (*models.Review, error) {
	review := dto.ToModel()
	if err := r.DB(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// ListByBrand pages through a brand's reviews, newest first. The cursor is
// (created_at, id) keyset pagination; limit rows plus one are fetched so the
// caller can detect the next page.
func (r *Repository) ListByBrand(ctx context.Context, brandID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Review, error) {
	query := r.DB(ctx).
		Where("brand_id = ?", brandID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)

	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Review
	err := query.Find(&rows).Error
	return rows, err
}
