package pages

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maresdigital/brandhub-backend/internal/repo"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
)

// Repository exposes landing page and block persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a pages repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// CreatePage inserts a new landing page and returns the persisted model.
func (r *Repository) CreatePage(ctx context.Context, page *models.LandingPage) (*models.LandingPage, error) {
	if err := r.DB(ctx).Create(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// FindPageByID loads a landing page by its UUID.
func (r *Repository) FindPageByID(ctx context.Context, id uuid.UUID) (*models.LandingPage, error) {
	var page models.LandingPage
	if err := r.DB(ctx).First(&page, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// FindPageBySlug loads a landing page by its public slug.
func (r *Repository) FindPageBySlug(ctx context.Context, slug string) (*models.LandingPage, error) {
	var page models.LandingPage
	if err := r.DB(ctx).First(&page, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPagesByBrand returns all pages owned by the brand, newest first.
func (r *Repository) ListPagesByBrand(ctx context.Context, brandID uuid.UUID) ([]models.LandingPage, error) {
	var rows []models.LandingPage
	err := r.DB(ctx).
		Where("brand_id = ?", brandID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// UpdatePage applies the provided column map and returns the fresh row.
func (r *Repository) UpdatePage(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.LandingPage, error) {
	if len(updates) > 0 {
		result := r.DB(ctx).
			Model(&models.LandingPage{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindPageByID(ctx, id)
}

// UpdatePageStatus flips the page status inside the caller's transaction.
func (r *Repository) UpdatePageStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	result := tx.WithContext(ctx).
		Model(&models.LandingPage{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePage removes the page. Blocks and QR codes go with it via the
// foreign keys.
func (r *Repository) DeletePage(ctx context.Context, id uuid.UUID) error {
	result := r.DB(ctx).Delete(&models.LandingPage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountBlocks returns the number of blocks on a page, read inside tx.
func (r *Repository) CountBlocks(ctx context.Context, tx *gorm.DB, pageID uuid.UUID) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Block{}).
		Where("landing_page_id = ?", pageID).
		Count(&count).Error
	return count, err
}

// ShiftPositionsUp opens a gap at position from by pushing every block at
// or after it one slot down the page.
func (r *Repository) ShiftPositionsUp(ctx context.Context, tx *gorm.DB, pageID uuid.UUID, from int) error {
	return tx.WithContext(ctx).
		Model(&models.Block{}).
		Where("landing_page_id = ? AND position >= ?", pageID, from).
		UpdateColumn("position", gorm.Expr("position + 1")).Error
}

// ShiftPositionsDown closes the gap left behind position after by pulling
// every later block one slot up.
func (r *Repository) ShiftPositionsDown(ctx context.Context, tx *gorm.DB, pageID uuid.UUID, after int) error {
	return tx.WithContext(ctx).
		Model(&models.Block{}).
		Where("landing_page_id = ? AND position > ?", pageID, after).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
}

// CreateBlock inserts a block inside the caller's transaction.
func (r *Repository) CreateBlock(ctx context.Context, tx *gorm.DB, block *models.Block) error {
	return tx.WithContext(ctx).Create(block).Error
}

// FindBlockByID loads a block by its UUID.
func (r *Repository) FindBlockByID(ctx context.Context, id uuid.UUID) (*models.Block, error) {
	var block models.Block
	if err := r.DB(ctx).First(&block, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

// ListBlocks returns the page's blocks in display order.
func (r *Repository) ListBlocks(ctx context.Context, pageID uuid.UUID) ([]models.Block, error) {
	var rows []models.Block
	err := r.DB(ctx).
		Where("landing_page_id = ?", pageID).
		Order("position ASC").
		Find(&rows).Error
	return rows, err
}

// UpdateBlock applies the provided column map and returns the fresh row.
func (r *Repository) UpdateBlock(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Block, error) {
	if len(updates) > 0 {
		result := r.DB(ctx).
			Model(&models.Block{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindBlockByID(ctx, id)
}

// SetBlockPosition writes one block's position inside the caller's
// transaction.
func (r *Repository) SetBlockPosition(ctx context.Context, tx *gorm.DB, id uuid.UUID, position int) error {
	result := tx.WithContext(ctx).
		Model(&models.Block{}).
		Where("id = ?", id).
		UpdateColumn("position", position)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBlock removes a block inside the caller's transaction.
func (r *Repository) DeleteBlock(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := tx.WithContext(ctx).Delete(&models.Block{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
