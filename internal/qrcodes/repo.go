package qrcodes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maresdigital/brandhub-backend/internal/repo"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/pagination"
)

// Repository exposes QR code and scan log persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a QR code repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new QR code and returns the persisted model.
func (r *Repository) Create(ctx context.Context, code *models.QRCode) (*models.QRCode, error) {
	if err := r.DB(ctx).Create(code).Error; err != nil {
		return nil, err
	}
	return code, nil
}

// FindByID loads a QR code by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.QRCode, error) {
	var code models.QRCode
	if err := r.DB(ctx).First(&code, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

// PageBrand returns the owning brand of a landing page.
func (r *Repository) PageBrand(ctx context.Context, pageID uuid.UUID) (uuid.UUID, error) {
	var page models.LandingPage
	err := r.DB(ctx).
		Select("brand_id").
		First(&page, "id = ?", pageID).Error
	if err != nil {
		return uuid.Nil, err
	}
	return page.BrandID, nil
}

// ListByBrand returns all codes owned by the brand, newest first.
func (r *Repository) ListByBrand(ctx context.Context, brandID uuid.UUID) ([]models.QRCode, error) {
	var rows []models.QRCode
	err := r.DB(ctx).
		Where("brand_id = ?", brandID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListByPage returns all codes attached to the landing page, newest first.
func (r *Repository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]models.QRCode, error) {
	var rows []models.QRCode
	err := r.DB(ctx).
		Where("landing_page_id = ?", pageID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// IncrementScanCount bumps the denormalized counter with a single
// arithmetic UPDATE inside the caller's transaction.
func (r *Repository) IncrementScanCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := tx.WithContext(ctx).
		Model(&models.QRCode{}).
		Where("id = ?", id).
		UpdateColumn("scan_count", gorm.Expr("scan_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateScanLog appends one scan record inside the caller's transaction.
func (r *Repository) CreateScanLog(ctx context.Context, tx *gorm.DB, log *models.ScanLog) error {
	return tx.WithContext(ctx).Create(log).Error
}

// ListScanLogs pages through a code's scan history, newest first, with the
// same (created_at, id) keyset cursor the review listing uses.
func (r *Repository) ListScanLogs(ctx context.Context, qrCodeID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.ScanLog, error) {
	query := r.DB(ctx).
		Where("qr_code_id = ?", qrCodeID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)

	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.ScanLog
	err := query.Find(&rows).Error
	return rows, err
}

// Delete removes a QR code. Scan logs go with it via the foreign key.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.DB(ctx).Delete(&models.QRCode{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
