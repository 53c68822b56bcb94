package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// QRCode belongs to a landing page; the brand reference is redundant with
// the page's owner and exists for direct-ownership queries. ScanCount is
// denormalized and must equal the number of scan log rows, maintained by a
// single arithmetic UPDATE inside the scan transaction.
type QRCode struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	LandingPageID  uuid.UUID      `gorm:"column:landing_page_id;type:uuid;not null;index"`
	LandingPage    *LandingPage   `gorm:"constraint:OnDelete:CASCADE"`
	BrandID        uuid.UUID      `gorm:"column:brand_id;type:uuid;not null;index"`
	Brand          *Brand         `gorm:"constraint:OnDelete:CASCADE"`
	Name           string         `gorm:"column:name;not null"`
	Data           string         `gorm:"column:data;not null"`
	VisualSettings types.Settings `gorm:"column:visual_settings;type:jsonb"`
	ScanCount      int64          `gorm:"column:scan_count;not null;default:0"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
