package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Review is a customer rating of a brand. Rating bounds (1..5) are
// validated by the service, not the schema.
type Review struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE"`
	BrandID   uuid.UUID      `gorm:"column:brand_id;type:uuid;not null;index"`
	Brand     *Brand         `gorm:"constraint:OnDelete:CASCADE"`
	Rating    int            `gorm:"column:rating;not null"`
	Comment   *string        `gorm:"column:comment"`
	ImageURLs pq.StringArray `gorm:"column:image_urls;type:text[]"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
