package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/maresdigital/brandhub-backend/pkg/enums"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// File captures metadata for an uploaded object. The binary itself lives
// in object storage; only the resolvable URL is kept here.
type File struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	User         *User               `gorm:"constraint:OnDelete:CASCADE"`
	BrandID      uuid.UUID           `gorm:"column:brand_id;type:uuid;not null;index"`
	Brand        *Brand              `gorm:"constraint:OnDelete:CASCADE"`
	Name         string              `gorm:"column:name;not null"`
	Type         enums.FileType      `gorm:"column:type;type:text;not null"`
	SizeBytes    int64               `gorm:"column:size_bytes;not null"`
	MimeType     string              `gorm:"column:mime_type;not null"`
	URL          string              `gorm:"column:url;not null"`
	ThumbnailURL *string             `gorm:"column:thumbnail_url"`
	Metadata     *types.FileMetadata `gorm:"column:metadata;type:jsonb"`
	Folder       *string             `gorm:"column:folder"`
	Tags         pq.StringArray      `gorm:"column:tags;type:text[]"`
	Description  *string             `gorm:"column:description"`
	UsageCount   int64               `gorm:"column:usage_count;not null;default:0"`
	LastUsedAt   *time.Time          `gorm:"column:last_used_at"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
