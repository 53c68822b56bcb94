package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// Block is one content unit on a landing page. Position defines the render
// sequence; the store does not renumber, the service keeps it contiguous.
type Block struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	LandingPageID uuid.UUID          `gorm:"column:landing_page_id;type:uuid;not null;index"`
	LandingPage   *LandingPage       `gorm:"constraint:OnDelete:CASCADE"`
	Type          string             `gorm:"column:type;not null"`
	Position      int                `gorm:"column:position;not null"`
	Content       types.BlockContent `gorm:"column:content;type:jsonb;not null"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
