package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/enums"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// LandingPage is a brand-owned public page. The slug is unique across the
// whole system, not just within the owning brand.
type LandingPage struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	BrandID   uuid.UUID        `gorm:"column:brand_id;type:uuid;not null;index"`
	Brand     *Brand           `gorm:"constraint:OnDelete:CASCADE"`
	Name      string           `gorm:"column:name;not null"`
	Slug      string           `gorm:"column:slug;not null;uniqueIndex:ux_landing_pages_slug"`
	Status    enums.PageStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	Settings  types.Settings   `gorm:"column:settings;type:jsonb"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
