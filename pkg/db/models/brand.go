package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// Brand is the central aggregate. user_id is intentionally not unique:
// the schema permits several brands per owner even though product intent
// is one. Files, reviews, landing pages and QR codes cascade with it.
type Brand struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE"`
	Name         string    `gorm:"column:name;not null"`
	LogoURL      string    `gorm:"column:logo_url;not null"`
	Description  string    `gorm:"column:description;not null"`
	Email        string    `gorm:"column:email;not null"`
	Tagline      *string   `gorm:"column:tagline"`
	VideoURL     *string   `gorm:"column:video_url"`
	Mission      *string   `gorm:"column:mission"`
	Vision       *string   `gorm:"column:vision"`
	FoundingYear *int      `gorm:"column:founding_year"`
	Phone        *string   `gorm:"column:phone"`

	Address           *types.Address          `gorm:"column:address;type:jsonb"`
	Social            *types.Social           `gorm:"column:social;type:jsonb"`
	Certifications    types.Certifications    `gorm:"column:certifications;type:jsonb"`
	Awards            types.Awards            `gorm:"column:awards;type:jsonb"`
	PressFeatures     types.PressFeatures     `gorm:"column:press_features;type:jsonb"`
	FeaturedProducts  types.ProductHighlights `gorm:"column:featured_products;type:jsonb"`
	NewLaunchProducts types.ProductHighlights `gorm:"column:new_launch_products;type:jsonb"`
	Campaigns         types.Campaigns         `gorm:"column:campaigns;type:jsonb"`
	Settings          types.Settings          `gorm:"column:settings;type:jsonb"`

	IsActive   bool      `gorm:"column:is_active;not null;default:true"`
	IsVerified bool      `gorm:"column:is_verified;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
