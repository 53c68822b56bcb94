package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// CustomerProfile extends a customer user. At most one row per user,
// enforced by the unique index on user_id.
type CustomerProfile struct {
	ID          uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID                 `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	User        *User                     `gorm:"constraint:OnDelete:CASCADE"`
	Preferences types.CustomerPreferences `gorm:"column:preferences;type:jsonb"`
	SavedBrands pq.StringArray            `gorm:"column:saved_brands;type:text[]"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
