package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AdminProfile extends an admin user. At most one row per user,
// enforced by the unique index on user_id.
type AdminProfile struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	User         *User          `gorm:"constraint:OnDelete:CASCADE"`
	Permissions  pq.StringArray `gorm:"column:permissions;type:text[]"`
	Department   *string        `gorm:"column:department"`
	IsSuperadmin bool           `gorm:"column:is_superadmin;not null;default:false"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
