package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/enums"
)

// User represents the canonical identity entity. Brands, files, reviews and
// both profile kinds hang off it and are removed with it; scan logs only
// reference it and survive with a cleared user id.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:'customer'"`
	Name         *string        `gorm:"column:name"`
	Age          *int           `gorm:"column:age"`
	Gender       *string        `gorm:"column:gender"`
	Phone        *string        `gorm:"column:phone"`
	AvatarURL    *string        `gorm:"column:avatar_url"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
