package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// ScanLog is an immutable record of one QR scan. It cascades with its QR
// code, but deleting the referenced user only clears user_id; the scan
// history itself is kept. No updated_at: rows are never mutated.
type ScanLog struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	QRCodeID  uuid.UUID           `gorm:"column:qr_code_id;type:uuid;not null;index"`
	QRCode    *QRCode             `gorm:"constraint:OnDelete:CASCADE"`
	UserID    *uuid.UUID          `gorm:"column:user_id;type:uuid"`
	User      *User               `gorm:"constraint:OnDelete:SET NULL"`
	IP        *string             `gorm:"column:ip"`
	UserAgent *string             `gorm:"column:user_agent"`
	Location  *types.ScanLocation `gorm:"column:location;type:jsonb"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
}
