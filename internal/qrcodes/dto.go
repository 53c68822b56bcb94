package qrcodes

import (
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// QRCodeDTO is the transport shape for a QR code.
type QRCodeDTO struct {
	ID             uuid.UUID      `json:"id"`
	LandingPageID  uuid.UUID      `json:"landing_page_id"`
	BrandID        uuid.UUID      `json:"brand_id"`
	Name           string         `json:"name"`
	Data           string         `json:"data"`
	VisualSettings types.Settings `json:"visual_settings,omitempty"`
	ScanCount      int64          `json:"scan_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CreateQRCodeDTO holds the fields accepted when creating a QR code.
type CreateQRCodeDTO struct {
	LandingPageID  uuid.UUID      `json:"landing_page_id" validate:"required"`
	BrandID        uuid.UUID      `json:"-"`
	Name           string         `json:"name" validate:"required"`
	Data           string         `json:"data" validate:"required,url"`
	VisualSettings types.Settings `json:"visual_settings,omitempty"`
}

// ScanDTO carries the request context captured when a code is scanned.
// Everything is optional: anonymous scans with no client hints are valid.
type ScanDTO struct {
	UserID    *uuid.UUID          `json:"-"`
	IP        *string             `json:"-"`
	UserAgent *string             `json:"-"`
	Location  *types.ScanLocation `json:"location,omitempty"`
}

// ScanResultDTO is what the public scan endpoint answers with: where to
// send the visitor.
type ScanResultDTO struct {
	QRCodeID      uuid.UUID `json:"qr_code_id"`
	LandingPageID uuid.UUID `json:"landing_page_id"`
	Data          string    `json:"data"`
}

// ScanLogDTO is the transport shape for one recorded scan.
type ScanLogDTO struct {
	ID        uuid.UUID           `json:"id"`
	QRCodeID  uuid.UUID           `json:"qr_code_id"`
	UserID    *uuid.UUID          `json:"user_id,omitempty"`
	IP        *string             `json:"ip,omitempty"`
	UserAgent *string             `json:"user_agent,omitempty"`
	Location  *types.ScanLocation `json:"location,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

func FromModel(q *models.QRCode) *QRCodeDTO {
	if q == nil {
		return nil
	}
	return &QRCodeDTO{
		ID:             q.ID,
		LandingPageID:  q.LandingPageID,
		BrandID:        q.BrandID,
		Name:           q.Name,
		Data:           q.Data,
		VisualSettings: q.VisualSettings,
		ScanCount:      q.ScanCount,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func scanLogFromModel(l *models.ScanLog) *ScanLogDTO {
	if l == nil {
		return nil
	}
	return &ScanLogDTO{
		ID:        l.ID,
		QRCodeID:  l.QRCodeID,
		UserID:    l.UserID,
		IP:        l.IP,
		UserAgent: l.UserAgent,
		Location:  l.Location,
		CreatedAt: l.CreatedAt,
	}
}
