package pages

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// PageDTO is the transport shape for a landing page.
type PageDTO struct {
	ID        uuid.UUID        `json:"id"`
	BrandID   uuid.UUID        `json:"brand_id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	Status    enums.PageStatus `json:"status"`
	Settings  types.Settings   `json:"settings,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PageWithBlocksDTO is the public render shape: the page plus its blocks in
// display order.
type PageWithBlocksDTO struct {
	PageDTO
	Blocks []BlockDTO `json:"blocks"`
}

// BlockDTO is the transport shape for a landing page block.
type BlockDTO struct {
	ID            uuid.UUID          `json:"id"`
	LandingPageID uuid.UUID          `json:"landing_page_id"`
	Type          string             `json:"type"`
	Position      int                `json:"position"`
	Content       types.BlockContent `json:"content"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// CreatePageDTO holds the fields accepted when creating a landing page.
type CreatePageDTO struct {
	BrandID  uuid.UUID      `json:"-"`
	Name     string         `json:"name" validate:"required"`
	Slug     string         `json:"slug" validate:"required"`
	Settings types.Settings `json:"settings,omitempty"`
}

// UpdatePageDTO holds the mutable fields of a landing page. Nil means keep
// the stored value.
type UpdatePageDTO struct {
	Name     *string         `json:"name,omitempty"`
	Slug     *string         `json:"slug,omitempty"`
	Settings *types.Settings `json:"settings,omitempty"`
}

// UpdateStatusDTO carries a page status transition.
type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=draft published archived"`
}

// CreateBlockDTO holds the fields accepted when adding a block. A nil
// Position appends at the end of the page.
type CreateBlockDTO struct {
	Type     string          `json:"type" validate:"required"`
	Position *int            `json:"position,omitempty" validate:"omitempty,gte=0"`
	Content  json.RawMessage `json:"content" validate:"required"`
}

// UpdateBlockDTO holds the mutable fields of a block. Position changes go
// through Reorder, not here.
type UpdateBlockDTO struct {
	Type    *string          `json:"type,omitempty"`
	Content *json.RawMessage `json:"content,omitempty"`
}

// ReorderDTO is the full desired block order for one page.
type ReorderDTO struct {
	BlockIDs []uuid.UUID `json:"block_ids" validate:"required,min=1"`
}

func pageFromModel(p *models.LandingPage) *PageDTO {
	if p == nil {
		return nil
	}
	return &PageDTO{
		ID:        p.ID,
		BrandID:   p.BrandID,
		Name:      p.Name,
		Slug:      p.Slug,
		Status:    p.Status,
		Settings:  p.Settings,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func blockFromModel(b *models.Block) *BlockDTO {
	if b == nil {
		return nil
	}
	return &BlockDTO{
		ID:            b.ID,
		LandingPageID: b.LandingPageID,
		Type:          b.Type,
		Position:      b.Position,
		Content:       b.Content,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func blocksFromModels(rows []models.Block) []BlockDTO {
	dtos := make([]BlockDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *blockFromModel(&rows[i]))
	}
	return dtos
}
