package pages

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/maresdigital/brandhub-backend/pkg/db"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/outbox"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Service defines the behavior needed by the landing page controllers.
type Service interface {
	Create(ctx context.Context, dto CreatePageDTO) (*PageDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*PageDTO, error)
	GetBySlug(ctx context.Context, slug string) (*PageWithBlocksDTO, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID) ([]PageDTO, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdatePageDTO) (*PageDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, dto UpdateStatusDTO, actor *outbox.ActorRef) (*PageDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddBlock(ctx context.Context, pageID uuid.UUID, dto CreateBlockDTO) (*BlockDTO, error)
	ListBlocks(ctx context.Context, pageID uuid.UUID) ([]BlockDTO, error)
	UpdateBlock(ctx context.Context, blockID uuid.UUID, dto UpdateBlockDTO) (*BlockDTO, error)
	RemoveBlock(ctx context.Context, blockID uuid.UUID) error
	Reorder(ctx context.Context, pageID uuid.UUID, dto ReorderDTO) ([]BlockDTO, error)
}

type pageRepository interface {
	CreatePage(ctx context.Context, page *models.LandingPage) (*models.LandingPage, error)
	FindPageByID(ctx context.Context, id uuid.UUID) (*models.LandingPage, error)
	FindPageBySlug(ctx context.Context, slug string) (*models.LandingPage, error)
	ListPagesByBrand(ctx context.Context, brandID uuid.UUID) ([]models.LandingPage, error)
	UpdatePage(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.LandingPage, error)
	UpdatePageStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	DeletePage(ctx context.Context, id uuid.UUID) error

	CountBlocks(ctx context.Context, tx *gorm.DB, pageID uuid.UUID) (int64, error)
	ShiftPositionsUp(ctx context.Context, tx *gorm.DB, pageID uuid.UUID, from int) error
	ShiftPositionsDown(ctx context.Context, tx *gorm.DB, pageID uuid.UUID, after int) error
	CreateBlock(ctx context.Context, tx *gorm.DB, block *models.Block) error
	FindBlockByID(ctx context.Context, id uuid.UUID) (*models.Block, error)
	ListBlocks(ctx context.Context, pageID uuid.UUID) ([]models.Block, error)
	UpdateBlock(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Block, error)
	SetBlockPosition(ctx context.Context, tx *gorm.DB, id uuid.UUID, position int) error
	DeleteBlock(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo   pageRepository
	db     *pkgdb.Client
	outbox outboxEmitter
}

// ServiceParams bundles the dependencies required to build a page service.
type ServiceParams struct {
	Repo   pageRepository
	DB     *pkgdb.Client
	Outbox outboxEmitter
}

// NewService constructs a landing page service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("page repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox service is required")
	}
	return &service{
		repo:   params.Repo,
		db:     params.DB,
		outbox: params.Outbox,
	}, nil
}

func (s *service) Create(ctx context.Context, dto CreatePageDTO) (*PageDTO, error) {
	if dto.BrandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand is required")
	}
	if strings.TrimSpace(dto.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	slug := strings.ToLower(strings.TrimSpace(dto.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug must be lowercase letters, digits and hyphens")
	}

	page := &models.LandingPage{
		ID:       uuid.New(),
		BrandID:  dto.BrandID,
		Name:     dto.Name,
		Slug:     slug,
		Status:   enums.PageStatusDraft,
		Settings: dto.Settings,
	}
	created, err := s.repo.CreatePage(ctx, page)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "ux_landing_pages_slug") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
		}
		if pkgdb.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "brand does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create landing page")
	}
	return pageFromModel(created), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PageDTO, error) {
	page, err := s.repo.FindPageByID(ctx, id)
	if err != nil {
		return nil, asPageError(err, "fetch landing page")
	}
	return pageFromModel(page), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*PageWithBlocksDTO, error) {
	page, err := s.repo.FindPageBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, asPageError(err, "fetch landing page")
	}
	blocks, err := s.repo.ListBlocks(ctx, page.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list blocks")
	}
	return &PageWithBlocksDTO{
		PageDTO: *pageFromModel(page),
		Blocks:  blocksFromModels(blocks),
	}, nil
}

func (s *service) ListByBrand(ctx context.Context, brandID uuid.UUID) ([]PageDTO, error) {
	rows, err := s.repo.ListPagesByBrand(ctx, brandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list landing pages")
	}
	dtos := make([]PageDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *pageFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdatePageDTO) (*PageDTO, error) {
	updates := map[string]any{}
	if dto.Name != nil {
		if strings.TrimSpace(*dto.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*dto.Slug))
		if !slugPattern.MatchString(slug) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug must be lowercase letters, digits and hyphens")
		}
		updates["slug"] = slug
	}
	if dto.Settings != nil {
		updates["settings"] = types.Settings(*dto.Settings)
	}

	page, err := s.repo.UpdatePage(ctx, id, updates)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "ux_landing_pages_slug") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
		}
		return nil, asPageError(err, "update landing page")
	}
	return pageFromModel(page), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, dto UpdateStatusDTO, actor *outbox.ActorRef) (*PageDTO, error) {
	status, err := enums.ParsePageStatus(dto.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid page status")
	}

	page, err := s.repo.FindPageByID(ctx, id)
	if err != nil {
		return nil, asPageError(err, "fetch landing page")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdatePageStatus(ctx, tx, id, status.String()); err != nil {
			return err
		}
		if status == enums.PageStatusPublished && page.Status != enums.PageStatusPublished {
			return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventPagePublished,
				AggregateType: enums.AggregateLandingPage,
				AggregateID:   page.ID,
				Actor:         actor,
				Data: map[string]any{
					"page_id":  page.ID,
					"brand_id": page.BrandID,
					"slug":     page.Slug,
				},
				Version: 1,
			})
		}
		return nil
	})
	if err != nil {
		return nil, asPageError(err, "update page status")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeletePage(ctx, id); err != nil {
		return asPageError(err, "delete landing page")
	}
	return nil
}

// AddBlock inserts a block at the requested position, pushing later blocks
// down in the same transaction. A nil or out-of-range position appends.
func (s *service) AddBlock(ctx context.Context, pageID uuid.UUID, dto CreateBlockDTO) (*BlockDTO, error) {
	if strings.TrimSpace(dto.Type) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "block type is required")
	}
	if len(dto.Content) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "block content is required")
	}
	if dto.Position != nil && *dto.Position < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "position cannot be negative")
	}
	if _, err := s.repo.FindPageByID(ctx, pageID); err != nil {
		return nil, asPageError(err, "fetch landing page")
	}

	block := &models.Block{
		ID:            uuid.New(),
		LandingPageID: pageID,
		Type:          dto.Type,
		Content:       types.BlockContent(dto.Content),
	}
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		count, err := s.repo.CountBlocks(ctx, tx, pageID)
		if err != nil {
			return err
		}
		position := int(count)
		if dto.Position != nil && *dto.Position < position {
			position = *dto.Position
			if err := s.repo.ShiftPositionsUp(ctx, tx, pageID, position); err != nil {
				return err
			}
		}
		block.Position = position
		return s.repo.CreateBlock(ctx, tx, block)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add block")
	}
	return blockFromModel(block), nil
}

func (s *service) ListBlocks(ctx context.Context, pageID uuid.UUID) ([]BlockDTO, error) {
	rows, err := s.repo.ListBlocks(ctx, pageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list blocks")
	}
	return blocksFromModels(rows), nil
}

func (s *service) UpdateBlock(ctx context.Context, blockID uuid.UUID, dto UpdateBlockDTO) (*BlockDTO, error) {
	updates := map[string]any{}
	if dto.Type != nil {
		if strings.TrimSpace(*dto.Type) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "block type cannot be empty")
		}
		updates["type"] = *dto.Type
	}
	if dto.Content != nil {
		if len(*dto.Content) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "block content cannot be empty")
		}
		updates["content"] = types.BlockContent(*dto.Content)
	}

	block, err := s.repo.UpdateBlock(ctx, blockID, updates)
	if err != nil {
		return nil, asBlockError(err, "update block")
	}
	return blockFromModel(block), nil
}

// RemoveBlock deletes the block and closes the position gap it leaves, in
// one transaction.
func (s *service) RemoveBlock(ctx context.Context, blockID uuid.UUID) error {
	block, err := s.repo.FindBlockByID(ctx, blockID)
	if err != nil {
		return asBlockError(err, "fetch block")
	}
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeleteBlock(ctx, tx, blockID); err != nil {
			return err
		}
		return s.repo.ShiftPositionsDown(ctx, tx, block.LandingPageID, block.Position)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove block")
	}
	return nil
}

// Reorder rewrites the whole page order in one transaction. The request
// must list every block on the page exactly once.
func (s *service) Reorder(ctx context.Context, pageID uuid.UUID, dto ReorderDTO) ([]BlockDTO, error) {
	if _, err := s.repo.FindPageByID(ctx, pageID); err != nil {
		return nil, asPageError(err, "fetch landing page")
	}
	existing, err := s.repo.ListBlocks(ctx, pageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list blocks")
	}
	if len(dto.BlockIDs) != len(existing) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must list every block exactly once")
	}
	known := make(map[uuid.UUID]struct{}, len(existing))
	for i := range existing {
		known[existing[i].ID] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(dto.BlockIDs))
	for _, id := range dto.BlockIDs {
		if _, ok := known[id]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order references a block not on this page")
		}
		if _, dup := seen[id]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must list every block exactly once")
		}
		seen[id] = struct{}{}
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		for position, id := range dto.BlockIDs {
			if err := s.repo.SetBlockPosition(ctx, tx, id, position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reorder blocks")
	}
	return s.ListBlocks(ctx, pageID)
}

func asPageError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "landing page not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func asBlockError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "block not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
