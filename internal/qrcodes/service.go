package qrcodes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/maresdigital/brandhub-backend/pkg/db"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/outbox"
	"github.com/maresdigital/brandhub-backend/pkg/pagination"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// Service defines the behavior needed by the QR code controllers.
type Service interface {
	Create(ctx context.Context, dto CreateQRCodeDTO) (*QRCodeDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*QRCodeDTO, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID) ([]QRCodeDTO, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]QRCodeDTO, error)
	RecordScan(ctx context.Context, id uuid.UUID, dto ScanDTO) (*ScanResultDTO, error)
	ListScans(ctx context.Context, id uuid.UUID, params pagination.Params) (*types.Page[ScanLogDTO], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type qrCodeRepository interface {
	Create(ctx context.Context, code *models.QRCode) (*models.QRCode, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.QRCode, error)
	PageBrand(ctx context.Context, pageID uuid.UUID) (uuid.UUID, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID) ([]models.QRCode, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]models.QRCode, error)
	IncrementScanCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	CreateScanLog(ctx context.Context, tx *gorm.DB, log *models.ScanLog) error
	ListScanLogs(ctx context.Context, qrCodeID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.ScanLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo   qrCodeRepository
	db     *pkgdb.Client
	outbox outboxEmitter
}

// ServiceParams bundles the dependencies required to build a QR code service.
type ServiceParams struct {
	Repo   qrCodeRepository
	DB     *pkgdb.Client
	Outbox outboxEmitter
}

// NewService constructs a QR code service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("qr code repository is required")
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

func (s *service) Create(ctx context.Context, dto CreateQRCodeDTO) (*QRCodeDTO, error) {
	if dto.LandingPageID == uuid.Nil || dto.BrandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "landing page and brand are required")
	}
	if strings.TrimSpace(dto.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(dto.Data) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "data is required")
	}

	ownerID, err := s.repo.PageBrand(ctx, dto.LandingPageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "landing page does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve landing page")
	}
	if ownerID != dto.BrandID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "landing page belongs to another brand")
	}

	code := &models.QRCode{
		ID:             uuid.New(),
		LandingPageID:  dto.LandingPageID,
		BrandID:        dto.BrandID,
		Name:           dto.Name,
		Data:           dto.Data,
		VisualSettings: dto.VisualSettings,
	}
	created, err := s.repo.Create(ctx, code)
	if err != nil {
		if pkgdb.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "landing page or brand does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create qr code")
	}
	return FromModel(created), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*QRCodeDTO, error) {
	code, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asQRCodeError(err, "fetch qr code")
	}
	return FromModel(code), nil
}

func (s *service) ListByBrand(ctx context.Context, brandID uuid.UUID) ([]QRCodeDTO, error) {
	rows, err := s.repo.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list qr codes")
	}
	return fromModels(rows), nil
}

func (s *service) ListByPage(ctx context.Context, pageID uuid.UUID) ([]QRCodeDTO, error) {
	rows, err := s.repo.ListByPage(ctx, pageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list qr codes")
	}
	return fromModels(rows), nil
}

// RecordScan appends a scan log row, bumps the denormalized counter and
// queues the scan event, all in one transaction. The two writes share the
// transaction so the counter can never drift from the log.
func (s *service) RecordScan(ctx context.Context, id uuid.UUID, dto ScanDTO) (*ScanResultDTO, error) {
	code, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asQRCodeError(err, "fetch qr code")
	}

	log := &models.ScanLog{
		ID:        uuid.New(),
		QRCodeID:  code.ID,
		UserID:    dto.UserID,
		IP:        dto.IP,
		UserAgent: dto.UserAgent,
		Location:  dto.Location,
	}
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateScanLog(ctx, tx, log); err != nil {
			return err
		}
		if err := s.repo.IncrementScanCount(ctx, tx, code.ID); err != nil {
			return err
		}
		var actor *outbox.ActorRef
		if dto.UserID != nil {
			actor = &outbox.ActorRef{UserID: *dto.UserID}
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventScanRecorded,
			AggregateType: enums.AggregateQRCode,
			AggregateID:   code.ID,
			Actor:         actor,
			Data: map[string]any{
				"qr_code_id":      code.ID,
				"landing_page_id": code.LandingPageID,
				"brand_id":        code.BrandID,
				"scan_log_id":     log.ID,
			},
			Version: 1,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "qr code not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record scan")
	}

	return &ScanResultDTO{
		QRCodeID:      code.ID,
		LandingPageID: code.LandingPageID,
		Data:          code.Data,
	}, nil
}

func (s *service) ListScans(ctx context.Context, id uuid.UUID, params pagination.Params) (*types.Page[ScanLogDTO], error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListScanLogs(ctx, id, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list scans")
	}

	var nextCursor *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		encoded := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &encoded
	}

	items := make([]ScanLogDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *scanLogFromModel(&rows[i]))
	}

	return &types.Page[ScanLogDTO]{Items: items, NextCursor: nextCursor}, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return asQRCodeError(err, "delete qr code")
	}
	return nil
}

func fromModels(rows []models.QRCode) []QRCodeDTO {
	dtos := make([]QRCodeDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}

func asQRCodeError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "qr code not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
