package brands

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maresdigital/brandhub-backend/pkg/config"
	pkgdb "github.com/maresdigital/brandhub-backend/pkg/db"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/outbox"
)

// Service defines the behavior needed by the brand controllers.
type Service interface {
	Create(ctx context.Context, dto CreateBrandDTO) (*BrandDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*BrandDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]BrandDTO, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateBrandDTO) (*BrandDTO, error)
	UpdateFlags(ctx context.Context, id uuid.UUID, dto UpdateFlagsDTO) (*BrandDTO, error)
	Delete(ctx context.Context, id uuid.UUID, actor *outbox.ActorRef) error
	PresignLogo(ctx context.Context, brandID uuid.UUID, req LogoPresignRequest) (*LogoPresignResponse, error)
}

type brandRepository interface {
	Create(ctx context.Context, dto CreateBrandDTO) (*models.Brand, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Brand, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Brand, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type uploadSigner interface {
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
}

type service struct {
	repo   brandRepository
	db     *pkgdb.Client
	outbox outboxEmitter
	signer uploadSigner
	gcsCfg config.GCSConfig
}

// ServiceParams bundles the dependencies required to build a brand service.
type ServiceParams struct {
	Repo      brandRepository
	DB        *pkgdb.Client
	Outbox    outboxEmitter
	Signer    uploadSigner
	GCSConfig config.GCSConfig
}

// NewService constructs a brand service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("brand repository is required")
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
		signer: params.Signer,
		gcsCfg: params.GCSConfig,
	}, nil
}

func (s *service) Create(ctx context.Context, dto CreateBrandDTO) (*BrandDTO, error) {
	if dto.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user_id is required")
	}
	for field, value := range map[string]string{
		"name":        dto.Name,
		"logo_url":    dto.LogoURL,
		"description": dto.Description,
		"email":       dto.Email,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, field+" is required")
		}
	}

	brand, err := s.repo.Create(ctx, dto)
	if err != nil {
		if pkgdb.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "owner user does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create brand")
	}
	return FromModel(brand), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*BrandDTO, error) {
	brand, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch brand")
	}
	return FromModel(brand), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]BrandDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	dtos := make([]BrandDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdateBrandDTO) (*BrandDTO, error) {
	updates := buildUpdates(dto)

	brand, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand")
	}
	return FromModel(brand), nil
}

func (s *service) UpdateFlags(ctx context.Context, id uuid.UUID, dto UpdateFlagsDTO) (*BrandDTO, error) {
	updates := map[string]any{}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.IsVerified != nil {
		updates["is_verified"] = *dto.IsVerified
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no flags provided")
	}

	brand, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand flags")
	}
	return FromModel(brand), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *outbox.ActorRef) error {
	brand, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch brand")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventBrandDeleted,
			AggregateType: enums.AggregateBrand,
			AggregateID:   id,
			Actor:         actor,
			Data: map[string]any{
				"brand_id": id.String(),
				"user_id":  brand.UserID.String(),
				"name":     brand.Name,
			},
			Version: 1,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete brand")
	}
	return nil
}

func (s *service) PresignLogo(ctx context.Context, brandID uuid.UUID, req LogoPresignRequest) (*LogoPresignResponse, error) {
	if s.signer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "upload signing unavailable")
	}
	name := path.Base(strings.TrimSpace(req.FileName))
	if name == "" || name == "." || name == "/" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file_name is required")
	}
	if strings.TrimSpace(req.ContentType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content_type is required")
	}

	objectKey := fmt.Sprintf("brands/%s/logo/%s-%s", brandID, uuid.NewString(), name)
	uploadURL, err := s.signer.SignedURL(s.gcsCfg.BucketName, objectKey, req.ContentType, s.gcsCfg.UploadURLExpiry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign upload url")
	}

	return &LogoPresignResponse{
		UploadURL: uploadURL,
		ObjectURL: fmt.Sprintf(s.gcsCfg.PublicURLPattern, s.gcsCfg.BucketName, objectKey),
		ObjectKey: objectKey,
	}, nil
}

func buildUpdates(dto UpdateBrandDTO) map[string]any {
	updates := map[string]any{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.LogoURL != nil {
		updates["logo_url"] = *dto.LogoURL
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.Tagline != nil {
		updates["tagline"] = *dto.Tagline
	}
	if dto.VideoURL != nil {
		updates["video_url"] = *dto.VideoURL
	}
	if dto.Mission != nil {
		updates["mission"] = *dto.Mission
	}
	if dto.Vision != nil {
		updates["vision"] = *dto.Vision
	}
	if dto.FoundingYear != nil {
		updates["founding_year"] = *dto.FoundingYear
	}
	if dto.Phone != nil {
		updates["phone"] = *dto.Phone
	}
	if dto.Address != nil {
		updates["address"] = dto.Address
	}
	if dto.Social != nil {
		updates["social"] = dto.Social
	}
	if dto.Certifications != nil {
		updates["certifications"] = *dto.Certifications
	}
	if dto.Awards != nil {
		updates["awards"] = *dto.Awards
	}
	if dto.PressFeatures != nil {
		updates["press_features"] = *dto.PressFeatures
	}
	if dto.FeaturedProducts != nil {
		updates["featured_products"] = *dto.FeaturedProducts
	}
	if dto.NewLaunchProducts != nil {
		updates["new_launch_products"] = *dto.NewLaunchProducts
	}
	if dto.Campaigns != nil {
		updates["campaigns"] = *dto.Campaigns
	}
	if dto.Settings != nil {
		updates["settings"] = *dto.Settings
	}
	return updates
}
