package files

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
)

// Service defines the behavior needed by the file controllers.
type Service interface {
	Register(ctx context.Context, dto CreateFileDTO) (*FileDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*FileDTO, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID) ([]FileDTO, error)
	RecordUse(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	PresignUpload(ctx context.Context, brandID uuid.UUID, req UploadPresignRequest) (*UploadPresignResponse, error)
}

type fileRepository interface {
	Create(ctx context.Context, dto CreateFileDTO, fileType enums.FileType) (*models.File, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID) ([]models.File, error)
	RecordUse(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type uploadSigner interface {
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
}

type service struct {
	repo   fileRepository
	signer uploadSigner
	gcsCfg config.GCSConfig
}

// ServiceParams bundles the dependencies required to build a file service.
type ServiceParams struct {
	Repo      fileRepository
	Signer    uploadSigner
	GCSConfig config.GCSConfig
}

// NewService constructs a file service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("file repository is required")
	}
	return &service{
		repo:   params.Repo,
		signer: params.Signer,
		gcsCfg: params.GCSConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, dto CreateFileDTO) (*FileDTO, error) {
	if dto.UserID == uuid.Nil || dto.BrandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user and brand are required")
	}
	if strings.TrimSpace(dto.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(dto.URL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "url is required")
	}
	fileType, err := enums.ParseFileType(dto.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid file type")
	}

	file, err := s.repo.Create(ctx, dto, fileType)
	if err != nil {
		if pkgdb.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "user or brand does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register file")
	}
	return FromModel(file), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*FileDTO, error) {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch file")
	}
	return FromModel(file), nil
}

func (s *service) ListByBrand(ctx context.Context, brandID uuid.UUID) ([]FileDTO, error) {
	rows, err := s.repo.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list files")
	}
	dtos := make([]FileDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) RecordUse(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.RecordUse(ctx, id, time.Now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record file use")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete file")
	}
	return nil
}

func (s *service) PresignUpload(ctx context.Context, brandID uuid.UUID, req UploadPresignRequest) (*UploadPresignResponse, error) {
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

	objectKey := fmt.Sprintf("brands/%s/files/%s-%s", brandID, uuid.NewString(), name)
	uploadURL, err := s.signer.SignedURL(s.gcsCfg.BucketName, objectKey, req.ContentType, s.gcsCfg.UploadURLExpiry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign upload url")
	}

	return &UploadPresignResponse{
		UploadURL: uploadURL,
		ObjectURL: fmt.Sprintf(s.gcsCfg.PublicURLPattern, s.gcsCfg.BucketName, objectKey),
		ObjectKey: objectKey,
	}, nil
}
