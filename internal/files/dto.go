package files

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// FileDTO is the transport shape for a stored file record.
type FileDTO struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"user_id"`
	BrandID      uuid.UUID           `json:"brand_id"`
	Name         string              `json:"name"`
	Type         enums.FileType      `json:"type"`
	SizeBytes    int64               `json:"size_bytes"`
	MimeType     string              `json:"mime_type"`
	URL          string              `json:"url"`
	ThumbnailURL *string             `json:"thumbnail_url,omitempty"`
	Metadata     *types.FileMetadata `json:"metadata,omitempty"`
	Folder       *string             `json:"folder,omitempty"`
	Tags         []string            `json:"tags"`
	Description  *string             `json:"description,omitempty"`
	UsageCount   int64               `json:"usage_count"`
	LastUsedAt   *time.Time          `json:"last_used_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// CreateFileDTO holds the metadata registered after an upload completes.
type CreateFileDTO struct {
	UserID       uuid.UUID           `json:"-"`
	BrandID      uuid.UUID           `json:"-"`
	Name         string              `json:"name" validate:"required"`
	Type         string              `json:"type" validate:"required,oneof=image pdf video"`
	SizeBytes    int64               `json:"size_bytes" validate:"gte=0"`
	MimeType     string              `json:"mime_type" validate:"required"`
	URL          string              `json:"url" validate:"required,url"`
	ThumbnailURL *string             `json:"thumbnail_url,omitempty"`
	Metadata     *types.FileMetadata `json:"metadata,omitempty"`
	Folder       *string             `json:"folder,omitempty"`
	Tags         []string            `json:"tags,omitempty"`
	Description  *string             `json:"description,omitempty"`
}

// UploadPresignRequest asks for a signed upload URL for a brand asset.
type UploadPresignRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

// UploadPresignResponse returns the signed PUT URL and the public object URL.
type UploadPresignResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectURL string `json:"object_url"`
	ObjectKey string `json:"object_key"`
}

func FromModel(f *models.File) *FileDTO {
	if f == nil {
		return nil
	}
	return &FileDTO{
		ID:           f.ID,
		UserID:       f.UserID,
		BrandID:      f.BrandID,
		Name:         f.Name,
		Type:         f.Type,
		SizeBytes:    f.SizeBytes,
		MimeType:     f.MimeType,
		URL:          f.URL,
		ThumbnailURL: f.ThumbnailURL,
		Metadata:     f.Metadata,
		Folder:       f.Folder,
		Tags:         append([]string(nil), f.Tags...),
		Description:  f.Description,
		UsageCount:   f.UsageCount,
		LastUsedAt:   f.LastUsedAt,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func (c CreateFileDTO) toModel(fileType enums.FileType) *models.File {
	return &models.File{
		ID:           uuid.New(),
		UserID:       c.UserID,
		BrandID:      c.BrandID,
		Name:         c.Name,
		Type:         fileType,
		SizeBytes:    c.SizeBytes,
		MimeType:     c.MimeType,
		URL:          c.URL,
		ThumbnailURL: c.ThumbnailURL,
		Metadata:     c.Metadata,
		Folder:       c.Folder,
		Tags:         pq.StringArray(c.Tags),
		Description:  c.Description,
	}
}
