package brands

import (
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// BrandDTO is the transport shape for a brand profile.
type BrandDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logo_url"`
	Description  string    `json:"description"`
	Email        string    `json:"email"`
	Tagline      *string   `json:"tagline,omitempty"`
	VideoURL     *string   `json:"video_url,omitempty"`
	Mission      *string   `json:"mission,omitempty"`
	Vision       *string   `json:"vision,omitempty"`
	FoundingYear *int      `json:"founding_year,omitempty"`
	Phone        *string   `json:"phone,omitempty"`

	Address           *types.Address          `json:"address,omitempty"`
	Social            *types.Social           `json:"social,omitempty"`
	Certifications    types.Certifications    `json:"certifications"`
	Awards            types.Awards            `json:"awards"`
	PressFeatures     types.PressFeatures     `json:"press_features"`
	FeaturedProducts  types.ProductHighlights `json:"featured_products"`
	NewLaunchProducts types.ProductHighlights `json:"new_launch_products"`
	Campaigns         types.Campaigns         `json:"campaigns"`
	Settings          types.Settings          `json:"settings"`

	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateBrandDTO holds the attributes required to persist a brand.
type CreateBrandDTO struct {
	UserID       uuid.UUID `json:"user_id" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	LogoURL      string    `json:"logo_url" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	Tagline      *string   `json:"tagline,omitempty"`
	VideoURL     *string   `json:"video_url,omitempty"`
	Mission      *string   `json:"mission,omitempty"`
	Vision       *string   `json:"vision,omitempty"`
	FoundingYear *int      `json:"founding_year,omitempty"`
	Phone        *string   `json:"phone,omitempty"`

	Address           *types.Address          `json:"address,omitempty"`
	Social            *types.Social           `json:"social,omitempty"`
	Certifications    types.Certifications    `json:"certifications,omitempty"`
	Awards            types.Awards            `json:"awards,omitempty"`
	PressFeatures     types.PressFeatures     `json:"press_features,omitempty"`
	FeaturedProducts  types.ProductHighlights `json:"featured_products,omitempty"`
	NewLaunchProducts types.ProductHighlights `json:"new_launch_products,omitempty"`
	Campaigns         types.Campaigns         `json:"campaigns,omitempty"`
	Settings          types.Settings          `json:"settings,omitempty"`
}

// UpdateBrandDTO carries optional fields; nil fields are left untouched.
type UpdateBrandDTO struct {
	Name         *string `json:"name,omitempty"`
	LogoURL      *string `json:"logo_url,omitempty"`
	Description  *string `json:"description,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Tagline      *string `json:"tagline,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`
	Mission      *string `json:"mission,omitempty"`
	Vision       *string `json:"vision,omitempty"`
	FoundingYear *int    `json:"founding_year,omitempty"`
	Phone        *string `json:"phone,omitempty"`

	Address           *types.Address           `json:"address,omitempty"`
	Social            *types.Social            `json:"social,omitempty"`
	Certifications    *types.Certifications    `json:"certifications,omitempty"`
	Awards            *types.Awards            `json:"awards,omitempty"`
	PressFeatures     *types.PressFeatures     `json:"press_features,omitempty"`
	FeaturedProducts  *types.ProductHighlights `json:"featured_products,omitempty"`
	NewLaunchProducts *types.ProductHighlights `json:"new_launch_products,omitempty"`
	Campaigns         *types.Campaigns         `json:"campaigns,omitempty"`
	Settings          *types.Settings          `json:"settings,omitempty"`
}

// UpdateFlagsDTO toggles the admin-managed flags.
type UpdateFlagsDTO struct {
	IsActive   *bool `json:"is_active,omitempty"`
	IsVerified *bool `json:"is_verified,omitempty"`
}

// LogoPresignRequest asks for a signed upload URL for a brand logo.
type LogoPresignRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

// LogoPresignResponse returns the signed PUT URL and the public object URL.
type LogoPresignResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectURL string `json:"object_url"`
	ObjectKey string `json:"object_key"`
}

func FromModel(b *models.Brand) *BrandDTO {
	if b == nil {
		return nil
	}
	return &BrandDTO{
		ID:           b.ID,
		UserID:       b.UserID,
		Name:         b.Name,
		LogoURL:      b.LogoURL,
		Description:  b.Description,
		Email:        b.Email,
		Tagline:      b.Tagline,
		VideoURL:     b.VideoURL,
		Mission:      b.Mission,
		Vision:       b.Vision,
		FoundingYear: b.FoundingYear,
		Phone:        b.Phone,

		Address:           b.Address,
		Social:            b.Social,
		Certifications:    b.Certifications,
		Awards:            b.Awards,
		PressFeatures:     b.PressFeatures,
		FeaturedProducts:  b.FeaturedProducts,
		NewLaunchProducts: b.NewLaunchProducts,
		Campaigns:         b.Campaigns,
		Settings:          b.Settings,

		IsActive:   b.IsActive,
		IsVerified: b.IsVerified,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (c CreateBrandDTO) ToModel() *models.Brand {
	return &models.Brand{
		ID:           uuid.New(),
		UserID:       c.UserID,
		Name:         c.Name,
		LogoURL:      c.LogoURL,
		Description:  c.Description,
		Email:        c.Email,
		Tagline:      c.Tagline,
		VideoURL:     c.VideoURL,
		Mission:      c.Mission,
		Vision:       c.Vision,
		FoundingYear: c.FoundingYear,
		Phone:        c.Phone,

		Address:           c.Address,
		Social:            c.Social,
		Certifications:    c.Certifications,
		Awards:            c.Awards,
		PressFeatures:     c.PressFeatures,
		FeaturedProducts:  c.FeaturedProducts,
		NewLaunchProducts: c.NewLaunchProducts,
		Campaigns:         c.Campaigns,
		Settings:          c.Settings,

		IsActive: true,
	}
}
