package reviews

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/maresdigital/brandhub-backend/pkg/db/models"
)

// ReviewDTO is the transport shape for a brand review.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	BrandID   uuid.UUID `json:"brand_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	ImageURLs []string  `json:"image_urls"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateReviewDTO holds the attributes required to persist a review.
type CreateReviewDTO struct {
	UserID    uuid.UUID `json:"-"`
	BrandID   uuid.UUID `json:"-"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   *string   `json:"comment,omitempty"`
	ImageURLs []string  `json:"image_urls,omitempty"`
}

func FromModel(r *models.Review) *ReviewDTO {
	if r == nil {
		return nil
	}
	return &ReviewDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		BrandID:   r.BrandID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		ImageURLs: append([]string(nil), r.ImageURLs...),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (c CreateReviewDTO) ToModel() *models.Review {
	return &models.Review{
		ID:        uuid.New(),
		UserID:    c.UserID,
		BrandID:   c.BrandID,
		Rating:    c.Rating,
		Comment:   c.Comment,
		ImageURLs: pq.StringArray(c.ImageURLs),
	}
}
