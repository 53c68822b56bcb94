package reviews

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgdb "github.com/maresdigital/brandhub-backend/pkg/db"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/pagination"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// Service defines the behavior needed by the review controllers.
type Service interface {
	Create(ctx context.Context, dto CreateReviewDTO) (*ReviewDTO, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID, params pagination.Params) (*types.Page[ReviewDTO], error)
}

type reviewRepository interface {
	Create(ctx context.Context, dto CreateReviewDTO) (*models.Review, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Review, error)
}

type service struct {
	repo reviewRepository
}

// NewService constructs a review service with the provided dependencies.
func NewService(repo reviewRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, dto CreateReviewDTO) (*ReviewDTO, error) {
	if dto.UserID == uuid.Nil || dto.BrandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user and brand are required")
	}
	if dto.Rating < 1 || dto.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	review, err := s.repo.Create(ctx, dto)
	if err != nil {
		if pkgdb.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "user or brand does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return FromModel(review), nil
}

func (s *service) ListByBrand(ctx context.Context, brandID uuid.UUID, params pagination.Params) (*types.Page[ReviewDTO], error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListByBrand(ctx, brandID, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}

	var nextCursor *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		encoded := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &encoded
	}

	items := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}

	return &types.Page[ReviewDTO]{Items: items, NextCursor: nextCursor}, nil
}
