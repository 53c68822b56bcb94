package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/config"
	"github.com/maresdigital/brandhub-backend/pkg/db"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/pagination"
)

func newTestClient(t *testing.T) *db.Client {
	t.Helper()
	client, err := db.New(
		context.Background(),
		config.DBConfig{DSN: "file::memory:"},
		config.FeatureFlagsConfig{UseSQLite: true},
		nil,
	)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.DB().AutoMigrate(models.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return client
}

func seedUserAndBrand(t *testing.T, client *db.Client) (*models.User, *models.Brand) {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         enums.UserRoleCustomer,
	}
	if err := client.DB().Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	brand := &models.Brand{
		ID:          uuid.New(),
		UserID:      user.ID,
		Name:        "Golden Fields",
		LogoURL:     "https://cdn.example.com/logo.png",
		Description: "Family-run organic farm",
		Email:       "hello@goldenfields.example",
		IsActive:    true,
	}
	if err := client.DB().Create(brand).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	return user, brand
}

func newTestService(t *testing.T, client *db.Client) Service {
	t.Helper()
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateReviewRatingBounds(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	user, brand := seedUserAndBrand(t, client)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), CreateReviewDTO{
			UserID:  user.ID,
			BrandID: brand.ID,
			Rating:  rating,
		})
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}

	dto, err := svc.Create(context.Background(), CreateReviewDTO{
		UserID:  user.ID,
		BrandID: brand.ID,
		Rating:  5,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Rating != 5 {
		t.Fatalf("unexpected rating %d", dto.Rating)
	}
}

func TestCreateReviewMissingBrandIsReferential(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	user, _ := seedUserAndBrand(t, client)

	_, err := svc.Create(context.Background(), CreateReviewDTO{
		UserID:  user.ID,
		BrandID: uuid.New(),
		Rating:  4,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential error, got %v", err)
	}
}

func TestListByBrandPaginatesNewestFirst(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	user, brand := seedUserAndBrand(t, client)

	base := time.Now().Add(-time.Hour).UTC()
	for i := 0; i < 5; i++ {
		review := &models.Review{
			ID:        uuid.New(),
			UserID:    user.ID,
			BrandID:   brand.ID,
			Rating:    (i % 5) + 1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := client.DB().Create(review).Error; err != nil {
			t.Fatalf("seed review %d: %v", i, err)
		}
	}

	page, err := svc.ListByBrand(context.Background(), brand.ID, pagination.Params{Limit: 3})
	if err != nil {
		t.Fatalf("ListByBrand: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(page.Items))
	}
	if page.NextCursor == nil {
		t.Fatal("expected next cursor")
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt) {
			t.Fatal("expected created_at DESC ordering")
		}
	}

	rest, err := svc.ListByBrand(context.Background(), brand.ID, pagination.Params{Limit: 3, Cursor: *page.NextCursor})
	if err != nil {
		t.Fatalf("ListByBrand page 2: %v", err)
	}
	if len(rest.Items) != 2 {
		t.Fatalf("expected 2 items on second page, got %d", len(rest.Items))
	}
	if rest.NextCursor != nil {
		t.Fatal("expected exhausted cursor")
	}

	seen := map[uuid.UUID]bool{}
	for _, item := range append(page.Items, rest.Items...) {
		if seen[item.ID] {
			t.Fatalf("review %s returned twice", item.ID)
		}
		seen[item.ID] = true
	}
}
