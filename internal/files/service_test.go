package files

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/config"
	"github.com/maresdigital/brandhub-backend/pkg/db"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
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
		Role:         enums.UserRoleBrand,
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
	svc, err := NewService(ServiceParams{Repo: NewRepository(client.DB())})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func validCreateDTO(userID, brandID uuid.UUID) CreateFileDTO {
	return CreateFileDTO{
		UserID:    userID,
		BrandID:   brandID,
		Name:      "harvest.jpg",
		Type:      "image",
		SizeBytes: 2048,
		MimeType:  "image/jpeg",
		URL:       "https://storage.googleapis.com/brandhub-assets/harvest.jpg",
	}
}

func TestRegisterFile(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	user, brand := seedUserAndBrand(t, client)

	dto, err := svc.Register(context.Background(), validCreateDTO(user.ID, brand.ID))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if dto.Type != enums.FileTypeImage {
		t.Fatalf("unexpected type %s", dto.Type)
	}
	if dto.UsageCount != 0 {
		t.Fatalf("usage count should start at 0, got %d", dto.UsageCount)
	}
}

func TestRegisterFileInvalidType(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	user, brand := seedUserAndBrand(t, client)

	dto := validCreateDTO(user.ID, brand.ID)
	dto.Type = "spreadsheet"
	_, err := svc.Register(context.Background(), dto)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecordUseIncrementsAtomically(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	user, brand := seedUserAndBrand(t, client)

	created, err := svc.Register(context.Background(), validCreateDTO(user.ID, brand.ID))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.RecordUse(context.Background(), created.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("RecordUse: %v", err)
		}
	}

	fresh, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh.UsageCount != n {
		t.Fatalf("expected usage count %d, got %d", n, fresh.UsageCount)
	}
	if fresh.LastUsedAt == nil {
		t.Fatal("expected last_used_at set")
	}
}

func TestRecordUseMissingFile(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)

	err := svc.RecordUse(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
