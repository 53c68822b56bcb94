package qrcodes

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
	"github.com/maresdigital/brandhub-backend/pkg/outbox"
	"github.com/maresdigital/brandhub-backend/pkg/pagination"
	"github.com/maresdigital/brandhub-backend/pkg/types"
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

func newTestService(t *testing.T, client *db.Client) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   NewRepository(client.DB()),
		DB:     client,
		Outbox: outbox.NewService(outbox.NewRepository(client.DB()), nil),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedBrandAndPage(t *testing.T, client *db.Client) (*models.Brand, *models.LandingPage) {
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
	page := &models.LandingPage{
		ID:      uuid.New(),
		BrandID: brand.ID,
		Name:    "Our Story",
		Slug:    "our-story-" + uuid.NewString()[:8],
		Status:  enums.PageStatusPublished,
	}
	if err := client.DB().Create(page).Error; err != nil {
		t.Fatalf("seed page: %v", err)
	}
	return brand, page
}

func createTestCode(t *testing.T, svc Service, brandID, pageID uuid.UUID) *QRCodeDTO {
	t.Helper()
	code, err := svc.Create(context.Background(), CreateQRCodeDTO{
		LandingPageID: pageID,
		BrandID:       brandID,
		Name:          "Shelf sticker",
		Data:          "https://brandhub.example/p/our-story",
		VisualSettings: types.Settings{
			"foreground": "#1a1a1a",
		},
	})
	if err != nil {
		t.Fatalf("create qr code: %v", err)
	}
	return code
}

func TestCreateQRCode(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand, page := seedBrandAndPage(t, client)

	code := createTestCode(t, svc, brand.ID, page.ID)
	if code.ScanCount != 0 {
		t.Fatalf("scan count should start at 0, got %d", code.ScanCount)
	}
	if code.LandingPageID != page.ID || code.BrandID != brand.ID {
		t.Fatal("references not persisted")
	}
}

func TestCreateQRCodeMissingPage(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand, _ := seedBrandAndPage(t, client)

	_, err := svc.Create(context.Background(), CreateQRCodeDTO{
		LandingPageID: uuid.New(),
		BrandID:       brand.ID,
		Name:          "Orphan",
		Data:          "https://brandhub.example/p/none",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential error, got %v", err)
	}
}

func TestCreateQRCodeForeignPage(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	_, page := seedBrandAndPage(t, client)
	other, _ := seedBrandAndPage(t, client)

	_, err := svc.Create(context.Background(), CreateQRCodeDTO{
		LandingPageID: page.ID,
		BrandID:       other.ID,
		Name:          "Hijack",
		Data:          "https://brandhub.example/p/our-story",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecordScan(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand, page := seedBrandAndPage(t, client)
	code := createTestCode(t, svc, brand.ID, page.ID)

	ip := "203.0.113.9"
	ua := "Mozilla/5.0"
	const scans = 7
	for i := 0; i < scans; i++ {
		result, err := svc.RecordScan(context.Background(), code.ID, ScanDTO{IP: &ip, UserAgent: &ua})
		if err != nil {
			t.Fatalf("RecordScan: %v", err)
		}
		if result.Data != code.Data {
			t.Fatalf("unexpected redirect target %q", result.Data)
		}
	}

	fresh, err := svc.Get(context.Background(), code.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh.ScanCount != scans {
		t.Fatalf("scan count = %d, want %d", fresh.ScanCount, scans)
	}

	var logCount int64
	if err := client.DB().Model(&models.ScanLog{}).Where("qr_code_id = ?", code.ID).Count(&logCount).Error; err != nil {
		t.Fatalf("count scan logs: %v", err)
	}
	if logCount != scans {
		t.Fatalf("scan count and log rows diverged: count %d, logs %d", fresh.ScanCount, logCount)
	}

	var events int64
	if err := client.DB().Model(&models.OutboxEvent{}).
		Where("event_type = ?", enums.EventScanRecorded).
		Count(&events).Error; err != nil {
		t.Fatalf("count outbox: %v", err)
	}
	if events != scans {
		t.Fatalf("expected %d scan events, got %d", scans, events)
	}
}

func TestRecordScanConcurrent(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand, page := seedBrandAndPage(t, client)
	code := createTestCode(t, svc, brand.ID, page.ID)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordScan(context.Background(), code.ID, ScanDTO{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("RecordScan: %v", err)
		}
	}

	fresh, err := svc.Get(context.Background(), code.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh.ScanCount != n {
		t.Fatalf("scan count = %d, want %d", fresh.ScanCount, n)
	}

	var logCount int64
	if err := client.DB().Model(&models.ScanLog{}).Where("qr_code_id = ?", code.ID).Count(&logCount).Error; err != nil {
		t.Fatalf("count scan logs: %v", err)
	}
	if logCount != n {
		t.Fatalf("scan count and log rows diverged: count %d, logs %d", fresh.ScanCount, logCount)
	}
}

func TestRecordScanUnknownCode(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)

	_, err := svc.RecordScan(context.Background(), uuid.New(), ScanDTO{})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListScansPagination(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand, page := seedBrandAndPage(t, client)
	code := createTestCode(t, svc, brand.ID, page.ID)

	for i := 0; i < 5; i++ {
		if _, err := svc.RecordScan(context.Background(), code.ID, ScanDTO{}); err != nil {
			t.Fatalf("RecordScan: %v", err)
		}
	}

	first, err := svc.ListScans(context.Background(), code.ID, pagination.Params{Limit: 3})
	if err != nil {
		t.Fatalf("ListScans: %v", err)
	}
	if len(first.Items) != 3 || first.NextCursor == nil {
		t.Fatalf("first page: %d items, cursor %v", len(first.Items), first.NextCursor)
	}

	second, err := svc.ListScans(context.Background(), code.ID, pagination.Params{Limit: 3, Cursor: *first.NextCursor})
	if err != nil {
		t.Fatalf("ListScans page 2: %v", err)
	}
	if len(second.Items) != 2 || second.NextCursor != nil {
		t.Fatalf("second page: %d items, cursor %v", len(second.Items), second.NextCursor)
	}

	seen := map[uuid.UUID]struct{}{}
	for _, item := range append(first.Items, second.Items...) {
		if _, dup := seen[item.ID]; dup {
			t.Fatalf("scan %s returned twice", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
}

func TestDeleteQRCodeCascadesScanLogs(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand, page := seedBrandAndPage(t, client)
	code := createTestCode(t, svc, brand.ID, page.ID)

	if _, err := svc.RecordScan(context.Background(), code.ID, ScanDTO{}); err != nil {
		t.Fatalf("RecordScan: %v", err)
	}
	if err := svc.Delete(context.Background(), code.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var logs int64
	if err := client.DB().Model(&models.ScanLog{}).Where("qr_code_id = ?", code.ID).Count(&logs).Error; err != nil {
		t.Fatalf("count scan logs: %v", err)
	}
	if logs != 0 {
		t.Fatalf("expected scan logs to cascade, %d left", logs)
	}
}
