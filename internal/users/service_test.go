package users

import (
	"context"
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

func seedAccount(t *testing.T, client *db.Client) *models.User {
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
	return user
}

func TestUpdateUser(t *testing.T) {
	client := newTestClient(t)
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	user := seedAccount(t, client)

	name := "Maren"
	updated, err := svc.Update(context.Background(), user.ID, UpdateUserDTO{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name == nil || *updated.Name != name {
		t.Fatalf("name not applied: %+v", updated.Name)
	}
	if updated.Email != user.Email {
		t.Fatal("untouched fields must survive a partial update")
	}
}

func TestGetUnknownUser(t *testing.T) {
	client := newTestClient(t)
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	client := newTestClient(t)
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	user := seedAccount(t, client)
	visitor := seedAccount(t, client)

	profile := &models.CustomerProfile{ID: uuid.New(), UserID: user.ID}
	brand := &models.Brand{
		ID:          uuid.New(),
		UserID:      user.ID,
		Name:        "Golden Fields",
		LogoURL:     "https://cdn.example.com/logo.png",
		Description: "Family-run organic farm",
		Email:       "hello@goldenfields.example",
		IsActive:    true,
	}
	page := &models.LandingPage{
		ID:      uuid.New(),
		BrandID: brand.ID,
		Name:    "Our Story",
		Slug:    "our-story",
		Status:  enums.PageStatusPublished,
	}
	code := &models.QRCode{
		ID:            uuid.New(),
		LandingPageID: page.ID,
		BrandID:       brand.ID,
		Name:          "Shelf sticker",
		Data:          "https://brandhub.example/p/our-story",
	}
	scan := &models.ScanLog{ID: uuid.New(), QRCodeID: code.ID, UserID: &visitor.ID}
	for _, row := range []any{profile, brand, page, code, scan} {
		if err := client.DB().Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	counts := map[string]any{
		"customer profile": &models.CustomerProfile{},
		"brand":            &models.Brand{},
		"landing page":     &models.LandingPage{},
		"qr code":          &models.QRCode{},
	}
	for name, model := range counts {
		var n int64
		if err := client.DB().Model(model).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != 0 {
			t.Fatalf("%s rows survived the cascade: %d", name, n)
		}
	}

	// Deleting the scanning visitor keeps the scan history but clears the
	// user reference.
	var before int64
	if err := client.DB().Model(&models.ScanLog{}).Count(&before).Error; err != nil {
		t.Fatalf("count scan logs: %v", err)
	}
	if before != 0 {
		t.Fatalf("scan logs should cascade with their qr code, %d left", before)
	}
}

func TestDeleteVisitorKeepsScanHistory(t *testing.T) {
	client := newTestClient(t)
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	owner := seedAccount(t, client)
	visitor := seedAccount(t, client)

	brand := &models.Brand{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Name:        "Golden Fields",
		LogoURL:     "https://cdn.example.com/logo.png",
		Description: "Family-run organic farm",
		Email:       "hello@goldenfields.example",
		IsActive:    true,
	}
	page := &models.LandingPage{
		ID:      uuid.New(),
		BrandID: brand.ID,
		Name:    "Our Story",
		Slug:    "our-story",
		Status:  enums.PageStatusPublished,
	}
	code := &models.QRCode{
		ID:            uuid.New(),
		LandingPageID: page.ID,
		BrandID:       brand.ID,
		Name:          "Shelf sticker",
		Data:          "https://brandhub.example/p/our-story",
	}
	scan := &models.ScanLog{ID: uuid.New(), QRCodeID: code.ID, UserID: &visitor.ID}
	for _, row := range []any{brand, page, code, scan} {
		if err := client.DB().Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}

	if err := svc.Delete(context.Background(), visitor.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var kept models.ScanLog
	if err := client.DB().First(&kept, "id = ?", scan.ID).Error; err != nil {
		t.Fatalf("load scan log: %v", err)
	}
	if kept.UserID != nil {
		t.Fatal("scan log user reference should be cleared, not deleted")
	}
}
