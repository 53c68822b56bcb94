package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/internal/qrcodes"
	pkgauth "github.com/maresdigital/brandhub-backend/pkg/auth"
	"github.com/maresdigital/brandhub-backend/pkg/auth/session"
	"github.com/maresdigital/brandhub-backend/pkg/config"
	"github.com/maresdigital/brandhub-backend/pkg/db"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	"github.com/maresdigital/brandhub-backend/pkg/outbox"
)

type stubSessions struct{ ok bool }

func (s stubSessions) HasSession(context.Context, string) (bool, error) {
	return s.ok, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "brandhub-test",
			ExpirationMinutes: 15,
		},
	}
}

func newScanRouter(t *testing.T, sessions session.AccessSessionChecker) (http.Handler, *db.Client, *qrcodes.QRCodeDTO) {
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

	owner := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         enums.UserRoleBrand,
	}
	if err := client.DB().Create(owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	brand := &models.Brand{
		ID:          uuid.New(),
		UserID:      owner.ID,
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

	qrService, err := qrcodes.NewService(qrcodes.ServiceParams{
		Repo:   qrcodes.NewRepository(client.DB()),
		DB:     client,
		Outbox: outbox.NewService(outbox.NewRepository(client.DB()), nil),
	})
	if err != nil {
		t.Fatalf("qr service: %v", err)
	}
	code, err := qrService.Create(context.Background(), qrcodes.CreateQRCodeDTO{
		LandingPageID: page.ID,
		BrandID:       brand.ID,
		Name:          "Shelf sticker",
		Data:          "https://brandhub.example/p/our-story",
	})
	if err != nil {
		t.Fatalf("create qr code: %v", err)
	}

	router := NewRouter(Deps{
		Cfg:       testConfig(),
		Sessions:  sessions,
		QRService: qrService,
	})
	return router, client, code
}

func scannerToken(t *testing.T, cfg *config.Config, userID uuid.UUID) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   enums.UserRoleCustomer,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicScanAttachesAuthenticatedUser(t *testing.T) {
	router, client, code := newScanRouter(t, stubSessions{ok: true})

	scanner := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         enums.UserRoleCustomer,
	}
	if err := client.DB().Create(scanner).Error; err != nil {
		t.Fatalf("seed scanner: %v", err)
	}
	token := scannerToken(t, testConfig(), scanner.ID)

	req := httptest.NewRequest(http.MethodPost, "/api/public/scan/"+code.ID.String(), strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 but got %d: %s", w.Code, w.Body.String())
	}

	var log models.ScanLog
	if err := client.DB().Where("qr_code_id = ?", code.ID).First(&log).Error; err != nil {
		t.Fatalf("load scan log: %v", err)
	}
	if log.UserID == nil {
		t.Fatal("scan log should carry the authenticated user id")
	}
	if *log.UserID != scanner.ID {
		t.Fatalf("scan log user = %s, want %s", log.UserID, scanner.ID)
	}
}

func TestPublicScanStaysAnonymousWithoutToken(t *testing.T) {
	router, client, code := newScanRouter(t, stubSessions{ok: true})

	req := httptest.NewRequest(http.MethodPost, "/api/public/scan/"+code.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 but got %d: %s", w.Code, w.Body.String())
	}

	var log models.ScanLog
	if err := client.DB().Where("qr_code_id = ?", code.ID).First(&log).Error; err != nil {
		t.Fatalf("load scan log: %v", err)
	}
	if log.UserID != nil {
		t.Fatalf("anonymous scan should carry no user id, got %s", log.UserID)
	}
}

func TestPublicScanIgnoresRevokedSession(t *testing.T) {
	router, client, code := newScanRouter(t, stubSessions{ok: false})

	token := scannerToken(t, testConfig(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/public/scan/"+code.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("revoked session should still scan anonymously, got %d: %s", w.Code, w.Body.String())
	}

	var log models.ScanLog
	if err := client.DB().Where("qr_code_id = ?", code.ID).First(&log).Error; err != nil {
		t.Fatalf("load scan log: %v", err)
	}
	if log.UserID != nil {
		t.Fatalf("revoked session should carry no user id, got %s", log.UserID)
	}
}
