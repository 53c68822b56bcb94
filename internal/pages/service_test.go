package pages

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/config"
	"github.com/maresdigital/brandhub-backend/pkg/db"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/outbox"
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

func seedBrand(t *testing.T, client *db.Client) *models.Brand {
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
	return brand
}

func createTestPage(t *testing.T, svc Service, brandID uuid.UUID, slug string) *PageDTO {
	t.Helper()
	page, err := svc.Create(context.Background(), CreatePageDTO{
		BrandID: brandID,
		Name:    "Our Story",
		Slug:    slug,
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	return page
}

func addTestBlock(t *testing.T, svc Service, pageID uuid.UUID, blockType string, position *int) *BlockDTO {
	t.Helper()
	block, err := svc.AddBlock(context.Background(), pageID, CreateBlockDTO{
		Type:     blockType,
		Position: position,
		Content:  json.RawMessage(`{"text":"hello"}`),
	})
	if err != nil {
		t.Fatalf("add block: %v", err)
	}
	return block
}

func assertContiguous(t *testing.T, blocks []BlockDTO) {
	t.Helper()
	for i, block := range blocks {
		if block.Position != i {
			t.Fatalf("position gap at index %d: got %d", i, block.Position)
		}
	}
}

func TestCreatePage(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)

	page := createTestPage(t, svc, brand.ID, "our-story")
	if page.Status != enums.PageStatusDraft {
		t.Fatalf("new pages should start as draft, got %s", page.Status)
	}
	if page.Slug != "our-story" {
		t.Fatalf("unexpected slug %q", page.Slug)
	}
}

func TestCreatePageSlugConflict(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)
	other := seedBrand(t, client)

	first := createTestPage(t, svc, brand.ID, "our-story")

	_, err := svc.Create(context.Background(), CreatePageDTO{
		BrandID: other.ID,
		Name:    "Their Story",
		Slug:    "our-story",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	kept, err := svc.Get(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if kept.BrandID != brand.ID || kept.Name != "Our Story" {
		t.Fatal("conflicting create must leave the existing page untouched")
	}
}

func TestCreatePageInvalidSlug(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)

	for _, slug := range []string{"", "Our Story", "our_story", "-leading", "trailing-"} {
		_, err := svc.Create(context.Background(), CreatePageDTO{
			BrandID: brand.ID,
			Name:    "Our Story",
			Slug:    slug,
		})
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("slug %q: expected validation error, got %v", slug, err)
		}
	}
}

func TestCreatePageMissingBrand(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)

	_, err := svc.Create(context.Background(), CreatePageDTO{
		BrandID: uuid.New(),
		Name:    "Orphan",
		Slug:    "orphan",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential error, got %v", err)
	}
}

func TestPublishEmitsEvent(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)
	page := createTestPage(t, svc, brand.ID, "our-story")

	updated, err := svc.UpdateStatus(context.Background(), page.ID, UpdateStatusDTO{Status: "published"}, nil)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != enums.PageStatusPublished {
		t.Fatalf("unexpected status %s", updated.Status)
	}

	var events []models.OutboxEvent
	if err := client.DB().Find(&events).Error; err != nil {
		t.Fatalf("load outbox: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 outbox event, got %d", len(events))
	}
	if events[0].EventType != enums.EventPagePublished {
		t.Fatalf("unexpected event type %s", events[0].EventType)
	}

	// Re-publishing an already published page is a no-op for the outbox.
	if _, err := svc.UpdateStatus(context.Background(), page.ID, UpdateStatusDTO{Status: "published"}, nil); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	var count int64
	if err := client.DB().Model(&models.OutboxEvent{}).Count(&count).Error; err != nil {
		t.Fatalf("count outbox: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected still 1 outbox event, got %d", count)
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)
	page := createTestPage(t, svc, brand.ID, "our-story")

	_, err := svc.UpdateStatus(context.Background(), page.ID, UpdateStatusDTO{Status: "live"}, nil)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddBlockAppendsAndInserts(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)
	page := createTestPage(t, svc, brand.ID, "our-story")

	hero := addTestBlock(t, svc, page.ID, "hero", nil)
	text := addTestBlock(t, svc, page.ID, "text", nil)
	if hero.Position != 0 || text.Position != 1 {
		t.Fatalf("append positions wrong: %d, %d", hero.Position, text.Position)
	}

	// Insert between the two; the text block shifts down.
	middle := 1
	gallery := addTestBlock(t, svc, page.ID, "gallery", &middle)
	if gallery.Position != 1 {
		t.Fatalf("inserted block position = %d, want 1", gallery.Position)
	}

	blocks, err := svc.ListBlocks(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("ListBlocks: %v", err)
	}
	assertContiguous(t, blocks)
	types := []string{blocks[0].Type, blocks[1].Type, blocks[2].Type}
	if types[0] != "hero" || types[1] != "gallery" || types[2] != "text" {
		t.Fatalf("unexpected order %v", types)
	}

	// A position past the end appends.
	far := 99
	footer := addTestBlock(t, svc, page.ID, "footer", &far)
	if footer.Position != 3 {
		t.Fatalf("out-of-range insert position = %d, want 3", footer.Position)
	}
}

func TestRemoveBlockClosesGap(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)
	page := createTestPage(t, svc, brand.ID, "our-story")

	addTestBlock(t, svc, page.ID, "hero", nil)
	middle := addTestBlock(t, svc, page.ID, "text", nil)
	addTestBlock(t, svc, page.ID, "footer", nil)

	if err := svc.RemoveBlock(context.Background(), middle.ID); err != nil {
		t.Fatalf("RemoveBlock: %v", err)
	}

	blocks, err := svc.ListBlocks(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("ListBlocks: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	assertContiguous(t, blocks)
	if blocks[0].Type != "hero" || blocks[1].Type != "footer" {
		t.Fatalf("unexpected order: %s, %s", blocks[0].Type, blocks[1].Type)
	}
}

func TestReorder(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)
	page := createTestPage(t, svc, brand.ID, "our-story")

	a := addTestBlock(t, svc, page.ID, "hero", nil)
	b := addTestBlock(t, svc, page.ID, "text", nil)
	c := addTestBlock(t, svc, page.ID, "footer", nil)

	blocks, err := svc.Reorder(context.Background(), page.ID, ReorderDTO{
		BlockIDs: []uuid.UUID{c.ID, a.ID, b.ID},
	})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	assertContiguous(t, blocks)
	if blocks[0].ID != c.ID || blocks[1].ID != a.ID || blocks[2].ID != b.ID {
		t.Fatal("reorder did not apply the requested order")
	}
}

func TestReorderRejectsBadSets(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)
	page := createTestPage(t, svc, brand.ID, "our-story")

	a := addTestBlock(t, svc, page.ID, "hero", nil)
	b := addTestBlock(t, svc, page.ID, "text", nil)

	cases := map[string][]uuid.UUID{
		"missing block":   {a.ID},
		"duplicate block": {a.ID, a.ID},
		"foreign block":   {a.ID, uuid.New()},
	}
	for name, ids := range cases {
		_, err := svc.Reorder(context.Background(), page.ID, ReorderDTO{BlockIDs: ids})
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}

	// A rejected reorder leaves the stored order alone.
	blocks, err := svc.ListBlocks(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("ListBlocks: %v", err)
	}
	if blocks[0].ID != a.ID || blocks[1].ID != b.ID {
		t.Fatal("rejected reorder must not touch positions")
	}
}

func TestDeletePageCascadesBlocks(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)
	page := createTestPage(t, svc, brand.ID, "our-story")
	addTestBlock(t, svc, page.ID, "hero", nil)
	addTestBlock(t, svc, page.ID, "text", nil)

	if err := svc.Delete(context.Background(), page.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.Block{}).Where("landing_page_id = ?", page.ID).Count(&count).Error; err != nil {
		t.Fatalf("count blocks: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected blocks to cascade, %d left", count)
	}
}

func TestGetBySlugReturnsOrderedBlocks(t *testing.T) {
	client := newTestClient(t)
	svc := newTestService(t, client)
	brand := seedBrand(t, client)
	page := createTestPage(t, svc, brand.ID, "our-story")
	addTestBlock(t, svc, page.ID, "hero", nil)
	addTestBlock(t, svc, page.ID, "text", nil)

	rendered, err := svc.GetBySlug(context.Background(), "Our-Story")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if rendered.ID != page.ID {
		t.Fatal("slug lookup returned the wrong page")
	}
	if len(rendered.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(rendered.Blocks))
	}
	assertContiguous(t, rendered.Blocks)
}
