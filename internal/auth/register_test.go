package auth

import (
	"context"
	"testing"

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

func newRegisterService(t *testing.T, client *db.Client) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             client,
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("NewRegisterService: %v", err)
	}
	return svc
}

func TestRegisterCreatesCustomerByDefault(t *testing.T) {
	client := newTestClient(t)
	svc := newRegisterService(t, client)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Casey@Example.com",
		Password: "sup3r-secret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "casey@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	client := newTestClient(t)
	svc := newRegisterService(t, client)

	req := RegisterRequest{Email: "dana@example.com", Password: "sup3r-secret"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func TestRegisterInvalidRoleRejected(t *testing.T) {
	client := newTestClient(t)
	svc := newRegisterService(t, client)

	role := "superuser"
	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "eli@example.com",
		Password: "sup3r-secret",
		Role:     &role,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
