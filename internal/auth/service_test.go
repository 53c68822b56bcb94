package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/maresdigital/brandhub-backend/pkg/auth"
	"github.com/maresdigital/brandhub-backend/pkg/auth/session"
	"github.com/maresdigital/brandhub-backend/pkg/config"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/security"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "brandhub",
	ExpirationMinutes: 30,
}

type stubUserRepo struct {
	byEmail   map[string]*models.User
	lastLogin map[uuid.UUID]time.Time
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin[id] = at
	return nil
}

type stubSession struct {
	tokens   map[string]string
	rotateTo string
	revoked  []string
}

func (s *stubSession) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSession) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.tokens, oldAccessID)
	newID := s.rotateTo
	if newID == "" {
		newID = uuid.NewString()
	}
	token := "refresh-" + newID
	s.tokens[newID] = token
	return newID, token, nil
}

func (s *stubSession) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	delete(s.tokens, accessID)
	return nil
}

func newLoginService(t *testing.T, repo *stubUserRepo, sess *stubSession) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sess,
		JWTConfig:      testJWTConfig,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, email, password string, role enums.UserRole) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := seedUser(t, "pat@example.com", "sup3r-secret", enums.UserRoleBrand)
	repo := &stubUserRepo{
		byEmail:   map[string]*models.User{user.Email: user},
		lastLogin: map[uuid.UUID]time.Time{},
	}
	sess := &stubSession{tokens: map[string]string{}}
	svc := newLoginService(t, repo, sess)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Pat@Example.com",
		Password: "sup3r-secret",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatal("expected user in response")
	}
	if _, ok := repo.lastLogin[user.ID]; !ok {
		t.Fatal("expected last login recorded")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.UserRoleBrand {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := seedUser(t, "pat@example.com", "sup3r-secret", enums.UserRoleCustomer)
	repo := &stubUserRepo{
		byEmail:   map[string]*models.User{user.Email: user},
		lastLogin: map[uuid.UUID]time.Time{},
	}
	sess := &stubSession{tokens: map[string]string{}}
	svc := newLoginService(t, repo, sess)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "pat@example.com",
		Password: "wrong",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &stubUserRepo{byEmail: map[string]*models.User{}, lastLogin: map[uuid.UUID]time.Time{}}
	sess := &stubSession{tokens: map[string]string{}}
	svc := newLoginService(t, repo, sess)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	user := seedUser(t, "pat@example.com", "sup3r-secret", enums.UserRoleCustomer)
	repo := &stubUserRepo{
		byEmail:   map[string]*models.User{user.Email: user},
		lastLogin: map[uuid.UUID]time.Time{},
	}
	sess := &stubSession{tokens: map[string]string{}}
	svc := newLoginService(t, repo, sess)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "pat@example.com",
		Password: "sup3r-secret",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Fatal("expected rotated token pair")
	}
	if rotated.RefreshToken == login.RefreshToken {
		t.Fatal("expected refresh token to rotate")
	}

	// the old pair is no longer valid
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on replay, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sess := &stubSession{tokens: map[string]string{"jti-1": "refresh-jti-1"}}
	svc := newLoginService(t, &stubUserRepo{byEmail: map[string]*models.User{}, lastLogin: map[uuid.UUID]time.Time{}}, sess)

	if err := svc.Logout(context.Background(), "jti-1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sess.revoked) != 1 || sess.revoked[0] != "jti-1" {
		t.Fatalf("expected jti-1 revoked, got %v", sess.revoked)
	}
}
