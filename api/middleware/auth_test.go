package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/maresdigital/brandhub-backend/pkg/auth"
	"github.com/maresdigital/brandhub-backend/pkg/auth/session"
	"github.com/maresdigital/brandhub-backend/pkg/config"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(context.Context, string) (bool, error) {
	return s.ok, s.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "brandhub-test",
		ExpirationMinutes: 15,
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

func authHandler(cfg config.JWTConfig, verifier session.AccessSessionChecker, seen *struct{ userID, role string }) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			seen.userID = UserIDFromContext(r.Context())
			seen.role = RoleFromContext(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
	return Auth(cfg, verifier, nil)(next)
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	return payload.Error.Code
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := authHandler(testJWTConfig(), stubSessionVerifier{ok: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", w.Code)
	}
	if code := decodeErrorCode(t, w); code != string(pkgerrors.CodeUnauthorized) {
		t.Fatalf("unexpected error code %s", code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := authHandler(testJWTConfig(), stubSessionVerifier{ok: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", w.Code)
	}
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	cfg := testJWTConfig()
	otherCfg := cfg
	otherCfg.Secret = "different-secret"
	token := mintTestToken(t, otherCfg, uuid.New(), enums.UserRoleBrand)

	handler := authHandler(cfg, stubSessionVerifier{ok: true}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", w.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, uuid.New(), enums.UserRoleBrand)

	handler := authHandler(cfg, stubSessionVerifier{ok: false}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", w.Code)
	}
}

func TestAuthReportsSessionStoreOutage(t *testing.T) {
	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, uuid.New(), enums.UserRoleBrand)

	handler := authHandler(cfg, stubSessionVerifier{err: errors.New("redis down")}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if code := decodeErrorCode(t, w); code != string(pkgerrors.CodeDependency) {
		t.Fatalf("unexpected error code %s", code)
	}
}

func TestAuthAllowsValidToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token := mintTestToken(t, cfg, userID, enums.UserRoleBrand)

	var seen struct{ userID, role string }
	handler := authHandler(cfg, stubSessionVerifier{ok: true}, &seen)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", w.Code)
	}
	if seen.userID != userID.String() {
		t.Fatalf("expected user id %s in context but got %q", userID, seen.userID)
	}
	if seen.role != string(enums.UserRoleBrand) {
		t.Fatalf("expected role %s in context but got %q", enums.UserRoleBrand, seen.role)
	}
}

func optionalAuthHandler(cfg config.JWTConfig, verifier session.AccessSessionChecker, seen *struct{ userID, role string }) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			seen.userID = UserIDFromContext(r.Context())
			seen.role = RoleFromContext(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
	return OptionalAuth(cfg, verifier, nil)(next)
}

func TestOptionalAuthPassesAnonymously(t *testing.T) {
	var seen struct{ userID, role string }
	handler := optionalAuthHandler(testJWTConfig(), stubSessionVerifier{ok: true}, &seen)

	req := httptest.NewRequest(http.MethodPost, "/api/public/scan/abc", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", w.Code)
	}
	if seen.userID != "" {
		t.Fatalf("anonymous request should carry no user id, got %q", seen.userID)
	}
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	var seen struct{ userID, role string }
	handler := optionalAuthHandler(testJWTConfig(), stubSessionVerifier{ok: true}, &seen)

	req := httptest.NewRequest(http.MethodPost, "/api/public/scan/abc", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("invalid token should fall through, got status %d", w.Code)
	}
	if seen.userID != "" {
		t.Fatalf("invalid token should carry no user id, got %q", seen.userID)
	}
}

func TestOptionalAuthIgnoresRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, uuid.New(), enums.UserRoleCustomer)

	var seen struct{ userID, role string }
	handler := optionalAuthHandler(cfg, stubSessionVerifier{ok: false}, &seen)

	req := httptest.NewRequest(http.MethodPost, "/api/public/scan/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("revoked session should fall through, got status %d", w.Code)
	}
	if seen.userID != "" {
		t.Fatalf("revoked session should carry no user id, got %q", seen.userID)
	}
}

func TestOptionalAuthSeedsValidToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token := mintTestToken(t, cfg, userID, enums.UserRoleCustomer)

	var seen struct{ userID, role string }
	handler := optionalAuthHandler(cfg, stubSessionVerifier{ok: true}, &seen)

	req := httptest.NewRequest(http.MethodPost, "/api/public/scan/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", w.Code)
	}
	if seen.userID != userID.String() {
		t.Fatalf("expected user id %s in context but got %q", userID, seen.userID)
	}
	if seen.role != string(enums.UserRoleCustomer) {
		t.Fatalf("expected role %s in context but got %q", enums.UserRoleCustomer, seen.role)
	}
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole(string(enums.UserRoleAdmin), nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/profile", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleBrand)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 but got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/profile", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleAdmin)))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", w.Code)
	}
}
