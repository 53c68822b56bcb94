package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

type fakeRateStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{counts: make(map[string]int64)}
}

func (s *fakeRateStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	return s.counts[key], nil
}

func rateLimitedHandler(t *testing.T, policy AuthRateLimitPolicy, store *fakeRateStore) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("handler failed to read body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})
	return AuthRateLimit(policy, store, nil)(next)
}

func postLogin(handler http.Handler, ip, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.RemoteAddr = ip + ":51234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAuthRateLimitAllowsUnderLimit(t *testing.T) {
	store := newFakeRateStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 5, 5)
	handler := rateLimitedHandler(t, policy, store)

	body := `{"email":"user@example.com","password":"secret"}`
	w := postLogin(handler, "10.0.0.1", body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", w.Code)
	}
	if got := w.Body.String(); got != body {
		t.Fatalf("body was not passed through intact: %q", got)
	}
}

func TestAuthRateLimitEmailLimitTriggers(t *testing.T) {
	store := newFakeRateStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 100, 2)
	handler := rateLimitedHandler(t, policy, store)

	body := `{"email":"Target@Example.com","password":"secret"}`
	for i := 0; i < 2; i++ {
		if w := postLogin(handler, "10.0.0.1", body); w.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected status 200 but got %d", i+1, w.Code)
		}
	}

	// Different IP, same email: the counter follows the address.
	w := postLogin(handler, "10.0.0.2", `{"email":"target@example.com","password":"other"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 but got %d", w.Code)
	}

	var payload types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeRateLimit) {
		t.Fatalf("unexpected error code %s", payload.Error.Code)
	}
}

func TestAuthRateLimitIPLimitTriggers(t *testing.T) {
	store := newFakeRateStore()
	policy := NewAuthRateLimitPolicy("register", time.Minute, 2, 100)
	handler := rateLimitedHandler(t, policy, store)

	for i := 0; i < 2; i++ {
		body := `{"email":"u` + string(rune('a'+i)) + `@example.com","password":"secret"}`
		if w := postLogin(handler, "10.0.0.9", body); w.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected status 200 but got %d", i+1, w.Code)
		}
	}

	w := postLogin(handler, "10.0.0.9", `{"email":"uc@example.com","password":"secret"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 but got %d", w.Code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	store := newFakeRateStore()
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := rateLimitedHandler(t, policy, store)

	w := postLogin(handler, "10.0.0.1", `{"email":"user@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", w.Code)
	}
	if len(store.counts) != 0 {
		t.Fatalf("store should be untouched when the policy is disabled, got %v", store.counts)
	}
}
