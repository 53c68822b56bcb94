package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/maresdigital/brandhub-backend/api/responses"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthRateLimitPolicy caps login and register attempts per client IP and
// per submitted email inside a fixed window.
type AuthRateLimitPolicy struct {
	scope      string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

// NewAuthRateLimitPolicy builds a policy for one auth surface. A zero
// window or zero limits disable the corresponding check.
func NewAuthRateLimitPolicy(scope string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		scope:      strings.ToLower(strings.TrimSpace(scope)),
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) active() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

func (p AuthRateLimitPolicy) label() string {
	if p.scope == "" {
		return "auth"
	}
	return p.scope
}

func (p AuthRateLimitPolicy) key(kind, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("rl:%s:%s:%s", kind, p.label(), value)
}

// AuthRateLimit throttles an auth endpoint using fixed-window counters in
// the shared store. The IP counter runs first so flooding clients are cut
// off before the body is read.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.active() || store == nil {
			return next
		}
		lim := limiter{policy: policy, store: store, logg: logg}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if done := lim.checkIP(ctx, w, ip); done {
				return
			}

			if policy.emailLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
				if done := lim.checkEmail(ctx, w, body); done {
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

type limiter struct {
	policy AuthRateLimitPolicy
	store  rateLimiterStore
	logg   *logger.Logger
}

// checkIP returns true when the request was answered and must not proceed.
func (l limiter) checkIP(ctx context.Context, w http.ResponseWriter, ip string) bool {
	if l.policy.ipLimit <= 0 {
		return false
	}
	key := l.policy.key("ip", ip)
	if key == "" {
		return false
	}
	count, err := l.store.IncrWithTTL(ctx, key, l.policy.window)
	if err != nil {
		responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return true
	}
	if count > int64(l.policy.ipLimit) {
		l.block(ctx, w, map[string]any{"scope": "ip", "ip": ip, "attempts": count, "limit": l.policy.ipLimit})
		return true
	}
	return false
}

// checkEmail counts attempts for the email carried in the request body.
// Only a hash of the address ever reaches the store or the logs.
func (l limiter) checkEmail(ctx context.Context, w http.ResponseWriter, body []byte) bool {
	email := normalizeEmail(extractEmail(body))
	if email == "" {
		return false
	}
	hash := hashValue(email)
	key := l.policy.key("email", hash)
	count, err := l.store.IncrWithTTL(ctx, key, l.policy.window)
	if err != nil {
		responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return true
	}
	if count > int64(l.policy.emailLimit) {
		l.block(ctx, w, map[string]any{"scope": "email", "email_hash": hash, "attempts": count, "limit": l.policy.emailLimit})
		return true
	}
	return false
}

func (l limiter) block(ctx context.Context, w http.ResponseWriter, fields map[string]any) {
	if l.logg != nil {
		fields["policy"] = l.policy.label()
		fields["window_seconds"] = int(l.policy.window.Seconds())
		l.logg.Warn(l.logg.WithFields(ctx, fields), "auth.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Email
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
