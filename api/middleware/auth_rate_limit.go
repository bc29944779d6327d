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

	"github.com/campuskit/campus-backend/api/responses"
	pkgerrors "github.com/campuskit/campus-backend/pkg/errors"
	"github.com/campuskit/campus-backend/pkg/logger"
)

// RateLimiterStore is the counter backend, satisfied by the Redis client.
type RateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthRateLimitPolicy is the fixed-window throttle configuration for one
// auth surface (login or signup).
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

func (p AuthRateLimitPolicy) surface() string {
	if p.name == "" {
		return "auth"
	}
	return p.name
}

// limitCheck is one counter to consume: a scope (ip or email), the redis
// key, and the allowed attempts per window.
type limitCheck struct {
	scope string
	key   string
	label string
	limit int64
}

func (p AuthRateLimitPolicy) ipCheck(r *http.Request) (limitCheck, bool) {
	ip := clientIP(r)
	if p.ipLimit <= 0 || ip == "" {
		return limitCheck{}, false
	}
	return limitCheck{
		scope: "ip",
		key:   fmt.Sprintf("rl:ip:%s:%s", p.surface(), ip),
		label: ip,
		limit: int64(p.ipLimit),
	}, true
}

func (p AuthRateLimitPolicy) emailCheck(body []byte) (limitCheck, bool) {
	if p.emailLimit <= 0 {
		return limitCheck{}, false
	}
	// Login matches emails byte for byte, but the throttle key is
	// normalized so casing games cannot multiply the budget.
	email := strings.ToLower(strings.TrimSpace(extractEmail(body)))
	if email == "" {
		return limitCheck{}, false
	}
	sum := sha256.Sum256([]byte(email))
	hash := hex.EncodeToString(sum[:])
	return limitCheck{
		scope: "email",
		key:   fmt.Sprintf("rl:email:%s:%s", p.surface(), hash),
		label: hash,
		limit: int64(p.emailLimit),
	}, true
}

// AuthRateLimit enforces per-IP and per-email counters on auth endpoints.
// With a nil store the middleware is a pass-through, so the API keeps
// working when Redis is not configured.
func AuthRateLimit(policy AuthRateLimitPolicy, store RateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if check, ok := policy.ipCheck(r); ok {
				if done := runCheck(ctx, logg, w, store, policy, check); done {
					return
				}
			}

			if policy.emailLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if check, ok := policy.emailCheck(body); ok {
					if done := runCheck(ctx, logg, w, store, policy, check); done {
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// runCheck consumes one counter and writes the response when the request
// must not proceed. Returns true when a response was written.
func runCheck(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, store RateLimiterStore, policy AuthRateLimitPolicy, check limitCheck) bool {
	count, err := store.IncrWithTTL(ctx, check.key, policy.window)
	if err != nil {
		responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return true
	}
	if count <= check.limit {
		return false
	}

	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          check.scope,
			check.scope:      check.label,
			"policy":         policy.surface(),
			"attempts":       count,
			"limit":          check.limit,
			"window_seconds": int(policy.window.Seconds()),
		})
		logg.Warn(logCtx, "auth.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
	return true
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
