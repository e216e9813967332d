package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/techstud-dev/schedule-university/internal/auth/ratelimit"
	"github.com/techstud-dev/schedule-university/internal/auth/service"
	autherror "github.com/techstud-dev/schedule-university/internal/errors"
	"github.com/techstud-dev/schedule-university/pkg/constant"
)

const requestIDKey = "request_id"

// TokenVerifier resolves the authenticated subject for identity-scoped rate limits.
type TokenVerifier interface {
	Verify(tokenString string) (*service.Claims, error)
}

// KeyType selects how the rate-limit key is resolved for a route.
type KeyType int

const (
	KeyTypeIP KeyType = iota
	KeyTypeUserID
)

// RequestID attaches a unique id to every request for log correlation.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(requestIDKey, uuid.NewString())
		return c.Next()
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RateLimit guards a route with the shared limiter. Exhausted quota answers 429 with a
// Retry-After hint.
func RateLimit(limiter *ratelimit.Limiter, verifier TokenVerifier, keyType KeyType,
	limit, intervalSeconds int) fiber.Handler {
	interval := time.Duration(intervalSeconds) * time.Second

	return func(c *fiber.Ctx) error {
		key := resolveKey(c, verifier, keyType)

		if err := limiter.Admit(key, limit, interval); err != nil {
			var rateErr *autherror.RateLimitError
			if errors.As(err, &rateErr) {
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(rateErr.RetryAfter.Seconds())+1))
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded"})
		}

		return c.Next()
	}
}

func resolveKey(c *fiber.Ctx, verifier TokenVerifier, keyType KeyType) string {
	if keyType == KeyTypeUserID {
		if claims, err := verifier.Verify(c.Get(fiber.HeaderAuthorization)); err == nil && claims.Subject != "" {
			return claims.Subject
		}
		return constant.AnonymousRateKey
	}

	return c.IP()
}
