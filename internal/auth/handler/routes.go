package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/techstud-dev/schedule-university/config"
	"github.com/techstud-dev/schedule-university/internal/auth/ratelimit"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, limiter *ratelimit.Limiter,
	verifier TokenVerifier, cfg *config.Config) {
	auth := app.Group("/api/auth", RequestID())

	auth.Post("/login",
		RateLimit(limiter, verifier, KeyTypeUserID, cfg.LoginRateLimit, cfg.LoginRateIntervalSec),
		h.Login)
	auth.Post("/register",
		RateLimit(limiter, verifier, KeyTypeIP, cfg.RegisterRateLimit, cfg.RegisterRateIntervalSec),
		h.Register)
	auth.Post("/confirm",
		RateLimit(limiter, verifier, KeyTypeIP, cfg.RegisterRateLimit, cfg.RegisterRateIntervalSec),
		h.Confirm)
	auth.Post("/resend",
		RateLimit(limiter, verifier, KeyTypeIP, cfg.DefaultRateLimit, cfg.DefaultRateIntervalSec),
		h.Resend)
	auth.Post("/refresh-token",
		RateLimit(limiter, verifier, KeyTypeUserID, cfg.RefreshRateLimit, cfg.RefreshRateIntervalSec),
		h.Refresh)
	auth.Delete("/logout",
		RateLimit(limiter, verifier, KeyTypeIP, cfg.DefaultRateLimit, cfg.DefaultRateIntervalSec),
		h.Logout)
}
