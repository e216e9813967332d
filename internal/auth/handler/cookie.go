package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	h.setAccessCookie(c, accessToken)
	c.Cookie(httpOnlyCookie(refreshTokenCookie, refreshToken,
		time.Duration(h.cfg.RefreshExpiryMin)*time.Minute))
}

func (h *AuthHandler) setAccessCookie(c *fiber.Ctx, accessToken string) {
	c.Cookie(httpOnlyCookie(accessTokenCookie, accessToken,
		time.Duration(h.cfg.AccessExpiryMin)*time.Minute))
}

func httpOnlyCookie(name, value string, maxAge time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}
