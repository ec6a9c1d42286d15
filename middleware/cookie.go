package middleware

import (
	"time"

	"lms/config"

	"github.com/gofiber/fiber/v2"
)

// tokenCookie builds a cookie with the configured attributes. HttpOnly is
// always on. Deletion must reuse the exact same Path/Domain, otherwise the
// browser keeps the old cookie around.
func tokenCookie(name, value string, maxAge int) *fiber.Cookie {
	cfg := config.AppConfig
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   maxAge,
		Expires:  time.Now().Add(time.Duration(maxAge) * time.Second),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: cfg.CookieSameSite,
		Domain:   cfg.CookieDomain,
		Path:     cfg.CookiePath,
	}
}

// AttachTokenCookies writes the access cookie and, when refresh is non-empty,
// the refresh cookie onto the outgoing response.
func AttachTokenCookies(c *fiber.Ctx, access, refresh string) {
	cfg := config.AppConfig
	c.Cookie(tokenCookie(cfg.AccessCookieName, access, cfg.AccessCookieAge))
	if refresh != "" {
		c.Cookie(tokenCookie(cfg.RefreshCookieName, refresh, cfg.RefreshCookieAge))
	}
}

// ExtractToken reads a token cookie from the request. Empty string means the
// cookie is absent. Pure read, no side effects.
func ExtractToken(c *fiber.Ctx, name string) string {
	return c.Cookies(name)
}

// ClearTokenCookies expires both token cookies with attributes matching the
// ones they were set with. Safe to call when no cookies exist.
func ClearTokenCookies(c *fiber.Ctx) {
	cfg := config.AppConfig
	for _, name := range []string{cfg.AccessCookieName, cfg.RefreshCookieName} {
		cookie := tokenCookie(name, "", -1)
		cookie.Expires = time.Now().Add(-time.Hour)
		c.Cookie(cookie)
	}
}
