package middleware

import (
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// Role predicates. Pure functions over the resolved identity; an anonymous
// identity is false for every predicate.

// IsAdmin is true iff the request is authenticated with the admin role
func IsAdmin(auth AuthContext) bool {
	return auth.Authenticated() && auth.Role == models.RoleAdmin
}

// IsInstructorOrAdmin is true iff the request is authenticated with the
// instructor or admin role
func IsInstructorOrAdmin(auth AuthContext) bool {
	if !auth.Authenticated() {
		return false
	}
	return auth.Role == models.RoleInstructor || auth.Role == models.RoleAdmin
}

// RequireAdmin guards admin-only routes. 401 when anonymous, 403 when
// authenticated but not admin.
func RequireAdmin(c *fiber.Ctx) error {
	auth := GetAuth(c)
	if !auth.Authenticated() {
		return DetailResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}
	if !IsAdmin(auth) {
		return DetailResponse(c, fiber.StatusForbidden, "Admin access required")
	}
	return c.Next()
}

// RequireInstructorOrAdmin guards course mutation routes
func RequireInstructorOrAdmin(c *fiber.Ctx) error {
	auth := GetAuth(c)
	if !auth.Authenticated() {
		return DetailResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}
	if !IsInstructorOrAdmin(auth) {
		return DetailResponse(c, fiber.StatusForbidden, "Instructor or admin access required")
	}
	return c.Next()
}
