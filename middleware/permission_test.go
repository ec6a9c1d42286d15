package middleware

import (
	"net/http/httptest"
	"testing"

	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolePredicates(t *testing.T) {
	anon := AuthContext{Source: SourceAnonymous}
	student := AuthContext{Source: SourceHeader, UserID: 1, Role: models.RoleStudent}
	instructor := AuthContext{Source: SourceCookie, UserID: 2, Role: models.RoleInstructor}
	admin := AuthContext{Source: SourceHeader, UserID: 3, Role: models.RoleAdmin}

	assert.False(t, IsAdmin(anon))
	assert.False(t, IsAdmin(student))
	assert.False(t, IsAdmin(instructor))
	assert.True(t, IsAdmin(admin))

	assert.False(t, IsInstructorOrAdmin(anon))
	assert.False(t, IsInstructorOrAdmin(student))
	assert.True(t, IsInstructorOrAdmin(instructor))
	assert.True(t, IsInstructorOrAdmin(admin))

	// A forged anonymous context with a role string still fails every predicate
	forged := AuthContext{Source: SourceAnonymous, Role: models.RoleAdmin}
	assert.False(t, IsAdmin(forged))
	assert.False(t, IsInstructorOrAdmin(forged))
}

func guardApp(guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", ResolveAuth, guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func guardStatus(t *testing.T, app *fiber.App, role string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/guarded", nil)
	if role != "" {
		access, _, err := GenerateTokenPair(9, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+access)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireAdmin(t *testing.T) {
	app := guardApp(RequireAdmin)

	assert.Equal(t, fiber.StatusUnauthorized, guardStatus(t, app, ""))
	assert.Equal(t, fiber.StatusForbidden, guardStatus(t, app, models.RoleStudent))
	assert.Equal(t, fiber.StatusForbidden, guardStatus(t, app, models.RoleInstructor))
	assert.Equal(t, fiber.StatusOK, guardStatus(t, app, models.RoleAdmin))
}

func TestRequireInstructorOrAdmin(t *testing.T) {
	app := guardApp(RequireInstructorOrAdmin)

	assert.Equal(t, fiber.StatusUnauthorized, guardStatus(t, app, ""))
	assert.Equal(t, fiber.StatusForbidden, guardStatus(t, app, models.RoleStudent))
	assert.Equal(t, fiber.StatusOK, guardStatus(t, app, models.RoleInstructor))
	assert.Equal(t, fiber.StatusOK, guardStatus(t, app, models.RoleAdmin))
}
