package userRoutes

import (
	authControllers "lms/controllers/auth"
	courseControllers "lms/controllers/course"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes wires the authenticated profile endpoints
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users/me", middleware.ResolveAuth, middleware.RequireAuth)

	userGroup.Get("/", authControllers.Me)
	userGroup.Get("/logins", authValidators.LoginHistoryList(), authControllers.LoginHistoryList)
	userGroup.Get("/enrollments", courseControllers.GetUserEnrollments)
}
