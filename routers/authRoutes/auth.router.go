package authRoutes

import (
	authControllers "lms/controllers/auth"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires registration, the cookie token endpoints and logout
func SetupAuthRoutes(app *fiber.App) {
	app.Post("/accounts/register", authValidators.Register(), authControllers.Register)

	app.Post("/token", authValidators.Login(), authControllers.Login)
	app.Post("/token/refresh", authControllers.Refresh)
	app.Post("/logout", authControllers.Logout)
}
