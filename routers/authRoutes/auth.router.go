package authRoutes

import (
	authController "olc/controllers/auth"
	authValidator "olc/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Post("/register", authValidator.Register(), authController.Register)
	app.Post("/login", authValidator.Login(), authController.Login)
}
