package userRoutes

import (
	userController "olc/controllers/user"
	"olc/middleware"
	userValidator "olc/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Get("/profile", middleware.JWTMiddleware, userController.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, userValidator.UpdateProfile(), userController.UpdateProfile)
}
