package resourceRoutes

import (
	resourceController "olc/controllers/resource"
	"olc/middleware"
	"olc/models"
	resourceValidator "olc/validators/resource"

	"github.com/gofiber/fiber/v2"
)

// SetupResourceRoutes sets up the course catalog routes
func SetupResourceRoutes(app *fiber.App) {
	app.Get("/resource/public", resourceController.GetPublicCourses)

	app.Get("/resource", middleware.JWTMiddleware, resourceController.GetAllCourses)
	app.Get("/resource/:id", middleware.JWTMiddleware, resourceValidator.ResourceID(), resourceController.GetCourse)

	app.Post("/resource",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin, models.RoleModerator),
		resourceValidator.CreateResource(),
		resourceController.CreateCourse)

	app.Put("/resource/:id",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin, models.RoleModerator),
		resourceValidator.ResourceID(),
		resourceValidator.UpdateResource(),
		resourceController.UpdateCourse)

	app.Delete("/resource/:id",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin),
		resourceValidator.ResourceID(),
		resourceController.DeleteCourse)
}
