package enrollmentRoutes

import (
	enrollmentController "olc/controllers/enrollment"
	"olc/middleware"
	enrollmentValidator "olc/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up enrollment and progress routes
func SetupEnrollmentRoutes(app *fiber.App) {
	app.Post("/enroll/:courseId", middleware.JWTMiddleware, enrollmentValidator.EnrollCourse(), enrollmentController.EnrollInCourse)
	app.Get("/my-courses", middleware.JWTMiddleware, enrollmentController.MyCourses)
	app.Put("/my-courses/:courseId/modules", middleware.JWTMiddleware, enrollmentValidator.ModuleProgress(), enrollmentController.UpdateModuleProgress)
	app.Get("/my-certificates", middleware.JWTMiddleware, enrollmentController.MyCertificates)
}
