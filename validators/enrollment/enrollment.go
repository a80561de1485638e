package enrollmentValidator

import (
	"strconv"
	"strings"

	"olc/middleware"

	"github.com/gofiber/fiber/v2"
)

// ModuleProgressRequest is the validated payload for
// PUT /my-courses/:courseId/modules
type ModuleProgressRequest struct {
	ModuleIndex *int  `json:"moduleIndex"`
	Completed   *bool `json:"completed"`
}

func parseCourseID(c *fiber.Ctx) (int, bool) {
	courseIDStr := strings.TrimSpace(c.Params("courseId"))
	if courseIDStr == "" {
		return 0, false
	}

	courseID, err := strconv.Atoi(courseIDStr)
	if err != nil || courseID <= 0 {
		return 0, false
	}
	return courseID, true
}

// EnrollCourse validates the :courseId route parameter
func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// ModuleProgress validates the :courseId parameter and the toggle body
func ModuleProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(ModuleProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// The index itself is range-checked against the course's module list
		// in the controller; only presence and sign are checked here.
		if reqData.ModuleIndex == nil {
			errors["moduleIndex"] = "moduleIndex is required!"
		} else if *reqData.ModuleIndex < 0 {
			errors["moduleIndex"] = "moduleIndex must not be negative!"
		}

		if reqData.Completed == nil {
			errors["completed"] = "completed is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
