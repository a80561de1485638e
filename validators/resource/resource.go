package resourceValidator

import (
	"strconv"
	"strings"
	"time"

	"olc/middleware"

	"github.com/gofiber/fiber/v2"
)

// ModuleInput is one module entry in a create/update payload
type ModuleInput struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Task    string `json:"task"`
}

// CreateResourceRequest is the validated payload for POST /resource
type CreateResourceRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	Modules     []ModuleInput `json:"modules"`
	Status      *bool         `json:"status"`
	DueDate     *time.Time    `json:"dueDate"`
}

// UpdateResourceRequest is the validated payload for PUT /resource/:id.
// Every field is optional; only supplied fields are applied.
type UpdateResourceRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Content     *string        `json:"content"`
	Modules     *[]ModuleInput `json:"modules"`
	Status      *bool          `json:"status"`
	DueDate     *time.Time     `json:"dueDate"`
}

func validateModules(modules []ModuleInput, errors map[string]string) {
	for _, module := range modules {
		if len(strings.TrimSpace(module.Title)) < 3 {
			errors["modules"] = "Every module needs a title of at least 3 characters!"
			break
		}
	}
}

// ResourceID validates the :id route parameter
func ResourceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Resource ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Resource ID!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}

// CreateResource validator middleware
func CreateResource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateResourceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		title := strings.TrimSpace(reqData.Title)
		if title == "" {
			errors["title"] = "Title is required!"
		} else if len(title) < 3 || len(title) > 120 {
			errors["title"] = "Title must be between 3 and 120 characters!"
		}

		// Validate Description
		description := strings.TrimSpace(reqData.Description)
		if description == "" {
			errors["description"] = "Description is required!"
		} else if len(description) < 10 || len(description) > 1000 {
			errors["description"] = "Description must be between 10 and 1000 characters!"
		}

		validateModules(reqData.Modules, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedResource", reqData)
		return c.Next()
	}
}

// UpdateResource validator middleware
func UpdateResource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateResourceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil {
			title := strings.TrimSpace(*reqData.Title)
			if len(title) < 3 || len(title) > 120 {
				errors["title"] = "Title must be between 3 and 120 characters!"
			}
		}

		if reqData.Description != nil {
			description := strings.TrimSpace(*reqData.Description)
			if len(description) < 10 || len(description) > 1000 {
				errors["description"] = "Description must be between 10 and 1000 characters!"
			}
		}

		if reqData.Modules != nil {
			validateModules(*reqData.Modules, errors)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedResourceUpdate", reqData)
		return c.Next()
	}
}
