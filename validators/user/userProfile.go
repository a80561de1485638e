package userValidator

import (
	"regexp"
	"strings"

	"olc/middleware"

	"github.com/gofiber/fiber/v2"
)

func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// UpdateProfileRequest is the validated payload for PUT /users/profile.
// Every field is optional; only supplied fields are applied.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateProfile validator middleware
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Username != nil {
			username := strings.TrimSpace(*reqData.Username)
			if len(username) < 3 || len(username) > 50 {
				errors["username"] = "Username must be between 3 and 50 characters!"
			}
		}

		if reqData.Email != nil && !isValidEmail(*reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if reqData.Password != nil {
			if len(*reqData.Password) < 6 || len(*reqData.Password) > 128 {
				errors["password"] = "Password must be between 6 and 128 characters!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
