package userController

import (
	"log"
	"strings"

	"olc/config"
	"olc/database"
	"olc/middleware"
	"olc/models"
	"olc/utils"
	userValidator "olc/validators/user"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile returns the caller's user record, password excluded
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// UpdateProfile applies the supplied profile fields to the caller's user
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*userValidator.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Username != nil {
		user.Username = strings.TrimSpace(*reqData.Username)
	}

	if reqData.Email != nil {
		email := strings.ToLower(*reqData.Email)
		var existing models.User
		if err := database.Database.Db.Where("email = ? AND id <> ?", email, userID).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already in use!", nil)
		}
		user.Email = email
	}

	if reqData.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*reqData.Password), config.AppConfig.SaltRound)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}
		user.Password = string(hashedPassword)
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	utils.SendProfileUpdatedEmail(user.Email, user.Username)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}
