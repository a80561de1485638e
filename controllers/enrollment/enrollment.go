package enrollmentController

import (
	"errors"
	"log"
	"time"

	"olc/database"
	"olc/middleware"
	"olc/models"
	"olc/utils"
	enrollmentValidator "olc/validators/enrollment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnrollInCourse creates an enrollment for the caller
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled!", nil)
	}

	enrollment := models.Enrollment{
		UserID:           userID,
		CourseID:         uint(courseID),
		Progress:         0,
		CompletedModules: datatypes.NewJSONSlice([]int{}),
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		// The unique (user, course) index backs up the read above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled!", nil)
		}
		log.Printf("Error creating enrollment for user %d course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}
	tx.Commit()

	utils.SendEnrollmentEmail(user.Email, user.Username, course.Title)
	utils.NotifyEvent("enrollment.created", map[string]interface{}{
		"userId":   userID,
		"courseId": course.ID,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// MyCourses lists the caller's enrollments joined with their courses,
// most recent first
func MyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("user_id = ?", userID).Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// UpdateModuleProgress toggles one module's completion state for the
// caller's enrollment and recomputes the derived progress. This is the only
// code path that mutates an enrollment's completed-set.
func UpdateModuleProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedProgress").(*enrollmentValidator.ModuleProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	moduleIndex := *reqData.ModuleIndex
	completed := *reqData.Completed

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	moduleCount := len(course.Modules)
	if moduleCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has no modules!", nil)
	}
	if moduleIndex < 0 || moduleIndex >= moduleCount {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module index!", nil)
	}

	// Serialize toggles per enrollment so concurrent requests cannot lose
	// each other's writes.
	lock := utils.LockEnrollment(userID, uint(courseID))
	defer lock.Unlock()

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	wasComplete := enrollment.Progress == 100

	completedModules := utils.ToggleModule(enrollment.CompletedModules, moduleIndex, completed)
	progress := utils.ProgressPercent(len(completedModules), moduleCount)

	enrollment.CompletedModules = datatypes.NewJSONSlice(completedModules)
	enrollment.Progress = progress

	tx := database.Database.Db.Begin()
	if err := tx.Save(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}
	tx.Commit()

	var certificate *models.Certificate
	if utils.IsCourseComplete(completedModules, moduleCount) && !wasComplete {
		certificate = issueCertificate(user, course)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"courseId":         course.ID,
		"completedModules": completedModules,
		"progress":         progress,
		"nextModule":       utils.NextUnlocked(completedModules, moduleCount),
		"certificate":      certificate,
	})
}

// issueCertificate records a completion certificate the first time an
// enrollment reaches full progress. Un-completing a module afterwards does
// not revoke it.
func issueCertificate(user models.User, course models.Course) *models.Certificate {
	var existing models.Certificate
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&existing).Error; err == nil {
		return &existing
	}

	certificate := models.Certificate{
		UserID:            user.ID,
		CourseID:          course.ID,
		CertificateNumber: uuid.NewString(),
		IssuedAt:          time.Now(),
	}
	if err := database.Database.Db.Create(&certificate).Error; err != nil {
		log.Printf("Error issuing certificate for user %d course %d: %v", user.ID, course.ID, err)
		return nil
	}

	utils.SendCompletionEmail(user.Email, user.Username, course.Title, certificate.CertificateNumber)
	utils.NotifyEvent("course.completed", map[string]interface{}{
		"userId":            user.ID,
		"courseId":          course.ID,
		"certificateNumber": certificate.CertificateNumber,
	})

	return &certificate
}

// MyCertificates lists the caller's issued certificates with course titles
func MyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type CertificateWithCourse struct {
		models.Certificate
		CourseTitle string `json:"courseTitle"`
	}

	result := make([]CertificateWithCourse, 0)
	err := database.Database.Db.Model(&models.Certificate{}).
		Select("certificates.*, courses.title AS course_title").
		Joins("LEFT JOIN courses ON courses.id = certificates.course_id").
		Where("certificates.user_id = ?", userID).
		Order("certificates.issued_at desc").
		Scan(&result).Error
	if err != nil {
		log.Printf("Error fetching certificates for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", result)
}
