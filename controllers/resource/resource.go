package resourceController

import (
	"time"

	"olc/database"
	"olc/middleware"
	"olc/models"
	resourceValidator "olc/validators/resource"

	"github.com/gofiber/fiber/v2"
)

// PublicCourse is the reduced course shape served without authentication
type PublicCourse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      bool       `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

func toCourseModules(inputs []resourceValidator.ModuleInput) []models.CourseModule {
	modules := make([]models.CourseModule, len(inputs))
	for i, input := range inputs {
		modules[i] = models.CourseModule{
			Title:   input.Title,
			Summary: input.Summary,
			Task:    input.Task,
		}
	}
	return modules
}

// GetPublicCourses lists courses with the public subset of fields
func GetPublicCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]PublicCourse, len(courses))
	for i, course := range courses {
		result[i] = PublicCourse{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			Status:      course.Status,
			DueDate:     course.DueDate,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", result)
}

// GetAllCourses lists courses for authenticated users
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourse fetches one course by ID
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// CreateCourse creates a course; restricted to admin and moderator roles
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedResource").(*resourceValidator.CreateResourceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	status := true
	if reqData.Status != nil {
		status = *reqData.Status
	}

	course := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Content:     reqData.Content,
		Modules:     toCourseModules(reqData.Modules),
		Status:      status,
		DueDate:     reqData.DueDate,
		CreatedBy:   userID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse applies the supplied fields to an existing course
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedResourceUpdate").(*resourceValidator.UpdateResourceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Content != nil {
		course.Content = *reqData.Content
	}
	if reqData.Modules != nil {
		// Replacing the module list invalidates positional indices held by
		// existing enrollments; appending keeps them stable.
		course.Modules = toCourseModules(*reqData.Modules)
	}
	if reqData.Status != nil {
		course.Status = *reqData.Status
	}
	if reqData.DueDate != nil {
		course.DueDate = reqData.DueDate
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes a course and cascades into its enrollments
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Where("course_id = ?", course.ID).Delete(&models.Enrollment{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete enrollments!", nil)
	}
	if err := tx.Delete(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource deleted.", nil)
}
