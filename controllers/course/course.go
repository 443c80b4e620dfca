package courseController

import (
	"coursehub/database"
	"coursehub/entitlement"
	"coursehub/middleware"
	"coursehub/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists courses for browsing. Public endpoint.
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Course{}).Where("is_deleted = false")

	var total int64
	query.Count(&total)

	var courses []models.Course
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns a single course. Public endpoint.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// CheckCourseAccess reports whether the caller may view the course's
// materials, and until when
func CheckCourseAccess(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	checker := entitlement.NewChecker(database.Database.Db)
	decision, err := checker.CheckAccess(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check access!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access checked successfully!", decision)
}

// GetMyRegistrations lists the caller's course registrations. The course list
// is derived from registration rows; there is no separate cached list on the
// user record.
func GetMyRegistrations(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var registrations []models.Registration
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Preload("Course").
		Order("created_at desc").
		Find(&registrations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch registrations!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registrations fetched successfully!", registrations)
}
