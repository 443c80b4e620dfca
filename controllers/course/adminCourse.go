package courseController

import (
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCourse creates a new course
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Price        *float64 `json:"price"`
		Duration     *int     `json:"duration"`
		AccessPeriod *int     `json:"accessPeriod"`
		Instructor   string   `json:"instructor"`
		Category     string   `json:"category"`
		Level        string   `json:"level"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Price:        *reqData.Price,
		Duration:     *reqData.Duration,
		AccessPeriod: *reqData.AccessPeriod,
		Instructor:   reqData.Instructor,
		Category:     reqData.Category,
		Level:        reqData.Level,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates a course's mutable attributes
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Price        *float64 `json:"price"`
		Duration     *int     `json:"duration"`
		AccessPeriod *int     `json:"accessPeriod"`
		Instructor   string   `json:"instructor"`
		Category     string   `json:"category"`
		Level        string   `json:"level"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Price = *reqData.Price
	course.Duration = *reqData.Duration
	course.AccessPeriod = *reqData.AccessPeriod
	course.Instructor = reqData.Instructor
	course.Category = reqData.Category
	course.Level = reqData.Level

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft-deletes a course. Dependent materials and
// registrations are left untouched.
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := database.Database.Db.Model(&course).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists all courses with registration counts
func AdminGetAllCourses(c *fiber.Ctx) error {
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

	type courseWithStats struct {
		models.Course
		Registrations int64 `json:"registrations"`
	}

	list := make([]courseWithStats, 0, len(courses))
	for _, course := range courses {
		var registrations int64
		db.Model(&models.Registration{}).Where("course_id = ?", course.ID).Count(&registrations)
		list = append(list, courseWithStats{Course: course, Registrations: registrations})
	}

	response := map[string]interface{}{
		"courses": list,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}
