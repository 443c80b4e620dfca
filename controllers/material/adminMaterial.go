package materialController

import (
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateMaterial attaches a new material to a course
func AdminCreateMaterial(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedMaterial").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Content     string `json:"content"`
		OrderIndex  *int   `json:"orderIndex"`
		IsPublished *bool  `json:"isPublished"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	material := models.Material{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		Type:        reqData.Type,
		Content:     reqData.Content,
	}
	if reqData.OrderIndex != nil {
		material.OrderIndex = *reqData.OrderIndex
	}
	if reqData.IsPublished != nil {
		material.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Create(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material created successfully!", material)
}

// AdminUpdateMaterial updates a material's attributes
func AdminUpdateMaterial(c *fiber.Ctx) error {
	materialID := c.Locals("materialID").(int)

	reqData, ok := c.Locals("validatedMaterial").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Content     string `json:"content"`
		OrderIndex  *int   `json:"orderIndex"`
		IsPublished *bool  `json:"isPublished"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var material models.Material
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", materialID).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	material.Title = reqData.Title
	material.Description = reqData.Description
	material.Type = reqData.Type
	material.Content = reqData.Content
	if reqData.OrderIndex != nil {
		material.OrderIndex = *reqData.OrderIndex
	}
	if reqData.IsPublished != nil {
		material.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material updated successfully!", material)
}

// AdminDeleteMaterial soft-deletes a material
func AdminDeleteMaterial(c *fiber.Ctx) error {
	materialID := c.Locals("materialID").(int)

	var material models.Material
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", materialID).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	if err := database.Database.Db.Model(&material).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material deleted successfully!", nil)
}

// AdminGetCourseMaterials lists all of a course's materials, published or not
func AdminGetCourseMaterials(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var materials []models.Material
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = false", courseID).
		Order("order_index asc").
		Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", materials)
}
