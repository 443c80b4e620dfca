package materialValidator

import (
	"coursehub/middleware"
	"coursehub/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CourseID validates the :courseId route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("courseId"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// MaterialID validates the :id route parameter
func MaterialID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		materialIDStr := strings.TrimSpace(c.Params("id"))
		if materialIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Material ID is required!", nil)
		}

		materialID, err := strconv.Atoi(materialIDStr)
		if err != nil || materialID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Material ID!", nil)
		}

		c.Locals("materialID", materialID)
		return c.Next()
	}
}

// MaterialBody validates the material payload for create and update
func MaterialBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Type        string `json:"type"`
			Content     string `json:"content"`
			OrderIndex  *int   `json:"orderIndex"`
			IsPublished *bool  `json:"isPublished"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		// Validate Type
		validType := false
		for _, t := range models.MaterialTypes {
			if t == reqData.Type {
				validType = true
				break
			}
		}
		if !validType {
			errors["type"] = "Type must be one of: " + strings.Join(models.MaterialTypes, ", ")
		}

		// Validate Content
		if strings.TrimSpace(reqData.Content) == "" {
			errors["content"] = "Content is required!"
		}

		// Validate OrderIndex
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["orderIndex"] = "Order index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMaterial", reqData)
		return c.Next()
	}
}
