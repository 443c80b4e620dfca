package courseValidator

import (
	"coursehub/config"
	"coursehub/middleware"
	"coursehub/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		// Validate CourseID is a valid integer
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CourseBody validates the full course payload for create and update
func CourseBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string   `json:"title"`
			Description  string   `json:"description"`
			Price        *float64 `json:"price"`
			Duration     *int     `json:"duration"`
			AccessPeriod *int     `json:"accessPeriod"`
			Instructor   string   `json:"instructor"`
			Category     string   `json:"category"`
			Level        string   `json:"level"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		} else if len(strings.TrimSpace(reqData.Description)) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		// Validate Price
		if reqData.Price == nil {
			errors["price"] = "Price is required!"
		} else if *reqData.Price < 0 {
			errors["price"] = "Price must not be negative!"
		}

		// Validate Duration
		if reqData.Duration == nil || *reqData.Duration < 1 {
			errors["duration"] = "Duration must be a positive number of weeks!"
		}

		// Validate AccessPeriod
		if reqData.AccessPeriod == nil || *reqData.AccessPeriod < 1 {
			errors["accessPeriod"] = "Access period must be a positive number of weeks!"
		}

		// Validate Instructor
		if strings.TrimSpace(reqData.Instructor) == "" {
			errors["instructor"] = "Instructor is required!"
		}

		// Validate Category against the configured list
		if !contains(config.AppConfig.CourseCategories, reqData.Category) {
			errors["category"] = "Category must be one of: " + strings.Join(config.AppConfig.CourseCategories, ", ")
		}

		// Validate Level
		if !contains(models.CourseLevels, reqData.Level) {
			errors["level"] = "Level must be one of: " + strings.Join(models.CourseLevels, ", ")
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
