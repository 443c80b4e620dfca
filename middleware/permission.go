package middleware

import (
	"coursehub/database"
	"coursehub/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminOnly checks that the authenticated user holds the admin role
func AdminOnly(c *fiber.Ctx) error {
	// Get user ID from context (set by the JWT middleware)
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized: User ID not found",
			"data":    nil,
		})
	}

	var user models.User
	err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "User not found!",
				"data":    nil,
			})
		}
		// Other DB error
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Server error while checking permissions!",
			"data":    nil,
		})
	}

	if user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}

	c.Locals("isAdmin", true)
	return c.Next()
}
