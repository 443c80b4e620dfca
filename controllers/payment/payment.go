package paymentController

import (
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	"coursehub/payment"
	"coursehub/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ProcessPayment runs a payment attempt and, on success, registers the user
// for the course
func ProcessPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPayment").(*struct {
		CourseID       *uint           `json:"courseId"`
		PaymentMethod  string          `json:"paymentMethod"`
		PaymentDetails payment.Details `json:"paymentDetails"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	pay, reg, err := payment.Default.Process(userID, *reqData.CourseID, reqData.PaymentMethod, reqData.PaymentDetails)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrUserNotFound):
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		case errors.Is(err, payment.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, payment.ErrAlreadyRegistered):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already registered for this course!", nil)
		case errors.Is(err, payment.ErrUnsupportedMethod):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unsupported payment method!", fiber.Map{"payment": pay})
		case errors.Is(err, payment.ErrProviderDeclined):
			if pay != nil {
				utils.NotifyPaymentWebhook(*pay)
			}
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), fiber.Map{"payment": pay})
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error processing payment!", nil)
		}
	}

	utils.NotifyPaymentWebhook(*pay)

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err == nil {
		var course models.Course
		if err := database.Database.Db.Where("id = ?", pay.CourseID).First(&course).Error; err == nil {
			utils.SendPaymentReceipt(user.Email, user.Name, course.Title, pay.PaymentReference, pay.Amount, reg.AccessExpiresAt)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment processed successfully!", fiber.Map{
		"payment":      pay,
		"registration": reg,
	})
}

// GetPaymentHistory returns the caller's payment attempts, newest first
func GetPaymentHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var payments []models.Payment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userID).
		Order("created_at desc").
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payment history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment history fetched successfully!", fiber.Map{
		"payments": payments,
		"count":    len(payments),
	})
}

// GetPayment returns one payment. Owners see their own; admins see any.
func GetPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	paymentID := c.Locals("paymentID").(int)
	db := database.Database.Db

	var pay models.Payment
	if err := db.Where("id = ? AND is_deleted = false", paymentID).First(&pay).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	if pay.UserID != userID {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil || user.Role != models.RoleAdmin {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to view this payment!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment fetched successfully!", pay)
}
