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

// AdminGetAllPayments lists every payment attempt, newest first
func AdminGetAllPayments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Payment{}).Where("is_deleted = false")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var payments []models.Payment
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	response := map[string]interface{}{
		"payments": payments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", response)
}

// AdminPaymentStats aggregates payment counts and completed revenue
func AdminPaymentStats(c *fiber.Ctx) error {
	db := database.Database.Db

	countByStatus := func(status string) int64 {
		var count int64
		db.Model(&models.Payment{}).Where("status = ? AND is_deleted = false", status).Count(&count)
		return count
	}

	countByMethod := func(method string) int64 {
		var count int64
		db.Model(&models.Payment{}).Where("payment_method = ? AND is_deleted = false", method).Count(&count)
		return count
	}

	var total int64
	db.Model(&models.Payment{}).Where("is_deleted = false").Count(&total)

	var totalAmount float64
	db.Model(&models.Payment{}).
		Where("status = ? AND is_deleted = false", models.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount)

	stats := fiber.Map{
		"total":       total,
		"completed":   countByStatus(models.PaymentStatusCompleted),
		"pending":     countByStatus(models.PaymentStatusPending),
		"processing":  countByStatus(models.PaymentStatusProcessing),
		"failed":      countByStatus(models.PaymentStatusFailed),
		"refunded":    countByStatus(models.PaymentStatusRefunded),
		"totalAmount": totalAmount,
		"byMethod": fiber.Map{
			models.PaymentMethodMTN:        countByMethod(models.PaymentMethodMTN),
			models.PaymentMethodOrange:     countByMethod(models.PaymentMethodOrange),
			models.PaymentMethodCreditCard: countByMethod(models.PaymentMethodCreditCard),
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment statistics fetched successfully!", stats)
}

// AdminRefundPayment refunds a completed payment and revokes the matching
// registration's entitlement
func AdminRefundPayment(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	paymentID := c.Locals("paymentID").(int)

	pay, err := payment.Default.Refund(adminID, uint(paymentID))
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrPaymentNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
		case errors.Is(err, payment.ErrNotRefundable):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only completed payments can be refunded!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error processing refund!", nil)
		}
	}

	utils.NotifyPaymentWebhook(*pay)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment refunded successfully!", pay)
}
