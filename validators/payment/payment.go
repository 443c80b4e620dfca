package paymentValidator

import (
	"coursehub/middleware"
	"coursehub/models"
	"coursehub/payment"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ProcessPayment validates the purchase payload. Method-specific structural
// checks (card number length) belong to the provider, not here.
func ProcessPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID       *uint           `json:"courseId"`
			PaymentMethod  string          `json:"paymentMethod"`
			PaymentDetails payment.Details `json:"paymentDetails"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate CourseID
		if reqData.CourseID == nil || *reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}

		// Validate PaymentMethod
		validMethod := false
		for _, m := range models.PaymentMethods {
			if m == reqData.PaymentMethod {
				validMethod = true
				break
			}
		}
		if !validMethod {
			errors["paymentMethod"] = "Payment method must be one of: " + strings.Join(models.PaymentMethods, ", ")
		}

		// Validate method-specific details are present
		switch reqData.PaymentMethod {
		case models.PaymentMethodMTN, models.PaymentMethodOrange:
			if strings.TrimSpace(reqData.PaymentDetails.PhoneNumber) == "" {
				errors["paymentDetails"] = "Phone number is required!"
			}
		case models.PaymentMethodCreditCard:
			if strings.TrimSpace(reqData.PaymentDetails.CardNumber) == "" {
				errors["paymentDetails"] = "Card number is required!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}

// PaymentID validates the :id route parameter
func PaymentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		paymentIDStr := strings.TrimSpace(c.Params("id"))
		if paymentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment ID is required!", nil)
		}

		paymentID, err := strconv.Atoi(paymentIDStr)
		if err != nil || paymentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Payment ID!", nil)
		}

		c.Locals("paymentID", paymentID)
		return c.Next()
	}
}
