package paymentRoutes

import (
	controllers "coursehub/controllers/payment"
	"coursehub/middleware"
	validators "coursehub/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the user-facing payment routes
func SetupPaymentRoutes(app *fiber.App) {
	userGroup := app.Group("/payment")

	userGroup.Post("/process", middleware.JWTMiddleware, validators.ProcessPayment(), controllers.ProcessPayment)
	userGroup.Get("/history", middleware.JWTMiddleware, controllers.GetPaymentHistory)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.PaymentID(), controllers.GetPayment)
}

// SetupAdminPaymentRoutes sets up the admin payment routes
func SetupAdminPaymentRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/payment")

	adminGroup.Get("/list", middleware.JWTMiddleware, middleware.AdminOnly, controllers.AdminGetAllPayments)
	adminGroup.Get("/stats", middleware.JWTMiddleware, middleware.AdminOnly, controllers.AdminPaymentStats)
	adminGroup.Post("/:id/refund", middleware.JWTMiddleware, middleware.AdminOnly, validators.PaymentID(), controllers.AdminRefundPayment)
}
