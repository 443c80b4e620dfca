package courseRoutes

import (
	controllers "coursehub/controllers/course"
	"coursehub/middleware"
	validators "coursehub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course browsing (public)
	userGroup.Get("/list", controllers.GetAllCourses)
	userGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetails)

	// Entitlement check for the authenticated user
	userGroup.Get("/:id/access", middleware.JWTMiddleware, validators.CourseID(), controllers.CheckCourseAccess)

	// Registrations of the authenticated user
	registrationGroup := app.Group("/user")
	registrationGroup.Get("/registrations", middleware.JWTMiddleware, controllers.GetMyRegistrations)
}
