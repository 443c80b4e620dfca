package courseRoutes

import (
	controllers "coursehub/controllers/course"
	"coursehub/middleware"
	validators "coursehub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	adminGroup.Post("/create", middleware.JWTMiddleware, middleware.AdminOnly, validators.CourseBody(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, middleware.AdminOnly, controllers.AdminGetAllCourses)
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.CourseID(), validators.CourseBody(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.CourseID(), controllers.AdminDeleteCourse)
}
