package materialRoutes

import (
	controllers "coursehub/controllers/material"
	"coursehub/middleware"
	validators "coursehub/validators/material"

	"github.com/gofiber/fiber/v2"
)

// SetupMaterialRoutes sets up the entitlement-gated material routes
func SetupMaterialRoutes(app *fiber.App) {
	userGroup := app.Group("/material")

	userGroup.Get("/course/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseMaterials)
	userGroup.Get("/view/:id", middleware.JWTMiddleware, validators.MaterialID(), controllers.ViewMaterial)
}

// SetupAdminMaterialRoutes sets up all admin material management routes
func SetupAdminMaterialRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/material")

	adminGroup.Post("/course/:courseId", middleware.JWTMiddleware, middleware.AdminOnly, validators.CourseID(), validators.MaterialBody(), controllers.AdminCreateMaterial)
	adminGroup.Get("/course/:courseId", middleware.JWTMiddleware, middleware.AdminOnly, validators.CourseID(), controllers.AdminGetCourseMaterials)
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.MaterialID(), validators.MaterialBody(), controllers.AdminUpdateMaterial)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.MaterialID(), controllers.AdminDeleteMaterial)
}
