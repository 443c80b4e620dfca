package materialController

import (
	"coursehub/database"
	"coursehub/entitlement"
	"coursehub/middleware"
	"coursehub/models"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// viewableMaterial is the listing shape served to entitled users. The raw
// content never leaves through the listing; it is only reachable through the
// viewer endpoint.
type viewableMaterial struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	OrderIndex     int    `json:"order_index"`
	IsPublished    bool   `json:"is_published"`
	AccessURL      string `json:"access_url"`
	ContentControl string `json:"content_control"`
}

func toViewable(m models.Material) viewableMaterial {
	v := viewableMaterial{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Type:        m.Type,
		OrderIndex:  m.OrderIndex,
		IsPublished: m.IsPublished,
	}

	switch m.Type {
	case models.MaterialTypePDF:
		v.AccessURL = fmt.Sprintf("/material/view/%d", m.ID)
		v.ContentControl = "PDF will be opened in viewer with copy disabled"
	case models.MaterialTypeVideo:
		v.AccessURL = fmt.Sprintf("/material/view/%d", m.ID)
		v.ContentControl = "Video will be streamed with download disabled"
	case models.MaterialTypeHTML:
		v.AccessURL = fmt.Sprintf("/material/view/%d", m.ID)
		v.ContentControl = "HTML content with selection and right-click disabled"
	default:
		v.AccessURL = m.Content
		v.ContentControl = "Standard access"
	}

	return v
}

// GetCourseMaterials lists the materials the caller is entitled to see for a
// course. Admins see unpublished materials as well; regular users only get a
// listing while their paid registration is unexpired.
func GetCourseMaterials(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	checker := entitlement.NewChecker(db)
	materials, decision, err := checker.EntitledMaterials(userID, uint(courseID), user.Role == models.RoleAdmin)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}
	if !decision.Allowed {
		return denyAccess(c, decision)
	}

	viewables := make([]viewableMaterial, 0, len(materials))
	for _, m := range materials {
		viewables = append(viewables, toViewable(m))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", fiber.Map{
		"materials": viewables,
		"count":     len(viewables),
		"expiresAt": decision.ExpiresAt,
	})
}

// ViewMaterial serves the protected viewer for a single material. The full
// entitlement chain applies here for every caller; admin capability does not
// bypass the viewer gate.
func ViewMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	materialID := c.Locals("materialID").(int)
	db := database.Database.Db

	var material models.Material
	if err := db.Where("id = ? AND is_deleted = false", materialID).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	// Unpublished materials are invisible in the end-user flow
	if !material.IsPublished {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	checker := entitlement.NewChecker(db)
	decision, err := checker.CheckAccess(userID, material.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check access!", nil)
	}
	if !decision.Allowed {
		return denyAccess(c, decision)
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	switch material.Type {
	case models.MaterialTypePDF:
		return renderViewer(c, material.Title, fmt.Sprintf(
			"<h1>%s</h1><p>PDF content is displayed here in a secure viewer</p><p>%s</p>",
			material.Title, material.Description), user.Email)
	case models.MaterialTypeVideo:
		return renderViewer(c, material.Title, fmt.Sprintf(
			"<h1>%s</h1><p>Video is streamed here with download disabled</p><p>%s</p>",
			material.Title, material.Description), user.Email)
	case models.MaterialTypeHTML:
		return renderViewer(c, material.Title, fmt.Sprintf(
			"<h1>%s</h1>%s", material.Title, material.Content), user.Email)
	default:
		// Links and other types redirect to the stored target
		return c.Redirect(material.Content, fiber.StatusFound)
	}
}

// denyAccess maps an entitlement decision to the HTTP response
func denyAccess(c *fiber.Ctx, decision entitlement.Decision) error {
	switch decision.Reason {
	case entitlement.ReasonCourseNotFound:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", decision)
	case entitlement.ReasonNotRegistered:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not registered for this course!", decision)
	case entitlement.ReasonAccessExpired:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your access to this course has expired!", decision)
	case entitlement.ReasonPaymentIncomplete:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Payment required to access course materials!", decision)
	default:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", decision)
	}
}

// renderViewer wraps material content in the watermarked, copy-protected page
func renderViewer(c *fiber.Ctx, title, body, watermark string) error {
	page := fmt.Sprintf(`<html>
  <head>
    <title>%s</title>
    <style>
      body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
      .content { padding: 20px; }
      .watermark { position: fixed; bottom: 10px; right: 10px; opacity: 0.5; }
    </style>
    <script>
      document.addEventListener('contextmenu', event => event.preventDefault());
      document.addEventListener('selectstart', event => event.preventDefault());
    </script>
  </head>
  <body>
    <div class="content">%s</div>
    <div class="watermark">&copy; CourseHub - %s</div>
  </body>
</html>`, title, body, watermark)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(page)
}
