package materialController_test

import (
	"bytes"
	"coursehub/config"
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	materialRoutes "coursehub/routers/materialRoutes"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	materialRoutes.SetupMaterialRoutes(app)
	materialRoutes.SetupAdminMaterialRoutes(app)
	return app
}

func createUserWithToken(t *testing.T, role string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     "Test " + role,
		Email:    fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano()),
		Mobile:   "677000001",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func rawRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	resp, raw := rawRequest(t, app, method, path, token, body)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func seedCourse(t *testing.T) models.Course {
	t.Helper()

	course := models.Course{Title: "Go Basics", Description: "d", Price: 25000, Duration: 4, AccessPeriod: 12, Instructor: "Sam", Category: "Programming", Level: models.LevelBeginner}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func registerPaid(t *testing.T, userID, courseID uint, expiresAt time.Time) {
	t.Helper()

	require.NoError(t, database.Database.Db.Create(&models.Registration{
		UserID:          userID,
		CourseID:        courseID,
		PaymentStatus:   models.PaymentStatusCompleted,
		AccessExpiresAt: expiresAt,
	}).Error)
}

func TestGetCourseMaterialsForPaidUser(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	course := seedCourse(t)
	user, token := createUserWithToken(t, models.RoleUser)
	registerPaid(t, user.ID, course.ID, time.Now().AddDate(0, 0, 30))

	require.NoError(t, db.Create(&models.Material{CourseID: course.ID, Title: "Guide", Description: "d", Type: models.MaterialTypePDF, Content: "https://cdn.example.com/guide.pdf", OrderIndex: 1, IsPublished: true}).Error)
	require.NoError(t, db.Create(&models.Material{CourseID: course.ID, Title: "Draft", Description: "d", Type: models.MaterialTypeHTML, Content: "<p>draft</p>", OrderIndex: 2}).Error)

	resp, body := request(t, app, "GET", fmt.Sprintf("/material/course/%d", course.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	materials := data["materials"].([]interface{})
	require.Len(t, materials, 1) // unpublished draft stays hidden
	assert.EqualValues(t, 1, data["count"])

	material := materials[0].(map[string]interface{})
	assert.Equal(t, "Guide", material["title"])
	assert.NotContains(t, material, "content") // raw content never leaves via the listing
	assert.Contains(t, material["access_url"], "/material/view/")
}

func TestGetCourseMaterialsAdminSeesUnpublished(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	course := seedCourse(t)
	_, adminToken := createUserWithToken(t, models.RoleAdmin)

	require.NoError(t, db.Create(&models.Material{CourseID: course.ID, Title: "Guide", Description: "d", Type: models.MaterialTypePDF, Content: "u", OrderIndex: 1, IsPublished: true}).Error)
	require.NoError(t, db.Create(&models.Material{CourseID: course.ID, Title: "Draft", Description: "d", Type: models.MaterialTypeHTML, Content: "<p>d</p>", OrderIndex: 2}).Error)

	// Admin lists without any registration
	resp, body := request(t, app, "GET", fmt.Sprintf("/material/course/%d", course.ID), adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	materials := body["data"].(map[string]interface{})["materials"].([]interface{})
	assert.Len(t, materials, 2)
}

func TestGetCourseMaterialsDenials(t *testing.T) {
	app := setupApp(t)

	course := seedCourse(t)
	user, token := createUserWithToken(t, models.RoleUser)

	// Not registered
	resp, body := request(t, app, "GET", fmt.Sprintf("/material/course/%d", course.ID), token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "not_registered", body["data"].(map[string]interface{})["reason"])

	// Expired registration
	registerPaid(t, user.ID, course.ID, time.Now().AddDate(0, 0, -1))
	resp, body = request(t, app, "GET", fmt.Sprintf("/material/course/%d", course.ID), token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "access_expired", body["data"].(map[string]interface{})["reason"])

	// Unknown course
	resp, _ = request(t, app, "GET", "/material/course/999", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetCourseMaterialsIncompletePayment(t *testing.T) {
	app := setupApp(t)

	course := seedCourse(t)
	user, token := createUserWithToken(t, models.RoleUser)

	require.NoError(t, database.Database.Db.Create(&models.Registration{
		UserID:          user.ID,
		CourseID:        course.ID,
		PaymentStatus:   models.PaymentStatusRefunded,
		AccessExpiresAt: time.Now().AddDate(0, 0, 30),
	}).Error)

	resp, body := request(t, app, "GET", fmt.Sprintf("/material/course/%d", course.ID), token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "payment_incomplete", body["data"].(map[string]interface{})["reason"])
}

func TestViewMaterialRendersProtectedViewer(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	course := seedCourse(t)
	user, token := createUserWithToken(t, models.RoleUser)
	registerPaid(t, user.ID, course.ID, time.Now().AddDate(0, 0, 30))

	material := models.Material{CourseID: course.ID, Title: "Lesson One", Description: "d", Type: models.MaterialTypeHTML, Content: "<p>Hello</p>", IsPublished: true}
	require.NoError(t, db.Create(&material).Error)

	resp, raw := rawRequest(t, app, "GET", fmt.Sprintf("/material/view/%d", material.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	page := string(raw)
	assert.Contains(t, page, "Lesson One")
	assert.Contains(t, page, "<p>Hello</p>")
	assert.Contains(t, page, user.Email) // watermark identifies the viewer
	assert.Contains(t, page, "contextmenu")
	assert.Contains(t, page, "selectstart")
}

func TestViewMaterialRedirectsLinks(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	course := seedCourse(t)
	user, token := createUserWithToken(t, models.RoleUser)
	registerPaid(t, user.ID, course.ID, time.Now().AddDate(0, 0, 30))

	material := models.Material{CourseID: course.ID, Title: "External", Description: "d", Type: models.MaterialTypeLink, Content: "https://example.com/resource", IsPublished: true}
	require.NoError(t, db.Create(&material).Error)

	resp, _ := rawRequest(t, app, "GET", fmt.Sprintf("/material/view/%d", material.ID), token, nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://example.com/resource", resp.Header.Get("Location"))
}

func TestViewMaterialHidesUnpublished(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	course := seedCourse(t)
	user, token := createUserWithToken(t, models.RoleUser)
	registerPaid(t, user.ID, course.ID, time.Now().AddDate(0, 0, 30))

	material := models.Material{CourseID: course.ID, Title: "Draft", Description: "d", Type: models.MaterialTypeHTML, Content: "<p>d</p>"}
	require.NoError(t, db.Create(&material).Error)

	resp, _ := rawRequest(t, app, "GET", fmt.Sprintf("/material/view/%d", material.ID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestViewMaterialGatesAdminsToo(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	course := seedCourse(t)
	_, adminToken := createUserWithToken(t, models.RoleAdmin)

	material := models.Material{CourseID: course.ID, Title: "Guide", Description: "d", Type: models.MaterialTypeHTML, Content: "<p>d</p>", IsPublished: true}
	require.NoError(t, db.Create(&material).Error)

	// Admin capability covers listing, not the viewer; an unregistered admin
	// is denied like any other user
	resp, body := request(t, app, "GET", fmt.Sprintf("/material/view/%d", material.ID), adminToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "not_registered", body["data"].(map[string]interface{})["reason"])
}

func TestAdminMaterialCRUD(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	course := seedCourse(t)
	_, adminToken := createUserWithToken(t, models.RoleAdmin)

	// Create
	resp, body := request(t, app, "POST", fmt.Sprintf("/admin/material/course/%d", course.ID), adminToken, fiber.Map{
		"title":       "Guide",
		"description": "The course guide",
		"type":        models.MaterialTypePDF,
		"content":     "https://cdn.example.com/guide.pdf",
		"orderIndex":  1,
		"isPublished": true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	materialID := uint(body["data"].(map[string]interface{})["ID"].(float64))

	// Update
	resp, body = request(t, app, "PUT", fmt.Sprintf("/admin/material/%d", materialID), adminToken, fiber.Map{
		"title":       "Guide v2",
		"description": "The course guide",
		"type":        models.MaterialTypePDF,
		"content":     "https://cdn.example.com/guide-v2.pdf",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Guide v2", body["data"].(map[string]interface{})["title"])

	// List includes the material
	resp, body = request(t, app, "GET", fmt.Sprintf("/admin/material/course/%d", course.ID), adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 1)

	// Delete
	resp, _ = request(t, app, "DELETE", fmt.Sprintf("/admin/material/%d", materialID), adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Material
	require.NoError(t, db.First(&stored, materialID).Error)
	assert.True(t, stored.IsDeleted)

	resp, body = request(t, app, "GET", fmt.Sprintf("/admin/material/course/%d", course.ID), adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])
}

func TestAdminMaterialValidation(t *testing.T) {
	app := setupApp(t)

	course := seedCourse(t)
	_, adminToken := createUserWithToken(t, models.RoleAdmin)

	resp, body := request(t, app, "POST", fmt.Sprintf("/admin/material/course/%d", course.ID), adminToken, fiber.Map{
		"type": "Hologram",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	errs := body["data"].(map[string]interface{})
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs, "content")
}

func TestAdminMaterialRoutesRejectNonAdmin(t *testing.T) {
	app := setupApp(t)

	course := seedCourse(t)
	_, userToken := createUserWithToken(t, models.RoleUser)

	resp, _ := request(t, app, "POST", fmt.Sprintf("/admin/material/course/%d", course.ID), userToken, fiber.Map{
		"title":       "Guide",
		"description": "d",
		"type":        models.MaterialTypePDF,
		"content":     "u",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
