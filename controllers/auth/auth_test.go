package authController_test

import (
	"bytes"
	"coursehub/config"
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authRoutes "coursehub/routers/authRoutes"
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
	authRoutes.SetupAuthRoutes(app)
	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
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

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestSignupAndLogin(t *testing.T) {
	app := setupApp(t)

	resp, body := request(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name":     "Jane Doe",
		"email":    "Jane@Example.com",
		"mobile":   "677000001",
		"password": "supersecret",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["status"])

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", user["email"]) // normalized to lower case
	assert.Equal(t, models.RoleUser, user["role"])
	assert.Empty(t, user["password"])

	resp, body = request(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "jane@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	payload := fiber.Map{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"mobile":   "677000001",
		"password": "supersecret",
	}

	resp, _ := request(t, app, "POST", "/auth/signup", "", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := request(t, app, "POST", "/auth/signup", "", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["status"])
}

func TestSignupValidation(t *testing.T) {
	app := setupApp(t)

	resp, body := request(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name":     "J",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	errs := body["data"].(map[string]interface{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, database.Database.Db.Create(&models.User{
		Name: "Jane", Email: "jane@example.com", Mobile: "677000001",
		Password: string(hashed), Role: models.RoleUser,
	}).Error)

	resp, body := request(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "jane@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["status"])

	resp, _ = request(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": "rightpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	app := setupApp(t)

	user := models.User{Name: "Jane", Email: "jane@example.com", Mobile: "677000001", Password: "x", Role: models.RoleUser}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	resp, body := request(t, app, "GET", "/auth/me", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", data["email"])
	assert.Empty(t, data["password"])
}

func TestGetProfileRequiresToken(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
