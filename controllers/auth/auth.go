package authController

import (
	"coursehub/config"
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	// Self-signup always gets the user role; admins are seeded, never created here
	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Mobile:   reqData.Mobile,
		Role:     models.RoleUser,
		Password: string(hashedPassword),
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Name, newUser.Role, newUser.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"token": token,
		"user":  newUser,
	})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	nowTime := time.Now()
	db.Model(&user).Update("last_login", nowTime)
	user.LastLogin = &nowTime

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}
