package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	EmailSender string
	Password    string // SMTP Password

	PaymentWebhookURL string // Optional endpoint notified on terminal payments

	CourseCategories   []string // Allowed course categories
	AccessReminderDays int      // Days before access expiry to send reminder
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		PaymentWebhookURL: getEnv("PAYMENT_WEBHOOK_URL", ""),

		// The category list drifted between the old client and validation,
		// so it is configurable rather than hardcoded.
		CourseCategories:   getEnvList("COURSE_CATEGORIES", "Programming,Design,Business,Marketing,Other"),
		AccessReminderDays: getEnvInt("ACCESS_REMINDER_DAYS", 7),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvList retrieves a comma-separated environment variable as a trimmed string slice
func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)

	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
