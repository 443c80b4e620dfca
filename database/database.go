package database

import (
	"coursehub/models"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10) // Maximum open connections
	sqlDB.SetMaxIdleConns(5)  // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0)

	// Run database migrations
	RunMigrations(db)

	// Seed the default admin account
	seedAdmin(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Material{},
		&models.Payment{},
		&models.Registration{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// seedAdmin creates the bootstrap admin account when no admin exists yet.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD.
func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = false", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("Warning: no admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD are not set.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	admin := models.User{
		Name:     "Admin User",
		Email:    email,
		Role:     models.RoleAdmin,
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error seeding admin account: %v", err)
		return
	}

	log.Printf("Seeded admin account %s", email)
}
