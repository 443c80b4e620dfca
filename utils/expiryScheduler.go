package utils

import (
	"coursehub/config"
	"coursehub/database"
	"coursehub/models"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeExpiryScheduler sets up the daily access-expiry sweep.
// Entitlement never depends on this job; expiry is evaluated at read time.
// The sweep only reports and reminds.
func InitializeExpiryScheduler() {
	log.Println("[EXPIRY-SCHEDULER] Initializing access expiry scheduler...")

	c := cron.New()

	// Run daily at 8 AM
	c.AddFunc("0 8 * * *", func() {
		log.Println("[EXPIRY-SCHEDULER] Running daily access expiry sweep...")
		ProcessExpiringRegistrations()
		ReportExpiredRegistrations()
	})

	c.Start()
	log.Println("[EXPIRY-SCHEDULER] Access expiry scheduler started - runs daily at 8 AM")
}

// ProcessExpiringRegistrations sends reminder emails for paid registrations
// whose access window closes within the configured reminder horizon
func ProcessExpiringRegistrations() {
	db := database.Database.Db
	nowTime := time.Now()
	horizon := nowTime.AddDate(0, 0, config.AppConfig.AccessReminderDays)

	var expiring []models.Registration
	if err := db.
		Where("payment_status = ? AND reminder_sent = false", models.PaymentStatusCompleted).
		Where("access_expires_at BETWEEN ? AND ?", nowTime, horizon).
		Preload("Course").
		Find(&expiring).Error; err != nil {
		log.Printf("[EXPIRY-SCHEDULER] Error fetching expiring registrations: %v", err)
		return
	}

	log.Printf("[EXPIRY-SCHEDULER] Found %d registrations expiring soon", len(expiring))

	for _, reg := range expiring {
		var user models.User
		if err := db.Where("id = ?", reg.UserID).First(&user).Error; err != nil {
			log.Printf("[EXPIRY-SCHEDULER] Error fetching user %d: %v", reg.UserID, err)
			continue
		}

		SendAccessExpiryReminder(user.Email, user.Name, reg.Course.Title, reg.AccessExpiresAt)

		if err := db.Model(&reg).Update("reminder_sent", true).Error; err != nil {
			log.Printf("[EXPIRY-SCHEDULER] Error marking registration %d as reminded: %v", reg.ID, err)
			continue
		}
		log.Printf("[EXPIRY-SCHEDULER] Sent expiry reminder for registration %d to %s", reg.ID, user.Email)
	}
}

// ReportExpiredRegistrations logs how many access windows closed since the
// start of the day. Informational only; the entitlement check denies expired
// registrations on its own.
func ReportExpiredRegistrations() {
	db := database.Database.Db

	var count int64
	if err := db.Model(&models.Registration{}).
		Where("payment_status = ?", models.PaymentStatusCompleted).
		Where("access_expires_at BETWEEN ? AND ?", now.BeginningOfDay(), time.Now()).
		Count(&count).Error; err != nil {
		log.Printf("[EXPIRY-SCHEDULER] Error counting expired registrations: %v", err)
		return
	}

	if count > 0 {
		log.Printf("[EXPIRY-SCHEDULER] %d registrations expired today", count)
	}
}
