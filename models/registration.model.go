package models

import (
	"time"

	"gorm.io/gorm"
)

// Registration is the entitlement record: its existence, a completed payment
// status and an unexpired access window together grant material access.
// The composite unique index enforces at most one registration per
// (user, course) pair. Registrations are never hard-deleted; a refund flips
// PaymentStatus and the row stays for audit.
type Registration struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_registrations_user_course"`
	CourseID        uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_registrations_user_course"`
	PaymentStatus   string    `json:"payment_status" gorm:"default:'pending'"` // pending, completed, failed, refunded
	PaymentID       string    `json:"payment_id"`                              // reference of the granting payment
	PaymentAmount   float64   `json:"payment_amount"`
	AccessExpiresAt time.Time `json:"access_expires_at" gorm:"not null"`
	ReminderSent    bool      `json:"reminder_sent" gorm:"default:false"`
	User            User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course          Course    `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
