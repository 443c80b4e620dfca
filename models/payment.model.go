package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusCancelled  = "cancelled"
	PaymentStatusRefunded   = "refunded"

	PaymentMethodMTN        = "MTN"
	PaymentMethodOrange     = "Orange"
	PaymentMethodCreditCard = "Credit Card"
)

// PaymentMethods lists the supported payment rails
var PaymentMethods = []string{PaymentMethodMTN, PaymentMethodOrange, PaymentMethodCreditCard}

// Payment records one payment attempt. Failed attempts are never retried in
// place; a resubmission creates a fresh record.
type Payment struct {
	gorm.Model
	UserID            uint           `json:"user_id" gorm:"index;not null"`
	CourseID          uint           `json:"course_id" gorm:"index;not null"`
	Amount            float64        `json:"amount" gorm:"not null"` // always the course price at creation
	PaymentMethod     string         `json:"payment_method" gorm:"not null"`
	Status            string         `json:"status" gorm:"default:'pending';index"`
	PaymentReference  string         `json:"payment_reference" gorm:"unique;not null"`
	TransactionID     string         `json:"transaction_id"`     // set on provider response
	ProviderReference string         `json:"provider_reference"` // set on provider response
	Metadata          datatypes.JSON `json:"metadata"`           // denormalized audit data
	RefundedAt        *time.Time     `json:"refunded_at"`
	RefundedBy        *uint          `json:"refunded_by"`
	IsDeleted         bool           `gorm:"default:false"`
}
