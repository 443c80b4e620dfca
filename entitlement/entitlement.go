package entitlement

import (
	"coursehub/models"
	"time"
)

// Denial reason codes returned to the caller so the UI can distinguish
// "never registered" from "expired" from "payment incomplete".
const (
	ReasonOK                = "ok"
	ReasonCourseNotFound    = "course_not_found"
	ReasonNotRegistered     = "not_registered"
	ReasonAccessExpired     = "access_expired"
	ReasonPaymentIncomplete = "payment_incomplete"
)

// Decision is the outcome of an access check
type Decision struct {
	Allowed   bool       `json:"allowed"`
	Reason    string     `json:"reason"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Evaluate decides whether a registration grants material access at the given
// instant. Pure function: identical inputs always produce identical output.
//
// The checks short-circuit in a fixed order: course existence, registration
// existence, expiry, payment status. A stale unpaid registration must deny on
// the earliest failing check and never leak an allow through a later one.
func Evaluate(course *models.Course, reg *models.Registration, now time.Time) Decision {
	if course == nil {
		return Decision{Reason: ReasonCourseNotFound}
	}
	if reg == nil {
		return Decision{Reason: ReasonNotRegistered}
	}
	if now.After(reg.AccessExpiresAt) {
		return Decision{Reason: ReasonAccessExpired}
	}
	if reg.PaymentStatus != models.PaymentStatusCompleted {
		return Decision{Reason: ReasonPaymentIncomplete}
	}

	expiresAt := reg.AccessExpiresAt
	return Decision{Allowed: true, Reason: ReasonOK, ExpiresAt: &expiresAt}
}

// AccessExpiry computes when access granted at `from` runs out. Both the
// teaching window and the review window count, in calendar days (a week is
// always 7 days, never month arithmetic).
func AccessExpiry(from time.Time, durationWeeks, accessPeriodWeeks int) time.Time {
	return from.AddDate(0, 0, 7*(durationWeeks+accessPeriodWeeks))
}
