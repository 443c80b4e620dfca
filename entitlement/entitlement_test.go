package entitlement

import (
	"coursehub/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateDeniesWhenCourseMissing(t *testing.T) {
	decision := Evaluate(nil, nil, time.Now())

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonCourseNotFound, decision.Reason)
	assert.Nil(t, decision.ExpiresAt)
}

func TestEvaluateDeniesWhenNotRegistered(t *testing.T) {
	course := &models.Course{Title: "Go Basics", Duration: 4, AccessPeriod: 12}

	decision := Evaluate(course, nil, time.Now())

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNotRegistered, decision.Reason)
}

func TestEvaluateDeniesExpiredAccess(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	course := &models.Course{Duration: 4, AccessPeriod: 12}
	reg := &models.Registration{
		PaymentStatus:   models.PaymentStatusCompleted,
		AccessExpiresAt: now.Add(-time.Hour),
	}

	decision := Evaluate(course, reg, now)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonAccessExpired, decision.Reason)
}

func TestEvaluateChecksExpiryBeforePaymentStatus(t *testing.T) {
	// A stale unpaid registration that is also expired must deny on expiry,
	// not on payment status
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	course := &models.Course{Duration: 4, AccessPeriod: 12}
	reg := &models.Registration{
		PaymentStatus:   models.PaymentStatusPending,
		AccessExpiresAt: now.Add(-time.Hour),
	}

	decision := Evaluate(course, reg, now)

	assert.Equal(t, ReasonAccessExpired, decision.Reason)
}

func TestEvaluateDeniesIncompletePayment(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	course := &models.Course{Duration: 4, AccessPeriod: 12}

	for _, status := range []string{
		models.PaymentStatusPending,
		models.PaymentStatusFailed,
		models.PaymentStatusRefunded,
	} {
		reg := &models.Registration{
			PaymentStatus:   status,
			AccessExpiresAt: now.AddDate(0, 0, 30),
		}

		decision := Evaluate(course, reg, now)

		assert.False(t, decision.Allowed, "status %s must deny", status)
		assert.Equal(t, ReasonPaymentIncomplete, decision.Reason)
	}
}

func TestEvaluateAllowsPaidUnexpiredRegistration(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := now.AddDate(0, 0, 30)
	course := &models.Course{Duration: 4, AccessPeriod: 12}
	reg := &models.Registration{
		PaymentStatus:   models.PaymentStatusCompleted,
		AccessExpiresAt: expiresAt,
	}

	decision := Evaluate(course, reg, now)

	assert.True(t, decision.Allowed)
	assert.Equal(t, ReasonOK, decision.Reason)
	assert.NotNil(t, decision.ExpiresAt)
	assert.Equal(t, expiresAt, *decision.ExpiresAt)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	course := &models.Course{Duration: 6, AccessPeriod: 16}
	reg := &models.Registration{
		PaymentStatus:   models.PaymentStatusCompleted,
		AccessExpiresAt: now.AddDate(0, 0, 10),
	}

	first := Evaluate(course, reg, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(course, reg, now))
	}
}

func TestAccessExpiryUsesCalendarDays(t *testing.T) {
	from := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		duration     int
		accessPeriod int
		wantDays     int
	}{
		{4, 12, 112},
		{6, 16, 154},
		{8, 24, 224},
		{1, 1, 14},
	}

	for _, tc := range cases {
		got := AccessExpiry(from, tc.duration, tc.accessPeriod)
		assert.Equal(t, from.AddDate(0, 0, tc.wantDays), got,
			"duration=%d accessPeriod=%d", tc.duration, tc.accessPeriod)
	}
}

func TestAccessWindowBoundaries(t *testing.T) {
	// Course with duration=4 and accessPeriod=12 grants 112 days of access
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	course := &models.Course{Duration: 4, AccessPeriod: 12}
	reg := &models.Registration{
		PaymentStatus:   models.PaymentStatusCompleted,
		AccessExpiresAt: AccessExpiry(t0, course.Duration, course.AccessPeriod),
	}

	atDay111 := Evaluate(course, reg, t0.AddDate(0, 0, 111))
	assert.True(t, atDay111.Allowed)

	atDay113 := Evaluate(course, reg, t0.AddDate(0, 0, 113))
	assert.False(t, atDay113.Allowed)
	assert.Equal(t, ReasonAccessExpired, atDay113.Reason)
}
