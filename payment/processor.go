package payment

import (
	"coursehub/entitlement"
	"coursehub/models"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyRegistered = errors.New("user is already registered for this course")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrProviderDeclined  = errors.New("payment declined by provider")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrNotRefundable     = errors.New("only completed payments can be refunded")
)

// Default is the processor used by the HTTP controllers. Set up in main.
var Default *Processor

// Setup initializes the default processor with the real providers
func Setup(db *gorm.DB) {
	Default = NewProcessor(db)
}

// Processor runs payment attempts against a provider and, on success, creates
// the registration that grants entitlement. This is the only path that
// creates registrations.
type Processor struct {
	db        *gorm.DB
	providers map[string]Provider
	locks     registrationLocks
	now       func() time.Time
}

func NewProcessor(db *gorm.DB) *Processor {
	return NewProcessorWithProviders(db, map[string]Provider{
		models.PaymentMethodMTN:        NewMTNProvider(),
		models.PaymentMethodOrange:     NewOrangeProvider(),
		models.PaymentMethodCreditCard: NewCreditCardProvider(),
	})
}

func NewProcessorWithProviders(db *gorm.DB, providers map[string]Provider) *Processor {
	return &Processor{
		db:        db,
		providers: providers,
		now:       time.Now,
	}
}

// Process runs one payment attempt for (user, course). On provider success it
// creates the registration; on decline the payment is left in failed state
// and the caller may retry with a fresh attempt.
//
// The registration-existence check runs BEFORE any payment record is created
// so a duplicate attempt never leaves an orphaned processing payment behind.
// The authoritative duplicate check is repeated inside the per-(user, course)
// critical section, because the store offers no cross-record transactionality
// against concurrent attempts.
func (p *Processor) Process(userID, courseID uint, method string, details Details) (*models.Payment, *models.Registration, error) {
	var user models.User
	if err := p.db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	var course models.Course
	if err := p.db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCourseNotFound
		}
		return nil, nil, err
	}

	if p.isRegistered(userID, courseID) {
		return nil, nil, ErrAlreadyRegistered
	}

	// Denormalized audit data travels with the payment record
	metadata, _ := json.Marshal(map[string]interface{}{
		"courseName": course.Title,
		"userEmail":  user.Email,
	})

	// Amount is always the server-side course price, never client-supplied
	pay := models.Payment{
		UserID:           userID,
		CourseID:         courseID,
		Amount:           course.Price,
		PaymentMethod:    method,
		Status:           models.PaymentStatusProcessing,
		PaymentReference: fmt.Sprintf("PAY-%s-%s", strings.ReplaceAll(method, " ", ""), uuid.NewString()),
		Metadata:         datatypes.JSON(metadata),
	}
	if err := p.db.Create(&pay).Error; err != nil {
		return nil, nil, err
	}

	provider, ok := p.providers[method]
	if !ok {
		p.updateStatus(&pay, models.PaymentStatusFailed)
		return &pay, nil, ErrUnsupportedMethod
	}

	result := provider.Process(details, course.Price)

	if !result.Success {
		p.updateStatus(&pay, models.PaymentStatusFailed)
		log.Printf("[PAYMENT] attempt %s declined by %s: %s", pay.PaymentReference, provider.Name(), result.Message)
		return &pay, nil, fmt.Errorf("%w: %s", ErrProviderDeclined, result.Message)
	}

	reg, err := p.grantRegistration(&pay, &course, result)
	if err != nil {
		return &pay, nil, err
	}

	log.Printf("[PAYMENT] attempt %s completed via %s, registration %d expires %s",
		pay.PaymentReference, provider.Name(), reg.ID, reg.AccessExpiresAt.Format(time.RFC3339))
	return &pay, reg, nil
}

// grantRegistration finalizes a provider-approved payment. The duplicate
// re-check and the insert run under the per-(user, course) lock so two
// concurrent approved attempts can never both create a registration; the
// loser's payment is marked cancelled.
func (p *Processor) grantRegistration(pay *models.Payment, course *models.Course, result Result) (*models.Registration, error) {
	unlock := p.locks.lock(pay.UserID, pay.CourseID)
	defer unlock()

	if p.isRegistered(pay.UserID, pay.CourseID) {
		p.updateStatus(pay, models.PaymentStatusCancelled)
		return nil, ErrAlreadyRegistered
	}

	reg := models.Registration{
		UserID:          pay.UserID,
		CourseID:        pay.CourseID,
		PaymentStatus:   models.PaymentStatusCompleted,
		PaymentID:       pay.PaymentReference,
		PaymentAmount:   pay.Amount,
		AccessExpiresAt: entitlement.AccessExpiry(p.now(), course.Duration, course.AccessPeriod),
	}

	// Payment completion and registration creation commit together
	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reg).Error; err != nil {
			return err
		}
		return tx.Model(pay).Updates(map[string]interface{}{
			"status":             models.PaymentStatusCompleted,
			"transaction_id":     result.TransactionID,
			"provider_reference": result.ProviderReference,
		}).Error
	})
	if err != nil {
		// The unique (user, course) index is the storage-level backstop
		if p.isRegistered(pay.UserID, pay.CourseID) {
			p.updateStatus(pay, models.PaymentStatusCancelled)
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	pay.Status = models.PaymentStatusCompleted
	pay.TransactionID = result.TransactionID
	pay.ProviderReference = result.ProviderReference
	return &reg, nil
}

// Refund moves a completed payment to refunded and revokes the matching
// registration's payment status in the same transaction, so the two records
// cannot drift apart on a crash between updates.
func (p *Processor) Refund(adminID, paymentID uint) (*models.Payment, error) {
	var pay models.Payment
	if err := p.db.Where("id = ? AND is_deleted = false", paymentID).First(&pay).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if pay.Status != models.PaymentStatusCompleted {
		return nil, ErrNotRefundable
	}

	refundedAt := p.now()
	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&pay).Updates(map[string]interface{}{
			"status":      models.PaymentStatusRefunded,
			"refunded_at": refundedAt,
			"refunded_by": adminID,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Registration{}).
			Where("payment_id = ?", pay.PaymentReference).
			Update("payment_status", models.PaymentStatusRefunded).Error
	})
	if err != nil {
		return nil, err
	}

	pay.Status = models.PaymentStatusRefunded
	pay.RefundedAt = &refundedAt
	pay.RefundedBy = &adminID
	log.Printf("[PAYMENT] %s refunded by admin %d", pay.PaymentReference, adminID)
	return &pay, nil
}

func (p *Processor) isRegistered(userID, courseID uint) bool {
	var reg models.Registration
	return p.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&reg).Error == nil
}

func (p *Processor) updateStatus(pay *models.Payment, status string) {
	if err := p.db.Model(pay).Update("status", status).Error; err != nil {
		log.Printf("[PAYMENT] failed to mark %s as %s: %v", pay.PaymentReference, status, err)
		return
	}
	pay.Status = status
}

// registrationLocks serializes registration creation per (user, course) key.
// Locks are never reclaimed; the map grows with distinct purchase pairs,
// which is bounded by registrations anyway.
type registrationLocks struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func (r *registrationLocks) lock(userID, courseID uint) func() {
	r.mu.Lock()
	if r.locks == nil {
		r.locks = make(map[uint64]*sync.Mutex)
	}
	key := uint64(userID)<<32 | uint64(courseID)
	lk, ok := r.locks[key]
	if !ok {
		lk = &sync.Mutex{}
		r.locks[key] = lk
	}
	r.mu.Unlock()

	lk.Lock()
	return lk.Unlock
}
