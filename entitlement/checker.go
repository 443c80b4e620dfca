package entitlement

import (
	"coursehub/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Checker loads the records an access decision depends on and delegates to
// Evaluate. All temporal logic stays in the pure functions.
type Checker struct {
	db  *gorm.DB
	now func() time.Time
}

func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db, now: time.Now}
}

// CheckAccess decides whether the user may view the course's materials
func (ch *Checker) CheckAccess(userID, courseID uint) (Decision, error) {
	var course models.Course
	if err := ch.db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Evaluate(nil, nil, ch.now()), nil
		}
		return Decision{}, err
	}

	var reg models.Registration
	if err := ch.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Evaluate(&course, nil, ch.now()), nil
		}
		return Decision{}, err
	}

	return Evaluate(&course, &reg, ch.now()), nil
}

// EntitledMaterials returns the materials the caller may list for a course.
// Admins see everything, published or not, without the registration gate.
// Regular users go through CheckAccess and only see published materials.
func (ch *Checker) EntitledMaterials(userID, courseID uint, isAdmin bool) ([]models.Material, Decision, error) {
	if isAdmin {
		var course models.Course
		if err := ch.db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, Decision{Reason: ReasonCourseNotFound}, nil
			}
			return nil, Decision{}, err
		}

		var materials []models.Material
		err := ch.db.Where("course_id = ? AND is_deleted = false", courseID).
			Order("order_index asc").Find(&materials).Error
		return materials, Decision{Allowed: true, Reason: ReasonOK}, err
	}

	decision, err := ch.CheckAccess(userID, courseID)
	if err != nil || !decision.Allowed {
		return nil, decision, err
	}

	var materials []models.Material
	err = ch.db.Where("course_id = ? AND is_published = true AND is_deleted = false", courseID).
		Order("order_index asc").Find(&materials).Error
	return materials, decision, err
}
