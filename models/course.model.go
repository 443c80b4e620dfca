package models

import "gorm.io/gorm"

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// CourseLevels lists the accepted values for Course.Level
var CourseLevels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Course represents a purchasable course
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" gorm:"default:0"`
	Duration     int     `json:"duration" gorm:"default:1"`      // teaching window in weeks
	AccessPeriod int     `json:"access_period" gorm:"default:1"` // extra review window in weeks
	Instructor   string  `json:"instructor"`
	Category     string  `json:"category"`
	Level        string  `json:"level" gorm:"default:'Beginner'"` // Beginner, Intermediate, Advanced
	IsDeleted    bool    `gorm:"default:false"`
}
