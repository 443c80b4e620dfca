package models

import "gorm.io/gorm"

const (
	MaterialTypePDF   = "PDF"
	MaterialTypeVideo = "Video"
	MaterialTypeHTML  = "HTML"
	MaterialTypeLink  = "Link"
	MaterialTypeOther = "Other"
)

// MaterialTypes lists the accepted values for Material.Type
var MaterialTypes = []string{MaterialTypePDF, MaterialTypeVideo, MaterialTypeHTML, MaterialTypeLink, MaterialTypeOther}

// Material represents a single piece of gated course content
type Material struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type" gorm:"not null"`            // PDF, Video, HTML, Link, Other
	Content     string `json:"content,omitempty" gorm:"type:text"` // URL or embedded HTML
	OrderIndex  int    `json:"order_index" gorm:"default:0"`    // display sequence
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
	Course      Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
