package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Mobile    string     `json:"mobile" gorm:"default:''"`
	Role      string     `json:"role" gorm:"default:'user'"` // user, admin
	Password  string     `json:"password,omitempty" gorm:"not null"`
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false"`
}
