package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Role     string `gorm:"not null;default:partner" json:"role"`
	Avatar   string `json:"avatar,omitempty"`

	// preload only when the partner profile is needed
	PartnerProfile *Partner `gorm:"foreignKey:UserID" json:"-"`
}
