package entity

import (
	"gorm.io/gorm"
)

type Partner struct {
	gorm.Model
	Phone         string `json:"phone,omitempty"`
	VehicleNumber string `json:"vehicleNumber,omitempty"`
	IsAvailable   bool   `gorm:"not null;default:true" json:"isAvailable"`

	// last-known position reported from the partner map page
	LastLat *float64 `json:"lastLat,omitempty"`
	LastLng *float64 `json:"lastLng,omitempty"`

	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"-"` // preload when the directory needs name/email

	Orders []Order `gorm:"foreignKey:AssignedToID" json:"-"`
}
