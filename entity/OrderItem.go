package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"`
	Qty  int    `gorm:"not null" json:"qty"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"` // preload only for order detail
}
