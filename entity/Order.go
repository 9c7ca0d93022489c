package entity

import (
	"gorm.io/gorm"
)

// Order statuses. delivered and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusAssigned  = "assigned"
	StatusPickedUp  = "picked_up"
	StatusInTransit = "in_transit"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

type Order struct {
	gorm.Model
	OrderNumber   string `gorm:"uniqueIndex;not null" json:"orderNumber"`
	CustomerName  string `gorm:"not null" json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	PickupAddress   string `json:"pickupAddress"`
	DeliveryAddress string `gorm:"not null" json:"deliveryAddress"`

	PickupLocation   GeoPoint `gorm:"embedded;embeddedPrefix:pickup_" json:"pickupLocation"`
	DeliveryLocation GeoPoint `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryLocation"`

	Status string `gorm:"not null;default:pending;index" json:"status"`

	// weak reference — the order never owns the partner
	AssignedToID *uint    `json:"assignedToId,omitempty"`
	AssignedTo   *Partner `json:"assignedTo,omitempty"`

	Items []OrderItem `json:"items"`
}

// Terminal reports whether no further transition may leave the status.
func Terminal(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}
