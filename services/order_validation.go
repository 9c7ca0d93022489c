package services

import (
	"fmt"
	"strings"

	"backend/entity"
)

type OrderItemInput struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

type OrderInput struct {
	CustomerName     string           `json:"customerName"`
	CustomerPhone    string           `json:"customerPhone"`
	PickupAddress    string           `json:"pickupAddress"`
	DeliveryAddress  string           `json:"deliveryAddress"`
	PickupLocation   entity.GeoPoint  `json:"pickupLocation"`
	DeliveryLocation entity.GeoPoint  `json:"deliveryLocation"`
	Items            []OrderItemInput `json:"items"`
}

// ValidateOrderInput applies the creation rules in order; the first
// failure wins and nothing is written.
func ValidateOrderInput(in OrderInput) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return &ValidationError{Msg: "customer name is required"}
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return &ValidationError{Msg: "delivery address is required"}
	}
	if in.DeliveryLocation.IsZero() {
		return &ValidationError{Msg: "delivery location must be selected"}
	}
	if len(in.Items) == 0 {
		return &ValidationError{Msg: "at least one item is required"}
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" {
			return &ValidationError{Msg: fmt.Sprintf("item #%d name is required", i+1)}
		}
		if it.Qty < 1 {
			return &ValidationError{Msg: fmt.Sprintf("item #%d quantity must be greater than 0", i+1)}
		}
	}
	return nil
}
