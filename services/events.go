package services

// OrderEvent is pushed to the admin dashboard feed whenever a
// transition or assignment is applied.
type OrderEvent struct {
	OrderID      uint   `json:"orderId"`
	OrderNumber  string `json:"orderNumber"`
	Status       string `json:"status"`
	AssignedToID *uint  `json:"assignedToId,omitempty"`
}

// EventPublisher is satisfied by the websocket hub. A nil publisher is
// fine; services drop events then.
type EventPublisher interface {
	PublishOrderEvent(ev OrderEvent)
}
