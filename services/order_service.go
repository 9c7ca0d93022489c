package services

import (
	"errors"
	"strings"

	"backend/entity"
	"backend/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type OrderService struct {
	DB     *gorm.DB
	Repo   *repository.OrderRepository
	Events EventPublisher
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, events EventPublisher) *OrderService {
	return &OrderService{DB: db, Repo: repo, Events: events}
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// Create validates, then writes the order and its items in one
// transaction. New orders always start pending.
func (s *OrderService) Create(in OrderInput) (*entity.Order, error) {
	if err := ValidateOrderInput(in); err != nil {
		return nil, err
	}

	order := entity.Order{
		OrderNumber:      newOrderNumber(),
		CustomerName:     strings.TrimSpace(in.CustomerName),
		CustomerPhone:    strings.TrimSpace(in.CustomerPhone),
		PickupAddress:    strings.TrimSpace(in.PickupAddress),
		DeliveryAddress:  strings.TrimSpace(in.DeliveryAddress),
		PickupLocation:   in.PickupLocation,
		DeliveryLocation: in.DeliveryLocation,
		Status:           entity.StatusPending,
	}
	for _, it := range in.Items {
		order.Items = append(order.Items, entity.OrderItem{
			Name: strings.TrimSpace(it.Name),
			Qty:  it.Qty,
		})
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.CreateOrder(tx, &order)
	}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"order": order.OrderNumber, "id": order.ID}).Info("order created")
	return &order, nil
}

// Update rewrites the order fields and items. Same validation as
// Create; closed orders are immutable.
func (s *OrderService) Update(orderID uint, in OrderInput) (*entity.Order, error) {
	if err := ValidateOrderInput(in); err != nil {
		return nil, err
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if entity.Terminal(o.Status) {
		return nil, ErrOrderClosed
	}

	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.OrderItem{Name: strings.TrimSpace(it.Name), Qty: it.Qty})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"customer_name":    strings.TrimSpace(in.CustomerName),
			"customer_phone":   strings.TrimSpace(in.CustomerPhone),
			"pickup_address":   strings.TrimSpace(in.PickupAddress),
			"delivery_address": strings.TrimSpace(in.DeliveryAddress),
			"pickup_lat":       in.PickupLocation.Lat,
			"pickup_lng":       in.PickupLocation.Lng,
			"delivery_lat":     in.DeliveryLocation.Lat,
			"delivery_lng":     in.DeliveryLocation.Lng,
		}
		if err := tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
			return err
		}
		return s.Repo.ReplaceItems(tx, orderID, items)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderDetail(orderID)
}

func (s *OrderService) Delete(orderID uint) error {
	if _, err := s.Repo.GetOrder(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteOrder(tx, orderID)
	})
}

func (s *OrderService) Get(orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderDetail(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *OrderService) List(status string, limit int) ([]entity.Order, error) {
	if status != "" && !ValidStatus(status) {
		return nil, &ValidationError{Msg: "unknown status filter"}
	}
	return s.Repo.ListOrders(status, limit)
}

// AdminChangeStatus applies an admin-initiated transition. Assignment
// has its own endpoint and is not reachable from here.
func (s *OrderService) AdminChangeStatus(orderID uint, to string) (*entity.Order, error) {
	if !ValidStatus(to) {
		return nil, &ValidationError{Msg: "unknown status"}
	}
	if to == entity.StatusAssigned {
		return nil, ErrInvalidTransition
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanTransition(o.Status, to) {
		return nil, ErrInvalidTransition
	}

	return s.applyTransition(orderID, o.Status, to)
}

// PartnerChangeStatus applies a partner-initiated transition: only on
// an order assigned to that partner, only to picked_up or delivered.
func (s *OrderService) PartnerChangeStatus(partnerID, orderID uint, to string) (*entity.Order, error) {
	if !ValidStatus(to) {
		return nil, &ValidationError{Msg: "unknown status"}
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.AssignedToID == nil || *o.AssignedToID != partnerID {
		return nil, ErrForbidden
	}
	if !PartnerCanTransition(o.Status, to) {
		if CanTransition(o.Status, to) {
			return nil, ErrForbidden
		}
		return nil, ErrInvalidTransition
	}

	return s.applyTransition(orderID, o.Status, to)
}

// applyTransition performs the guarded swap; zero rows means another
// writer got there first and the request no longer matches the table.
func (s *OrderService) applyTransition(orderID uint, from, to string) (*entity.Order, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o, err := s.Repo.GetOrderDetail(orderID)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order": o.OrderNumber, "from": from, "to": to,
	}).Info("order status changed")
	if s.Events != nil {
		s.Events.PublishOrderEvent(OrderEvent{
			OrderID: o.ID, OrderNumber: o.OrderNumber, Status: o.Status, AssignedToID: o.AssignedToID,
		})
	}
	return o, nil
}
