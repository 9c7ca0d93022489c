package services

import (
	"errors"
	"sync"

	"backend/entity"
	"backend/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AssignmentService binds a partner to an order. At most one
// assignment per order may be in flight in this process; the guarded
// update inside the transaction is the cross-process backstop, so two
// admins on different instances still cannot double-assign.
type AssignmentService struct {
	DB       *gorm.DB
	Orders   *repository.OrderRepository
	Partners *repository.PartnerRepository
	Events   EventPublisher

	mu       sync.Mutex
	inflight map[uint]struct{}
}

func NewAssignmentService(db *gorm.DB, orders *repository.OrderRepository, partners *repository.PartnerRepository, events EventPublisher) *AssignmentService {
	return &AssignmentService{
		DB:       db,
		Orders:   orders,
		Partners: partners,
		Events:   events,
		inflight: make(map[uint]struct{}),
	}
}

func (s *AssignmentService) acquire(orderID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[orderID]; busy {
		return false
	}
	s.inflight[orderID] = struct{}{}
	return true
}

func (s *AssignmentService) release(orderID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, orderID)
}

// Assign moves a pending or confirmed order to assigned and sets the
// partner, all in one guarded update. A second concurrent call for the
// same order is rejected, never interleaved.
func (s *AssignmentService) Assign(orderID, partnerID uint) (*entity.Order, error) {
	if !s.acquire(orderID) {
		logrus.WithField("orderId", orderID).Warn("concurrent assignment rejected")
		return nil, ErrAssignmentInFlight
	}
	defer s.release(orderID)

	if _, err := s.Partners.GetByID(partnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Orders.GetOrder(orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if o.Status != entity.StatusPending && o.Status != entity.StatusConfirmed {
			return ErrInvalidTransition
		}

		affected, err := s.Orders.AssignGuard(tx, orderID, partnerID,
			[]string{entity.StatusPending, entity.StatusConfirmed})
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

	o, err := s.Orders.GetOrderDetail(orderID)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order": o.OrderNumber, "partnerId": partnerID,
	}).Info("order assigned")
	if s.Events != nil {
		s.Events.PublishOrderEvent(OrderEvent{
			OrderID: o.ID, OrderNumber: o.OrderNumber, Status: o.Status, AssignedToID: o.AssignedToID,
		})
	}
	return o, nil
}
