package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PartnerService struct {
	DB     *gorm.DB
	Repo   *repository.PartnerRepository
	Orders *repository.OrderRepository
}

func NewPartnerService(db *gorm.DB, repo *repository.PartnerRepository, orders *repository.OrderRepository) *PartnerService {
	return &PartnerService{DB: db, Repo: repo, Orders: orders}
}

func (s *PartnerService) byUser(userID uint) (*entity.Partner, error) {
	p, err := s.Repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// SetAvailability flips the caller's availability flag. Going
// unavailable mid-delivery is refused.
func (s *PartnerService) SetAvailability(userID uint, available bool) (*entity.Partner, error) {
	p, err := s.byUser(userID)
	if err != nil {
		return nil, err
	}

	if !available {
		busy, err := s.Repo.HasActiveOrder(p.ID)
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, ErrPartnerBusy
		}
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.UpdateAvailability(tx, p.ID, available)
	}); err != nil {
		return nil, err
	}
	p.IsAvailable = available
	logrus.WithFields(logrus.Fields{"partnerId": p.ID, "available": available}).Info("partner availability changed")
	return p, nil
}

// ReportLocation stores the partner's last-known position.
func (s *PartnerService) ReportLocation(userID uint, lat, lng float64) error {
	p, err := s.byUser(userID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.UpdateLocation(tx, p.ID, lat, lng)
	})
}

// OrdersFor lists the caller's assigned orders.
func (s *PartnerService) OrdersFor(userID uint, status string, limit int) ([]entity.Order, error) {
	if status != "" && !ValidStatus(status) {
		return nil, &ValidationError{Msg: "unknown status filter"}
	}
	p, err := s.byUser(userID)
	if err != nil {
		return nil, err
	}
	return s.Orders.ListOrdersForPartner(p.ID, status, limit)
}

// Directory is the admin view of all partners.
func (s *PartnerService) Directory() ([]repository.PartnerRow, error) {
	return s.Repo.ListDirectory()
}

// Remove deletes a partner from the directory; refused while they
// still carry an active order.
func (s *PartnerService) Remove(partnerID uint) error {
	if _, err := s.Repo.GetByID(partnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	busy, err := s.Repo.HasActiveOrder(partnerID)
	if err != nil {
		return err
	}
	if busy {
		return ErrPartnerBusy
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Delete(tx, partnerID)
	})
}
