package services

import (
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

type StatsService struct {
	DB       *gorm.DB
	Orders   *repository.OrderRepository
	Partners *repository.PartnerRepository
}

func NewStatsService(db *gorm.DB, orders *repository.OrderRepository, partners *repository.PartnerRepository) *StatsService {
	return &StatsService{DB: db, Orders: orders, Partners: partners}
}

type MonthlyOrders struct {
	Month  string `json:"month"` // YYYY-MM
	Orders int64  `json:"orders"`
}

type AdminStats struct {
	TotalOrders       int64                    `json:"totalOrders"`
	PendingOrders     int64                    `json:"pendingOrders"`
	TotalPartners     int64                    `json:"totalPartners"`
	AvailablePartners int64                    `json:"availablePartners"`
	OrderStatus       []repository.StatusCount `json:"orderStatus"`
	MonthlyOrders     []MonthlyOrders          `json:"monthlyOrders"`
}

// Stats feeds the admin dashboard cards and charts.
func (s *StatsService) Stats() (*AdminStats, error) {
	out := &AdminStats{}

	var err error
	if out.TotalOrders, err = s.Orders.CountAll(); err != nil {
		return nil, err
	}
	if out.PendingOrders, err = s.Orders.CountWithStatus(entity.StatusPending); err != nil {
		return nil, err
	}
	if out.TotalPartners, err = s.Partners.CountAll(); err != nil {
		return nil, err
	}
	if out.AvailablePartners, err = s.Partners.CountAvailable(); err != nil {
		return nil, err
	}
	if out.OrderStatus, err = s.Orders.CountByStatus(); err != nil {
		return nil, err
	}

	// last six calendar months including the current one
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)
	stamps, err := s.Orders.CreatedAtSince(start)
	if err != nil {
		return nil, err
	}
	buckets := make(map[string]int64, 6)
	for _, ts := range stamps {
		buckets[ts.Format("2006-01")]++
	}
	for i := 0; i < 6; i++ {
		m := start.AddDate(0, i, 0).Format("2006-01")
		out.MonthlyOrders = append(out.MonthlyOrders, MonthlyOrders{Month: m, Orders: buckets[m]})
	}
	return out, nil
}
