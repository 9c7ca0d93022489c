package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderDetail loads the order with items and the assigned partner.
func (r *OrderRepository) GetOrderDetail(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("Items").
		Preload("AssignedTo").
		Preload("AssignedTo.User").
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrders returns orders newest first, optionally filtered by status.
func (r *OrderRepository) ListOrders(status string, limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	q := r.DB.Preload("Items").Preload("AssignedTo").Order("id DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	out := []entity.Order{}
	err := q.Find(&out).Error
	return out, err
}

// ListOrdersForPartner returns orders assigned to one partner.
func (r *OrderRepository) ListOrdersForPartner(partnerID uint, status string, limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	q := r.DB.Preload("Items").
		Where("assigned_to_id = ?", partnerID).
		Order("id DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	out := []entity.Order{}
	err := q.Find(&out).Error
	return out, err
}

// UpdateStatusGuard flips status only when the current value still
// matches — the compare-and-swap that keeps concurrent writers from
// producing a transition outside the allowed table.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// AssignGuard binds a partner and moves the order to assigned, only
// from a state where assignment is meaningful.
func (r *OrderRepository) AssignGuard(tx *gorm.DB, orderID, partnerID uint, fromStatuses []string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status IN ?", orderID, fromStatuses).
		Updates(map[string]any{
			"status":         entity.StatusAssigned,
			"assigned_to_id": partnerID,
		})
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) DeleteOrder(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Order{}, orderID).Error
}

func (r *OrderRepository) ReplaceItems(tx *gorm.DB, orderID uint, items []entity.OrderItem) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = orderID
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// ---------------- Aggregates (admin dashboard) ----------------

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func (r *OrderRepository) CountByStatus() ([]StatusCount, error) {
	var out []StatusCount
	err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) CountAll() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Count(&n).Error
	return n, err
}

func (r *OrderRepository) CountWithStatus(status string) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// CreatedAtSince returns creation timestamps newer than the cutoff.
// Bucketing happens in Go so sqlite and postgres behave the same.
func (r *OrderRepository) CreatedAtSince(cutoff time.Time) ([]time.Time, error) {
	var stamps []time.Time
	err := r.DB.Model(&entity.Order{}).
		Where("created_at >= ?", cutoff).
		Pluck("created_at", &stamps).Error
	return stamps, err
}
