package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type PartnerRepository struct {
	DB *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{DB: db}
}

func (r *PartnerRepository) GetByID(partnerID uint) (*entity.Partner, error) {
	var p entity.Partner
	if err := r.DB.Preload("User").First(&p, partnerID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartnerRepository) GetByUserID(userID uint) (*entity.Partner, error) {
	var p entity.Partner
	if err := r.DB.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// PartnerRow is what the admin directory renders per partner.
type PartnerRow struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone,omitempty"`
	VehicleNumber string   `json:"vehicleNumber,omitempty"`
	IsAvailable   bool     `json:"isAvailable"`
	LastLat       *float64 `json:"lastLat,omitempty"`
	LastLng       *float64 `json:"lastLng,omitempty"`
	ActiveOrders  int64    `json:"activeOrders"`
}

func (r *PartnerRepository) ListDirectory() ([]PartnerRow, error) {
	rows := []PartnerRow{}
	err := r.DB.Table("partners AS p").
		Select(`p.id, u.name, u.email, p.phone, p.vehicle_number, p.is_available, p.last_lat, p.last_lng,
			(SELECT COUNT(*) FROM orders o
			 WHERE o.assigned_to_id = p.id
			   AND o.status IN ? AND o.deleted_at IS NULL) AS active_orders`,
			activeStatuses()).
		Joins("JOIN users u ON u.id = p.user_id").
		Where("p.deleted_at IS NULL").
		Order("p.id").
		Scan(&rows).Error
	return rows, err
}

// HasActiveOrder reports whether the partner is mid-delivery.
func (r *PartnerRepository) HasActiveOrder(partnerID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).
		Where("assigned_to_id = ? AND status IN ?", partnerID, activeStatuses()).
		Count(&n).Error
	return n > 0, err
}

func (r *PartnerRepository) UpdateAvailability(tx *gorm.DB, partnerID uint, available bool) error {
	return tx.Model(&entity.Partner{}).
		Where("id = ?", partnerID).
		Update("is_available", available).Error
}

func (r *PartnerRepository) UpdateLocation(tx *gorm.DB, partnerID uint, lat, lng float64) error {
	return tx.Model(&entity.Partner{}).
		Where("id = ?", partnerID).
		Updates(map[string]any{"last_lat": lat, "last_lng": lng}).Error
}

func (r *PartnerRepository) Delete(tx *gorm.DB, partnerID uint) error {
	return tx.Delete(&entity.Partner{}, partnerID).Error
}

func (r *PartnerRepository) CountAll() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Partner{}).Count(&n).Error
	return n, err
}

func (r *PartnerRepository) CountAvailable() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Partner{}).Where("is_available = ?", true).Count(&n).Error
	return n, err
}

func activeStatuses() []string {
	return []string{entity.StatusAssigned, entity.StatusPickedUp, entity.StatusInTransit}
}
