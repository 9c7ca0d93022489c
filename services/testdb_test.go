package services

import (
	"fmt"
	"testing"

	"backend/entity"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. shared cache keeps the
// whole pool on the same store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.Partner{}, &entity.Order{}, &entity.OrderItem{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedPartner(t *testing.T, db *gorm.DB, name string) *entity.Partner {
	t.Helper()
	user := entity.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", uuid.NewString()),
		Password: "x",
		Role:     "partner",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	partner := entity.Partner{UserID: user.ID, IsAvailable: true}
	if err := db.Create(&partner).Error; err != nil {
		t.Fatalf("seed partner: %v", err)
	}
	return &partner
}

func seedOrder(t *testing.T, svc *OrderService) *entity.Order {
	t.Helper()
	o, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return o
}

// recordingPublisher captures events that would go to the ws feed.
type recordingPublisher struct {
	events []OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(ev OrderEvent) {
	p.events = append(p.events, ev)
}
