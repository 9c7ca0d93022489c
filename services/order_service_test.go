package services

import (
	"errors"
	"strings"
	"testing"

	"backend/entity"
	"backend/repository"
)

func newOrderService(t *testing.T) (*OrderService, *recordingPublisher) {
	t.Helper()
	db := newTestDB(t)
	pub := &recordingPublisher{}
	return NewOrderService(db, repository.NewOrderRepository(db), pub), pub
}

func TestCreateOrderPersists(t *testing.T) {
	svc, _ := newOrderService(t)

	in := validInput()
	in.Items = []OrderItemInput{{Name: "Box A", Qty: 2}, {Name: "Box B", Qty: 1}}

	o, err := svc.Create(in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if o.Status != entity.StatusPending {
		t.Errorf("new order should be pending, got %s", o.Status)
	}
	if !strings.HasPrefix(o.OrderNumber, "ORD-") {
		t.Errorf("unexpected order number %q", o.OrderNumber)
	}

	got, err := svc.Get(o.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].Qty != 2 {
		t.Errorf("expected qty 2 preserved, got %d", got.Items[0].Qty)
	}
	if got.DeliveryLocation.Lat != 18.5204 || got.DeliveryLocation.Lng != 73.8567 {
		t.Errorf("delivery location not preserved: %+v", got.DeliveryLocation)
	}
}

func TestCreateOrderRejectedWritesNothing(t *testing.T) {
	svc, _ := newOrderService(t)

	in := validInput()
	in.Items = []OrderItemInput{{Name: "Box A", Qty: 0}}

	if _, err := svc.Create(in); err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	n, err := svc.Repo.CountAll()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("rejected create must not write, found %d orders", n)
	}
}

func TestCreateOrderNumbersAreUnique(t *testing.T) {
	svc, _ := newOrderService(t)
	a := seedOrder(t, svc)
	b := seedOrder(t, svc)
	if a.OrderNumber == b.OrderNumber {
		t.Errorf("order numbers must differ, both %q", a.OrderNumber)
	}
}

func TestAdminChangeStatusHappyPath(t *testing.T) {
	svc, pub := newOrderService(t)
	o := seedOrder(t, svc)

	got, err := svc.AdminChangeStatus(o.ID, entity.StatusConfirmed)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if got.Status != entity.StatusConfirmed {
		t.Errorf("expected confirmed, got %s", got.Status)
	}
	if len(pub.events) != 1 || pub.events[0].Status != entity.StatusConfirmed {
		t.Errorf("expected one confirmed event, got %+v", pub.events)
	}
}

func TestAdminChangeStatusInvalidLeavesStateUnchanged(t *testing.T) {
	svc, pub := newOrderService(t)
	o := seedOrder(t, svc)

	_, err := svc.AdminChangeStatus(o.ID, entity.StatusDelivered)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	got, err := svc.Get(o.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Status != entity.StatusPending {
		t.Errorf("rejected transition mutated status to %s", got.Status)
	}
	if len(pub.events) != 0 {
		t.Errorf("rejected transition must not publish events, got %+v", pub.events)
	}
}

func TestAdminChangeStatusCannotAssignDirectly(t *testing.T) {
	svc, _ := newOrderService(t)
	o := seedOrder(t, svc)

	if _, err := svc.AdminChangeStatus(o.ID, entity.StatusAssigned); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("status endpoint must not assign, got %v", err)
	}
}

func TestAdminCancelIsAbsorbing(t *testing.T) {
	svc, _ := newOrderService(t)
	o := seedOrder(t, svc)

	if _, err := svc.AdminChangeStatus(o.ID, entity.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := svc.AdminChangeStatus(o.ID, entity.StatusConfirmed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancelled order must not transition, got %v", err)
	}
}

func TestAdminCannotCancelDelivered(t *testing.T) {
	svc, _ := newOrderService(t)
	o := seedOrder(t, svc)

	if err := svc.DB.Model(&entity.Order{}).Where("id = ?", o.ID).
		Update("status", entity.StatusDelivered).Error; err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := svc.AdminChangeStatus(o.ID, entity.StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("delivered order must not be cancellable, got %v", err)
	}
}

func TestAdminChangeStatusUnknownOrder(t *testing.T) {
	svc, _ := newOrderService(t)
	if _, err := svc.AdminChangeStatus(999, entity.StatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func setAssigned(t *testing.T, svc *OrderService, orderID, partnerID uint) {
	t.Helper()
	err := svc.DB.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{"status": entity.StatusAssigned, "assigned_to_id": partnerID}).Error
	if err != nil {
		t.Fatalf("setup assigned: %v", err)
	}
}

func TestPartnerChangeStatusFlow(t *testing.T) {
	svc, _ := newOrderService(t)
	partner := seedPartner(t, svc.DB, "Ravi")
	o := seedOrder(t, svc)
	setAssigned(t, svc, o.ID, partner.ID)

	got, err := svc.PartnerChangeStatus(partner.ID, o.ID, entity.StatusPickedUp)
	if err != nil {
		t.Fatalf("pick up failed: %v", err)
	}
	if got.Status != entity.StatusPickedUp {
		t.Errorf("expected picked_up, got %s", got.Status)
	}

	got, err = svc.PartnerChangeStatus(partner.ID, o.ID, entity.StatusDelivered)
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if got.Status != entity.StatusDelivered {
		t.Errorf("expected delivered, got %s", got.Status)
	}
}

func TestPartnerChangeStatusForeignOrder(t *testing.T) {
	svc, _ := newOrderService(t)
	owner := seedPartner(t, svc.DB, "Ravi")
	other := seedPartner(t, svc.DB, "Meera")
	o := seedOrder(t, svc)
	setAssigned(t, svc, o.ID, owner.ID)

	if _, err := svc.PartnerChangeStatus(other.ID, o.ID, entity.StatusPickedUp); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign order, got %v", err)
	}
}

func TestPartnerChangeStatusAdminOnlyTargets(t *testing.T) {
	svc, _ := newOrderService(t)
	partner := seedPartner(t, svc.DB, "Ravi")
	o := seedOrder(t, svc)
	setAssigned(t, svc, o.ID, partner.ID)

	// picked_up -> in_transit is in the table but admin-only
	if _, err := svc.PartnerChangeStatus(partner.ID, o.ID, entity.StatusPickedUp); err != nil {
		t.Fatalf("pick up failed: %v", err)
	}
	if _, err := svc.PartnerChangeStatus(partner.ID, o.ID, entity.StatusInTransit); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for in_transit, got %v", err)
	}

	// cancel is admin-only even on own order
	if _, err := svc.PartnerChangeStatus(partner.ID, o.ID, entity.StatusCancelled); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for cancel, got %v", err)
	}

	// and an unlisted transition is invalid, not just forbidden
	if _, err := svc.PartnerChangeStatus(partner.ID, o.ID, entity.StatusPickedUp); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for repeat pick up, got %v", err)
	}
}

func TestUpdateOrderValidatesAndReplacesItems(t *testing.T) {
	svc, _ := newOrderService(t)
	o := seedOrder(t, svc)

	in := validInput()
	in.CustomerName = "Updated Name"
	in.Items = []OrderItemInput{{Name: "Crate C", Qty: 5}}

	got, err := svc.Update(o.ID, in)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.CustomerName != "Updated Name" {
		t.Errorf("expected updated name, got %q", got.CustomerName)
	}
	if len(got.Items) != 1 || got.Items[0].Qty != 5 {
		t.Errorf("items not replaced: %+v", got.Items)
	}

	in.CustomerName = "  "
	if _, err := svc.Update(o.ID, in); err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateOrderClosedIsImmutable(t *testing.T) {
	svc, _ := newOrderService(t)
	o := seedOrder(t, svc)

	if _, err := svc.AdminChangeStatus(o.ID, entity.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := svc.Update(o.ID, validInput()); !errors.Is(err, ErrOrderClosed) {
		t.Fatalf("expected ErrOrderClosed, got %v", err)
	}
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	svc, _ := newOrderService(t)
	o := seedOrder(t, svc)

	if err := svc.Delete(o.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(o.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	var n int64
	if err := svc.DB.Unscoped().Model(&entity.OrderItem{}).
		Where("order_id = ? AND deleted_at IS NULL", o.ID).Count(&n).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if n != 0 {
		t.Errorf("expected items removed, found %d", n)
	}
}

func TestListOrdersStatusFilter(t *testing.T) {
	svc, _ := newOrderService(t)
	a := seedOrder(t, svc)
	seedOrder(t, svc)

	if _, err := svc.AdminChangeStatus(a.ID, entity.StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	confirmed, err := svc.List(entity.StatusConfirmed, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(confirmed) != 1 || confirmed[0].ID != a.ID {
		t.Errorf("expected only the confirmed order, got %+v", confirmed)
	}

	if _, err := svc.List("bogus", 0); err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error for unknown filter, got %v", err)
	}
}
