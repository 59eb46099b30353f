package services

import (
	"errors"
	"testing"
	"time"

	"food-ordering-api/apperr"
	"food-ordering-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestListMethodsAdminOnly(t *testing.T) {
	db := testDB(t)
	svc := NewPaymentService(db)
	admin := createUser(t, db, "admin@india.com", models.RoleAdmin, models.CountryIndia)
	manager := createUser(t, db, "manager@india.com", models.RoleManager, models.CountryIndia)
	member := createUser(t, db, "member@india.com", models.RoleMember, models.CountryIndia)

	createMethod(t, db, admin.ID, true, time.Now().Add(-time.Hour))
	newest := createMethod(t, db, admin.ID, false, time.Now())

	methods, err := svc.ListMethods(admin.ID, admin.Role)
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(methods) != 2 || methods[0].ID != newest.ID {
		t.Errorf("methods not newest first: %d entries", len(methods))
	}

	if _, err := svc.ListMethods(manager.ID, manager.Role); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("list as manager: got %v, want Forbidden", err)
	}
	if _, err := svc.ListMethods(member.ID, member.Role); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("list as member: got %v, want Forbidden", err)
	}
}

func TestCreateMethodDefaultInvariant(t *testing.T) {
	db := testDB(t)
	svc := NewPaymentService(db)
	admin := createUser(t, db, "admin@india.com", models.RoleAdmin, models.CountryIndia)

	first, err := svc.CreateMethod(admin.ID, admin.Role, CreatePaymentMethodInput{
		CardNumber: "4111111111111111", CardHolder: "First", ExpiryMonth: 1, ExpiryYear: 2030, IsDefault: true,
	})
	if err != nil {
		t.Fatalf("create first method: %v", err)
	}

	second, err := svc.CreateMethod(admin.ID, admin.Role, CreatePaymentMethodInput{
		CardNumber: "4222222222222222", CardHolder: "Second", ExpiryMonth: 2, ExpiryYear: 2031, IsDefault: true,
	})
	if err != nil {
		t.Fatalf("create second method: %v", err)
	}
	if !second.IsDefault {
		t.Error("second method should be default")
	}

	var defaults int64
	if err := db.Model(&models.PaymentMethod{}).
		Where("user_id = ? AND is_default = ?", admin.ID, true).
		Count(&defaults).Error; err != nil {
		t.Fatal(err)
	}
	if defaults != 1 {
		t.Errorf("default methods = %d, want exactly 1", defaults)
	}

	var reloaded models.PaymentMethod
	if err := db.First(&reloaded, "id = ?", first.ID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.IsDefault {
		t.Error("first method should have lost its default flag")
	}
}

func TestCreateMethodNonAdmin(t *testing.T) {
	db := testDB(t)
	svc := NewPaymentService(db)
	manager := createUser(t, db, "manager@india.com", models.RoleManager, models.CountryIndia)

	_, err := svc.CreateMethod(manager.ID, manager.Role, CreatePaymentMethodInput{
		CardNumber: "4111111111111111", CardHolder: "M", ExpiryMonth: 1, ExpiryYear: 2030,
	})
	if !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("create as manager: got %v, want Forbidden", err)
	}
}

func TestUpdateMethod(t *testing.T) {
	db := testDB(t)
	svc := NewPaymentService(db)
	admin := createUser(t, db, "admin@india.com", models.RoleAdmin, models.CountryIndia)

	method := createMethod(t, db, admin.ID, false, time.Now())
	other := createMethod(t, db, admin.ID, true, time.Now())

	holder := "Renamed Holder"
	if _, err := svc.UpdateMethod(method.ID, admin.ID, admin.Role, UpdatePaymentMethodInput{CardHolder: &holder}); err != nil {
		t.Fatalf("partial update: %v", err)
	}
	var reloaded models.PaymentMethod
	if err := db.First(&reloaded, "id = ?", method.ID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.CardHolder != holder {
		t.Errorf("card holder = %s, want %s", reloaded.CardHolder, holder)
	}
	if reloaded.CardNumber != method.CardNumber {
		t.Error("untouched field changed by partial update")
	}

	// Promoting to default clears the other method's flag.
	isDefault := true
	if _, err := svc.UpdateMethod(method.ID, admin.ID, admin.Role, UpdatePaymentMethodInput{IsDefault: &isDefault}); err != nil {
		t.Fatalf("promote to default: %v", err)
	}
	var defaults int64
	if err := db.Model(&models.PaymentMethod{}).
		Where("user_id = ? AND is_default = ?", admin.ID, true).
		Count(&defaults).Error; err != nil {
		t.Fatal(err)
	}
	if defaults != 1 {
		t.Errorf("default methods = %d, want exactly 1", defaults)
	}
	reloaded = models.PaymentMethod{}
	if err := db.First(&reloaded, "id = ?", other.ID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.IsDefault {
		t.Error("other method kept its default flag")
	}
}

func TestUpdateMethodHidesForeignMethods(t *testing.T) {
	db := testDB(t)
	svc := NewPaymentService(db)
	adminA := createUser(t, db, "a@india.com", models.RoleAdmin, models.CountryIndia)
	adminB := createUser(t, db, "b@india.com", models.RoleAdmin, models.CountryIndia)

	foreign := createMethod(t, db, adminB.ID, false, time.Now())

	holder := "X"
	_, err := svc.UpdateMethod(foreign.ID, adminA.ID, adminA.Role, UpdatePaymentMethodInput{CardHolder: &holder})
	if !apperr.Is(err, apperr.Forbidden) {
		t.Fatalf("update foreign method: got %v, want Forbidden", err)
	}
	// Same response as a missing id, so existence is not leaked.
	_, missingErr := svc.UpdateMethod("00000000-0000-0000-0000-000000000000", adminA.ID, adminA.Role, UpdatePaymentMethodInput{CardHolder: &holder})
	if !apperr.Is(missingErr, apperr.Forbidden) || missingErr.Error() != err.Error() {
		t.Errorf("missing vs foreign method responses differ: %v / %v", missingErr, err)
	}
}

func TestDeleteMethod(t *testing.T) {
	db := testDB(t)
	svc := NewPaymentService(db)
	admin := createUser(t, db, "admin@india.com", models.RoleAdmin, models.CountryIndia)
	other := createUser(t, db, "other@india.com", models.RoleAdmin, models.CountryIndia)
	member := createUser(t, db, "member@india.com", models.RoleMember, models.CountryIndia)

	method := createMethod(t, db, admin.ID, false, time.Now())

	if err := svc.DeleteMethod(method.ID, other.ID, other.Role); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("delete foreign method: got %v, want Forbidden", err)
	}
	if err := svc.DeleteMethod(method.ID, member.ID, member.Role); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("delete as member: got %v, want Forbidden", err)
	}
	if err := svc.DeleteMethod(method.ID, admin.ID, admin.Role); err != nil {
		t.Fatalf("delete own method: %v", err)
	}

	var count int64
	if err := db.Model(&models.PaymentMethod{}).Where("id = ?", method.ID).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Error("method still present after delete")
	}
}

func TestProcessPayment(t *testing.T) {
	db := testDB(t)
	svc := NewPaymentService(db)
	restaurant := createRestaurant(t, db, models.CountryIndia)
	member := createUser(t, db, "member@india.com", models.RoleMember, models.CountryIndia)
	admin := createUser(t, db, "admin@india.com", models.RoleAdmin, models.CountryIndia)

	order := placeOrder(t, db, member, restaurant) // total 250
	method := createMethod(t, db, admin.ID, true, time.Now())

	payment, err := svc.Process(admin.ID, admin.Role, order.ID, method.ID)
	if err != nil {
		t.Fatalf("process payment: %v", err)
	}
	if !payment.Amount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("payment amount = %s, want order total 250", payment.Amount)
	}
	if payment.PaymentMethod == nil || payment.PaymentMethod.ID != method.ID {
		t.Error("payment not hydrated with its method")
	}

	var confirmed models.Order
	if err := db.First(&confirmed, "id = ?", order.ID).Error; err != nil {
		t.Fatal(err)
	}
	if confirmed.Status != models.StatusConfirmed {
		t.Errorf("order status = %s, want CONFIRMED", confirmed.Status)
	}

	// Paying the same order again conflicts.
	if _, err := svc.Process(admin.ID, admin.Role, order.ID, method.ID); !apperr.Is(err, apperr.Conflict) {
		t.Errorf("second payment: got %v, want Conflict", err)
	}
}

func TestProcessPaymentGuards(t *testing.T) {
	db := testDB(t)
	svc := NewPaymentService(db)
	restaurant := createRestaurant(t, db, models.CountryIndia)
	member := createUser(t, db, "member@india.com", models.RoleMember, models.CountryIndia)
	admin := createUser(t, db, "admin@india.com", models.RoleAdmin, models.CountryIndia)
	otherAdmin := createUser(t, db, "other@india.com", models.RoleAdmin, models.CountryIndia)

	order := placeOrder(t, db, member, restaurant)
	method := createMethod(t, db, admin.ID, true, time.Now())
	foreignMethod := createMethod(t, db, otherAdmin.ID, true, time.Now())

	if _, err := svc.Process(member.ID, member.Role, order.ID, method.ID); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("member pays: got %v, want Forbidden", err)
	}
	if _, err := svc.Process(admin.ID, admin.Role, "00000000-0000-0000-0000-000000000000", method.ID); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("pay missing order: got %v, want NotFound", err)
	}
	if _, err := svc.Process(admin.ID, admin.Role, order.ID, foreignMethod.ID); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("pay with foreign method: got %v, want Forbidden", err)
	}
	if _, err := svc.Process(admin.ID, admin.Role, order.ID, "00000000-0000-0000-0000-000000000000"); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("pay with missing method: got %v, want Forbidden", err)
	}

	// A cancelled order cannot be paid.
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.StatusCancelled).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Process(admin.ID, admin.Role, order.ID, method.ID); !apperr.Is(err, apperr.InvalidState) {
		t.Errorf("pay cancelled order: got %v, want InvalidState", err)
	}
}

// The unique index on payments.order_id is the backstop when two concurrent
// payments both pass the pre-check: the loser's insert must come back as
// gorm.ErrDuplicatedKey so Process reports a conflict instead of a raw
// driver error.
func TestDuplicatePaymentInsertIsTranslated(t *testing.T) {
	db := testDB(t)
	svc := NewPaymentService(db)
	restaurant := createRestaurant(t, db, models.CountryIndia)
	member := createUser(t, db, "member@india.com", models.RoleMember, models.CountryIndia)
	admin := createUser(t, db, "admin@india.com", models.RoleAdmin, models.CountryIndia)

	order := placeOrder(t, db, member, restaurant)
	method := createMethod(t, db, admin.ID, true, time.Now())

	if _, err := svc.Process(admin.ID, admin.Role, order.ID, method.ID); err != nil {
		t.Fatalf("process payment: %v", err)
	}

	dup := models.Payment{
		OrderID:         order.ID,
		PaymentMethodID: method.ID,
		Amount:          order.TotalAmount,
	}
	if err := db.Create(&dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("second payment row: got %v, want gorm.ErrDuplicatedKey", err)
	}
}

// The end-to-end scenario: an India member orders 2 x 100 + 1 x 50 from an
// India restaurant, then can neither cancel nor pay.
func TestMemberOrderScenario(t *testing.T) {
	db := testDB(t)
	orders := NewOrderService(db)
	payments := NewPaymentService(db)
	restaurant := createRestaurant(t, db, models.CountryIndia)
	member := createUser(t, db, "member@india.com", models.RoleMember, models.CountryIndia)
	admin := createUser(t, db, "admin@india.com", models.RoleAdmin, models.CountryIndia)

	order := placeOrder(t, db, member, restaurant)
	if !order.TotalAmount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("total = %s, want 250", order.TotalAmount)
	}
	if order.Status != models.StatusPending {
		t.Errorf("status = %s, want PENDING", order.Status)
	}

	method := createMethod(t, db, admin.ID, true, time.Now())

	if _, err := orders.Cancel(order.ID, member.ID, member.Role); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("member cancel: got %v, want Forbidden", err)
	}
	if _, err := payments.Process(member.ID, member.Role, order.ID, method.ID); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("member pay: got %v, want Forbidden", err)
	}
}
