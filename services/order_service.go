package services

import (
	"errors"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
	"food-ordering-api/policy"
	"food-ordering-api/statemachine"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderItemInput struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	RestaurantID string           `json:"restaurant_id" binding:"required"`
	Items        []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// Create places a new PENDING order. The restaurant must be in the user's
// country, every item must belong to it, and the total is computed in exact
// decimal arithmetic from prices snapshotted at order time.
func (s *OrderService) Create(userID string, userCountry models.Country, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.New(apperr.Validation, "order needs at least one item")
	}

	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, "id = ?", in.RestaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.Forbidden, "cannot order from restaurants outside your country")
		}
		return nil, err
	}
	if restaurant.Country != userCountry {
		return nil, apperr.New(apperr.Forbidden, "cannot order from restaurants outside your country")
	}

	var menuItems []models.MenuItem
	if err := s.DB.Where("restaurant_id = ?", in.RestaurantID).Find(&menuItems).Error; err != nil {
		return nil, err
	}
	menuByID := make(map[string]models.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		menuByID[mi.ID] = mi
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		mi, ok := menuByID[item.MenuItemID]
		if !ok {
			return nil, apperr.New(apperr.NotFound, "menu item "+item.MenuItemID+" not found")
		}
		if item.Quantity < 1 {
			return nil, apperr.New(apperr.Validation, "quantity must be at least 1")
		}
		total = total.Add(mi.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: mi.ID,
			Quantity:   item.Quantity,
			Price:      mi.Price,
		})
	}

	order := models.Order{
		UserID:       userID,
		RestaurantID: in.RestaurantID,
		Status:       models.StatusPending,
		TotalAmount:  total,
		Items:        orderItems,
	}
	// One transaction: either the order and all its items land, or nothing.
	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return nil, err
	}

	return s.hydrate(order.ID)
}

// List returns orders newest first. Admins and managers see everything,
// members only their own.
func (s *OrderService) List(requesterID string, role models.Role) ([]models.Order, error) {
	query := s.DB.
		Preload("Restaurant").
		Preload("User").
		Preload("Items.MenuItem").
		Preload("Payment").
		Order("created_at desc")
	if role == models.RoleMember {
		query = query.Where("user_id = ?", requesterID)
	}
	var orders []models.Order
	err := query.Find(&orders).Error
	return orders, err
}

// Get returns one fully hydrated order, owner-or-staff only.
func (s *OrderService) Get(orderID, requesterID string, role models.Role) (*models.Order, error) {
	order, err := s.hydrate(orderID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewOrder(role, order.UserID, requesterID) {
		return nil, apperr.New(apperr.Forbidden, "access denied")
	}
	return order, nil
}

// Cancel moves a not-yet-delivered order to CANCELLED. Members cannot cancel
// anything, not even their own orders.
func (s *OrderService) Cancel(orderID, requesterID string, role models.Role) (*models.Order, error) {
	if !policy.CanCancel(role) {
		return nil, apperr.New(apperr.Forbidden, "members cannot cancel orders")
	}

	var order models.Order
	if err := s.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, err
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, statemachine.ActorStaff); err != nil {
		return nil, apperr.New(apperr.InvalidState, "cannot cancel this order")
	}

	if err := s.DB.Model(&order).Update("status", models.StatusCancelled).Error; err != nil {
		return nil, err
	}
	return s.hydrate(orderID)
}

// Advance lets staff move a paid order through the kitchen:
// CONFIRMED -> PREPARING -> DELIVERED. Cancellation has its own operation.
func (s *OrderService) Advance(orderID, requesterID string, role models.Role, to models.OrderStatus) (*models.Order, error) {
	if role == models.RoleMember {
		return nil, apperr.New(apperr.Forbidden, "members cannot update order status")
	}
	if to != models.StatusPreparing && to != models.StatusDelivered {
		return nil, apperr.New(apperr.Validation, "status must be PREPARING or DELIVERED")
	}

	var order models.Order
	if err := s.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, err
	}

	if err := statemachine.CanTransition(order.Status, to, statemachine.ActorStaff); err != nil {
		return nil, apperr.New(apperr.InvalidState, err.Error())
	}

	if err := s.DB.Model(&order).Update("status", to).Error; err != nil {
		return nil, err
	}
	return s.hydrate(orderID)
}

// hydrate loads an order with restaurant, user, items and payment attached.
func (s *OrderService) hydrate(orderID string) (*models.Order, error) {
	var order models.Order
	err := s.DB.
		Preload("Restaurant").
		Preload("User").
		Preload("Items.MenuItem").
		Preload("Payment.PaymentMethod").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, err
	}
	return &order, nil
}
