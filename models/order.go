package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID           string          `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       string          `json:"user_id" gorm:"type:uuid;not null;index"`
	User         *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID string          `json:"restaurant_id" gorm:"type:uuid;not null;index"`
	Restaurant   *Restaurant     `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status       OrderStatus     `json:"status" gorm:"not null;default:'PENDING'"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Items        []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Payment      *Payment        `json:"payment,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID         string          `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID    string          `json:"order_id" gorm:"type:uuid;not null;index"`
	MenuItemID string          `json:"menu_item_id" gorm:"type:uuid;not null"`
	MenuItem   *MenuItem       `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"` // snapshot price at time of order
	CreatedAt  time.Time       `json:"created_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}
