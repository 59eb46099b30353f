package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethod struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;index"`
	CardNumber  string    `json:"card_number" gorm:"not null"`
	CardHolder  string    `json:"card_holder" gorm:"not null"`
	ExpiryMonth int       `json:"expiry_month" gorm:"not null"`
	ExpiryYear  int       `json:"expiry_year" gorm:"not null"`
	IsDefault   bool      `json:"is_default" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (pm *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if pm.ID == "" {
		pm.ID = uuid.NewString()
	}
	return nil
}

// Payment records a completed payment. The unique index on OrderID is the
// guard against two payments landing on the same order.
type Payment struct {
	ID              string          `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID         string          `json:"order_id" gorm:"type:uuid;not null;uniqueIndex"`
	PaymentMethodID string          `json:"payment_method_id" gorm:"type:uuid;not null"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty" gorm:"foreignKey:PaymentMethodID"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
