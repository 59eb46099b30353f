package services

import (
	"errors"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
	"food-ordering-api/policy"
	"food-ordering-api/statemachine"

	"gorm.io/gorm"
)

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

type CreatePaymentMethodInput struct {
	CardNumber  string `json:"card_number" binding:"required"`
	CardHolder  string `json:"card_holder" binding:"required"`
	ExpiryMonth int    `json:"expiry_month" binding:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" binding:"required"`
	IsDefault   bool   `json:"is_default"`
}

type UpdatePaymentMethodInput struct {
	CardNumber  *string `json:"card_number"`
	CardHolder  *string `json:"card_holder"`
	ExpiryMonth *int    `json:"expiry_month"`
	ExpiryYear  *int    `json:"expiry_year"`
	IsDefault   *bool   `json:"is_default"`
}

// ListMethods returns the user's payment methods, newest first.
func (s *PaymentService) ListMethods(userID string, role models.Role) ([]models.PaymentMethod, error) {
	if !policy.CanManagePayments(role) {
		return nil, apperr.New(apperr.Forbidden, "only admins can manage payment methods")
	}
	var methods []models.PaymentMethod
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&methods).Error
	return methods, err
}

// CreateMethod adds a payment method. Setting it default clears the default
// flag on the user's other methods in the same transaction, so at most one
// method per user is default at any point.
func (s *PaymentService) CreateMethod(userID string, role models.Role, in CreatePaymentMethodInput) (*models.PaymentMethod, error) {
	if !policy.CanManagePayments(role) {
		return nil, apperr.New(apperr.Forbidden, "only admins can add payment methods")
	}

	method := models.PaymentMethod{
		UserID:      userID,
		CardNumber:  in.CardNumber,
		CardHolder:  in.CardHolder,
		ExpiryMonth: in.ExpiryMonth,
		ExpiryYear:  in.ExpiryYear,
		IsDefault:   in.IsDefault,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if in.IsDefault {
			if err := tx.Model(&models.PaymentMethod{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&method).Error
	})
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// UpdateMethod applies a partial update to an owned payment method. A method
// that does not exist or belongs to someone else yields the same error, so
// the call leaks nothing about other users' methods.
func (s *PaymentService) UpdateMethod(id, userID string, role models.Role, in UpdatePaymentMethodInput) (*models.PaymentMethod, error) {
	if !policy.CanManagePayments(role) {
		return nil, apperr.New(apperr.Forbidden, "only admins can modify payment methods")
	}

	var method models.PaymentMethod
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&method, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.Forbidden, "payment method not found")
			}
			return err
		}
		if method.UserID != userID {
			return apperr.New(apperr.Forbidden, "payment method not found")
		}

		if in.IsDefault != nil && *in.IsDefault {
			if err := tx.Model(&models.PaymentMethod{}).
				Where("user_id = ? AND id <> ?", userID, id).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if in.CardNumber != nil {
			updates["card_number"] = *in.CardNumber
		}
		if in.CardHolder != nil {
			updates["card_holder"] = *in.CardHolder
		}
		if in.ExpiryMonth != nil {
			updates["expiry_month"] = *in.ExpiryMonth
		}
		if in.ExpiryYear != nil {
			updates["expiry_year"] = *in.ExpiryYear
		}
		if in.IsDefault != nil {
			updates["is_default"] = *in.IsDefault
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&method).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// DeleteMethod hard-deletes an owned payment method, same guards as update.
func (s *PaymentService) DeleteMethod(id, userID string, role models.Role) error {
	if !policy.CanManagePayments(role) {
		return apperr.New(apperr.Forbidden, "only admins can delete payment methods")
	}

	var method models.PaymentMethod
	if err := s.DB.First(&method, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.Forbidden, "payment method not found")
		}
		return err
	}
	if method.UserID != userID {
		return apperr.New(apperr.Forbidden, "payment method not found")
	}

	return s.DB.Delete(&method).Error
}

// Process attaches a payment to an order and confirms it, atomically. The
// unique index on payments.order_id serializes concurrent attempts against
// the same order; the loser surfaces as a conflict.
func (s *PaymentService) Process(userID string, role models.Role, orderID, paymentMethodID string) (*models.Payment, error) {
	if !policy.CanCheckout(role) {
		return nil, apperr.New(apperr.Forbidden, "members cannot process payments")
	}

	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "order not found")
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.Payment{}).
			Where("order_id = ?", orderID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperr.New(apperr.Conflict, "order already paid")
		}

		if err := statemachine.CanTransition(order.Status, models.StatusConfirmed, statemachine.ActorPayment); err != nil {
			return apperr.New(apperr.InvalidState, "cannot pay for order in status "+string(order.Status))
		}

		var method models.PaymentMethod
		if err := tx.First(&method, "id = ?", paymentMethodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.Forbidden, "invalid payment method")
			}
			return err
		}
		if method.UserID != userID {
			return apperr.New(apperr.Forbidden, "invalid payment method")
		}

		payment = models.Payment{
			OrderID:         orderID,
			PaymentMethodID: paymentMethodID,
			Amount:          order.TotalAmount,
		}
		if err := tx.Create(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.New(apperr.Conflict, "order already paid")
			}
			return err
		}

		return tx.Model(&order).Update("status", models.StatusConfirmed).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("PaymentMethod").First(&payment, "id = ?", payment.ID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
