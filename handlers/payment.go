package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// ListMethods returns the caller's payment methods, newest first
func (h *PaymentHandler) ListMethods(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	methods, err := h.Payments.ListMethods(id.UserID, id.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(methods), "payment_methods": methods})
}

// CreateMethod adds a payment method for the caller
func (h *PaymentHandler) CreateMethod(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var req services.CreatePaymentMethodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method, err := h.Payments.CreateMethod(id.UserID, id.Role, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment_method": method})
}

// UpdateMethod applies a partial update to an owned payment method
func (h *PaymentHandler) UpdateMethod(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var req services.UpdatePaymentMethodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method, err := h.Payments.UpdateMethod(c.Param("id"), id.UserID, id.Role, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_method": method})
}

// DeleteMethod removes an owned payment method
func (h *PaymentHandler) DeleteMethod(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	if err := h.Payments.DeleteMethod(c.Param("id"), id.UserID, id.Role); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted"})
}

type ProcessPaymentRequest struct {
	OrderID         string `json:"order_id" binding:"required"`
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
}

// Process pays for an order and confirms it
func (h *PaymentHandler) Process(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.Payments.Process(id.UserID, id.Role, req.OrderID, req.PaymentMethodID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Payment processed", "payment": payment})
}
