package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	Orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// Create places a new order for the caller
func (h *OrderHandler) Create(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var req services.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Orders.Create(id.UserID, id.Country, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// List returns the caller's visible orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	orders, err := h.Orders.List(id.UserID, id.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// Get returns a single order's full detail
func (h *OrderHandler) Get(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	order, err := h.Orders.Get(c.Param("id"), id.UserID, id.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Cancel cancels an order (admin/manager only)
func (h *OrderHandler) Cancel(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	order, err := h.Orders.Cancel(c.Param("id"), id.UserID, id.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus advances a confirmed order through the kitchen
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Orders.Advance(c.Param("id"), id.UserID, id.Role, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}
