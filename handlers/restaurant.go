package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	Restaurants *services.RestaurantService
}

func NewRestaurantHandler(restaurants *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{Restaurants: restaurants}
}

// List returns the restaurants of the caller's country
func (h *RestaurantHandler) List(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	restaurants, err := h.Restaurants.List(id.Country)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// Get returns a single restaurant with its menu
func (h *RestaurantHandler) Get(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	restaurant, err := h.Restaurants.Get(c.Param("id"), id.Country)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// Menu returns the menu items of a restaurant
func (h *RestaurantHandler) Menu(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	items, err := h.Restaurants.Menu(c.Param("id"), id.Country)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu_items": items})
}
