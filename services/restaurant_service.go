package services

import (
	"errors"

	"food-ordering-api/apperr"
	"food-ordering-api/models"

	"gorm.io/gorm"
)

type RestaurantService struct {
	DB *gorm.DB
}

func NewRestaurantService(db *gorm.DB) *RestaurantService {
	return &RestaurantService{DB: db}
}

// List returns the restaurants of the caller's country, menus included.
func (s *RestaurantService) List(country models.Country) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.DB.Preload("MenuItems").
		Where("country = ?", country).
		Find(&restaurants).Error
	return restaurants, err
}

// Get returns a single restaurant. Restaurants of another country are off
// limits regardless of role.
func (s *RestaurantService) Get(id string, country models.Country) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.DB.Preload("MenuItems").First(&restaurant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "restaurant not found")
		}
		return nil, err
	}
	if restaurant.Country != country {
		return nil, apperr.New(apperr.Forbidden, "restaurant not in your country")
	}
	return &restaurant, nil
}

// Menu returns the menu items of a restaurant, same country guard as Get.
func (s *RestaurantService) Menu(restaurantID string, country models.Country) ([]models.MenuItem, error) {
	if _, err := s.Get(restaurantID, country); err != nil {
		return nil, err
	}
	var items []models.MenuItem
	err := s.DB.Where("restaurant_id = ?", restaurantID).Find(&items).Error
	return items, err
}
