package config

import (
	"log"

	"food-ordering-api/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates demo users, restaurants and menus for both countries.
// It is a no-op when users already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Email: "admin@india.com", Name: "Admin India", Role: models.RoleAdmin, Country: models.CountryIndia},
		{Email: "manager@india.com", Name: "Manager India", Role: models.RoleManager, Country: models.CountryIndia},
		{Email: "member@india.com", Name: "Member India", Role: models.RoleMember, Country: models.CountryIndia},
		{Email: "admin@america.com", Name: "Admin America", Role: models.RoleAdmin, Country: models.CountryAmerica},
		{Email: "manager@america.com", Name: "Manager America", Role: models.RoleManager, Country: models.CountryAmerica},
		{Email: "member@america.com", Name: "Member America", Role: models.RoleMember, Country: models.CountryAmerica},
	}
	for i := range users {
		users[i].PasswordHash = string(hash)
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	restaurants := []models.Restaurant{
		{
			Name:        "Spice Garden",
			Description: "Authentic Indian cuisine",
			Country:     models.CountryIndia,
			Address:     "MG Road, Bangalore, India",
			MenuItems: []models.MenuItem{
				{Name: "Butter Chicken", Description: "Creamy tomato-based curry with tender chicken", Price: decimal.NewFromInt(350), Category: "Main Course", IsAvailable: true},
				{Name: "Paneer Tikka", Description: "Grilled cottage cheese with spices", Price: decimal.NewFromInt(280), Category: "Appetizer", IsAvailable: true},
				{Name: "Biryani", Description: "Fragrant rice with spiced meat", Price: decimal.NewFromInt(400), Category: "Main Course", IsAvailable: true},
			},
		},
		{
			Name:        "Curry House",
			Description: "Traditional North Indian food",
			Country:     models.CountryIndia,
			Address:     "Connaught Place, New Delhi, India",
			MenuItems: []models.MenuItem{
				{Name: "Dal Makhani", Description: "Creamy black lentils", Price: decimal.NewFromInt(220), Category: "Main Course", IsAvailable: true},
				{Name: "Naan", Description: "Traditional Indian bread", Price: decimal.NewFromInt(50), Category: "Bread", IsAvailable: true},
			},
		},
		{
			Name:        "Burger Palace",
			Description: "Classic American burgers",
			Country:     models.CountryAmerica,
			Address:     "5th Avenue, New York, USA",
			MenuItems: []models.MenuItem{
				{Name: "Classic Cheeseburger", Description: "Beef patty with cheese, lettuce, and tomato", Price: decimal.RequireFromString("12.99"), Category: "Burgers", IsAvailable: true},
				{Name: "BBQ Bacon Burger", Description: "Burger with BBQ sauce and crispy bacon", Price: decimal.RequireFromString("14.99"), Category: "Burgers", IsAvailable: true},
				{Name: "French Fries", Description: "Crispy golden fries", Price: decimal.RequireFromString("4.99"), Category: "Sides", IsAvailable: true},
			},
		},
		{
			Name:        "Pizza Corner",
			Description: "New York style pizza",
			Country:     models.CountryAmerica,
			Address:     "Broadway, New York, USA",
			MenuItems: []models.MenuItem{
				{Name: "Margherita Pizza", Description: "Classic pizza with tomato and mozzarella", Price: decimal.RequireFromString("16.99"), Category: "Pizza", IsAvailable: true},
				{Name: "Pepperoni Pizza", Description: "Pizza topped with pepperoni", Price: decimal.RequireFromString("18.99"), Category: "Pizza", IsAvailable: true},
			},
		},
	}
	if err := db.Create(&restaurants).Error; err != nil {
		return err
	}

	// Default payment methods for the admins
	for _, u := range []models.User{users[0], users[3]} {
		pm := models.PaymentMethod{
			UserID:      u.ID,
			CardNumber:  "4111111111111111",
			CardHolder:  u.Name,
			ExpiryMonth: 12,
			ExpiryYear:  2026,
			IsDefault:   true,
		}
		if err := db.Create(&pm).Error; err != nil {
			return err
		}
	}

	log.Println("Database seeded")
	return nil
}
