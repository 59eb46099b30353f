package services

import (
	"testing"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "password123"

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role, country models.Country) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         email,
		Role:         role,
		Country:      country,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// createRestaurant seeds a restaurant with two menu items priced 100 and 50.
func createRestaurant(t *testing.T, db *gorm.DB, country models.Country) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		Name:    "Test Kitchen",
		Country: country,
		Address: "1 Test Street",
		MenuItems: []models.MenuItem{
			{Name: "Main", Price: decimal.NewFromInt(100), IsAvailable: true},
			{Name: "Side", Price: decimal.NewFromInt(50), IsAvailable: true},
		},
	}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	return restaurant
}

func createMethod(t *testing.T, db *gorm.DB, userID string, isDefault bool, createdAt time.Time) models.PaymentMethod {
	t.Helper()
	method := models.PaymentMethod{
		UserID:      userID,
		CardNumber:  "4111111111111111",
		CardHolder:  "Card Holder",
		ExpiryMonth: 12,
		ExpiryYear:  2030,
		IsDefault:   isDefault,
		CreatedAt:   createdAt,
	}
	if err := db.Create(&method).Error; err != nil {
		t.Fatalf("create payment method: %v", err)
	}
	return method
}

// placeOrder runs the real order creation path: 2 x item(100) + 1 x item(50).
func placeOrder(t *testing.T, db *gorm.DB, user models.User, restaurant models.Restaurant) *models.Order {
	t.Helper()
	order, err := NewOrderService(db).Create(user.ID, user.Country, CreateOrderInput{
		RestaurantID: restaurant.ID,
		Items: []OrderItemInput{
			{MenuItemID: restaurant.MenuItems[0].ID, Quantity: 2},
			{MenuItemID: restaurant.MenuItems[1].ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return order
}
