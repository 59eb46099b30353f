package routes

import (
	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authSvc := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)

	authH := handlers.NewAuthHandler(authSvc)
	restaurantH := handlers.NewRestaurantHandler(services.NewRestaurantService(db))
	orderH := handlers.NewOrderHandler(services.NewOrderService(db))
	paymentH := handlers.NewPaymentHandler(services.NewPaymentService(db))

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", authH.Register)
		public.POST("/auth/login", authH.Login)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(authSvc))
	{
		auth.GET("/me", authH.Me)

		// Browsing is scoped to the caller's country
		auth.GET("/restaurants", restaurantH.List)
		auth.GET("/restaurants/:id", restaurantH.Get)
		auth.GET("/restaurants/:id/menu", restaurantH.Menu)

		// Orders: any role can place and view (view is owner-scoped for members)
		auth.POST("/orders", orderH.Create)
		auth.GET("/orders", orderH.List)
		auth.GET("/orders/:id", orderH.Get)
	}

	// ── Staff routes (admin/manager) ───────────────────────────────
	staff := r.Group("/api")
	staff.Use(middleware.AuthRequired(authSvc), middleware.RoleRequired(models.RoleAdmin, models.RoleManager))
	{
		staff.PUT("/orders/:id/cancel", orderH.Cancel)
		staff.PUT("/orders/:id/status", orderH.UpdateStatus)
		staff.POST("/payments", paymentH.Process)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(authSvc), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/payment-methods", paymentH.ListMethods)
		admin.POST("/payment-methods", paymentH.CreateMethod)
		admin.PUT("/payment-methods/:id", paymentH.UpdateMethod)
		admin.DELETE("/payment-methods/:id", paymentH.DeleteMethod)
	}
}
