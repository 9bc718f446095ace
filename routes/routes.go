// File: /routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"garagehub-api/config"
	"garagehub-api/controllers"
	"garagehub-api/middleware"
	"garagehub-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, mailer services.Mailer) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, mailer)
	customerController := controllers.NewCustomerController(db)
	vehicleController := controllers.NewVehicleController(db)
	serviceController := controllers.NewServiceController(db, mailer)
	dashboardController := controllers.NewDashboardController(db)
	exportController := controllers.NewExportController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.ValidateJSON())

	// Auth routes (public)
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(30, 10))
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/auth/me", authController.Me)

		// Customer routes
		customers := protected.Group("/customers")
		{
			customers.GET("", customerController.GetCustomers)
			customers.POST("", customerController.CreateCustomer)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.DELETE("/:id", customerController.DeleteCustomer)
			customers.GET("/:id/vehicles", customerController.GetCustomerVehicles)
			customers.GET("/:id/services", customerController.GetCustomerServices)
		}

		// Vehicle routes
		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("", vehicleController.GetVehicles)
			vehicles.POST("", vehicleController.CreateVehicle)
			vehicles.PUT("/:id", vehicleController.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleController.DeleteVehicle)
		}

		// Service routes
		serviceRoutes := protected.Group("/services")
		{
			serviceRoutes.GET("", serviceController.GetServices)
			serviceRoutes.POST("", serviceController.CreateService)
			serviceRoutes.PUT("/:id", serviceController.UpdateService)
			serviceRoutes.DELETE("/:id", serviceController.DeleteService)
		}

		// Dashboard routes
		protected.GET("/dashboard/stats", dashboardController.GetStats)

		// Export routes (CSV and PDF downloads)
		exports := protected.Group("/exports")
		{
			exports.GET("/customers/csv", exportController.CustomersCSV)
			exports.GET("/customers/pdf", exportController.CustomersPDF)
			exports.GET("/vehicles/csv", exportController.VehiclesCSV)
			exports.GET("/vehicles/pdf", exportController.VehiclesPDF)
			exports.GET("/services/csv", exportController.ServicesCSV)
			exports.GET("/services/pdf", exportController.ServicesPDF)
		}
	}
}

// SetupCORS allows the dashboard frontend to call the API from another origin
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
