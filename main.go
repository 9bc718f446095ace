// File: /main.go
package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"garagehub-api/config"
	"garagehub-api/database"
	"garagehub-api/jobs"
	"garagehub-api/middleware"
	"garagehub-api/routes"
	"garagehub-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Email notifications
	emailService := services.NewEmailService(cfg)

	// Remind customers about services pending for more than a week
	reminderJob := jobs.NewPendingReminderJob(db, emailService, 24*time.Hour, 7*24*time.Hour)
	reminderJob.Start()
	defer reminderJob.Stop()

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.Default()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Security headers
	router.Use(middleware.SecurityHeaders())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService)

	// Start server
	log.Printf("Starting GarageHub API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
