// File: /database/database.go
package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"garagehub-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models. Foreign keys carry ON DELETE CASCADE so the
	// database removes vehicles and services when their parent row goes away.
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.Service{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite indexes for the list and dashboard queries

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_customers_user_created ON customers(user_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for customers: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_services_user_submission ON services(user_id, submission_date DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for services: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_services_status ON services(status)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for services status: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var customerCount int64
	db.Model(&models.Customer{}).Count(&customerCount)

	if customerCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	var owner models.User
	if err := db.First(&owner).Error; err != nil {
		fmt.Println("No users yet, skipping seed")
		return nil
	}

	email := "jane@example.com"
	phone := "555-0101"
	customer := models.Customer{
		ID:     uuid.New().String(),
		UserID: owner.ID,
		Name:   "Jane Doe",
		Email:  &email,
		Phone:  &phone,
	}
	if err := db.Create(&customer).Error; err != nil {
		fmt.Printf("Warning: Could not create sample customer: %v\n", err)
		return nil
	}

	vehicle := models.Vehicle{
		ID:          uuid.New().String(),
		UserID:      owner.ID,
		CustomerID:  customer.ID,
		Model:       "Toyota Corolla",
		PlateNumber: "ABC-123",
	}
	if err := db.Create(&vehicle).Error; err != nil {
		fmt.Printf("Warning: Could not create sample vehicle: %v\n", err)
		return nil
	}

	description := "Oil change and brake inspection"
	amount := 89.90
	service := models.Service{
		ID:             uuid.New().String(),
		UserID:         owner.ID,
		CustomerID:     customer.ID,
		VehicleID:      vehicle.ID,
		Description:    &description,
		SubmissionDate: time.Now(),
		AmountPaid:     &amount,
		Status:         models.ServiceStatusPending,
	}
	if err := db.Create(&service).Error; err != nil {
		fmt.Printf("Warning: Could not create sample service: %v\n", err)
		return nil
	}

	fmt.Println("Database seeded with sample shop data")
	return nil
}
