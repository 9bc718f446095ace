// File: /controllers/testutil_test.go
package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"garagehub-api/middleware"
	"garagehub-api/models"
)

const testJWTSecret = "test-secret"

// Polling bounds for assertions on work done in background goroutines.
const (
	eventuallyTimeout = 2 * time.Second
	eventuallyTick    = 10 * time.Millisecond
)

// stubMailer records notifications instead of dialing SMTP.
type stubMailer struct {
	mu        sync.Mutex
	welcome   []string
	completed []string
	reminders []string
}

func (m *stubMailer) SendWelcomeEmail(email, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcome = append(m.welcome, email)
	return nil
}

func (m *stubMailer) SendServiceCompletedEmail(email, customerName, vehicleModel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, email)
	return nil
}

func (m *stubMailer) SendPendingReminderEmail(email, customerName, vehicleModel string, daysPending int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders = append(m.reminders, email)
	return nil
}

func (m *stubMailer) completedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.completed)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.Service{},
	))

	return db
}

// setupTestRouter wires the controllers the same way routes.SetupRoutes
// does, minus the rate limiter.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *stubMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	mailer := &stubMailer{}

	authController := NewAuthController(db, testJWTSecret, mailer)
	customerController := NewCustomerController(db)
	vehicleController := NewVehicleController(db)
	serviceController := NewServiceController(db, mailer)
	dashboardController := NewDashboardController(db)
	exportController := NewExportController(db)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.Use(middleware.ValidateJSON())

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(testJWTSecret))
	{
		protected.GET("/auth/me", authController.Me)

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

		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("", vehicleController.GetVehicles)
			vehicles.POST("", vehicleController.CreateVehicle)
			vehicles.PUT("/:id", vehicleController.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleController.DeleteVehicle)
		}

		serviceRoutes := protected.Group("/services")
		{
			serviceRoutes.GET("", serviceController.GetServices)
			serviceRoutes.POST("", serviceController.CreateService)
			serviceRoutes.PUT("/:id", serviceController.UpdateService)
			serviceRoutes.DELETE("/:id", serviceController.DeleteService)
		}

		protected.GET("/dashboard/stats", dashboardController.GetStats)

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

	return r, db, mailer
}

func doRequest(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r http.Handler, email string) string {
	t.Helper()

	w := doRequest(r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test Owner",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createCustomer(t *testing.T, r http.Handler, token, name string) string {
	t.Helper()

	w := doRequest(r, http.MethodPost, "/api/v1/customers", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var customer models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))
	return customer.ID
}

func createVehicle(t *testing.T, r http.Handler, token, customerID, model, plate string) string {
	t.Helper()

	w := doRequest(r, http.MethodPost, "/api/v1/vehicles", token, gin.H{
		"customer_id":  customerID,
		"model":        model,
		"plate_number": plate,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var vehicle models.Vehicle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vehicle))
	return vehicle.ID
}

func createService(t *testing.T, r http.Handler, token, customerID, vehicleID string, submitted time.Time, amount *float64) string {
	t.Helper()

	w := doRequest(r, http.MethodPost, "/api/v1/services", token, gin.H{
		"customer_id":     customerID,
		"vehicle_id":      vehicleID,
		"description":     "Routine maintenance",
		"submission_date": submitted.Format(time.RFC3339),
		"amount_paid":     amount,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var service models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &service))
	return service.ID
}

func floatPtr(f float64) *float64 {
	return &f
}
