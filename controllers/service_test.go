// File: /controllers/service_test.go
package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garagehub-api/models"
)

func TestCreateServiceDefaultsToPending(t *testing.T) {
	r, _, _ := setupTestRouter(t)
	token := registerUser(t, r, "owner@example.com")
	customerID := createCustomer(t, r, token, "Jane Doe")
	vehicleID := createVehicle(t, r, token, customerID, "Toyota Corolla", "ABC-123")

	w := doRequest(r, http.MethodPost, "/api/v1/services", token, gin.H{
		"customer_id":     customerID,
		"vehicle_id":      vehicleID,
		"submission_date": time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var service models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &service))
	assert.Equal(t, models.ServiceStatusPending, service.Status)
	assert.Nil(t, service.AmountPaid)
}

func TestCreateServiceNegativeAmountRejected(t *testing.T) {
	r, _, _ := setupTestRouter(t)
	token := registerUser(t, r, "owner@example.com")
	customerID := createCustomer(t, r, token, "Jane Doe")
	vehicleID := createVehicle(t, r, token, customerID, "Toyota Corolla", "ABC-123")

	w := doRequest(r, http.MethodPost, "/api/v1/services", token, gin.H{
		"customer_id":     customerID,
		"vehicle_id":      vehicleID,
		"submission_date": time.Now().Format(time.RFC3339),
		"amount_paid":     -10.0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateServiceVehicleCustomerMismatch(t *testing.T) {
	r, _, _ := setupTestRouter(t)
	token := registerUser(t, r, "owner@example.com")
	customer1 := createCustomer(t, r, token, "Jane Doe")
	customer2 := createCustomer(t, r, token, "John Roe")
	vehicle1 := createVehicle(t, r, token, customer1, "Toyota Corolla", "ABC-123")

	w := doRequest(r, http.MethodPost, "/api/v1/services", token, gin.H{
		"customer_id":     customer2,
		"vehicle_id":      vehicle1,
		"submission_date": time.Now().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateServiceInvalidStatus(t *testing.T) {
	r, _, _ := setupTestRouter(t)
	token := registerUser(t, r, "owner@example.com")
	customerID := createCustomer(t, r, token, "Jane Doe")
	vehicleID := createVehicle(t, r, token, customerID, "Toyota Corolla", "ABC-123")

	w := doRequest(r, http.MethodPost, "/api/v1/services", token, gin.H{
		"customer_id":     customerID,
		"vehicle_id":      vehicleID,
		"submission_date": time.Now().Format(time.RFC3339),
		"status":          "in_progress",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetServicesOrderedAndEmbedded(t *testing.T) {
	r, _, _ := setupTestRouter(t)
	token := registerUser(t, r, "owner@example.com")
	customerID := createCustomer(t, r, token, "Jane Doe")
	vehicleID := createVehicle(t, r, token, customerID, "Toyota Corolla", "ABC-123")

	older := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	createService(t, r, token, customerID, vehicleID, older, floatPtr(50))
	createService(t, r, token, customerID, vehicleID, newer, floatPtr(75))

	w := doRequest(r, http.MethodGet, "/api/v1/services", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var serviceRecords []models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &serviceRecords))
	require.Len(t, serviceRecords, 2)

	// Newest submission first
	assert.True(t, serviceRecords[0].SubmissionDate.After(serviceRecords[1].SubmissionDate))
	require.NotNil(t, serviceRecords[0].Customer)
	assert.Equal(t, "Jane Doe", serviceRecords[0].Customer.Name)
	require.NotNil(t, serviceRecords[0].Vehicle)
	assert.Equal(t, "ABC-123", serviceRecords[0].Vehicle.PlateNumber)
}

func TestUpdateServicePartial(t *testing.T) {
	r, db, _ := setupTestRouter(t)
	token := registerUser(t, r, "owner@example.com")
	customerID := createCustomer(t, r, token, "Jane Doe")
	vehicleID := createVehicle(t, r, token, customerID, "Toyota Corolla", "ABC-123")
	serviceID := createService(t, r, token, customerID, vehicleID, time.Now(), nil)

	w := doRequest(r, http.MethodPut, "/api/v1/services/"+serviceID, token, gin.H{
		"amount_paid": 120.50,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var service models.Service
	require.NoError(t, db.First(&service, "id = ?", serviceID).Error)
	require.NotNil(t, service.AmountPaid)
	assert.Equal(t, 120.50, *service.AmountPaid)
	assert.Equal(t, models.ServiceStatusPending, service.Status)
	assert.NotNil(t, service.Description)
}

func TestCompletingServiceSendsEmail(t *testing.T) {
	r, _, mailer := setupTestRouter(t)
	token := registerUser(t, r, "owner@example.com")

	w := doRequest(r, http.MethodPost, "/api/v1/customers", token, gin.H{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var customer models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))

	vehicleID := createVehicle(t, r, token, customer.ID, "Toyota Corolla", "ABC-123")
	serviceID := createService(t, r, token, customer.ID, vehicleID, time.Now(), floatPtr(100))

	w = doRequest(r, http.MethodPut, "/api/v1/services/"+serviceID, token, gin.H{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Eventually(t, func() bool {
		return mailer.completedCount() == 1
	}, eventuallyTimeout, eventuallyTick)

	// Completing an already completed service does not notify again
	w = doRequest(r, http.MethodPut, "/api/v1/services/"+serviceID, token, gin.H{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, mailer.completedCount())
}

func TestDeleteService(t *testing.T) {
	r, db, _ := setupTestRouter(t)
	token := registerUser(t, r, "owner@example.com")
	customerID := createCustomer(t, r, token, "Jane Doe")
	vehicleID := createVehicle(t, r, token, customerID, "Toyota Corolla", "ABC-123")
	serviceID := createService(t, r, token, customerID, vehicleID, time.Now(), floatPtr(100))

	w := doRequest(r, http.MethodDelete, "/api/v1/services/"+serviceID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Service{}).Count(&count).Error)
	assert.Zero(t, count)

	// The vehicle survives
	require.NoError(t, db.Model(&models.Vehicle{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
