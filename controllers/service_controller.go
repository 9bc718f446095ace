// File: /controllers/service_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"garagehub-api/models"
	"garagehub-api/services"
	"garagehub-api/utils"
)

type ServiceController struct {
	db     *gorm.DB
	mailer services.Mailer
}

func NewServiceController(db *gorm.DB, mailer services.Mailer) *ServiceController {
	return &ServiceController{db: db, mailer: mailer}
}

type CreateServiceRequest struct {
	CustomerID     string     `json:"customer_id" binding:"required"`
	VehicleID      string     `json:"vehicle_id" binding:"required"`
	Description    string     `json:"description"`
	SubmissionDate time.Time  `json:"submission_date" binding:"required"`
	CollectionDate *time.Time `json:"collection_date"`
	AmountPaid     *float64   `json:"amount_paid"`
	Status         string     `json:"status" binding:"omitempty,oneof=pending completed"`
}

type UpdateServiceRequest struct {
	Description    string     `json:"description"`
	SubmissionDate *time.Time `json:"submission_date"`
	CollectionDate *time.Time `json:"collection_date"`
	AmountPaid     *float64   `json:"amount_paid"`
	Status         string     `json:"status" binding:"omitempty,oneof=pending completed"`
}

func (sc *ServiceController) GetServices(c *gin.Context) {
	userID := c.GetString("user_id")

	var serviceRecords []models.Service
	err := sc.db.Preload("Customer").Preload("Vehicle").
		Where("user_id = ?", userID).
		Order("submission_date DESC").
		Find(&serviceRecords).Error
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch services")
		return
	}

	c.JSON(http.StatusOK, serviceRecords)
}

func (sc *ServiceController) CreateService(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidAmount(req.AmountPaid) {
		utils.SendValidationError(c, "amount_paid must not be negative")
		return
	}

	// The vehicle must belong to the acting user and to the given customer
	var vehicle models.Vehicle
	if err := sc.db.First(&vehicle, "id = ? AND user_id = ?", req.VehicleID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Vehicle not found or access denied")
		return
	}
	if vehicle.CustomerID != req.CustomerID {
		utils.SendValidationError(c, "vehicle does not belong to the given customer")
		return
	}

	status := req.Status
	if status == "" {
		status = models.ServiceStatusPending
	}

	service := models.Service{
		ID:             uuid.New().String(),
		UserID:         userID,
		CustomerID:     req.CustomerID,
		VehicleID:      req.VehicleID,
		Description:    nilIfEmpty(req.Description),
		SubmissionDate: req.SubmissionDate,
		CollectionDate: req.CollectionDate,
		AmountPaid:     req.AmountPaid,
		Status:         status,
	}

	if err := sc.db.Create(&service).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	userID := c.GetString("user_id")
	serviceID := c.Param("id")

	var service models.Service
	if err := sc.db.First(&service, "id = ? AND user_id = ?", serviceID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Service not found or access denied")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidAmount(req.AmountPaid) {
		utils.SendValidationError(c, "amount_paid must not be negative")
		return
	}

	updates := map[string]interface{}{}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.SubmissionDate != nil {
		updates["submission_date"] = *req.SubmissionDate
	}
	if req.CollectionDate != nil {
		updates["collection_date"] = *req.CollectionDate
	}
	if req.AmountPaid != nil {
		updates["amount_paid"] = *req.AmountPaid
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	prevStatus := service.Status
	if err := sc.db.Model(&service).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	// Notify the customer once the vehicle becomes ready for collection
	if req.Status == models.ServiceStatusCompleted && prevStatus != models.ServiceStatusCompleted {
		sc.notifyCompleted(service)
	}

	utils.SendSuccess(c, "Service updated successfully", nil)
}

func (sc *ServiceController) DeleteService(c *gin.Context) {
	userID := c.GetString("user_id")
	serviceID := c.Param("id")

	var service models.Service
	if err := sc.db.First(&service, "id = ? AND user_id = ?", serviceID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Service not found or access denied")
		return
	}

	if err := sc.db.Delete(&service).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	utils.SendSuccess(c, "Service deleted successfully", nil)
}

func (sc *ServiceController) notifyCompleted(service models.Service) {
	var customer models.Customer
	if err := sc.db.First(&customer, "id = ?", service.CustomerID).Error; err != nil || customer.Email == nil {
		return
	}

	var vehicle models.Vehicle
	if err := sc.db.First(&vehicle, "id = ?", service.VehicleID).Error; err != nil {
		return
	}

	go func() {
		if err := sc.mailer.SendServiceCompletedEmail(*customer.Email, customer.Name, vehicle.Model); err != nil {
			fmt.Printf("Failed to send completion email: %v\n", err)
		}
	}()
}
