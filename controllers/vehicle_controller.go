// File: /controllers/vehicle_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"garagehub-api/models"
	"garagehub-api/utils"
)

type VehicleController struct {
	db *gorm.DB
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{db: db}
}

type CreateVehicleRequest struct {
	CustomerID  string `json:"customer_id" binding:"required"`
	Model       string `json:"model" binding:"required"`
	PlateNumber string `json:"plate_number" binding:"required"`
}

type UpdateVehicleRequest struct {
	Model       string `json:"model" binding:"required"`
	PlateNumber string `json:"plate_number" binding:"required"`
}

func (vc *VehicleController) GetVehicles(c *gin.Context) {
	userID := c.GetString("user_id")

	var vehicles []models.Vehicle
	if err := vc.db.Preload("Customer").Where("user_id = ?", userID).Order("created_at DESC").Find(&vehicles).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch vehicles")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	// The target customer must belong to the acting user
	var customer models.Customer
	if err := vc.db.First(&customer, "id = ? AND user_id = ?", req.CustomerID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Customer not found or access denied")
		return
	}

	// Plate numbers are unique across the whole system
	var existing models.Vehicle
	if err := vc.db.Where("plate_number = ?", req.PlateNumber).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Plate number already registered")
		return
	}

	vehicle := models.Vehicle{
		ID:          uuid.New().String(),
		UserID:      userID,
		CustomerID:  customer.ID,
		Model:       req.Model,
		PlateNumber: req.PlateNumber,
	}

	if err := vc.db.Create(&vehicle).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ? AND user_id = ?", vehicleID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Vehicle not found or access denied")
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.PlateNumber != vehicle.PlateNumber {
		var existing models.Vehicle
		if err := vc.db.Where("plate_number = ?", req.PlateNumber).First(&existing).Error; err == nil {
			utils.SendError(c, http.StatusConflict, "Plate number already registered")
			return
		}
	}

	updates := map[string]interface{}{
		"model":        req.Model,
		"plate_number": req.PlateNumber,
	}

	if err := vc.db.Model(&vehicle).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	utils.SendSuccess(c, "Vehicle updated successfully", nil)
}

// DeleteVehicle removes the vehicle and, through the database cascade, its
// service history.
func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ? AND user_id = ?", vehicleID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Vehicle not found or access denied")
		return
	}

	if err := vc.db.Delete(&vehicle).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	utils.SendSuccess(c, "Vehicle deleted successfully", nil)
}
