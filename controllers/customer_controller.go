// File: /controllers/customer_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"garagehub-api/models"
	"garagehub-api/utils"
)

type CustomerController struct {
	db *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{db: db}
}

type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (cc *CustomerController) GetCustomers(c *gin.Context) {
	userID := c.GetString("user_id")

	var customers []models.Customer
	err := cc.db.
		Select("customers.*, " +
			"(SELECT COUNT(*) FROM vehicles WHERE vehicles.customer_id = customers.id) AS vehicles_count, " +
			"(SELECT COUNT(*) FROM services WHERE services.customer_id = customers.id) AS services_count").
		Where("customers.user_id = ?", userID).
		Order("created_at DESC").
		Find(&customers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	userID := c.GetString("user_id")
	customerID := c.Param("id")

	var customer models.Customer
	if err := cc.db.First(&customer, "id = ? AND user_id = ?", customerID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found or access denied"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// GetCustomerVehicles lists the vehicles registered to one customer.
func (cc *CustomerController) GetCustomerVehicles(c *gin.Context) {
	userID := c.GetString("user_id")
	customerID := c.Param("id")

	var customer models.Customer
	if err := cc.db.First(&customer, "id = ? AND user_id = ?", customerID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found or access denied"})
		return
	}

	var vehicles []models.Vehicle
	if err := cc.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetCustomerServices lists the service history of one customer.
func (cc *CustomerController) GetCustomerServices(c *gin.Context) {
	userID := c.GetString("user_id")
	customerID := c.Param("id")

	var customer models.Customer
	if err := cc.db.First(&customer, "id = ? AND user_id = ?", customerID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found or access denied"})
		return
	}

	var serviceRecords []models.Service
	if err := cc.db.Where("customer_id = ?", customerID).Order("submission_date DESC").Find(&serviceRecords).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, serviceRecords)
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := models.Customer{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   req.Name,
		Email:  nilIfEmpty(req.Email),
		Phone:  nilIfEmpty(req.Phone),
	}

	if err := cc.db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	userID := c.GetString("user_id")
	customerID := c.Param("id")

	var customer models.Customer
	if err := cc.db.First(&customer, "id = ? AND user_id = ?", customerID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found or access denied"})
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"email": nilIfEmpty(req.Email),
		"phone": nilIfEmpty(req.Phone),
	}

	if err := cc.db.Model(&customer).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	utils.SendSuccess(c, "Customer updated successfully", nil)
}

// DeleteCustomer removes the customer. Their vehicles and services go with
// them through the database cascade.
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	userID := c.GetString("user_id")
	customerID := c.Param("id")

	var customer models.Customer
	if err := cc.db.First(&customer, "id = ? AND user_id = ?", customerID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found or access denied"})
		return
	}

	if err := cc.db.Delete(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	utils.SendSuccess(c, "Customer deleted successfully", nil)
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
