// File: /controllers/dashboard_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"garagehub-api/repositories"
)

type DashboardController struct {
	stats *repositories.StatsRepository
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{stats: repositories.NewStatsRepository(db)}
}

// GetStats returns the dashboard counters. The three counts are issued
// concurrently, the monthly revenue sum runs after they complete.
func (dc *DashboardController) GetStats(c *gin.Context) {
	userID := c.GetString("user_id")

	var totalCustomers, totalVehicles, totalServices int64

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		totalCustomers, _ = dc.stats.CountCustomers(userID)
	}()
	go func() {
		defer wg.Done()
		totalVehicles, _ = dc.stats.CountVehicles(userID)
	}()
	go func() {
		defer wg.Done()
		totalServices, _ = dc.stats.CountServices(userID)
	}()
	wg.Wait()

	monthlyRevenue, err := dc.stats.MonthlyRevenue(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_customers":         totalCustomers,
		"total_vehicles":          totalVehicles,
		"total_services":          totalServices,
		"monthly_revenue":         monthlyRevenue,
		"monthly_revenue_display": fmt.Sprintf("$%.2f", monthlyRevenue),
	})
}
