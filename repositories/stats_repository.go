// File: /repositories/stats_repository.go
package repositories

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	"garagehub-api/models"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CountCustomers returns the number of customers owned by the user.
func (r *StatsRepository) CountCustomers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountVehicles returns the number of vehicles owned by the user.
func (r *StatsRepository) CountVehicles(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vehicle{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountServices returns the number of service records owned by the user.
func (r *StatsRepository) CountServices(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Service{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// MonthlyRevenue sums amount_paid over services submitted in the calendar
// month containing now. Unpaid services count as zero.
func (r *StatsRepository) MonthlyRevenue(userID string, now time.Time) (float64, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// amount_paid is nullable, so scan through sql.NullFloat64
	var amounts []sql.NullFloat64
	err := r.db.Model(&models.Service{}).
		Where("user_id = ? AND submission_date >= ?", userID, monthStart).
		Pluck("amount_paid", &amounts).Error
	if err != nil {
		return 0, err
	}

	var total float64
	for _, amount := range amounts {
		if amount.Valid {
			total += amount.Float64
		}
	}

	return total, nil
}

// PendingServicesOlderThan returns pending services submitted before the
// cutoff that have not had a reminder sent yet, with customer and vehicle
// loaded for the notification.
func (r *StatsRepository) PendingServicesOlderThan(cutoff time.Time) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Preload("Customer").Preload("Vehicle").
		Where("status = ? AND submission_date < ? AND reminder_sent_at IS NULL", models.ServiceStatusPending, cutoff).
		Find(&services).Error
	return services, err
}

// MarkReminderSent records that a pending-service reminder went out.
func (r *StatsRepository) MarkReminderSent(serviceID string, at time.Time) error {
	return r.db.Model(&models.Service{}).Where("id = ?", serviceID).
		Update("reminder_sent_at", at).Error
}
