// File: /models/service.go
package models

import (
	"time"
)

// Service status values
const (
	ServiceStatusPending   = "pending"
	ServiceStatusCompleted = "completed"
)

type Service struct {
	ID             string     `json:"id" gorm:"primaryKey;size:191"`
	UserID         string     `json:"user_id" gorm:"not null;size:191;index"`
	CustomerID     string     `json:"customer_id" gorm:"not null;size:191;index"`
	VehicleID      string     `json:"vehicle_id" gorm:"not null;size:191;index"`
	Description    *string    `json:"description" gorm:"type:text"`
	SubmissionDate time.Time  `json:"submission_date" gorm:"not null;index"`
	CollectionDate *time.Time `json:"collection_date"`
	AmountPaid     *float64   `json:"amount_paid" gorm:"type:decimal(10,2)"`
	Status         string     `json:"status" gorm:"not null;default:'pending';size:20"`
	ReminderSentAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Vehicle  *Vehicle  `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
}
