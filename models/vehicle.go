// File: /models/vehicle.go
package models

import (
	"time"
)

type Vehicle struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	UserID      string    `json:"user_id" gorm:"not null;size:191;index"`
	CustomerID  string    `json:"customer_id" gorm:"not null;size:191;index"`
	Model       string    `json:"model" gorm:"not null;size:100"`
	PlateNumber string    `json:"plate_number" gorm:"uniqueIndex;not null;size:20"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`

	// Deleting a vehicle removes its service history as well
	Services []Service `json:"services,omitempty" gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
}
