// File: /models/customer.go
package models

import (
	"time"
)

type Customer struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Email     *string   `json:"email" gorm:"size:255"`
	Phone     *string   `json:"phone" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`

	// Deleting a customer removes their vehicles and services as well
	Vehicles []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Services []Service `json:"services,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`

	// Populated by the list query, not stored
	VehiclesCount int64 `json:"vehicles_count" gorm:"->;-:migration"`
	ServicesCount int64 `json:"services_count" gorm:"->;-:migration"`
}
