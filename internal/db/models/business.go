package models

import "gorm.io/gorm"

// Business is the tenant boundary. All other rows carry its ID and every
// query is scoped to exactly one business.
type Business struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Timezone string `json:"timezone" gorm:"default:UTC"`
}

// User represents a technician or operator belonging to a business
type User struct {
	gorm.Model
	BusinessID uint   `json:"business_id" gorm:"not null;index"`
	Name       string `json:"name" gorm:"not null"`
	Email      string `json:"email" gorm:""`
	Role       string `json:"role" gorm:"default:technician"`
}

// Customer is a repair customer of one business
type Customer struct {
	gorm.Model
	BusinessID uint   `json:"business_id" gorm:"not null;index"`
	Name       string `json:"name" gorm:"not null;index"`
	Email      string `json:"email" gorm:""`
	Phone      string `json:"phone" gorm:""`
}
