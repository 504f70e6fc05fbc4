package models

import (
	"time"

	"gorm.io/gorm"
)

// CallbackStatus represents the state of a customer callback request
type CallbackStatus string

// Callback status constants
const (
	// CallbackPending indicates the callback has not been made yet
	CallbackPending CallbackStatus = "pending"
	// CallbackCompleted indicates the customer was reached
	CallbackCompleted CallbackStatus = "completed"
	// CallbackCancelled indicates the callback was withdrawn
	CallbackCancelled CallbackStatus = "cancelled"
)

// Callback is a customer callback request. Analytics reports completion
// rates and response times over these.
type Callback struct {
	gorm.Model
	BusinessID  uint           `json:"business_id" gorm:"not null;index"`
	CustomerID  uint           `json:"customer_id" gorm:"not null;index"`
	AssignedTo  uint           `json:"assigned_to" gorm:"index"`
	Reason      string         `json:"reason" gorm:"type:text"`
	Status      CallbackStatus `json:"status" gorm:"not null;index;default:pending"`
	RequestedAt time.Time      `json:"requested_at" gorm:"not null"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}
