package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/fixflow/fixflow/internal/status"
)

// Database field name constants used in ordering and raw queries
const (
	// JobCreatedAtField is the database field name for the job creation timestamp
	JobCreatedAtField = "created_at"
	// JobUpdatedAtField is the database field name for the job update timestamp
	JobUpdatedAtField = "updated_at"
)

// Job represents one repair job moving through the shop.
//
// Status is always one of the status package's codes; its value at any
// instant is consistent with the newest StatusChangeEvent for the job, or
// with CreatedAt when no event exists. AssignedTo of zero means
// unassigned. Version backs the optimistic lock on updates.
type Job struct {
	gorm.Model
	BusinessID  uint          `json:"business_id" gorm:"not null;index"`
	Code        string        `json:"code" gorm:"not null;index"`
	PublicID    string        `json:"public_id" gorm:"not null;uniqueIndex"`
	CustomerID  uint          `json:"customer_id" gorm:"not null;index"`
	AssignedTo  uint          `json:"assigned_to" gorm:"index"`
	Equipment   string        `json:"equipment" gorm:"not null"`
	Issue       string        `json:"issue" gorm:"type:text"`
	Status      status.Status `json:"status" gorm:"not null;index;default:waiting_assessment"`
	Version     int           `json:"version" gorm:"not null;default:1"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at" gorm:"index"`
}

// Assigned reports whether the job has an owner
func (j *Job) Assigned() bool {
	return j.AssignedTo != 0
}
