package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity log entity types
const (
	// EntityTypeJob marks log entries attached to a repair job
	EntityTypeJob = "job"
	// EntityTypeCustomer marks log entries attached to a customer
	EntityTypeCustomer = "customer"
)

// Activity log actions
const (
	ActionJobCreated       = "job_created"
	ActionJobUpdated       = "job_updated"
	ActionJobAssigned      = "job_assigned"
	ActionJobStatusChanged = "job_status_changed"
	ActionJobCompleted     = "job_completed"
	ActionJobDeleted       = "job_deleted"
	ActionNote             = "note"
)

// ActivityLog is one append-only entry in a business's activity feed.
// Rows are created by the lifecycle service and never mutated or deleted
// by this subsystem; status history is reconstructed from them for jobs
// that predate the status_change_events table.
type ActivityLog struct {
	gorm.Model
	BusinessID uint      `json:"business_id" gorm:"not null;index:idx_activity_entity"`
	EntityType string    `json:"entity_type" gorm:"not null;index:idx_activity_entity"`
	EntityID   uint      `json:"entity_id" gorm:"not null;index:idx_activity_entity"`
	Action     string    `json:"action" gorm:"not null;index"`
	Note       string    `json:"note" gorm:"type:text"`
	ActorID    uint      `json:"actor_id"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// StatusChangeEvent is the structured, append-only record of one job
// status transition. It is the source of truth for timeline
// reconstruction; the matching activity-log note is a rendered artifact
// kept for humans.
type StatusChangeEvent struct {
	gorm.Model
	BusinessID uint      `json:"business_id" gorm:"not null;index:idx_status_event_job"`
	JobID      uint      `json:"job_id" gorm:"not null;index:idx_status_event_job"`
	FromStatus string    `json:"from_status" gorm:"not null"`
	ToStatus   string    `json:"to_status" gorm:"not null"`
	ChangedBy  uint      `json:"changed_by"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}
