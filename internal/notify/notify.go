// Package notify defines the notification collaborator. Delivery itself
// (SMTP, push, SMS) lives outside this service; everything here is
// fire-and-forget from the lifecycle's point of view.
package notify

import (
	"context"

	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/logger"
)

// Notifier sends operational notifications for job lifecycle events.
// Implementations must be safe for concurrent use. Errors are reported to
// the caller for logging and metrics only; no caller retries or rolls
// back on a notification failure.
type Notifier interface {
	// NotifyAssignment tells a user a job was assigned to them
	NotifyAssignment(ctx context.Context, job *models.Job, userID uint) error
	// NotifyReassignment tells both sides of a reassignment
	NotifyReassignment(ctx context.Context, job *models.Job, fromUserID, toUserID uint) error
	// SendReadyForPickupEmail emails the customer that their repair is done
	SendReadyForPickupEmail(ctx context.Context, customerEmail string, job *models.Job) error
}

// LogNotifier writes notifications to the application log. It is the
// default wiring for development and the fallback when no delivery
// backend is configured.
type LogNotifier struct{}

// NewLogNotifier creates a notifier that only logs
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// NotifyAssignment logs the assignment
func (n *LogNotifier) NotifyAssignment(_ context.Context, job *models.Job, userID uint) error {
	logger.InfoWithFields("job assigned", map[string]interface{}{
		"job_code": job.Code,
		"user_id":  userID,
	})
	return nil
}

// NotifyReassignment logs the reassignment
func (n *LogNotifier) NotifyReassignment(_ context.Context, job *models.Job, fromUserID, toUserID uint) error {
	logger.InfoWithFields("job reassigned", map[string]interface{}{
		"job_code":     job.Code,
		"from_user_id": fromUserID,
		"to_user_id":   toUserID,
	})
	return nil
}

// SendReadyForPickupEmail logs the email that would have been sent
func (n *LogNotifier) SendReadyForPickupEmail(_ context.Context, customerEmail string, job *models.Job) error {
	logger.InfoWithFields("ready-for-pickup email", map[string]interface{}{
		"job_code": job.Code,
		"to":       customerEmail,
	})
	return nil
}
