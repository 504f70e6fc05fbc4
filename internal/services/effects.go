package services

import (
	"context"
	"fmt"

	"github.com/fixflow/fixflow/internal/db/repos"
	"github.com/fixflow/fixflow/internal/events"
	"github.com/fixflow/fixflow/internal/metrics"
	"github.com/fixflow/fixflow/internal/notify"
)

// RegisterNotificationHandlers wires the notification collaborator onto
// the event bus. Handlers run after the job mutation has committed; their
// errors are counted, logged by the bus, and never surfaced to the
// operator who made the change.
func RegisterNotificationHandlers(
	bus *events.Bus,
	notifier notify.Notifier,
	jobs *repos.JobRepository,
	customers *repos.CustomerRepository,
) {
	bus.Subscribe(events.EventJobReadyForPickup, func(ctx context.Context, ev events.Event) error {
		job, err := jobs.GetByID(ctx, ev.BusinessID, ev.JobID)
		if err != nil {
			metrics.NotifyFailures.Inc()
			return fmt.Errorf("pickup email: %w", err)
		}
		customer, err := customers.GetByID(ctx, ev.BusinessID, ev.CustomerID)
		if err != nil {
			metrics.NotifyFailures.Inc()
			return fmt.Errorf("pickup email: %w", err)
		}
		if customer.Email == "" {
			// Nothing to send; phone-only customers are called instead.
			return nil
		}
		metrics.PickupEmails.Inc()
		if err := notifier.SendReadyForPickupEmail(ctx, customer.Email, job); err != nil {
			metrics.NotifyFailures.Inc()
			return fmt.Errorf("pickup email: %w", err)
		}
		return nil
	})

	bus.Subscribe(events.EventJobAssigned, func(ctx context.Context, ev events.Event) error {
		job, err := jobs.GetByID(ctx, ev.BusinessID, ev.JobID)
		if err != nil {
			metrics.NotifyFailures.Inc()
			return fmt.Errorf("assignment notification: %w", err)
		}
		if err := notifier.NotifyAssignment(ctx, job, ev.AssignedTo); err != nil {
			metrics.NotifyFailures.Inc()
			return fmt.Errorf("assignment notification: %w", err)
		}
		return nil
	})

	bus.Subscribe(events.EventJobReassigned, func(ctx context.Context, ev events.Event) error {
		job, err := jobs.GetByID(ctx, ev.BusinessID, ev.JobID)
		if err != nil {
			metrics.NotifyFailures.Inc()
			return fmt.Errorf("reassignment notification: %w", err)
		}
		if err := notifier.NotifyReassignment(ctx, job, ev.PrevUserID, ev.AssignedTo); err != nil {
			metrics.NotifyFailures.Inc()
			return fmt.Errorf("reassignment notification: %w", err)
		}
		return nil
	})
}
