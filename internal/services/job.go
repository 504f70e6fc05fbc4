package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/db/repos"
	"github.com/fixflow/fixflow/internal/events"
	"github.com/fixflow/fixflow/internal/logger"
	"github.com/fixflow/fixflow/internal/metrics"
	"github.com/fixflow/fixflow/internal/status"
)

// CreateJobRequest is the payload for creating a repair job
type CreateJobRequest struct {
	CustomerID uint   `json:"customer_id" validate:"required"`
	Equipment  string `json:"equipment" validate:"required"`
	Issue      string `json:"issue"`
	AssignedTo uint   `json:"assigned_to"`
	ActorID    uint   `json:"actor_id"`
}

// UpdateJobRequest is a partial update. Nil fields are left untouched.
type UpdateJobRequest struct {
	CustomerID *uint   `json:"customer_id"`
	AssignedTo *uint   `json:"assigned_to"`
	Equipment  *string `json:"equipment"`
	Issue      *string `json:"issue"`
	Status     *string `json:"status"`
	ActorID    uint    `json:"actor_id"`
}

// JobWithTimeline is the enriched read model returned by GetWithTimeline
type JobWithTimeline struct {
	models.Job
	TimeInStatusDays float64   `json:"time_in_status_days"`
	StatusEntryTime  time.Time `json:"status_entry_time"`
}

// JobService orchestrates the job lifecycle: creation, updates through the
// state rules, the append-only status history, and timeline reads.
type JobService struct {
	jobs      *repos.JobRepository
	activity  *repos.ActivityLogRepository
	changeLog *repos.StatusChangeEventRepository
	customers *repos.CustomerRepository
	bus       *events.Bus
	validate  *validator.Validate
	now       func() time.Time
}

// NewJobService creates a new job service instance
func NewJobService(
	jobs *repos.JobRepository,
	activity *repos.ActivityLogRepository,
	changeLog *repos.StatusChangeEventRepository,
	customers *repos.CustomerRepository,
	bus *events.Bus,
) *JobService {
	return &JobService{
		jobs:      jobs,
		activity:  activity,
		changeLog: changeLog,
		customers: customers,
		bus:       bus,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// Create creates a new repair job. Jobs created with an assignee start in
// in_progress (work begins when someone owns it); everything else starts
// in waiting_assessment.
func (s *JobService) Create(ctx context.Context, businessID uint, req CreateJobRequest) (*models.Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	customer, err := s.customers.GetByID(ctx, businessID, req.CustomerID)
	if err != nil {
		return nil, newValidationError("customer_id", "unknown customer")
	}

	code, err := s.jobs.NextCode(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate job code: %w", err)
	}

	st, _ := status.AutoAdvance(status.WaitingAssessment, req.AssignedTo != 0, false)
	job := &models.Job{
		BusinessID: businessID,
		Code:       code,
		PublicID:   uuid.NewString(),
		CustomerID: req.CustomerID,
		AssignedTo: req.AssignedTo,
		Equipment:  req.Equipment,
		Issue:      req.Issue,
		Status:     st,
		Version:    1,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.appendActivity(ctx, job, models.ActionJobCreated, req.ActorID,
		fmt.Sprintf("Job %s created for %s: %s", job.Code, customer.Name, job.Equipment))

	if job.Assigned() {
		s.bus.Publish(events.Event{
			Type:       events.EventJobAssigned,
			BusinessID: businessID,
			JobID:      job.ID,
			JobCode:    job.Code,
			CustomerID: job.CustomerID,
			AssignedTo: job.AssignedTo,
		})
	}

	return job, nil
}

// Update applies a partial update to a job, running the transition rules
// and firing the side effects of any real status change. The core row
// mutation either fully succeeds or returns an error; everything after it
// is best-effort.
func (s *JobService) Update(ctx context.Context, businessID, id uint, req UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	prev := *job
	now := s.now()

	changedFields := make([]string, 0, 4)
	if req.CustomerID != nil && *req.CustomerID != job.CustomerID {
		if _, err := s.customers.GetByID(ctx, businessID, *req.CustomerID); err != nil {
			return nil, newValidationError("customer_id", "unknown customer")
		}
		job.CustomerID = *req.CustomerID
		changedFields = append(changedFields, "customer_id")
	}
	if req.Equipment != nil && *req.Equipment != job.Equipment {
		job.Equipment = *req.Equipment
		changedFields = append(changedFields, "equipment")
	}
	if req.Issue != nil && *req.Issue != job.Issue {
		job.Issue = *req.Issue
		changedFields = append(changedFields, "issue")
	}
	assigneeChanged := req.AssignedTo != nil && *req.AssignedTo != job.AssignedTo
	if assigneeChanged {
		job.AssignedTo = *req.AssignedTo
		changedFields = append(changedFields, "assigned_to")
	}

	statusExplicit := req.Status != nil
	if statusExplicit {
		requested := status.Status(*req.Status)
		if !status.Valid(requested) {
			return nil, newValidationError("status", fmt.Sprintf("unknown status %q", *req.Status))
		}
		job.Status = requested
	} else {
		gained := assigneeChanged && prev.AssignedTo == 0 && job.AssignedTo != 0
		if st, fired := status.AutoAdvance(job.Status, gained, false); fired {
			job.Status = st
			metrics.AutoAdvances.Inc()
		}
	}

	statusChanged := job.Status != prev.Status
	if statusChanged {
		switch {
		case job.Status == status.Completed:
			job.CompletedAt = &now
		case prev.Status == status.Completed:
			// Reopened; the old completion timestamp no longer stands.
			job.CompletedAt = nil
		}
	}

	// The duration spent in the outgoing status has to be read before the
	// new change event lands.
	var inPrevious time.Duration
	if statusChanged {
		entryTime := s.statusEntryTime(ctx, &prev)
		if d := now.Sub(entryTime); d > 0 {
			inPrevious = d
		}
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.UpdateConflicts.Inc()
		}
		return nil, err
	}

	// The row is committed. Everything below is best-effort: a failure is
	// logged and swallowed, never surfaced, never rolled back.
	if statusChanged {
		s.recordStatusChange(ctx, &prev, job, req.ActorID, inPrevious, now)
	}
	if assigneeChanged {
		s.recordAssignment(ctx, &prev, job, req.ActorID)
	}
	if len(changedFields) > 0 {
		s.appendActivity(ctx, job, models.ActionJobUpdated, req.ActorID,
			"Updated fields: "+strings.Join(changedFields, ", "))
	}

	return job, nil
}

// Delete soft-deletes a job and records the fact in the activity feed
func (s *JobService) Delete(ctx context.Context, businessID, id uint, actorID uint) error {
	job, err := s.jobs.GetByID(ctx, businessID, id)
	if err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, businessID, id); err != nil {
		return err
	}
	s.appendActivity(ctx, job, models.ActionJobDeleted, actorID,
		fmt.Sprintf("Job %s deleted", job.Code))
	return nil
}

// Get returns one job scoped to the business
func (s *JobService) Get(ctx context.Context, businessID, id uint) (*models.Job, error) {
	return s.jobs.GetByID(ctx, businessID, id)
}

// List returns a page of the business's jobs, optionally filtered by status
func (s *JobService) List(ctx context.Context, businessID uint, st status.Status, opts *models.ListOptions) ([]models.Job, error) {
	if st != "" && !status.Valid(st) {
		return nil, newValidationError("status", fmt.Sprintf("unknown status %q", st))
	}
	return s.jobs.List(ctx, businessID, st, opts)
}

// GetWithTimeline returns the job enriched with how long it has been in
// its current status and when it entered it
func (s *JobService) GetWithTimeline(ctx context.Context, businessID, id uint) (*JobWithTimeline, error) {
	job, err := s.jobs.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	entryTime := s.statusEntryTime(ctx, job)
	days := s.now().Sub(entryTime).Hours() / 24
	if days < 0 {
		days = 0
	}
	return &JobWithTimeline{
		Job:              *job,
		TimeInStatusDays: status.Round2(days),
		StatusEntryTime:  entryTime,
	}, nil
}

// StatusTimeline reconstructs the job's full status history. Structured
// change events are the source of truth; jobs that predate the event log
// fall back to parsing the canonical notes in the activity feed. The
// result is derived fresh on every call and never persisted.
func (s *JobService) StatusTimeline(ctx context.Context, businessID, id uint) ([]status.TimelineEntry, error) {
	job, err := s.jobs.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	changes := s.statusChanges(ctx, job)
	return status.Reconstruct(job.Status, job.CreatedAt, changes, s.now()), nil
}

// Activity returns the job's activity feed, oldest first
func (s *JobService) Activity(ctx context.Context, businessID, id uint) ([]models.ActivityLog, error) {
	if _, err := s.jobs.GetByID(ctx, businessID, id); err != nil {
		return nil, err
	}
	return s.activity.ListByEntity(ctx, businessID, models.EntityTypeJob, id)
}

// statusChanges loads the job's transition history as parser-level changes
func (s *JobService) statusChanges(ctx context.Context, job *models.Job) []status.Change {
	recorded, err := s.changeLog.ListByJob(ctx, job.BusinessID, job.ID)
	if err != nil {
		logger.Errorf("Failed to load status change events for job %d: %v", job.ID, err)
	}
	if len(recorded) > 0 {
		changes := make([]status.Change, len(recorded))
		for i, ev := range recorded {
			changes[i] = status.Change{
				From: status.Status(ev.FromStatus),
				To:   status.Status(ev.ToStatus),
				At:   ev.CreatedAt,
			}
		}
		return changes
	}

	// Legacy path: no structured events, recover history from the notes.
	entries, err := s.activity.ListByEntity(ctx, job.BusinessID, models.EntityTypeJob, job.ID)
	if err != nil {
		logger.Errorf("Failed to load activity for job %d: %v", job.ID, err)
		return nil
	}
	changes := make([]status.Change, 0, len(entries))
	for _, entry := range entries {
		change, ok := status.ParseChangeNote(entry.Note)
		if !ok {
			continue
		}
		change.At = entry.CreatedAt
		changes = append(changes, change)
	}
	return changes
}

// statusEntryTime returns when the job entered its current status: the
// newest status change, or creation time if there has never been one
func (s *JobService) statusEntryTime(ctx context.Context, job *models.Job) time.Time {
	changes := s.statusChanges(ctx, job)
	if len(changes) == 0 {
		return job.CreatedAt
	}
	last := changes[len(changes)-1].At
	if last.IsZero() {
		return job.CreatedAt
	}
	return last
}

// recordStatusChange writes the structured event, renders the canonical
// note, and publishes the lifecycle events for a committed transition
func (s *JobService) recordStatusChange(ctx context.Context, prev, job *models.Job, actorID uint, inPrevious time.Duration, now time.Time) {
	if err := s.changeLog.Append(ctx, &models.StatusChangeEvent{
		BusinessID: job.BusinessID,
		JobID:      job.ID,
		FromStatus: string(prev.Status),
		ToStatus:   string(job.Status),
		ChangedBy:  actorID,
		CreatedAt:  now,
	}); err != nil {
		logger.Errorf("Failed to append status change event for job %d: %v", job.ID, err)
	}

	s.appendActivity(ctx, job, models.ActionJobStatusChanged, actorID,
		status.FormatChangeNote(prev.Status, job.Status, inPrevious))

	metrics.StatusTransitions.WithLabelValues(string(job.Status)).Inc()

	base := events.Event{
		BusinessID: job.BusinessID,
		JobID:      job.ID,
		JobCode:    job.Code,
		CustomerID: job.CustomerID,
		From:       prev.Status,
		To:         job.Status,
		AssignedTo: job.AssignedTo,
	}

	base.Type = events.EventJobStatusChanged
	s.bus.Publish(base)

	if job.Status == status.Completed {
		s.appendActivity(ctx, job, models.ActionJobCompleted, actorID,
			fmt.Sprintf("Job %s completed", job.Code))
		base.Type = events.EventJobCompleted
		s.bus.Publish(base)
	}

	if job.Status == status.ReadyForPickup {
		base.Type = events.EventJobReadyForPickup
		s.bus.Publish(base)
	}
}

// recordAssignment logs an assignment change and publishes the matching
// notification event
func (s *JobService) recordAssignment(ctx context.Context, prev, job *models.Job, actorID uint) {
	s.appendActivity(ctx, job, models.ActionJobAssigned, actorID,
		fmt.Sprintf("Job %s assigned to user %d", job.Code, job.AssignedTo))

	ev := events.Event{
		BusinessID: job.BusinessID,
		JobID:      job.ID,
		JobCode:    job.Code,
		CustomerID: job.CustomerID,
		AssignedTo: job.AssignedTo,
		PrevUserID: prev.AssignedTo,
	}
	if prev.AssignedTo == 0 {
		ev.Type = events.EventJobAssigned
	} else {
		ev.Type = events.EventJobReassigned
	}
	s.bus.Publish(ev)
}

// appendActivity writes one activity entry, logging and swallowing any
// failure
func (s *JobService) appendActivity(ctx context.Context, job *models.Job, action string, actorID uint, note string) {
	err := s.activity.Append(ctx, &models.ActivityLog{
		BusinessID: job.BusinessID,
		EntityType: models.EntityTypeJob,
		EntityID:   job.ID,
		Action:     action,
		Note:       note,
		ActorID:    actorID,
	})
	if err != nil {
		logger.Errorf("Failed to append %s activity for job %d: %v", action, job.ID, err)
	}
}
