package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/status"
)

// JobRepository provides access to job-related database operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository instance
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job in the database
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := models.ValidateBusinessID(job.BusinessID); err != nil {
		return fmt.Errorf("invalid business_id: %w", err)
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID retrieves a job by its ID, scoped to the given business
func (r *JobRepository) GetByID(ctx context.Context, businessID, id uint) (*models.Job, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	var job models.Job
	err := r.db.WithContext(ctx).
		Where(&models.Job{Model: gorm.Model{ID: id}, BusinessID: businessID}).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// Update persists changes to a job using an optimistic version check.
// The version the caller read must still be current; otherwise another
// writer won the race and ErrConflict is returned. On success the job's
// in-memory Version is advanced to match the stored row.
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	if err := models.ValidateBusinessID(job.BusinessID); err != nil {
		return fmt.Errorf("invalid business_id: %w", err)
	}

	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND business_id = ? AND version = ?", job.ID, job.BusinessID, job.Version).
		Updates(map[string]interface{}{
			"customer_id":  job.CustomerID,
			"assigned_to":  job.AssignedTo,
			"equipment":    job.Equipment,
			"issue":        job.Issue,
			"status":       job.Status,
			"completed_at": job.CompletedAt,
			"version":      job.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the row is gone or someone else bumped the version.
		var count int64
		r.db.WithContext(ctx).Model(&models.Job{}).
			Where("id = ? AND business_id = ?", job.ID, job.BusinessID).
			Count(&count)
		if count == 0 {
			return fmt.Errorf("job %d: %w", job.ID, ErrNotFound)
		}
		return fmt.Errorf("job %d: %w", job.ID, ErrConflict)
	}
	job.Version++
	return nil
}

// Delete soft-deletes a job, scoped to the given business
func (r *JobRepository) Delete(ctx context.Context, businessID, id uint) error {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return fmt.Errorf("invalid business_id: %w", err)
	}
	res := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Delete(&models.Job{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	return nil
}

// List returns a page of jobs for a business, optionally filtered by status
func (r *JobRepository) List(ctx context.Context, businessID uint, st status.Status, opts *models.ListOptions) ([]models.Job, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = models.DefaultLimit
	}

	qry := &models.Job{BusinessID: businessID}
	if st != "" {
		qry.Status = st
	}

	gdb := r.db.WithContext(ctx)
	if opts.IncludeDeleted {
		gdb = gdb.Unscoped()
	}

	var jobs []models.Job
	err := gdb.Model(&models.Job{}).
		Where(qry).
		Limit(limit).Offset(opts.Offset).
		Order(models.JobCreatedAtField + " DESC").
		Find(&jobs).Error
	return jobs, err
}

// All returns every job for a business, oldest first. Used by analytics,
// which buckets the whole collection.
func (r *JobRepository) All(ctx context.Context, businessID uint) ([]models.Job, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where(&models.Job{BusinessID: businessID}).
		Order(models.JobCreatedAtField + " ASC").
		Find(&jobs).Error
	return jobs, err
}

// Count returns the number of jobs for a business, including soft-deleted
// rows so job codes are never reused
func (r *JobRepository) Count(ctx context.Context, businessID uint) (int64, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return 0, fmt.Errorf("invalid business_id: %w", err)
	}
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&models.Job{}).
		Where("business_id = ?", businessID).
		Count(&count).Error
	return count, err
}

// NextCode allocates the next human-readable sequential job code for a
// business, e.g. JOB-0042
func (r *JobRepository) NextCode(ctx context.Context, businessID uint) (string, error) {
	count, err := r.Count(ctx, businessID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("JOB-%04d", count+1), nil
}
