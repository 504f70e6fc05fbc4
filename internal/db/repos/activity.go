package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixflow/fixflow/internal/db/models"
)

// ActivityLogRepository provides access to the append-only activity feed
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository instance
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Append writes one activity entry. Entries are never updated or deleted.
func (r *ActivityLogRepository) Append(ctx context.Context, entry *models.ActivityLog) error {
	if err := models.ValidateBusinessID(entry.BusinessID); err != nil {
		return fmt.Errorf("invalid business_id: %w", err)
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByEntity returns every entry for one entity, oldest first. Timeline
// reconstruction depends on this ordering.
func (r *ActivityLogRepository) ListByEntity(ctx context.Context, businessID uint, entityType string, entityID uint) ([]models.ActivityLog, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	var entries []models.ActivityLog
	err := r.db.WithContext(ctx).
		Where(&models.ActivityLog{BusinessID: businessID, EntityType: entityType, EntityID: entityID}).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// ListRecent returns the newest entries for a business's activity feed
func (r *ActivityLogRepository) ListRecent(ctx context.Context, businessID uint, opts *models.ListOptions) ([]models.ActivityLog, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	var entries []models.ActivityLog
	err := r.db.WithContext(ctx).
		Where(&models.ActivityLog{BusinessID: businessID}).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(opts.Offset).
		Find(&entries).Error
	return entries, err
}

// StatusChangeEventRepository provides access to the structured status
// transition log
type StatusChangeEventRepository struct {
	db *gorm.DB
}

// NewStatusChangeEventRepository creates a new status change event repository instance
func NewStatusChangeEventRepository(db *gorm.DB) *StatusChangeEventRepository {
	return &StatusChangeEventRepository{db: db}
}

// Append writes one status change event. Events are never updated or deleted.
func (r *StatusChangeEventRepository) Append(ctx context.Context, event *models.StatusChangeEvent) error {
	if err := models.ValidateBusinessID(event.BusinessID); err != nil {
		return fmt.Errorf("invalid business_id: %w", err)
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByJob returns every status change event for one job, oldest first
func (r *StatusChangeEventRepository) ListByJob(ctx context.Context, businessID, jobID uint) ([]models.StatusChangeEvent, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	var events []models.StatusChangeEvent
	err := r.db.WithContext(ctx).
		Where(&models.StatusChangeEvent{BusinessID: businessID, JobID: jobID}).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	return events, err
}
