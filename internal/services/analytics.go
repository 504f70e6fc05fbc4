package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/db/repos"
	"github.com/fixflow/fixflow/internal/status"
)

// trendDays is the length of the created-vs-completed daily series
const trendDays = 30

// AssigneeStats summarizes one technician's throughput
type AssigneeStats struct {
	UserID           uint    `json:"user_id"`
	Name             string  `json:"name"`
	AssignedJobs     int     `json:"assigned_jobs"`
	CompletedJobs    int     `json:"completed_jobs"`
	CompletionRate   float64 `json:"completion_rate"`
	AvgRepairDays    float64 `json:"avg_repair_days"`
	AvgCallbackHours float64 `json:"avg_callback_hours"`
	MaxCallbackHours float64 `json:"max_callback_hours"`
}

// DailyPoint is one day in the created-vs-completed series
type DailyPoint struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// Dashboard is the aggregated view consumed by the dashboard UI
type Dashboard struct {
	StatusCounts   map[status.Status]int `json:"status_counts"`
	TotalJobs      int                   `json:"total_jobs"`
	TotalCustomers int                   `json:"total_customers"`
	Assignees      []AssigneeStats       `json:"assignees"`
	Daily          []DailyPoint          `json:"daily"`
}

// AnalyticsService derives dashboard summaries from a tenant's flat
// collections. It shares the timeline's scan-bucket-divide shape but has
// no state machine: every value is recomputed from the rows on each call.
type AnalyticsService struct {
	jobs      *repos.JobRepository
	callbacks *repos.CallbackRepository
	customers *repos.CustomerRepository
	users     *repos.UserRepository
	now       func() time.Time
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(
	jobs *repos.JobRepository,
	callbacks *repos.CallbackRepository,
	customers *repos.CustomerRepository,
	users *repos.UserRepository,
) *AnalyticsService {
	return &AnalyticsService{
		jobs:      jobs,
		callbacks: callbacks,
		customers: customers,
		users:     users,
		now:       time.Now,
	}
}

// Dashboard computes the tenant's dashboard. The optional from/to range
// restricts which jobs and callbacks are considered; the daily series is
// always the trailing 30 days.
func (s *AnalyticsService) Dashboard(ctx context.Context, businessID uint, from, to *time.Time) (*Dashboard, error) {
	jobs, err := s.jobs.All(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	callbacks, err := s.callbacks.All(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load callbacks: %w", err)
	}
	customers, err := s.customers.All(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	users, err := s.users.All(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	jobs = filterJobs(jobs, from, to)
	callbacks = filterCallbacks(callbacks, from, to)

	dash := &Dashboard{
		StatusCounts:   make(map[status.Status]int),
		TotalJobs:      len(jobs),
		TotalCustomers: len(customers),
	}

	for _, job := range jobs {
		dash.StatusCounts[job.Status]++
	}

	dash.Assignees = assigneeStats(jobs, callbacks, users)
	dash.Daily = dailySeries(jobs, s.now())

	return dash, nil
}

func filterJobs(jobs []models.Job, from, to *time.Time) []models.Job {
	if from == nil && to == nil {
		return jobs
	}
	out := jobs[:0:0]
	for _, j := range jobs {
		if from != nil && j.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && j.CreatedAt.After(*to) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func filterCallbacks(callbacks []models.Callback, from, to *time.Time) []models.Callback {
	if from == nil && to == nil {
		return callbacks
	}
	out := callbacks[:0:0]
	for _, cb := range callbacks {
		if from != nil && cb.RequestedAt.Before(*from) {
			continue
		}
		if to != nil && cb.RequestedAt.After(*to) {
			continue
		}
		out = append(out, cb)
	}
	return out
}

// assigneeStats buckets jobs and callbacks per assignee and computes
// rates and durations. Negative durations (completion recorded before the
// request, a clock or data anomaly) are discarded before averaging.
func assigneeStats(jobs []models.Job, callbacks []models.Callback, users []models.User) []AssigneeStats {
	stats := make([]AssigneeStats, 0, len(users))

	for _, user := range users {
		st := AssigneeStats{UserID: user.ID, Name: user.Name}

		var repairDays []float64
		for _, job := range jobs {
			if job.AssignedTo != user.ID {
				continue
			}
			st.AssignedJobs++
			if job.Status != status.Completed || job.CompletedAt == nil {
				continue
			}
			st.CompletedJobs++
			if days := job.CompletedAt.Sub(job.CreatedAt).Hours() / 24; days >= 0 {
				repairDays = append(repairDays, days)
			}
		}
		if st.AssignedJobs > 0 {
			st.CompletionRate = status.Round2(float64(st.CompletedJobs) / float64(st.AssignedJobs))
		}
		st.AvgRepairDays = average(repairDays)

		var callbackHours []float64
		for _, cb := range callbacks {
			if cb.AssignedTo != user.ID || cb.Status != models.CallbackCompleted || cb.CompletedAt == nil {
				continue
			}
			hours := cb.CompletedAt.Sub(cb.RequestedAt).Hours()
			if hours < 0 {
				continue
			}
			callbackHours = append(callbackHours, hours)
			if h := status.Round2(hours); h > st.MaxCallbackHours {
				st.MaxCallbackHours = h
			}
		}
		st.AvgCallbackHours = average(callbackHours)

		stats = append(stats, st)
	}

	return stats
}

// dailySeries counts jobs created and completed per day over the trailing
// 30-day window ending today
func dailySeries(jobs []models.Job, now time.Time) []DailyPoint {
	const layout = "2006-01-02"

	created := make(map[string]int)
	completed := make(map[string]int)
	for _, job := range jobs {
		created[job.CreatedAt.Format(layout)]++
		if job.CompletedAt != nil {
			completed[job.CompletedAt.Format(layout)]++
		}
	}

	series := make([]DailyPoint, 0, trendDays)
	start := now.AddDate(0, 0, -(trendDays - 1))
	for i := 0; i < trendDays; i++ {
		day := start.AddDate(0, 0, i).Format(layout)
		series = append(series, DailyPoint{
			Date:      day,
			Created:   created[day],
			Completed: completed[day],
		})
	}
	return series
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return status.Round2(sum / float64(len(values)))
}
