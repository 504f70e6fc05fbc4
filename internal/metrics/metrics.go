// Package metrics exposes prometheus collectors for the job lifecycle
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	// StatusTransitions counts job status changes by target status
	StatusTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fixflow_job_status_transitions_total",
		Help: "Job status transitions by target status",
	}, []string{"to_status"})

	// AutoAdvances counts transitions forced by the assignment rule
	AutoAdvances = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fixflow_job_auto_advances_total",
		Help: "Status transitions triggered by assigning an unowned job",
	})

	// PickupEmails counts ready-for-pickup customer emails attempted
	PickupEmails = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fixflow_pickup_emails_total",
		Help: "Ready-for-pickup customer emails attempted",
	})

	// NotifyFailures counts notification side effects that failed
	NotifyFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fixflow_notify_failures_total",
		Help: "Notification side effects that failed (logged, never fatal)",
	})

	// UpdateConflicts counts optimistic-lock losers on job updates
	UpdateConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fixflow_job_update_conflicts_total",
		Help: "Job updates rejected by the version check",
	})
)

// Handler exposes the /metrics HTTP handler with a singleton registry
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			StatusTransitions,
			AutoAdvances,
			PickupEmails,
			NotifyFailures,
			UpdateConflicts,
		)
	})
	return promhttp.Handler()
}
