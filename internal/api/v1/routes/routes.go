// Package routes registers the v1 API routes
package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixflow/fixflow/internal/api/v1/handlers"
)

// Handlers bundles the handler instances the router needs
type Handlers struct {
	Job       *handlers.JobHandler
	Customer  *handlers.CustomerHandler
	Analytics *handlers.AnalyticsHandler
}

// SetupRoutes configures all the v1 routes
func SetupRoutes(router fiber.Router, h Handlers) {
	router.Use(handlers.TenantMiddleware)

	jobs := router.Group("/jobs")
	jobs.Post("/", h.Job.CreateJob)
	jobs.Get("/", h.Job.ListJobs)
	jobs.Get("/:id", h.Job.GetJob)
	jobs.Patch("/:id", h.Job.UpdateJob)
	jobs.Delete("/:id", h.Job.DeleteJob)
	jobs.Get("/:id/timeline", h.Job.GetStatusTimeline)
	jobs.Get("/:id/activity", h.Job.GetActivity)

	customers := router.Group("/customers")
	customers.Post("/", h.Customer.CreateCustomer)
	customers.Get("/", h.Customer.ListCustomers)
	customers.Get("/:id", h.Customer.GetCustomer)

	analytics := router.Group("/analytics")
	analytics.Get("/dashboard", h.Analytics.GetDashboard)
}

// Register registers the v1 routes under /api/v1
func Register(app *fiber.App, h Handlers) {
	v1Group := app.Group("/api/v1")
	SetupRoutes(v1Group, h)
}
