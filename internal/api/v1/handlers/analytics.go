package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fixflow/fixflow/internal/services"
)

// AnalyticsHandler handles HTTP requests for dashboard analytics
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler instance
func NewAnalyticsHandler(s *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

// GetDashboard handles the request for the tenant dashboard. The optional
// from/to query params are RFC 3339 timestamps.
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(errInvalidInput("invalid 'from' timestamp"))
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(errInvalidInput("invalid 'to' timestamp"))
		}
		to = &t
	}

	dash, err := h.service.Dashboard(c.Context(), businessID(c), from, to)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: dash,
	})
}
