package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/services"
	"github.com/fixflow/fixflow/internal/status"
)

// JobHandler handles HTTP requests for job operations
type JobHandler struct {
	service *services.JobService
}

// NewJobHandler creates a new job handler instance
func NewJobHandler(s *services.JobService) *JobHandler {
	return &JobHandler{service: s}
}

// serviceError maps a service-layer error onto the response envelope
func serviceError(c *fiber.Ctx, err error) error {
	if ve, ok := services.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(Response{
			Slug:   InvalidInputSlug,
			Error:  ve.Error(),
			Fields: ve.Fields,
		})
	}
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errNotFound(err.Error()))
	}
	if errors.Is(err, services.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(errConflict(err.Error()))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(errServer(err.Error()))
}

// CreateJob handles the request to create a new job
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var req services.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput(err.Error()))
	}

	job, err := h.service.Create(c.Context(), businessID(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(Response{
		Slug: SuccessSlug,
		Data: job,
	})
}

// ListJobs handles the request to list jobs
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	var (
		limit  = c.QueryInt("limit", models.DefaultLimit)
		offset = c.QueryInt("offset", 0)
	)

	jobs, err := h.service.List(c.Context(), businessID(c), status.Status(c.Query("status")), &models.ListOptions{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: jobs,
	})
}

// GetJob handles the request to get a job enriched with its current
// status age
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput("invalid job id"))
	}

	job, err := h.service.GetWithTimeline(c.Context(), businessID(c), uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: job,
	})
}

// UpdateJob handles the request to update a job
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput("invalid job id"))
	}

	var req services.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput(err.Error()))
	}

	job, err := h.service.Update(c.Context(), businessID(c), uint(id), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: job,
	})
}

// DeleteJob handles the request to delete a job
func (h *JobHandler) DeleteJob(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput("invalid job id"))
	}

	if err := h.service.Delete(c.Context(), businessID(c), uint(id), 0); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: "Job deleted successfully",
	})
}

// GetStatusTimeline handles the request for a job's reconstructed status
// history
func (h *JobHandler) GetStatusTimeline(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput("invalid job id"))
	}

	timeline, err := h.service.StatusTimeline(c.Context(), businessID(c), uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: timeline,
	})
}

// GetActivity handles the request for a job's activity feed
func (h *JobHandler) GetActivity(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput("invalid job id"))
	}

	entries, err := h.service.Activity(c.Context(), businessID(c), uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: entries,
	})
}
