package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/services"
)

// CustomerHandler handles HTTP requests for customer operations
type CustomerHandler struct {
	service *services.CustomerService
}

// NewCustomerHandler creates a new customer handler instance
func NewCustomerHandler(s *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

// CreateCustomer handles the request to create a new customer
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req services.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput(err.Error()))
	}

	customer, err := h.service.Create(c.Context(), businessID(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(Response{
		Slug: SuccessSlug,
		Data: customer,
	})
}

// GetCustomer handles the request to get a customer
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput("invalid customer id"))
	}

	customer, err := h.service.Get(c.Context(), businessID(c), uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: customer,
	})
}

// ListCustomers handles the request to list customers
func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.service.List(c.Context(), businessID(c), &models.ListOptions{
		Limit:  c.QueryInt("limit", models.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: customers,
	})
}
