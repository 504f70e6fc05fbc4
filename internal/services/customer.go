package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/db/repos"
)

// CreateCustomerRequest is the payload for creating a customer
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// CustomerService provides business logic for customer operations
type CustomerService struct {
	customers *repos.CustomerRepository
	validate  *validator.Validate
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(customers *repos.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers, validate: validator.New()}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, businessID uint, req CreateCustomerRequest) (*models.Customer, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}
	customer := &models.Customer{
		BusinessID: businessID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// Get returns one customer scoped to the business
func (s *CustomerService) Get(ctx context.Context, businessID, id uint) (*models.Customer, error) {
	return s.customers.GetByID(ctx, businessID, id)
}

// List returns a page of the business's customers
func (s *CustomerService) List(ctx context.Context, businessID uint, opts *models.ListOptions) ([]models.Customer, error) {
	return s.customers.List(ctx, businessID, opts)
}
