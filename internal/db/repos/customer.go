package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixflow/fixflow/internal/db/models"
)

// CustomerRepository provides access to customer-related database operations
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository instance
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer in the database
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := models.ValidateBusinessID(customer.BusinessID); err != nil {
		return fmt.Errorf("invalid business_id: %w", err)
	}
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID retrieves a customer by its ID, scoped to the given business
func (r *CustomerRepository) GetByID(ctx context.Context, businessID, id uint) (*models.Customer, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where(&models.Customer{Model: gorm.Model{ID: id}, BusinessID: businessID}).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

// List returns a page of customers for a business
func (r *CustomerRepository) List(ctx context.Context, businessID uint, opts *models.ListOptions) ([]models.Customer, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where(&models.Customer{BusinessID: businessID}).
		Limit(limit).Offset(opts.Offset).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

// All returns every customer for a business
func (r *CustomerRepository) All(ctx context.Context, businessID uint) ([]models.Customer, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where(&models.Customer{BusinessID: businessID}).
		Find(&customers).Error
	return customers, err
}
