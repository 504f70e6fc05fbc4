package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixflow/fixflow/internal/db/models"
)

// UserRepository provides access to user-related database operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user in the database
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := models.ValidateBusinessID(user.BusinessID); err != nil {
		return fmt.Errorf("invalid business_id: %w", err)
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID retrieves a user by its ID, scoped to the given business
func (r *UserRepository) GetByID(ctx context.Context, businessID, id uint) (*models.User, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	var user models.User
	err := r.db.WithContext(ctx).
		Where(&models.User{Model: gorm.Model{ID: id}, BusinessID: businessID}).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// All returns every user for a business
func (r *UserRepository) All(ctx context.Context, businessID uint) ([]models.User, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	var users []models.User
	err := r.db.WithContext(ctx).
		Where(&models.User{BusinessID: businessID}).
		Find(&users).Error
	return users, err
}

// CallbackRepository provides access to callback-related database operations
type CallbackRepository struct {
	db *gorm.DB
}

// NewCallbackRepository creates a new callback repository instance
func NewCallbackRepository(db *gorm.DB) *CallbackRepository {
	return &CallbackRepository{db: db}
}

// Create creates a new callback request in the database
func (r *CallbackRepository) Create(ctx context.Context, callback *models.Callback) error {
	if err := models.ValidateBusinessID(callback.BusinessID); err != nil {
		return fmt.Errorf("invalid business_id: %w", err)
	}
	return r.db.WithContext(ctx).Create(callback).Error
}

// All returns every callback for a business
func (r *CallbackRepository) All(ctx context.Context, businessID uint) ([]models.Callback, error) {
	if err := models.ValidateBusinessID(businessID); err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}
	var callbacks []models.Callback
	err := r.db.WithContext(ctx).
		Where(&models.Callback{BusinessID: businessID}).
		Find(&callbacks).Error
	return callbacks, err
}
