// Package models defines the persisted row types for the repair-shop
// service. Every entity is scoped to a business (the tenant boundary).
package models

import "fmt"

const (
	// DefaultLimit is the max number of rows that are retrieved from the DB per listing API call
	DefaultLimit = 50
)

// ListOptions represents pagination and filtering options for list operations
type ListOptions struct {
	Limit          int  `json:"limit"`  // Number of items to return
	Offset         int  `json:"offset"` // Number of items to skip
	IncludeDeleted bool `json:"include_deleted"`
}

// ValidateBusinessID checks that a tenant scope was provided. There is no
// admin bypass: every query in this subsystem runs on behalf of exactly
// one business.
func ValidateBusinessID(businessID uint) error {
	if businessID == 0 {
		return fmt.Errorf("business_id is required")
	}
	return nil
}
