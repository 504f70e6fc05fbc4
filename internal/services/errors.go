// Package services provides business logic for the repair-shop API
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fixflow/fixflow/internal/db/repos"
)

// Sentinel errors re-exported so callers don't reach into the repos
// package for error matching.
var (
	// ErrNotFound means the row does not exist for the caller's tenant
	ErrNotFound = repos.ErrNotFound
	// ErrConflict means a concurrent writer won the optimistic version check
	ErrConflict = repos.ErrConflict
)

// ValidationError carries field-level detail for a rejected request
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// newValidationError builds a single-field validation error
func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// validationErrorFrom converts validator.ValidationErrors into our
// field-level error type
func validationErrorFrom(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
	return &ValidationError{Fields: fields}
}
