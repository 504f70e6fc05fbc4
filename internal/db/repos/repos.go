// Package repos provides tenant-scoped database repositories
package repos

import "errors"

// Sentinel errors surfaced by repositories. Services and handlers match
// on these with errors.Is.
var (
	// ErrNotFound is returned when a row does not exist for the given
	// tenant. A wrong business ID and a wrong row ID are deliberately
	// indistinguishable.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when an optimistic version check fails
	// because another writer updated the row first.
	ErrConflict = errors.New("version conflict")
)
