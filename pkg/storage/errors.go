package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when no item with the requested id exists.
	ErrNotFound = errors.New("item not found")
)
