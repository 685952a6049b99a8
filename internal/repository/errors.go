package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches a lookup key.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate row")
)
