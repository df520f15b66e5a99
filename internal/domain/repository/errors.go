package repository

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist or, for
	// refresh tokens, is expired or already revoked.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint is violated.
	ErrConflict = errors.New("conflict")
)
