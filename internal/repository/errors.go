package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUsername reports a violated unique username constraint.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail reports a violated unique email constraint.
	ErrDuplicateEmail = errors.New("email already exists")
)
