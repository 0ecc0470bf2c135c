package model

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a request fails validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when an operation is not allowed on the entity's current state
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned when demo credentials do not match
	ErrUnauthorized = errors.New("unauthorized")
)
