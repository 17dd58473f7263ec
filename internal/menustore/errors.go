package menustore

import "errors"

// Errors returned by Service. Callers match them with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("menu not found")
	ErrUnauthorized = errors.New("unauthorized")
)
