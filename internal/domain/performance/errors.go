package performance

import "errors"

var (
	ErrNotFound          = errors.New("review not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid review status transition")
	ErrInvalidScore      = errors.New("score out of range")
	ErrInvalidPeriod     = errors.New("review period end cannot be before start")
	ErrNoEmployees       = errors.New("at least one employee is required")
	ErrCommentsRequired  = errors.New("reviewer comments are required")
)
