package employee

import "errors"

var (
	ErrNotFound             = errors.New("employee not found")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrDuplicateEmail       = errors.New("email already in use")
	ErrInvalidRole          = errors.New("invalid role")
	ErrUnknownField         = errors.New("field cannot be updated")
	ErrInvalidFieldValue    = errors.New("invalid field value")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrChecklistIncomplete  = errors.New("checklist incomplete")
	ErrMissingRequiredField = errors.New("missing required field")
)
