package leave

import "errors"

var (
	ErrNotFound          = errors.New("leave request not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid leave status transition")
	ErrRemarksRequired   = errors.New("remarks are required to reject a request")
	ErrMissingField      = errors.New("missing required field")
	ErrUnknownType       = errors.New("unknown leave type")
	ErrEndBeforeStart    = errors.New("end date cannot be before start date")
	ErrStartInPast       = errors.New("start date cannot be in the past")
)
