package salary

import "errors"

var (
	ErrNotFound            = errors.New("salary structure not found")
	ErrAllowanceExceedsCTC = errors.New(AllowanceExceedsCTCMessage)
	ErrNegativeComponent   = errors.New("salary components must be non-negative")
)
