package payroll

import "errors"

var (
	ErrNotFound          = errors.New("payslip not found")
	ErrEmployeeNotActive = errors.New("employee is not active")
	ErrInvalidPeriod     = errors.New("invalid pay period")
	ErrForbidden         = errors.New("forbidden")
)
