package shared

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ems/internal/backend"
	"ems/internal/domain/auth"
	"ems/internal/domain/dashboard"
	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
	"ems/internal/domain/payroll"
	"ems/internal/domain/performance"
	"ems/internal/domain/salary"
	"ems/internal/transport/http/api"
)

type errorMapping struct {
	errs   []error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{[]error{employee.ErrNotFound, salary.ErrNotFound, payroll.ErrNotFound, leave.ErrNotFound, performance.ErrNotFound}, http.StatusNotFound, "not_found"},
	{[]error{leave.ErrForbidden, payroll.ErrForbidden, performance.ErrForbidden, dashboard.ErrForbidden}, http.StatusForbidden, "forbidden"},
	{[]error{auth.ErrInvalidCredentials}, http.StatusUnauthorized, "invalid_credentials"},
	{[]error{employee.ErrDuplicateEmail}, http.StatusConflict, "duplicate_email"},
	{[]error{employee.ErrInvalidTransition, leave.ErrInvalidTransition, performance.ErrInvalidTransition, employee.ErrChecklistIncomplete}, http.StatusConflict, "invalid_transition"},
	{[]error{
		employee.ErrInvalidEmail, employee.ErrPasswordTooShort, employee.ErrInvalidRole, employee.ErrUnknownField,
		employee.ErrInvalidFieldValue, employee.ErrMissingRequiredField,
		salary.ErrAllowanceExceedsCTC, salary.ErrNegativeComponent,
		payroll.ErrInvalidPeriod, payroll.ErrEmployeeNotActive,
		leave.ErrRemarksRequired, leave.ErrMissingField, leave.ErrUnknownType, leave.ErrEndBeforeStart, leave.ErrStartInPast,
		performance.ErrInvalidScore, performance.ErrInvalidPeriod, performance.ErrNoEmployees, performance.ErrCommentsRequired,
	}, http.StatusUnprocessableEntity, "invalid_request"},
	{[]error{backend.ErrUnavailable, backend.ErrUnexpectedStatus}, http.StatusBadGateway, "backend_error"},
}

// StatusFor maps a service error to its HTTP status and error code.
func StatusFor(err error) (int, string) {
	for _, m := range errorMappings {
		for _, target := range m.errs {
			if errors.Is(err, target) {
				return m.status, m.code
			}
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// WriteError renders err. Domain errors keep their message, everything else is
// logged and hidden behind a generic one.
func WriteError(w http.ResponseWriter, logger *zap.Logger, requestID string, err error) {
	status, code := StatusFor(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		if logger != nil {
			logger.Error("request failed", zap.String("request_id", requestID), zap.Error(err))
		}
		message = "internal server error"
	case http.StatusBadGateway:
		if logger != nil {
			logger.Warn("backend call failed", zap.String("request_id", requestID), zap.Error(err))
		}
		message = "upstream service unavailable"
	}
	api.Fail(w, status, code, message, requestID)
}
