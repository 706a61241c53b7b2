package employee

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ems/internal/domain/auth"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type fieldSetter func(e *Employee, value string) error

var fieldSetters = map[string]fieldSetter{
	"firstName":       setString(func(e *Employee) *string { return &e.FirstName }, true),
	"lastName":        setString(func(e *Employee) *string { return &e.LastName }, false),
	"mobile":          setString(func(e *Employee) *string { return &e.Mobile }, false),
	"alternateMobile": setString(func(e *Employee) *string { return &e.AlternateMobile }, false),
	"designation":     setString(func(e *Employee) *string { return &e.Designation }, false),
	"managerId":       setString(func(e *Employee) *string { return &e.ManagerID }, false),
	"email":           setEmail(func(e *Employee) *string { return &e.Email }, true),
	"officialEmail":   setEmail(func(e *Employee) *string { return &e.OfficialEmail }, false),
	"role": func(e *Employee, value string) error {
		if !auth.ValidRole(value) {
			return ErrInvalidRole
		}
		e.Role = value
		return nil
	},
	"dateOfJoining": setDate(func(e *Employee) **time.Time { return &e.DateOfJoining }),
	"annualCtc": func(e *Employee, value string) error {
		amount, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil || amount.IsNegative() {
			return fmt.Errorf("%w: annualCtc must be a non-negative number", ErrInvalidFieldValue)
		}
		e.AnnualCTC = amount
		return nil
	},
	"identityDocument":  setString(func(e *Employee) *string { return &e.Onboarding.IdentityDocument }, false),
	"laptopAssigned":    setBool(func(e *Employee) *bool { return &e.Onboarding.LaptopAssigned }),
	"orientationDate":   setDate(func(e *Employee) **time.Time { return &e.Onboarding.OrientationDate }),
	"idCardReturned":    setBool(func(e *Employee) *bool { return &e.Exit.IDCardReturned }),
	"laptopReturned":    setBool(func(e *Employee) *bool { return &e.Exit.LaptopReturned }),
	"knowledgeTransfer": setBool(func(e *Employee) *bool { return &e.Exit.KnowledgeTransfer }),
	"exitInterview":     setBool(func(e *Employee) *bool { return &e.Exit.ExitInterview }),
	"finalSettlement":   setBool(func(e *Employee) *bool { return &e.Exit.FinalSettlement }),
	"lastWorkingDay":    setDate(func(e *Employee) **time.Time { return &e.Exit.LastWorkingDay }),
}

// UpdatableFields lists the field names accepted by ApplyField.
func UpdatableFields() []string {
	out := make([]string, 0, len(fieldSetters))
	for name := range fieldSetters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ApplyField sets one whitelisted field from its textual value.
func ApplyField(e *Employee, field, value string) error {
	setter, ok := fieldSetters[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return setter(e, value)
}

func setString(target func(*Employee) *string, required bool) fieldSetter {
	return func(e *Employee, value string) error {
		value = strings.TrimSpace(value)
		if required && value == "" {
			return ErrMissingRequiredField
		}
		*target(e) = value
		return nil
	}
}

func setEmail(target func(*Employee) *string, required bool) fieldSetter {
	return func(e *Employee, value string) error {
		value = strings.TrimSpace(value)
		if value == "" && !required {
			*target(e) = ""
			return nil
		}
		if !ValidEmail(value) {
			return ErrInvalidEmail
		}
		*target(e) = value
		return nil
	}
}

func setBool(target func(*Employee) *bool) fieldSetter {
	return func(e *Employee, value string) error {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: expected true or false", ErrInvalidFieldValue)
		}
		*target(e) = parsed
		return nil
	}
}

func setDate(target func(*Employee) **time.Time) fieldSetter {
	return func(e *Employee, value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			*target(e) = nil
			return nil
		}
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			return fmt.Errorf("%w: expected YYYY-MM-DD", ErrInvalidFieldValue)
		}
		*target(e) = &parsed
		return nil
	}
}

// FilterEmployeeFields hides compensation and personal contact details from
// viewers who are neither privileged nor the employee themselves.
func FilterEmployeeFields(emp *Employee, viewer auth.Session) {
	if viewer.IsPrivileged() || viewer.EmployeeID == emp.ID {
		return
	}
	emp.AnnualCTC = decimal.Zero
	emp.Email = ""
	emp.Mobile = ""
	emp.AlternateMobile = ""
	emp.Redacted = true
}
