package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/auth"
)

func sampleEmployee() *Employee {
	return &Employee{
		ID:        "e1",
		Email:     "asha@home.example",
		Mobile:    "9000000000",
		AnnualCTC: decimal.NewFromInt(600000),
	}
}

func TestFilterEmployeeFieldsHR(t *testing.T) {
	emp := sampleEmployee()
	FilterEmployeeFields(emp, auth.Session{EmployeeID: "h1", Role: auth.RoleHR})

	if emp.Redacted || emp.Mobile == "" || !emp.AnnualCTC.Equal(decimal.NewFromInt(600000)) {
		t.Fatal("HR should retain sensitive fields")
	}
}

func TestFilterEmployeeFieldsManager(t *testing.T) {
	emp := sampleEmployee()
	FilterEmployeeFields(emp, auth.Session{EmployeeID: "m1", Role: auth.RoleManager})

	if !emp.Redacted || emp.Mobile != "" || !emp.AnnualCTC.IsZero() {
		t.Fatal("Manager should not see sensitive fields")
	}
}

func TestFilterEmployeeFieldsEmployeeSelf(t *testing.T) {
	emp := sampleEmployee()
	FilterEmployeeFields(emp, auth.Session{EmployeeID: "e1", Role: auth.RoleEmployee})

	if emp.Redacted || emp.Email == "" {
		t.Fatal("Employee should see their own record")
	}
}

func TestApplyField(t *testing.T) {
	emp := sampleEmployee()

	require.NoError(t, ApplyField(emp, "laptopAssigned", "true"))
	assert.True(t, emp.Onboarding.LaptopAssigned)

	require.NoError(t, ApplyField(emp, "orientationDate", "2025-03-10"))
	require.NotNil(t, emp.Onboarding.OrientationDate)
	assert.Equal(t, "2025-03-10", emp.Onboarding.OrientationDate.Format("2006-01-02"))

	require.NoError(t, ApplyField(emp, "annualCtc", "720000.50"))
	assert.Equal(t, "720000.5", emp.AnnualCTC.String())

	require.NoError(t, ApplyField(emp, "officialEmail", "asha@corp.example"))
	assert.Equal(t, "asha@corp.example", emp.OfficialEmail)
}

func TestApplyFieldRejectsBadInput(t *testing.T) {
	emp := sampleEmployee()

	assert.ErrorIs(t, ApplyField(emp, "status", "Active"), ErrUnknownField)
	assert.ErrorIs(t, ApplyField(emp, "passwordHash", "x"), ErrUnknownField)
	assert.ErrorIs(t, ApplyField(emp, "laptopAssigned", "maybe"), ErrInvalidFieldValue)
	assert.ErrorIs(t, ApplyField(emp, "annualCtc", "-5"), ErrInvalidFieldValue)
	assert.ErrorIs(t, ApplyField(emp, "orientationDate", "10/03/2025"), ErrInvalidFieldValue)
	assert.ErrorIs(t, ApplyField(emp, "officialEmail", "not-an-email"), ErrInvalidEmail)
	assert.ErrorIs(t, ApplyField(emp, "firstName", "  "), ErrMissingRequiredField)
	assert.ErrorIs(t, ApplyField(emp, "role", "Contractor"), ErrInvalidRole)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("first.last+tag@corp.example"))
	assert.False(t, ValidEmail("no-at-sign"))
	assert.False(t, ValidEmail("two@@corp.example"))
}
