package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeOnboarding() Employee {
	orientation := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return Employee{
		ID:            "e1",
		Status:        StatusOnboarding,
		OfficialEmail: "asha@corp.example",
		Onboarding: OnboardingChecklist{
			IdentityDocument: "pan.pdf",
			LaptopAssigned:   true,
			OrientationDate:  &orientation,
			PayrollEnrolled:  true,
		},
	}
}

func TestOnboardingChecklist(t *testing.T) {
	emp := completeOnboarding()
	emp.Onboarding.LaptopAssigned = false

	cl := ChecklistFor(emp)
	assert.Equal(t, PhaseOnboarding, cl.Phase)
	assert.False(t, cl.Complete)
	assert.Equal(t, []string{"laptopAssigned"}, cl.Missing())

	_, err := NextStatus(emp, StatusActive)
	assert.ErrorIs(t, err, ErrChecklistIncomplete)

	emp.Onboarding.LaptopAssigned = true
	next, err := NextStatus(emp, StatusActive)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, next)
}

func TestExitChecklist(t *testing.T) {
	emp := Employee{ID: "e1", Status: StatusExiting}
	cl := ChecklistFor(emp)
	assert.Equal(t, PhaseExit, cl.Phase)
	assert.Len(t, cl.Missing(), 5)

	_, err := NextStatus(emp, StatusResigned)
	assert.ErrorIs(t, err, ErrChecklistIncomplete)

	emp.Exit = ExitChecklist{IDCardReturned: true, LaptopReturned: true, KnowledgeTransfer: true, ExitInterview: true, FinalSettlement: true}
	next, err := NextStatus(emp, StatusResigned)
	require.NoError(t, err)
	assert.Equal(t, StatusResigned, next)
}

func TestNextStatusRejectsSkippedPhases(t *testing.T) {
	emp := completeOnboarding()

	_, err := NextStatus(emp, StatusExiting)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	emp.Status = StatusActive
	next, err := NextStatus(emp, StatusExiting)
	require.NoError(t, err)
	assert.Equal(t, StatusExiting, next)

	emp.Status = StatusResigned
	_, err = NextStatus(emp, StatusActive)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
