package dashboard

import (
	"ems/internal/domain/leave"
	"ems/internal/domain/payroll"
	"ems/internal/domain/performance"
)

// Snapshot carries only the sections the session's role may see.
type Snapshot struct {
	Role         string                `json:"role"`
	Organization *OrganizationOverview `json:"organization,omitempty"`
	Team         *TeamOverview         `json:"team,omitempty"`
	Personal     *PersonalOverview     `json:"personal,omitempty"`
}

type OrganizationOverview struct {
	Headcount       int            `json:"headcount"`
	ByStatus        map[string]int `json:"byStatus"`
	Onboarding      int            `json:"onboarding"`
	Exiting         int            `json:"exiting"`
	PendingLeave    int            `json:"pendingLeave"`
	PendingReviews  int            `json:"pendingReviews"`
	PayrollEnrolled int            `json:"payrollEnrolled"`
}

type TeamOverview struct {
	TeamSize         int `json:"teamSize"`
	PendingApprovals int `json:"pendingApprovals"`
	PendingReviews   int `json:"pendingReviews"`
}

type PersonalOverview struct {
	LeaveBalances []leave.Balance     `json:"leaveBalances"`
	Payslips      payroll.Summary     `json:"payslips"`
	LatestReview  *performance.Review `json:"latestReview,omitempty"`
}
