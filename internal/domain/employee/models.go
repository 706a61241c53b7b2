package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID              string              `json:"id"`
	FirstName       string              `json:"firstName"`
	LastName        string              `json:"lastName"`
	Email           string              `json:"email"`
	OfficialEmail   string              `json:"officialEmail,omitempty"`
	Mobile          string              `json:"mobile,omitempty"`
	AlternateMobile string              `json:"alternateMobile,omitempty"`
	Designation     string              `json:"designation,omitempty"`
	Role            string              `json:"role"`
	Status          string              `json:"status"`
	DateOfJoining   *time.Time          `json:"dateOfJoining,omitempty"`
	AnnualCTC       decimal.Decimal     `json:"annualCtc"`
	ManagerID       string              `json:"managerId,omitempty"`
	PasswordHash    string              `json:"-"`
	Onboarding      OnboardingChecklist `json:"onboarding"`
	Exit            ExitChecklist       `json:"exit"`
	Redacted        bool                `json:"redacted,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type OnboardingChecklist struct {
	IdentityDocument string     `json:"identityDocument,omitempty"`
	LaptopAssigned   bool       `json:"laptopAssigned"`
	OrientationDate  *time.Time `json:"orientationDate,omitempty"`
	PayrollEnrolled  bool       `json:"payrollEnrolled"`
}

type ExitChecklist struct {
	IDCardReturned    bool       `json:"idCardReturned"`
	LaptopReturned    bool       `json:"laptopReturned"`
	KnowledgeTransfer bool       `json:"knowledgeTransfer"`
	ExitInterview     bool       `json:"exitInterview"`
	FinalSettlement   bool       `json:"finalSettlement"`
	LastWorkingDay    *time.Time `json:"lastWorkingDay,omitempty"`
}

// NewEmployee is the input of Create.
type NewEmployee struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	Mobile        string
	Designation   string
	Role          string
	DateOfJoining *time.Time
	AnnualCTC     decimal.Decimal
	ManagerID     string
}
