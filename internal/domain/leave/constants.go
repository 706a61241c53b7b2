package leave

const (
	TypeCasual = "Casual"
	TypeSick   = "Sick"
	TypeEarned = "Earned"
)

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

const EventStatusChanged = "leave.status_changed"

var Types = []string{TypeCasual, TypeSick, TypeEarned}

// Entitlements are annual day allowances per leave type.
type Entitlements struct {
	Casual int `json:"casual"`
	Sick   int `json:"sick"`
	Earned int `json:"earned"`
}

func DefaultEntitlements() Entitlements {
	return Entitlements{Casual: 12, Sick: 10, Earned: 18}
}

func (e Entitlements) For(leaveType string) int {
	switch leaveType {
	case TypeCasual:
		return e.Casual
	case TypeSick:
		return e.Sick
	case TypeEarned:
		return e.Earned
	}
	return 0
}
