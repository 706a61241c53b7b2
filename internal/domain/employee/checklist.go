package employee

type ChecklistItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

type Checklist struct {
	EmployeeID string          `json:"employeeId"`
	Phase      string          `json:"phase"`
	Items      []ChecklistItem `json:"items"`
	Complete   bool            `json:"complete"`
}

// Missing returns the keys of items that are not done yet.
func (c Checklist) Missing() []string {
	var out []string
	for _, item := range c.Items {
		if !item.Done {
			out = append(out, item.Key)
		}
	}
	return out
}

func OnboardingChecklistFor(e Employee) Checklist {
	return newChecklist(e.ID, PhaseOnboarding, []ChecklistItem{
		{Key: "identityDocument", Label: "Identity document uploaded", Done: e.Onboarding.IdentityDocument != ""},
		{Key: "officialEmail", Label: "Official email created", Done: e.OfficialEmail != ""},
		{Key: "laptopAssigned", Label: "Laptop assigned", Done: e.Onboarding.LaptopAssigned},
		{Key: "orientationDate", Label: "Orientation scheduled", Done: e.Onboarding.OrientationDate != nil},
		{Key: "payrollEnrolled", Label: "Payroll enrolled", Done: e.Onboarding.PayrollEnrolled},
	})
}

func ExitChecklistFor(e Employee) Checklist {
	return newChecklist(e.ID, PhaseExit, []ChecklistItem{
		{Key: "idCardReturned", Label: "ID card returned", Done: e.Exit.IDCardReturned},
		{Key: "laptopReturned", Label: "Laptop returned", Done: e.Exit.LaptopReturned},
		{Key: "knowledgeTransfer", Label: "Knowledge transfer done", Done: e.Exit.KnowledgeTransfer},
		{Key: "exitInterview", Label: "Exit interview done", Done: e.Exit.ExitInterview},
		{Key: "finalSettlement", Label: "Final settlement processed", Done: e.Exit.FinalSettlement},
	})
}

// ChecklistFor picks the phase from the employee's status. Active and
// Resigned employees report the onboarding and exit checklist respectively.
func ChecklistFor(e Employee) Checklist {
	switch e.Status {
	case StatusExiting, StatusResigned:
		return ExitChecklistFor(e)
	default:
		return OnboardingChecklistFor(e)
	}
}

func newChecklist(employeeID, phase string, items []ChecklistItem) Checklist {
	complete := true
	for _, item := range items {
		if !item.Done {
			complete = false
			break
		}
	}
	return Checklist{EmployeeID: employeeID, Phase: phase, Items: items, Complete: complete}
}

// NextStatus validates a lifecycle move and returns the status the employee
// ends up in.
func NextStatus(e Employee, target string) (string, error) {
	switch {
	case e.Status == StatusOnboarding && target == StatusActive:
		if cl := OnboardingChecklistFor(e); !cl.Complete {
			return "", ErrChecklistIncomplete
		}
	case e.Status == StatusActive && target == StatusExiting:
	case e.Status == StatusExiting && target == StatusResigned:
		if cl := ExitChecklistFor(e); !cl.Complete {
			return "", ErrChecklistIncomplete
		}
	default:
		return "", ErrInvalidTransition
	}
	return target, nil
}
