package employee

const (
	StatusOnboarding = "Onboarding"
	StatusActive     = "Active"
	StatusExiting    = "Exiting"
	StatusResigned   = "Resigned"
)

const (
	PhaseOnboarding = "onboarding"
	PhaseExit       = "exit"
)

const (
	MinPasswordLength = 6

	listCacheKey = "ems:employees:all"
)
