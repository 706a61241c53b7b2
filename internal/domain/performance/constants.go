package performance

const (
	StatusPending      = "Pending"
	StatusCompleted    = "Completed"
	StatusAcknowledged = "Acknowledged"
)

const (
	EventReviewSubmitted    = "review.submitted"
	EventReviewAcknowledged = "review.acknowledged"
)

const (
	MinCategoryScore = 1
	MaxCategoryScore = 5
	MaxGoalsAchieved = 100
)

const (
	SkipEmployeeNotFound = "employee not found"
	SkipAlreadyPending   = "review already pending"
)
