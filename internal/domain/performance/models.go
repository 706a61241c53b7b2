package performance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scores are the six rated dimensions of a review.
type Scores struct {
	GoalsAchieved   int `json:"goalsAchieved"`
	Communication   int `json:"communication"`
	TechnicalSkills int `json:"technicalSkills"`
	Teamwork        int `json:"teamwork"`
	Leadership      int `json:"leadership"`
	Punctuality     int `json:"punctuality"`
}

type Review struct {
	ID             string           `json:"id"`
	EmployeeID     string           `json:"employeeId"`
	EmployeeName   string           `json:"employeeName,omitempty"`
	ReviewerID     string           `json:"reviewerId,omitempty"`
	ReviewerName   string           `json:"reviewerName,omitempty"`
	PeriodStart    time.Time        `json:"periodStart"`
	PeriodEnd      time.Time        `json:"periodEnd"`
	Scores         *Scores          `json:"scores,omitempty"`
	Comments       string           `json:"comments,omitempty"`
	OverallRating  *decimal.Decimal `json:"overallRating,omitempty"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
	SubmittedAt    *time.Time       `json:"submittedAt,omitempty"`
	AcknowledgedAt *time.Time       `json:"acknowledgedAt,omitempty"`
}

type Cycle struct {
	EmployeeIDs []string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

type Skipped struct {
	EmployeeID string `json:"employeeId"`
	Reason     string `json:"reason"`
}

type CycleResult struct {
	Created []Review  `json:"created"`
	Skipped []Skipped `json:"skipped"`
}

type Summary struct {
	Total              int             `json:"total"`
	Pending            int             `json:"pending"`
	Completed          int             `json:"completed"`
	Acknowledged       int             `json:"acknowledged"`
	CompletionRate     float64         `json:"completionRate"`
	AverageRating      decimal.Decimal `json:"averageRating"`
	RatingDistribution map[string]int  `json:"ratingDistribution"`
}

// Filter narrows ListReviews. Zero values match everything.
type Filter struct {
	EmployeeIDs []string
	Status      string
}

type ReviewEvent struct {
	ReviewID      string          `json:"reviewId"`
	EmployeeID    string          `json:"employeeId"`
	ReviewerID    string          `json:"reviewerId"`
	Status        string          `json:"status"`
	OverallRating decimal.Decimal `json:"overallRating"`
}
