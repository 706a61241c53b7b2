package performance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	goalsWeight   = decimal.RequireFromString("0.4")
	ratingDivisor = decimal.NewFromInt(20)
)

// Validate checks every category is within 1..5 and goals within 0..100.
func (s Scores) Validate() error {
	categories := []struct {
		name  string
		value int
	}{
		{"communication", s.Communication},
		{"technicalSkills", s.TechnicalSkills},
		{"teamwork", s.Teamwork},
		{"leadership", s.Leadership},
		{"punctuality", s.Punctuality},
	}
	for _, c := range categories {
		if c.value < MinCategoryScore || c.value > MaxCategoryScore {
			return fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidScore, c.name, MinCategoryScore, MaxCategoryScore)
		}
	}
	if s.GoalsAchieved < 0 || s.GoalsAchieved > MaxGoalsAchieved {
		return fmt.Errorf("%w: goalsAchieved must be between 0 and %d", ErrInvalidScore, MaxGoalsAchieved)
	}
	return nil
}

// OverallRating weights goals at 0.4 per percent, technical skills at 4 and
// the other categories at 2, scaled onto 0..5 and rounded half-up to 2dp.
func OverallRating(s Scores) decimal.Decimal {
	sum := decimal.NewFromInt(int64(s.GoalsAchieved)).Mul(goalsWeight).
		Add(decimal.NewFromInt(int64(s.Communication * 2))).
		Add(decimal.NewFromInt(int64(s.TechnicalSkills * 4))).
		Add(decimal.NewFromInt(int64(s.Teamwork * 2))).
		Add(decimal.NewFromInt(int64(s.Leadership * 2))).
		Add(decimal.NewFromInt(int64(s.Punctuality * 2)))
	return sum.Div(ratingDivisor).Round(2)
}

func buildSummary(reviews []Review) Summary {
	summary := Summary{
		Total:              len(reviews),
		AverageRating:      decimal.Zero,
		RatingDistribution: map[string]int{},
	}
	var ratings []decimal.Decimal
	for _, r := range reviews {
		switch r.Status {
		case StatusPending:
			summary.Pending++
		case StatusCompleted:
			summary.Completed++
		case StatusAcknowledged:
			summary.Acknowledged++
		}
		if r.OverallRating == nil {
			continue
		}
		ratings = append(ratings, *r.OverallRating)
		summary.RatingDistribution[r.OverallRating.Round(0).String()]++
	}
	if summary.Total > 0 {
		summary.CompletionRate = float64(summary.Completed+summary.Acknowledged) / float64(summary.Total)
	}
	if len(ratings) > 0 {
		summary.AverageRating = decimal.Avg(ratings[0], ratings[1:]...).Round(2)
	}
	return summary
}
