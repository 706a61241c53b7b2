package leave

import (
	"strings"
	"time"
)

// CalculateDays returns the inclusive day count between two calendar dates.
func CalculateDays(start, end time.Time) (int, error) {
	start, end = dateOnly(start), dateOnly(end)
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}
	return int(end.Sub(start).Hours()/24+0.5) + 1, nil
}

// NormalizeType maps a type name case-insensitively onto a known type.
func NormalizeType(name string) (string, bool) {
	for _, t := range Types {
		if strings.EqualFold(strings.TrimSpace(name), t) {
			return t, true
		}
	}
	return "", false
}

// Accumulate folds approved requests into per-type balances. Unknown types
// are ignored and remaining may go negative.
func Accumulate(requests []Request, entitlements Entitlements) []Balance {
	taken := map[string]int{}
	for _, req := range requests {
		if req.Status != StatusApproved {
			continue
		}
		leaveType, ok := NormalizeType(req.Type)
		if !ok {
			continue
		}
		days, err := CalculateDays(req.StartDate, req.EndDate)
		if err != nil {
			continue
		}
		taken[leaveType] += days
	}

	out := make([]Balance, 0, len(Types))
	for _, t := range Types {
		total := entitlements.For(t)
		out = append(out, Balance{Type: t, Total: total, Taken: taken[t], Remaining: total - taken[t]})
	}
	return out
}

func CountStatuses(requests []Request) Stats {
	var s Stats
	for _, req := range requests {
		switch req.Status {
		case StatusPending:
			s.Pending++
		case StatusApproved:
			s.Approved++
		case StatusRejected:
			s.Rejected++
		case StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
