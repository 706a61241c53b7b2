package leave

import (
	"fmt"
	"strings"
	"time"
)

// ValidateNew checks a submission against today's date. All fields except
// the attachment are required.
func ValidateNew(in NewRequest, today time.Time) (NewRequest, error) {
	if strings.TrimSpace(in.Type) == "" {
		return NewRequest{}, fmt.Errorf("%w: type", ErrMissingField)
	}
	leaveType, ok := NormalizeType(in.Type)
	if !ok {
		return NewRequest{}, fmt.Errorf("%w: %s", ErrUnknownType, in.Type)
	}
	if in.StartDate.IsZero() {
		return NewRequest{}, fmt.Errorf("%w: startDate", ErrMissingField)
	}
	if in.EndDate.IsZero() {
		return NewRequest{}, fmt.Errorf("%w: endDate", ErrMissingField)
	}
	if strings.TrimSpace(in.Reason) == "" {
		return NewRequest{}, fmt.Errorf("%w: reason", ErrMissingField)
	}
	start, end := dateOnly(in.StartDate), dateOnly(in.EndDate)
	if end.Before(start) {
		return NewRequest{}, ErrEndBeforeStart
	}
	if start.Before(dateOnly(today)) {
		return NewRequest{}, ErrStartInPast
	}
	return NewRequest{
		Type:       leaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(in.Reason),
		Attachment: strings.TrimSpace(in.Attachment),
	}, nil
}
