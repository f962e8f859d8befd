package cycle

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const millisPerDay = 24 * 60 * 60 * 1000

var ErrUnparseableInstant = errors.New("unparseable instant")

// ParseInstant parses an absolute instant in RFC 3339 form.
//
// The offset is mandatory: "2024-01-01T00:00:00Z" and "2024-01-01T09:30:00.000+02:00"
// are accepted, "2024-01-01" and "2024-01-01 10:00:00" are not.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrUnparseableInstant)
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableInstant, s)
	}

	return t, nil
}

// FractionalDays returns the real-valued number of days from base to target.
// Partial days count fractionally and the result is negative when target is before base.
func FractionalDays(base, target time.Time) float64 {
	return float64(target.UnixMilli()-base.UnixMilli()) / millisPerDay
}

// NextDue returns the instant the next watering is due.
//
// Days are added on the calendar of lastWateredAt's location, so the time of day is kept.
func NextDue(lastWateredAt time.Time, waterEveryDays int) time.Time {
	return lastWateredAt.AddDate(0, 0, waterEveryDays)
}
