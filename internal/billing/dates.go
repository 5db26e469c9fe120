// Package billing holds the pure calculation core of the invoicing flow:
// date-range handling, engagement status resolution, line item aggregation
// and monetary totals. Nothing in this package touches persistence or the
// clock; callers pass every date in, which keeps all of it trivially safe
// under concurrent requests.
package billing

import (
	"time"

	"github.com/adrianhartanto/timebill/internal"
)

// DateLayout is the canonical wire format for dates (dates only, no time).
const DateLayout = "2006-01-02"

// ParseDate parses a date-only or RFC3339 string. Malformed input is an
// error; callers must never coerce bad input to "now".
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, internal.ErrInvalidDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, internal.ErrInvalidDate.WithCause(err)
	}
	return t, nil
}

// DayStart normalizes t to 00:00:00.000 in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd normalizes t to 23:59:59.999 in its own location.
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// RangesOverlap reports whether two closed intervals [aStart, aEnd] and
// [bStart, bEnd] intersect. This single predicate subsumes the
// "starts during", "ends during" and "spans entirely" cases.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
