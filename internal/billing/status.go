package billing

import "time"

// Status is the derived lifecycle state of an engagement. It is recomputed
// from the date range on every read and never stored.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ResolveStatus derives the engagement status at asOf. Boundaries are
// inclusive on both ends: an engagement is active on its exact start and end
// day. asOf is an explicit parameter so tests can pin the clock.
//
// The status is advisory, for lists and filters only. It must never gate
// whether time can be logged: consultants backdate work against completed
// engagements and that has to keep working.
func ResolveStatus(startDate, endDate, asOf time.Time) Status {
	switch {
	case asOf.Before(DayStart(startDate)):
		return StatusUpcoming
	case asOf.After(DayEnd(endDate)):
		return StatusCompleted
	default:
		return StatusActive
	}
}
