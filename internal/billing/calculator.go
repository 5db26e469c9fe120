package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adrianhartanto/timebill/internal"
)

// EngagementType selects the billing model for an engagement.
type EngagementType string

const (
	TypeHourly  EngagementType = "hourly"
	TypeProject EngagementType = "project"
)

// Terms is the minimal billing view of an engagement: its type and whichever
// of the two amounts applies. Exactly one of HourlyRate/ProjectAmount is
// meaningful, matching Type; the engagement package enforces that invariant
// before anything reaches this package.
type Terms struct {
	Type          EngagementType
	HourlyRate    decimal.Decimal
	ProjectAmount decimal.Decimal
}

// WorkEntry is one unit of logged work as the aggregator consumes it.
type WorkEntry struct {
	TimeLogID   int64
	Date        time.Time
	Hours       decimal.Decimal
	Description string
}

// LineItem is one priced invoice row. Hours is zero for the flat project fee
// row; TimeLogID is nil for it as well.
type LineItem struct {
	TimeLogID   *int64
	Date        time.Time
	Description string
	Hours       decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// LineAmount prices a single work entry under the given terms. Hourly work
// bills hours times rate, rounded half-up to cents. Project work contributes
// zero per entry; the flat fee is emitted once per invoice by Aggregate, not
// per time log.
func LineAmount(hours decimal.Decimal, terms Terms) decimal.Decimal {
	if terms.Type == TypeHourly {
		return hours.Mul(terms.HourlyRate).Round(2)
	}
	return decimal.Zero
}

// InvoiceTotal sums line item amounts. The invoice header must store exactly
// this value; assembly re-checks the equality before persisting.
func InvoiceTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// DueDate computes the payment deadline: issue date plus netTermsDays
// calendar days. Any positive integer is accepted, not just the usual
// 30/60/90.
func DueDate(issueDate time.Time, netTermsDays int) (time.Time, error) {
	if netTermsDays <= 0 {
		return time.Time{}, internal.ErrInvalidNetTerms
	}
	return issueDate.AddDate(0, 0, netTermsDays), nil
}

// FormatInvoiceNumber renders a sequence value as a display number, e.g.
// INV-00025. The sequence itself must come from the database's atomic
// counter; timestamp- or random-suffix schemes collide under concurrency.
func FormatInvoiceNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%05d", prefix, seq)
}
