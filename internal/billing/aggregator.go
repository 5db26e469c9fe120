package billing

import (
	"sort"

	"time"

	"github.com/shopspring/decimal"
)

// Summary is the reduced result of a billing period: ordered line items plus
// header totals.
type Summary struct {
	TotalHours  decimal.Decimal
	TotalAmount decimal.Decimal
	Items       []LineItem
}

// Aggregate selects the work entries whose date falls inside the inclusive
// period and reduces them into invoice line items.
//
// Hourly engagements produce one item per matching entry, ordered by date
// then by original insertion order for equal dates. Project engagements
// produce exactly one synthetic item carrying the full flat fee regardless of
// how much or how little was logged, and report zero total hours; project
// invoices are contract-driven, not time-driven.
//
// Zero matching entries is a valid result, not an error. Whether an empty
// period may become an invoice is the orchestration layer's call.
func Aggregate(terms Terms, entries []WorkEntry, periodStart, periodEnd time.Time) Summary {
	start := DayStart(periodStart)
	end := DayEnd(periodEnd)

	matched := make([]WorkEntry, 0, len(entries))
	for _, entry := range entries {
		d := DayStart(entry.Date)
		if !d.Before(start) && !d.After(end) {
			matched = append(matched, entry)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	if terms.Type == TypeProject {
		item := LineItem{
			Date:        DayStart(periodEnd),
			Description: "Project fee",
			Hours:       decimal.Zero,
			Rate:        decimal.Zero,
			Amount:      terms.ProjectAmount.Round(2),
		}
		return Summary{
			TotalHours:  decimal.Zero,
			TotalAmount: item.Amount,
			Items:       []LineItem{item},
		}
	}

	summary := Summary{
		TotalHours:  decimal.Zero,
		TotalAmount: decimal.Zero,
		Items:       make([]LineItem, 0, len(matched)),
	}
	for _, entry := range matched {
		id := entry.TimeLogID
		item := LineItem{
			TimeLogID:   &id,
			Date:        DayStart(entry.Date),
			Description: entry.Description,
			Hours:       entry.Hours,
			Rate:        terms.HourlyRate,
			Amount:      LineAmount(entry.Hours, terms),
		}
		summary.Items = append(summary.Items, item)
		summary.TotalHours = summary.TotalHours.Add(entry.Hours)
		summary.TotalAmount = summary.TotalAmount.Add(item.Amount)
	}
	return summary
}
