package billing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/adrianhartanto/timebill/internal/billing"
)

var _ = Describe("Aggregate", func() {
	hourlyTerms := billing.Terms{
		Type:       billing.TypeHourly,
		HourlyRate: decimal.RequireFromString("150"),
	}
	projectTerms := billing.Terms{
		Type:          billing.TypeProject,
		ProjectAmount: decimal.RequireFromString("5000"),
	}
	periodStart := mustDate("2024-03-01")
	periodEnd := mustDate("2024-03-31")

	entry := func(id int64, date string, hours string, desc string) billing.WorkEntry {
		return billing.WorkEntry{
			TimeLogID:   id,
			Date:        mustDate(date),
			Hours:       decimal.RequireFromString(hours),
			Description: desc,
		}
	}

	Describe("hourly engagements", func() {
		It("prices 3.5h and 2.25h at $150 into a 862.50 total", func() {
			entries := []billing.WorkEntry{
				entry(1, "2024-03-04", "3.5", "API design"),
				entry(2, "2024-03-06", "2.25", "Code review"),
			}

			summary := billing.Aggregate(hourlyTerms, entries, periodStart, periodEnd)

			Expect(summary.TotalHours.Equal(decimal.RequireFromString("5.75"))).To(BeTrue())
			Expect(summary.TotalAmount.Equal(decimal.RequireFromString("862.50"))).To(BeTrue())
			Expect(summary.Items).To(HaveLen(2))
			Expect(*summary.Items[0].TimeLogID).To(Equal(int64(1)))
			Expect(summary.Items[0].Amount.Equal(decimal.RequireFromString("525.00"))).To(BeTrue())
			Expect(summary.Items[1].Amount.Equal(decimal.RequireFromString("337.50"))).To(BeTrue())
		})

		It("filters out entries outside the inclusive period", func() {
			entries := []billing.WorkEntry{
				entry(1, "2024-02-29", "8", "before"),
				entry(2, "2024-03-01", "2", "first day"),
				entry(3, "2024-03-31", "3", "last day"),
				entry(4, "2024-04-01", "4", "after"),
			}

			summary := billing.Aggregate(hourlyTerms, entries, periodStart, periodEnd)

			Expect(summary.Items).To(HaveLen(2))
			Expect(summary.TotalHours.Equal(decimal.RequireFromString("5"))).To(BeTrue())
		})

		It("orders items by date, keeping insertion order for equal dates", func() {
			entries := []billing.WorkEntry{
				entry(10, "2024-03-20", "1", "late"),
				entry(11, "2024-03-05", "1", "early a"),
				entry(12, "2024-03-05", "1", "early b"),
			}

			summary := billing.Aggregate(hourlyTerms, entries, periodStart, periodEnd)

			Expect(summary.Items).To(HaveLen(3))
			Expect(summary.Items[0].Description).To(Equal("early a"))
			Expect(summary.Items[1].Description).To(Equal("early b"))
			Expect(summary.Items[2].Description).To(Equal("late"))
		})

		It("keeps the sum invariant over the line items", func() {
			entries := []billing.WorkEntry{
				entry(1, "2024-03-04", "1.1", "a"),
				entry(2, "2024-03-05", "2.2", "b"),
				entry(3, "2024-03-06", "0.25", "c"),
			}

			summary := billing.Aggregate(hourlyTerms, entries, periodStart, periodEnd)

			Expect(billing.InvoiceTotal(summary.Items).Equal(summary.TotalAmount)).To(BeTrue())
		})

		It("returns an empty zero-total summary for an empty period", func() {
			summary := billing.Aggregate(hourlyTerms, nil, periodStart, periodEnd)

			Expect(summary.Items).To(BeEmpty())
			Expect(summary.TotalHours.IsZero()).To(BeTrue())
			Expect(summary.TotalAmount.IsZero()).To(BeTrue())
		})

		It("is idempotent over the same inputs", func() {
			entries := []billing.WorkEntry{
				entry(1, "2024-03-04", "3.5", "a"),
				entry(2, "2024-03-06", "2.25", "b"),
			}

			first := billing.Aggregate(hourlyTerms, entries, periodStart, periodEnd)
			second := billing.Aggregate(hourlyTerms, entries, periodStart, periodEnd)

			Expect(second.TotalHours.Equal(first.TotalHours)).To(BeTrue())
			Expect(second.TotalAmount.Equal(first.TotalAmount)).To(BeTrue())
			Expect(second.Items).To(HaveLen(len(first.Items)))
			for i := range first.Items {
				Expect(second.Items[i].Amount.Equal(first.Items[i].Amount)).To(BeTrue())
				Expect(second.Items[i].Date).To(Equal(first.Items[i].Date))
			}
		})
	})

	Describe("project engagements", func() {
		It("emits a single flat-fee item regardless of logged hours", func() {
			entries := []billing.WorkEntry{
				entry(1, "2024-03-04", "10", "a"),
				entry(2, "2024-03-06", "12", "b"),
			}

			summary := billing.Aggregate(projectTerms, entries, periodStart, periodEnd)

			Expect(summary.Items).To(HaveLen(1))
			Expect(summary.Items[0].TimeLogID).To(BeNil())
			Expect(summary.Items[0].Hours.IsZero()).To(BeTrue())
			Expect(summary.Items[0].Amount.Equal(decimal.RequireFromString("5000"))).To(BeTrue())
			Expect(summary.TotalAmount.Equal(decimal.RequireFromString("5000"))).To(BeTrue())
			Expect(summary.TotalHours.IsZero()).To(BeTrue())
		})

		It("emits the flat fee even with zero logs in the period", func() {
			summary := billing.Aggregate(projectTerms, nil, periodStart, periodEnd)

			Expect(summary.Items).To(HaveLen(1))
			Expect(summary.TotalAmount.Equal(decimal.RequireFromString("5000"))).To(BeTrue())
		})
	})
})
