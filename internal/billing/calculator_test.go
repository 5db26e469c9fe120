package billing_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/billing"
)

var _ = Describe("Calculator", func() {
	hourlyTerms := billing.Terms{
		Type:       billing.TypeHourly,
		HourlyRate: decimal.RequireFromString("150"),
	}
	projectTerms := billing.Terms{
		Type:          billing.TypeProject,
		ProjectAmount: decimal.RequireFromString("5000"),
	}

	Describe("LineAmount", func() {
		It("bills hourly work as hours times rate", func() {
			amount := billing.LineAmount(decimal.RequireFromString("3.5"), hourlyTerms)
			Expect(amount.String()).To(Equal("525"))
		})

		It("rounds half-up to two decimal places", func() {
			terms := billing.Terms{Type: billing.TypeHourly, HourlyRate: decimal.RequireFromString("33.33")}
			// 1.25 * 33.33 = 41.6625 -> 41.66; 1.75 * 33.33 = 58.3275 -> 58.33
			Expect(billing.LineAmount(decimal.RequireFromString("1.25"), terms).String()).To(Equal("41.66"))
			Expect(billing.LineAmount(decimal.RequireFromString("1.75"), terms).String()).To(Equal("58.33"))
			// exact half cent rounds up: 0.5 * 10.01 = 5.005 -> 5.01
			half := billing.Terms{Type: billing.TypeHourly, HourlyRate: decimal.RequireFromString("10.01")}
			Expect(billing.LineAmount(decimal.RequireFromString("0.5"), half).String()).To(Equal("5.01"))
		})

		It("contributes zero per entry on project engagements", func() {
			amount := billing.LineAmount(decimal.RequireFromString("40"), projectTerms)
			Expect(amount.IsZero()).To(BeTrue())
		})
	})

	Describe("InvoiceTotal", func() {
		It("sums line item amounts exactly", func() {
			items := []billing.LineItem{
				{Amount: decimal.RequireFromString("525.00")},
				{Amount: decimal.RequireFromString("337.50")},
			}
			Expect(billing.InvoiceTotal(items).Equal(decimal.RequireFromString("862.50"))).To(BeTrue())
		})

		It("is zero for no items", func() {
			Expect(billing.InvoiceTotal(nil).IsZero()).To(BeTrue())
		})
	})

	Describe("DueDate", func() {
		It("adds calendar days, crossing a leap-year February", func() {
			due, err := billing.DueDate(mustDate("2024-02-01"), 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(Equal(mustDate("2024-03-02")))
		})

		It("adds calendar days in a non-leap year", func() {
			due, err := billing.DueDate(mustDate("2023-02-01"), 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(Equal(mustDate("2023-03-03")))
		})

		It("accepts arbitrary positive terms", func() {
			due, err := billing.DueDate(mustDate("2024-01-15"), 45)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(Equal(mustDate("2024-02-29")))
		})

		It("rejects zero and negative terms", func() {
			for _, days := range []int{0, -1, -30} {
				_, err := billing.DueDate(mustDate("2024-01-15"), days)
				Expect(err).To(HaveOccurred())

				var appErr *internal.AppError
				Expect(errors.As(err, &appErr)).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidNetTerms))
			}
		})
	})

	Describe("FormatInvoiceNumber", func() {
		It("zero-pads the sequence", func() {
			Expect(billing.FormatInvoiceNumber("INV", 25)).To(Equal("INV-00025"))
		})

		It("does not truncate large sequences", func() {
			Expect(billing.FormatInvoiceNumber("INV", 123456)).To(Equal("INV-123456"))
		})
	})
})
