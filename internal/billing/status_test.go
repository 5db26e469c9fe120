package billing_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adrianhartanto/timebill/internal/billing"
)

var _ = Describe("ResolveStatus", func() {
	start := mustDate("2024-03-01")
	end := mustDate("2024-03-31")

	It("is upcoming before the start date", func() {
		Expect(billing.ResolveStatus(start, end, mustDate("2024-02-29"))).To(Equal(billing.StatusUpcoming))
	})

	It("is active between the dates", func() {
		Expect(billing.ResolveStatus(start, end, mustDate("2024-03-15"))).To(Equal(billing.StatusActive))
	})

	It("is completed after the end date", func() {
		Expect(billing.ResolveStatus(start, end, mustDate("2024-04-01"))).To(Equal(billing.StatusCompleted))
	})

	It("treats both boundaries as inclusive", func() {
		Expect(billing.ResolveStatus(start, end, start)).To(Equal(billing.StatusActive))
		Expect(billing.ResolveStatus(start, end, end)).To(Equal(billing.StatusActive))
		// any time of day on the boundary days still counts as active
		Expect(billing.ResolveStatus(start, end, start.Add(2*time.Hour))).To(Equal(billing.StatusActive))
		Expect(billing.ResolveStatus(start, end, end.Add(23*time.Hour))).To(Equal(billing.StatusActive))
	})

	It("yields exactly one status for every asOf across a range", func() {
		asOf := mustDate("2024-02-20")
		for day := 0; day < 60; day++ {
			status := billing.ResolveStatus(start, end, asOf)
			Expect(status).To(BeElementOf(billing.StatusUpcoming, billing.StatusActive, billing.StatusCompleted))
			asOf = asOf.AddDate(0, 0, 1)
		}
	})

	It("is active for a single-day engagement on that day", func() {
		day := mustDate("2024-07-04")
		Expect(billing.ResolveStatus(day, day, day.Add(12*time.Hour))).To(Equal(billing.StatusActive))
	})
})
