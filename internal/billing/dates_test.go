package billing_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/billing"
)

func mustDate(s string) time.Time {
	t, err := time.Parse(billing.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

var _ = Describe("Dates", func() {
	Describe("ParseDate", func() {
		It("parses a plain date", func() {
			t, err := billing.ParseDate("2024-02-01")
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Year()).To(Equal(2024))
			Expect(t.Month()).To(Equal(time.February))
			Expect(t.Day()).To(Equal(1))
		})

		It("parses an RFC3339 timestamp", func() {
			t, err := billing.ParseDate("2024-02-01T09:30:00Z")
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Hour()).To(Equal(9))
		})

		It("rejects malformed input instead of coercing to now", func() {
			_, err := billing.ParseDate("02/01/2024")
			Expect(err).To(HaveOccurred())

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDate))
		})

		It("rejects empty input", func() {
			_, err := billing.ParseDate("")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DayStart and DayEnd", func() {
		It("normalizes to the day boundaries", func() {
			at := time.Date(2024, 6, 15, 13, 45, 12, 345, time.UTC)

			start := billing.DayStart(at)
			Expect(start.Hour()).To(Equal(0))
			Expect(start.Minute()).To(Equal(0))
			Expect(start.Second()).To(Equal(0))
			Expect(start.Nanosecond()).To(Equal(0))

			end := billing.DayEnd(at)
			Expect(end.Hour()).To(Equal(23))
			Expect(end.Minute()).To(Equal(59))
			Expect(end.Second()).To(Equal(59))
			Expect(end.Nanosecond()).To(Equal(int(999 * time.Millisecond)))
		})

		It("keeps the location of the input", func() {
			loc := time.FixedZone("UTC+7", 7*3600)
			at := time.Date(2024, 6, 15, 1, 0, 0, 0, loc)
			Expect(billing.DayStart(at).Location()).To(Equal(loc))
			Expect(billing.DayStart(at).Day()).To(Equal(15))
		})
	})

	Describe("RangesOverlap", func() {
		type rangePair struct {
			aStart, aEnd, bStart, bEnd string
			overlap                    bool
		}

		cases := []rangePair{
			// engagement spans the whole filter range
			{"2024-01-03", "2025-05-03", "2025-01-01", "2025-12-31", true},
			// engagement entirely before the filter range
			{"2023-02-03", "2023-06-03", "2025-01-01", "2025-12-31", false},
			// starts during
			{"2025-06-01", "2026-01-15", "2025-01-01", "2025-12-31", true},
			// ends during
			{"2024-06-01", "2025-03-15", "2025-01-01", "2025-12-31", true},
			// touching endpoints count (closed intervals)
			{"2024-01-01", "2025-01-01", "2025-01-01", "2025-12-31", true},
			{"2026-01-01", "2026-06-01", "2025-01-01", "2025-12-31", false},
		}

		It("matches interval intersection for every case", func() {
			for _, c := range cases {
				got := billing.RangesOverlap(mustDate(c.aStart), mustDate(c.aEnd), mustDate(c.bStart), mustDate(c.bEnd))
				Expect(got).To(Equal(c.overlap), "case %+v", c)
			}
		})

		It("is symmetric in its interval arguments", func() {
			for _, c := range cases {
				ab := billing.RangesOverlap(mustDate(c.aStart), mustDate(c.aEnd), mustDate(c.bStart), mustDate(c.bEnd))
				ba := billing.RangesOverlap(mustDate(c.bStart), mustDate(c.bEnd), mustDate(c.aStart), mustDate(c.aEnd))
				Expect(ab).To(Equal(ba), "case %+v", c)
			}
		})
	})
})
