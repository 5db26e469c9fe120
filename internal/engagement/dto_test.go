package engagement_test

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/engagement"
)

func TestEngagement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Engagement Suite")
}

var _ = Describe("UpsertEngagementDTO", func() {
	decode := func(body string) engagement.UpsertEngagementDTO {
		var dto engagement.UpsertEngagementDTO
		Expect(json.Unmarshal([]byte(body), &dto)).To(Succeed())
		return dto
	}

	It("accepts snake_case keys", func() {
		dto := decode(`{
			"client_id": 10,
			"project_name": "Platform migration",
			"start_date": "2026-01-01",
			"end_date": "2026-06-30",
			"type": "hourly",
			"hourly_rate": 150.00,
			"net_terms_days": 45
		}`)

		Expect(dto.ClientID).To(Equal(int64(10)))
		Expect(dto.ProjectName).To(Equal("Platform migration"))
		Expect(dto.Type).To(Equal("hourly"))
		Expect(dto.HourlyRate).NotTo(BeNil())
		Expect(dto.HourlyRate.String()).To(Equal("150"))
		Expect(dto.NetTermsDays).To(Equal(45))
	})

	It("accepts camelCase keys", func() {
		dto := decode(`{
			"clientId": 10,
			"projectName": "Platform migration",
			"startDate": "2026-01-01",
			"endDate": "2026-06-30",
			"engagementType": "HOURLY",
			"hourlyRate": "150.00",
			"netTerms": "45"
		}`)

		Expect(dto.ClientID).To(Equal(int64(10)))
		Expect(dto.StartDate).To(Equal("2026-01-01"))
		Expect(dto.Type).To(Equal("hourly"))
		Expect(dto.HourlyRate.String()).To(Equal("150"))
		Expect(dto.NetTermsDays).To(Equal(45))
	})

	It("normalizes both spellings to the same value", func() {
		snake := decode(`{"client_id": 1, "project_name": "x", "start_date": "2026-01-01", "end_date": "2026-02-01", "type": "project", "project_amount": 5000}`)
		camel := decode(`{"clientId": "1", "projectName": "x", "startDate": "2026-01-01", "endDate": "2026-02-01", "type": "project", "projectAmount": "5000"}`)

		Expect(camel.ClientID).To(Equal(snake.ClientID))
		Expect(camel.ProjectAmount.Equal(*snake.ProjectAmount)).To(BeTrue())
	})

	It("rejects a non-numeric rate", func() {
		var dto engagement.UpsertEngagementDTO
		err := json.Unmarshal([]byte(`{"hourly_rate": "a lot"}`), &dto)
		Expect(err).To(HaveOccurred())
	})

	Describe("ToEngagement", func() {
		base := func() engagement.UpsertEngagementDTO {
			return decode(`{
				"client_id": 10,
				"project_name": "Platform migration",
				"start_date": "2026-01-01",
				"end_date": "2026-06-30",
				"type": "hourly",
				"hourly_rate": 150
			}`)
		}

		It("applies the default net terms when none are sent", func() {
			e, err := base().ToEngagement(7, 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.NetTermsDays).To(Equal(30))
		})

		It("keeps explicit net terms", func() {
			dto := base()
			dto.NetTermsDays = 15
			e, err := dto.ToEngagement(7, 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.NetTermsDays).To(Equal(15))
		})

		It("rejects an end date before the start date", func() {
			dto := base()
			dto.StartDate = "2026-06-30"
			dto.EndDate = "2026-01-01"
			_, err := dto.ToEngagement(7, 30)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a malformed date", func() {
			dto := base()
			dto.StartDate = "01/15/2026"
			_, err := dto.ToEngagement(7, 30)
			Expect(err).To(MatchError(internal.ErrInvalidDate))
		})

		It("rejects an hourly engagement without a rate", func() {
			dto := base()
			dto.HourlyRate = nil
			_, err := dto.ToEngagement(7, 30)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a project engagement carrying an hourly rate", func() {
			dto := decode(`{
				"client_id": 10,
				"project_name": "x",
				"start_date": "2026-01-01",
				"end_date": "2026-06-30",
				"type": "project",
				"project_amount": 5000,
				"hourly_rate": 150
			}`)
			_, err := dto.ToEngagement(7, 30)
			Expect(err).To(HaveOccurred())
		})
	})
})
