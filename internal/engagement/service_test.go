package engagement_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/billing"
	"github.com/adrianhartanto/timebill/internal/engagement"
)

type mockEngagementRepository struct {
	engagements map[int64]*engagement.Engagement
	nextID      int64
}

func newMockEngagementRepository() *mockEngagementRepository {
	return &mockEngagementRepository{
		engagements: make(map[int64]*engagement.Engagement),
		nextID:      1,
	}
}

func (m *mockEngagementRepository) Create(e *engagement.Engagement) error {
	e.ID = m.nextID
	m.nextID++
	m.engagements[e.ID] = e
	return nil
}

func (m *mockEngagementRepository) GetByID(id, userID int64) (*engagement.Engagement, error) {
	e, ok := m.engagements[id]
	if !ok || e.UserID != userID {
		return nil, internal.ErrEngagementNotFound
	}
	return e, nil
}

func (m *mockEngagementRepository) GetByUserID(userID int64, limit, offset int) ([]*engagement.Engagement, error) {
	var out []*engagement.Engagement
	for i := int64(1); i < m.nextID; i++ {
		if e, ok := m.engagements[i]; ok && e.UserID == userID {
			out = append(out, e)
		}
	}
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockEngagementRepository) Update(e *engagement.Engagement) error {
	if _, ok := m.engagements[e.ID]; !ok {
		return internal.ErrEngagementNotFound
	}
	m.engagements[e.ID] = e
	return nil
}

func (m *mockEngagementRepository) Delete(id, userID int64) error {
	e, ok := m.engagements[id]
	if !ok || e.UserID != userID {
		return internal.ErrEngagementNotFound
	}
	delete(m.engagements, id)
	return nil
}

var _ = Describe("Engagement Service", func() {
	const userID = int64(7)

	var (
		repo    *mockEngagementRepository
		service *engagement.Service
	)

	day := func(s string) time.Time {
		t, err := time.Parse("2006-01-02", s)
		Expect(err).NotTo(HaveOccurred())
		return t
	}

	seed := func(project, start, end string) *engagement.Engagement {
		rate := decimal.RequireFromString("100")
		e := &engagement.Engagement{
			UserID:       userID,
			ClientID:     1,
			ProjectName:  project,
			StartDate:    day(start),
			EndDate:      day(end),
			Type:         engagement.TypeHourly,
			HourlyRate:   &rate,
			NetTermsDays: 30,
		}
		Expect(repo.Create(e)).To(Succeed())
		return e
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newMockEngagementRepository()
		service = engagement.NewService(repo, 30, logger)
	})

	Describe("GetEngagement", func() {
		It("derives the status from the dates at asOf", func() {
			e := seed("Active project", "2026-01-01", "2026-12-31")

			view, err := service.GetEngagement(e.ID, userID, day("2026-06-15"))
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Status).To(Equal(billing.StatusActive))
		})

		It("hides other users' engagements", func() {
			e := seed("Private", "2026-01-01", "2026-12-31")
			_, err := service.GetEngagement(e.ID, userID+1, day("2026-06-15"))
			Expect(err).To(MatchError(internal.ErrEngagementNotFound))
		})
	})

	Describe("ListEngagements", func() {
		BeforeEach(func() {
			seed("Past", "2025-01-01", "2025-03-31")
			seed("Current", "2026-01-01", "2026-12-31")
			seed("Future", "2027-01-01", "2027-06-30")
		})

		asOf := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

		It("returns every engagement with its derived status", func() {
			views, err := service.ListEngagements(userID, engagement.ListFilter{}, asOf)
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(3))
			Expect(views[0].Status).To(Equal(billing.StatusCompleted))
			Expect(views[1].Status).To(Equal(billing.StatusActive))
			Expect(views[2].Status).To(Equal(billing.StatusUpcoming))
		})

		It("filters by derived status", func() {
			views, err := service.ListEngagements(userID, engagement.ListFilter{Status: "active"}, asOf)
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].ProjectName).To(Equal("Current"))
		})

		It("filters by date-range overlap", func() {
			views, err := service.ListEngagements(userID, engagement.ListFilter{
				From: "2025-02-01",
				To:   "2025-02-28",
			}, asOf)
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].ProjectName).To(Equal("Past"))
		})

		It("includes engagements that merely touch the range boundary", func() {
			views, err := service.ListEngagements(userID, engagement.ListFilter{
				From: "2025-03-31",
				To:   "2025-12-31",
			}, asOf)
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].ProjectName).To(Equal("Past"))
		})

		It("rejects a malformed range date", func() {
			_, err := service.ListEngagements(userID, engagement.ListFilter{From: "yesterday"}, asOf)
			Expect(err).To(MatchError(internal.ErrInvalidDate))
		})

		It("fills filtered pages from the whole set, not a pre-cut page", func() {
			// Two more active engagements after the seeded upcoming one;
			// a repo-level limit of 2 would only ever see "Past" and
			// "Current" and return a short page.
			seed("Current B", "2026-02-01", "2026-11-30")
			seed("Current C", "2026-03-01", "2026-10-31")

			views, err := service.ListEngagements(userID, engagement.ListFilter{
				Status: "active",
				Limit:  2,
			}, asOf)
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(2))
			Expect(views[0].ProjectName).To(Equal("Current"))
			Expect(views[1].ProjectName).To(Equal("Current B"))
		})

		It("applies the offset to the filtered result", func() {
			seed("Current B", "2026-02-01", "2026-11-30")
			seed("Current C", "2026-03-01", "2026-10-31")

			views, err := service.ListEngagements(userID, engagement.ListFilter{
				Status: "active",
				Limit:  2,
				Offset: 2,
			}, asOf)
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].ProjectName).To(Equal("Current C"))
		})
	})

	Describe("UpdateEngagement", func() {
		It("replaces the stored engagement but keeps its identity", func() {
			e := seed("Original", "2026-01-01", "2026-12-31")

			var dto engagement.UpsertEngagementDTO
			body := `{"client_id": 1, "project_name": "Renamed", "start_date": "2026-01-01", "end_date": "2026-12-31", "type": "hourly", "hourly_rate": 175}`
			Expect(json.Unmarshal([]byte(body), &dto)).To(Succeed())

			updated, err := service.UpdateEngagement(e.ID, dto, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(e.ID))
			Expect(updated.ProjectName).To(Equal("Renamed"))
			Expect(updated.HourlyRate.String()).To(Equal("175"))
		})
	})

	Describe("DeleteEngagement", func() {
		It("removes the engagement", func() {
			e := seed("Doomed", "2026-01-01", "2026-12-31")
			Expect(service.DeleteEngagement(e.ID, userID)).To(Succeed())
			_, err := service.GetEngagement(e.ID, userID, time.Now())
			Expect(err).To(MatchError(internal.ErrEngagementNotFound))
		})
	})
})
