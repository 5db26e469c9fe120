package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/engagement"
)

func TestEngagementRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Engagement Repository Suite")
}

var _ = Describe("EngagementRepository", func() {
	var (
		db   *gorm.DB
		repo engagement.Repository
	)

	day := func(s string) time.Time {
		t, err := time.Parse("2006-01-02", s)
		Expect(err).NotTo(HaveOccurred())
		return t
	}

	newEngagement := func(userID int64, project, start, end string) *engagement.Engagement {
		rate := decimal.RequireFromString("150.00")
		return &engagement.Engagement{
			UserID:       userID,
			ClientID:     1,
			ProjectName:  project,
			StartDate:    day(start),
			EndDate:      day(end),
			Type:         engagement.TypeHourly,
			HourlyRate:   &rate,
			NetTermsDays: 30,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&engagement.Engagement{})).To(Succeed())

		repo = NewEngagementRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("creates and reads back an engagement with its rate", func() {
		e := newEngagement(1, "Platform migration", "2026-01-01", "2026-06-30")
		Expect(repo.Create(e)).To(Succeed())

		got, err := repo.GetByID(e.ID, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.ProjectName).To(Equal("Platform migration"))
		Expect(got.HourlyRate).NotTo(BeNil())
		Expect(got.HourlyRate.Equal(decimal.RequireFromString("150.00"))).To(BeTrue())
	})

	It("scopes reads to the owning user", func() {
		e := newEngagement(1, "Private", "2026-01-01", "2026-06-30")
		Expect(repo.Create(e)).To(Succeed())

		_, err := repo.GetByID(e.ID, 2)
		Expect(err).To(MatchError(internal.ErrEngagementNotFound))
	})

	It("lists newest start date first", func() {
		Expect(repo.Create(newEngagement(1, "Older", "2025-01-01", "2025-06-30"))).To(Succeed())
		Expect(repo.Create(newEngagement(1, "Newer", "2026-01-01", "2026-06-30"))).To(Succeed())

		engagements, err := repo.GetByUserID(1, 10, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(engagements).To(HaveLen(2))
		Expect(engagements[0].ProjectName).To(Equal("Newer"))
		Expect(engagements[1].ProjectName).To(Equal("Older"))
	})

	It("deletes only the owner's engagement", func() {
		e := newEngagement(1, "Doomed", "2026-01-01", "2026-06-30")
		Expect(repo.Create(e)).To(Succeed())

		Expect(repo.Delete(e.ID, 2)).To(MatchError(internal.ErrEngagementNotFound))
		Expect(repo.Delete(e.ID, 1)).To(Succeed())
	})
})
