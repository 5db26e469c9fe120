package engagement

import (
	"log/slog"
	"time"

	"github.com/adrianhartanto/timebill/internal/billing"
)

// ListFilter narrows engagement listings. Status filtering uses the derived
// status at AsOf; From/To filter by date-range overlap with the engagement.
type ListFilter struct {
	Status string
	From   string
	To     string
	Limit  int
	Offset int
}

// Service handles engagement business logic.
type Service struct {
	repo                Repository
	defaultNetTermsDays int
	logger              *slog.Logger
}

func NewService(repo Repository, defaultNetTermsDays int, logger *slog.Logger) *Service {
	if defaultNetTermsDays <= 0 {
		defaultNetTermsDays = 30
	}
	return &Service{repo: repo, defaultNetTermsDays: defaultNetTermsDays, logger: logger}
}

func (s *Service) CreateEngagement(dto UpsertEngagementDTO, userID int64) (*Engagement, error) {
	e, err := dto.ToEngagement(userID, s.defaultNetTermsDays)
	if err != nil {
		s.logger.Error("engagement validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create engagement", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("engagement created",
		"engagement_id", e.ID,
		"user_id", userID,
		"client_id", e.ClientID,
		"type", e.Type)

	return e, nil
}

func (s *Service) GetEngagement(id, userID int64, asOf time.Time) (*View, error) {
	e, err := s.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	view := NewView(e, e.Status(asOf))
	return &view, nil
}

// ListEngagements returns the user's engagements with derived status,
// optionally filtered by status and by overlap with a date range. asOf is
// explicit so that list views are reproducible and testable.
func (s *Service) ListEngagements(userID int64, filter ListFilter, asOf time.Time) ([]View, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var rangeFrom, rangeTo time.Time
	filterByRange := filter.From != "" || filter.To != ""
	if filterByRange {
		var err error
		if filter.From != "" {
			if rangeFrom, err = billing.ParseDate(filter.From); err != nil {
				return nil, err
			}
		} else {
			rangeFrom = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
		}
		if filter.To != "" {
			if rangeTo, err = billing.ParseDate(filter.To); err != nil {
				return nil, err
			}
		} else {
			rangeTo = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
		}
	}

	// Status is derived, so filtering cannot run in SQL. With a filter
	// active the full set is fetched and pagination applies to the
	// filtered result; paginating first would return short pages.
	filtering := filter.Status != "" || filterByRange
	repoLimit, repoOffset := limit, offset
	if filtering {
		repoLimit, repoOffset = 0, 0
	}

	engagements, err := s.repo.GetByUserID(userID, repoLimit, repoOffset)
	if err != nil {
		s.logger.Error("failed to list engagements", "error", err, "user_id", userID)
		return nil, err
	}

	views := make([]View, 0, len(engagements))
	for _, e := range engagements {
		status := e.Status(asOf)
		if filter.Status != "" && string(status) != filter.Status {
			continue
		}
		if filterByRange && !billing.RangesOverlap(
			billing.DayStart(e.StartDate), billing.DayEnd(e.EndDate),
			billing.DayStart(rangeFrom), billing.DayEnd(rangeTo),
		) {
			continue
		}
		views = append(views, NewView(e, status))
	}

	if filtering {
		if offset >= len(views) {
			return []View{}, nil
		}
		views = views[offset:]
		if len(views) > limit {
			views = views[:limit]
		}
	}

	return views, nil
}

func (s *Service) UpdateEngagement(id int64, dto UpsertEngagementDTO, userID int64) (*Engagement, error) {
	existing, err := s.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	updated, err := dto.ToEngagement(userID, s.defaultNetTermsDays)
	if err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(updated); err != nil {
		s.logger.Error("failed to update engagement", "error", err, "engagement_id", id, "user_id", userID)
		return nil, err
	}

	return updated, nil
}

func (s *Service) DeleteEngagement(id, userID int64) error {
	if _, err := s.repo.GetByID(id, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(id, userID); err != nil {
		s.logger.Error("failed to delete engagement", "error", err, "engagement_id", id, "user_id", userID)
		return err
	}
	s.logger.Info("engagement deleted", "engagement_id", id, "user_id", userID)
	return nil
}
