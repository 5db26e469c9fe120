package timelog

import (
	"log/slog"
	"time"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/billing"
	"github.com/adrianhartanto/timebill/internal/engagement"
)

// EngagementReader is the slice of the engagement repository this service
// needs for ownership checks.
type EngagementReader interface {
	GetByID(id, userID int64) (*engagement.Engagement, error)
}

// Service handles time log business logic.
type Service struct {
	repo        Repository
	engagements EngagementReader
	logger      *slog.Logger
}

func NewService(repo Repository, engagements EngagementReader, logger *slog.Logger) *Service {
	return &Service{repo: repo, engagements: engagements, logger: logger}
}

// CreateTimeLog records work against an engagement. The engagement's derived
// status is deliberately not checked here: logging time against a completed
// engagement is legitimate backdating and must keep working.
func (s *Service) CreateTimeLog(dto UpsertTimeLogDTO, userID int64) (*TimeLog, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("time log validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	if _, err := s.engagements.GetByID(dto.EngagementID, userID); err != nil {
		return nil, err
	}

	date, err := billing.ParseDate(dto.LogDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	log := &TimeLog{
		UserID:       userID,
		EngagementID: dto.EngagementID,
		LogDate:      billing.DayStart(date),
		Hours:        dto.Hours,
		Description:  dto.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(log); err != nil {
		s.logger.Error("failed to create time log", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("time log created",
		"timelog_id", log.ID,
		"engagement_id", log.EngagementID,
		"user_id", userID,
		"hours", log.Hours)

	return log, nil
}

func (s *Service) GetTimeLog(id, userID int64) (*TimeLog, error) {
	return s.repo.GetByID(id, userID)
}

// ListByEngagement lists an engagement's logs, optionally restricted to an
// inclusive from/to date range given as date strings.
func (s *Service) ListByEngagement(engagementID, userID int64, from, to string, limit, offset int) ([]*TimeLog, error) {
	if _, err := s.engagements.GetByID(engagementID, userID); err != nil {
		return nil, err
	}

	var fromDate, toDate *time.Time
	if from != "" {
		parsed, err := billing.ParseDate(from)
		if err != nil {
			return nil, err
		}
		d := billing.DayStart(parsed)
		fromDate = &d
	}
	if to != "" {
		parsed, err := billing.ParseDate(to)
		if err != nil {
			return nil, err
		}
		d := billing.DayStart(parsed)
		toDate = &d
	}
	if fromDate != nil && toDate != nil && fromDate.After(*toDate) {
		return nil, internal.ErrInvalidPeriod
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, err := s.repo.GetByEngagement(engagementID, userID, fromDate, toDate, limit, offset)
	if err != nil {
		s.logger.Error("failed to list time logs", "error", err, "engagement_id", engagementID)
		return nil, err
	}
	return logs, nil
}

// UpdateTimeLog edits an unclaimed log. Logs already attached to an invoice
// are immutable.
func (s *Service) UpdateTimeLog(id int64, dto UpsertTimeLogDTO, userID int64) (*TimeLog, error) {
	existing, err := s.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if existing.Invoiced() {
		return nil, internal.ErrTimeLogInvoiced
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	date, err := billing.ParseDate(dto.LogDate)
	if err != nil {
		return nil, err
	}

	existing.LogDate = billing.DayStart(date)
	existing.Hours = dto.Hours
	existing.Description = dto.Description
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update time log", "error", err, "timelog_id", id)
		return nil, err
	}

	return existing, nil
}

func (s *Service) DeleteTimeLog(id, userID int64) error {
	existing, err := s.repo.GetByID(id, userID)
	if err != nil {
		return err
	}
	if existing.Invoiced() {
		return internal.ErrTimeLogInvoiced
	}

	if err := s.repo.Delete(id, userID); err != nil {
		s.logger.Error("failed to delete time log", "error", err, "timelog_id", id)
		return err
	}

	s.logger.Info("time log deleted", "timelog_id", id, "user_id", userID)
	return nil
}
