package invoice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/billing"
	"github.com/adrianhartanto/timebill/internal/client"
	"github.com/adrianhartanto/timebill/internal/core/events"
	"github.com/adrianhartanto/timebill/internal/engagement"
	"github.com/adrianhartanto/timebill/internal/timelog"
)

// EngagementReader loads engagements scoped to their owner.
type EngagementReader interface {
	GetByID(id, userID int64) (*engagement.Engagement, error)
}

// ClientReader loads clients scoped to their owner, for the billing-contact
// snapshot.
type ClientReader interface {
	GetByID(id, userID int64) (*client.Client, error)
}

// TimeLogSource supplies the uninvoiced logs of a billing period.
type TimeLogSource interface {
	GetBillable(engagementID, userID int64, periodStart, periodEnd time.Time) ([]*timelog.TimeLog, error)
}

// EventPublisher receives billing lifecycle events. Publication failures are
// logged, never surfaced to API callers.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service assembles invoices. All monetary work is delegated to the billing
// package; this layer owns validation, snapshots and the atomic write.
type Service struct {
	repo          Repository
	engagements   EngagementReader
	clients       ClientReader
	timeLogs      TimeLogSource
	retryAttempts int
	logger        *slog.Logger
	events        EventPublisher

	// now is swappable so tests can pin the issue date.
	now func() time.Time
}

func NewService(repo Repository, engagements EngagementReader, clients ClientReader, timeLogs TimeLogSource, retryAttempts int, logger *slog.Logger) *Service {
	if retryAttempts < 1 {
		retryAttempts = 3
	}
	return &Service{
		repo:          repo,
		engagements:   engagements,
		clients:       clients,
		timeLogs:      timeLogs,
		retryAttempts: retryAttempts,
		logger:        logger,
		now:           time.Now,
	}
}

// NewSweepService builds a service limited to background maintenance work.
// Only the repository is wired; invoice creation is unavailable on it.
func NewSweepService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		retryAttempts: 1,
		logger:        logger,
		now:           time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithEvents attaches a publisher for invoice lifecycle events.
func (s *Service) WithEvents(publisher EventPublisher) *Service {
	s.events = publisher
	return s
}

func (s *Service) publish(event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish event", "error", err, "event_type", event.EventType())
	}
}

// CreateInvoice is the single entry point for invoice generation: it selects
// the billable work, prices it, allocates a number and persists everything as
// one transaction.
func (s *Service) CreateInvoice(dto CreateInvoiceDTO, userID int64) (*Invoice, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.engagements.GetByID(dto.EngagementID, userID)
	if err != nil {
		return nil, err
	}

	periodStart, err := billing.ParseDate(dto.PeriodStart)
	if err != nil {
		return nil, err
	}
	periodEnd, err := billing.ParseDate(dto.PeriodEnd)
	if err != nil {
		return nil, err
	}
	periodStart = billing.DayStart(periodStart)
	periodEnd = billing.DayStart(periodEnd)
	if periodStart.After(periodEnd) {
		return nil, internal.ErrInvalidPeriod
	}

	c, err := s.clients.GetByID(e.ClientID, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.timeLogs.GetBillable(e.ID, userID, periodStart, billing.DayEnd(periodEnd))
	if err != nil {
		s.logger.Error("failed to load billable time logs", "error", err, "engagement_id", e.ID)
		return nil, err
	}

	entries := make([]billing.WorkEntry, 0, len(logs))
	for _, log := range logs {
		entries = append(entries, log.WorkEntry())
	}

	summary := billing.Aggregate(e.BillingTerms(), entries, periodStart, periodEnd)

	// Policy, not a hard rule: the API blocks empty hourly invoices. Project
	// invoices bill the flat fee with or without logged time.
	if e.Type == engagement.TypeHourly && len(summary.Items) == 0 {
		return nil, internal.ErrEmptyInvoice
	}

	netTerms := dto.NetTermsDays
	if netTerms == 0 {
		netTerms = e.NetTermsDays
	}
	issueDate := billing.DayStart(s.now())
	dueDate, err := billing.DueDate(issueDate, netTerms)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		UserID:         userID,
		EngagementID:   e.ID,
		ClientName:     c.Name,
		ProjectName:    e.ProjectName,
		ContactName:    c.ContactName,
		ContactEmail:   c.Email,
		ContactAddress: c.Address,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Status:         StatusDraft,
		TotalHours:     summary.TotalHours,
		TotalAmount:    summary.TotalAmount,
		Notes:          dto.Notes,
	}

	items := make([]*LineItem, 0, len(summary.Items))
	claimIDs := make([]int64, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, &LineItem{
			TimeLogID:   item.TimeLogID,
			LogDate:     item.Date,
			Description: item.Description,
			Hours:       item.Hours,
			Rate:        item.Rate,
			Amount:      item.Amount,
		})
		if item.TimeLogID != nil {
			claimIDs = append(claimIDs, *item.TimeLogID)
		}
	}

	// The header total must equal the line item sum exactly. A mismatch is a
	// calculator defect and must never be silently corrected.
	if !billing.InvoiceTotal(summary.Items).Equal(inv.TotalAmount) {
		s.logger.Error("invoice totals mismatch",
			"engagement_id", e.ID,
			"header_total", inv.TotalAmount,
			"items_total", billing.InvoiceTotal(summary.Items))
		return nil, internal.ErrTotalsMismatch
	}

	// The number sequence is allocated inside the repository transaction; a
	// duplicate number means another request won the race, so retry with a
	// fresh sequence value. Anything else aborts immediately.
	var lastErr error
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		err := s.repo.CreateAtomic(inv, items, claimIDs)
		if err == nil {
			inv.LineItems = items
			s.logger.Info("invoice created",
				"invoice_id", inv.ID,
				"invoice_number", inv.InvoiceNumber,
				"engagement_id", e.ID,
				"user_id", userID,
				"total_amount", inv.TotalAmount,
				"line_items", len(items))
			s.publish(events.NewInvoiceCreatedEvent(inv.ID, inv.InvoiceNumber, e.ID, userID, inv.TotalAmount, len(items)))
			return inv, nil
		}
		lastErr = err
		if !errors.Is(err, internal.ErrDuplicateInvoiceNumber) {
			s.logger.Error("failed to persist invoice", "error", err, "engagement_id", e.ID)
			return nil, err
		}
		s.logger.Warn("invoice number collision, retrying",
			"attempt", attempt,
			"engagement_id", e.ID)
	}

	return nil, internal.ErrDuplicateInvoiceNumber.WithCause(lastErr)
}

func (s *Service) GetInvoice(id, userID int64) (*Invoice, error) {
	return s.repo.GetByID(id, userID)
}

func (s *Service) ListInvoices(userID int64, limit, offset int) ([]*Invoice, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	invoices, err := s.repo.GetByUserID(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list invoices", "error", err, "user_id", userID)
		return nil, err
	}
	return invoices, nil
}

// UpdateStatus applies an externally driven status transition (submission,
// payment recording).
func (s *Service) UpdateStatus(id int64, dto UpdateStatusDTO, userID int64) (*Invoice, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	if !inv.CanTransitionTo(dto.Status) {
		return nil, internal.NewValidationError(
			"invoice cannot move from "+inv.Status+" to "+dto.Status,
			internal.ErrCodeInvalidInvoiceStatus)
	}

	if err := s.repo.UpdateStatus(id, userID, dto.Status); err != nil {
		s.logger.Error("failed to update invoice status", "error", err, "invoice_id", id)
		return nil, err
	}

	fromStatus := inv.Status
	inv.Status = dto.Status
	s.logger.Info("invoice status updated", "invoice_id", id, "status", dto.Status)
	s.publish(events.NewInvoiceStatusChangedEvent(id, userID, fromStatus, dto.Status))
	return inv, nil
}

// SweepOverdue marks every submitted invoice past its due date as overdue.
// Runs from the background worker, not the API.
func (s *Service) SweepOverdue() (int64, error) {
	asOf := billing.DayStart(s.now())
	n, err := s.repo.MarkOverdue(asOf)
	if err != nil {
		s.logger.Error("overdue sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		s.logger.Info("marked invoices overdue", "count", n, "as_of", asOf)
	}
	return n, nil
}
