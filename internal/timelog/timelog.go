package timelog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/adrianhartanto/timebill/internal/billing"
)

// TimeLog is one recorded unit of billable work against an engagement.
// InvoiceID is set when an invoice claims the log; a claimed log is immutable
// and never aggregated again, which is what prevents double-billing across
// overlapping billing periods.
type TimeLog struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	UserID       int64           `json:"user_id" gorm:"column:user_id;not null"`
	EngagementID int64           `json:"engagement_id" gorm:"column:engagement_id;not null"`
	LogDate      time.Time       `json:"log_date" gorm:"column:log_date;type:date"`
	Hours        decimal.Decimal `json:"hours" gorm:"type:decimal(6,2);not null"`
	Description  string          `json:"description"`
	InvoiceID    *int64          `json:"invoice_id,omitempty" gorm:"column:invoice_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}

// Invoiced reports whether the log has been claimed by an invoice.
func (t *TimeLog) Invoiced() bool {
	return t.InvoiceID != nil
}

// WorkEntry projects the log onto the billing engine's input type.
func (t *TimeLog) WorkEntry() billing.WorkEntry {
	return billing.WorkEntry{
		TimeLogID:   t.ID,
		Date:        t.LogDate,
		Hours:       t.Hours,
		Description: t.Description,
	}
}

// Repository defines the data access methods for time logs.
type Repository interface {
	Create(log *TimeLog) error
	GetByID(id, userID int64) (*TimeLog, error)
	// GetByEngagement lists an engagement's logs ordered by date then id.
	// A non-nil from/to bound restricts the inclusive date range.
	GetByEngagement(engagementID, userID int64, from, to *time.Time, limit, offset int) ([]*TimeLog, error)
	// GetBillable returns the uninvoiced logs of an engagement whose date
	// falls within the inclusive period, ordered by date then id.
	GetBillable(engagementID, userID int64, periodStart, periodEnd time.Time) ([]*TimeLog, error)
	Update(log *TimeLog) error
	Delete(id, userID int64) error
}
