package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/adrianhartanto/timebill/internal"
)

// Invoice is a billing document. Client and project details are snapshotted
// at creation time so later edits to the client record do not rewrite
// historical invoices. Line items are owned exclusively by their invoice and
// never mutated after creation.
type Invoice struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	UserID       int64 `json:"user_id" gorm:"column:user_id;not null"`
	EngagementID int64 `json:"engagement_id" gorm:"column:engagement_id;not null"`

	InvoiceNumber string `json:"invoice_number" gorm:"column:invoice_number;uniqueIndex;not null"`

	ClientName     string `json:"client_name" gorm:"column:client_name"`
	ProjectName    string `json:"project_name" gorm:"column:project_name"`
	ContactName    string `json:"contact_name" gorm:"column:contact_name"`
	ContactEmail   string `json:"contact_email" gorm:"column:contact_email"`
	ContactAddress string `json:"contact_address" gorm:"column:contact_address"`

	IssueDate   time.Time `json:"issue_date" gorm:"column:issue_date;type:date"`
	DueDate     time.Time `json:"due_date" gorm:"column:due_date;type:date"`
	PeriodStart time.Time `json:"period_start" gorm:"column:period_start;type:date"`
	PeriodEnd   time.Time `json:"period_end" gorm:"column:period_end;type:date"`

	Status      string          `json:"status" gorm:"default:draft"`
	TotalHours  decimal.Decimal `json:"total_hours" gorm:"column:total_hours;type:decimal(8,2)"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"column:total_amount;type:decimal(12,2)"`
	Notes       string          `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LineItems []*LineItem `json:"line_items,omitempty" gorm:"foreignKey:InvoiceID"`
}

func (Invoice) TableName() string {
	return "invoices"
}

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
)

// validStatusTransitions lists the transitions the API accepts. Overdue is
// applied by payment tracking, paid is terminal.
var validStatusTransitions = map[string][]string{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusPaid, StatusOverdue},
	StatusOverdue:   {StatusPaid},
}

// CanTransitionTo reports whether the invoice may move to the given status.
func (i *Invoice) CanTransitionTo(status string) bool {
	for _, allowed := range validStatusTransitions[i.Status] {
		if allowed == status {
			return true
		}
	}
	return false
}

// LineItem is one priced row on an invoice. TimeLogID references the
// originating work entry for hourly rows and is null for the flat project
// fee row.
type LineItem struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	InvoiceID   int64           `json:"invoice_id" gorm:"column:invoice_id;not null"`
	TimeLogID   *int64          `json:"time_log_id,omitempty" gorm:"column:time_log_id"`
	Position    int             `json:"position" gorm:"default:0"`
	LogDate     time.Time       `json:"log_date" gorm:"column:log_date;type:date"`
	Description string          `json:"description"`
	Hours       decimal.Decimal `json:"hours" gorm:"type:decimal(6,2)"`
	Rate        decimal.Decimal `json:"rate" gorm:"type:decimal(12,2)"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2)"`
}

func (LineItem) TableName() string {
	return "invoice_line_items"
}

// Repository defines the data access methods for invoices.
type Repository interface {
	// CreateAtomic persists the invoice header, its line items and the
	// invoice_id claim on the billed time logs in one transaction. The
	// invoice number is allocated from the database sequence inside that
	// same transaction; a unique violation surfaces as
	// internal.ErrDuplicateInvoiceNumber so the caller can retry.
	CreateAtomic(inv *Invoice, items []*LineItem, claimTimeLogIDs []int64) error
	GetByID(id, userID int64) (*Invoice, error)
	GetByUserID(userID int64, limit, offset int) ([]*Invoice, error)
	UpdateStatus(id, userID int64, status string) error
	// MarkOverdue flips every submitted invoice whose due date has passed
	// to overdue and reports how many rows changed.
	MarkOverdue(asOf time.Time) (int64, error)
}

// ValidateStatus rejects unknown status values.
func ValidateStatus(status string) error {
	switch status {
	case StatusDraft, StatusSubmitted, StatusPaid, StatusOverdue:
		return nil
	default:
		return internal.NewValidationError("unknown invoice status", internal.ErrCodeInvalidInvoiceStatus)
	}
}
