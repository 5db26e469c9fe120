package engagement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/billing"
)

// Engagement is a contract between a consultant and a client: a date range
// plus one of two billing arrangements. Status is derived from the dates on
// every read and is deliberately not a column.
type Engagement struct {
	ID            int64            `json:"id" gorm:"primaryKey"`
	UserID        int64            `json:"user_id" gorm:"column:user_id;not null"`
	ClientID      int64            `json:"client_id" gorm:"column:client_id;not null"`
	ProjectName   string           `json:"project_name" gorm:"column:project_name;not null"`
	StartDate     time.Time        `json:"start_date" gorm:"column:start_date;type:date"`
	EndDate       time.Time        `json:"end_date" gorm:"column:end_date;type:date"`
	Type          string           `json:"type" gorm:"column:engagement_type;not null"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate,omitempty" gorm:"column:hourly_rate;type:decimal(12,2)"`
	ProjectAmount *decimal.Decimal `json:"project_amount,omitempty" gorm:"column:project_amount;type:decimal(12,2)"`
	NetTermsDays  int              `json:"net_terms_days" gorm:"column:net_terms_days;default:30"`
	Notes         string           `json:"notes"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (Engagement) TableName() string {
	return "engagements"
}

const (
	TypeHourly  = string(billing.TypeHourly)
	TypeProject = string(billing.TypeProject)
)

// Status derives the lifecycle state at asOf.
func (e *Engagement) Status(asOf time.Time) billing.Status {
	return billing.ResolveStatus(e.StartDate, e.EndDate, asOf)
}

// BillingTerms projects the engagement onto the billing engine's input type.
func (e *Engagement) BillingTerms() billing.Terms {
	terms := billing.Terms{Type: billing.EngagementType(e.Type)}
	if e.HourlyRate != nil {
		terms.HourlyRate = *e.HourlyRate
	}
	if e.ProjectAmount != nil {
		terms.ProjectAmount = *e.ProjectAmount
	}
	return terms
}

// Validate enforces the structural invariants: end date not before start
// date, and exactly one of hourly rate / project amount populated, matching
// the engagement type.
func (e *Engagement) Validate() error {
	if e.ClientID <= 0 {
		return internal.NewValidationError("client is required", internal.ErrCodeValidationFailed)
	}
	if e.ProjectName == "" {
		return internal.NewValidationError("project name is required", internal.ErrCodeValidationFailed)
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return internal.NewValidationError("start and end dates are required", internal.ErrCodeValidationFailed)
	}
	if billing.DayStart(e.EndDate).Before(billing.DayStart(e.StartDate)) {
		return internal.NewValidationError("end date must not be before start date", internal.ErrCodeValidationFailed)
	}
	if e.NetTermsDays <= 0 {
		return internal.ErrInvalidNetTerms
	}

	switch e.Type {
	case TypeHourly:
		if e.HourlyRate == nil || e.HourlyRate.LessThanOrEqual(decimal.Zero) {
			return internal.NewValidationError("hourly engagements require a positive hourly rate", internal.ErrCodeInvalidRate)
		}
		if e.ProjectAmount != nil {
			return internal.NewValidationError("hourly engagements must not carry a project amount", internal.ErrCodeValidationFailed)
		}
	case TypeProject:
		if e.ProjectAmount == nil || e.ProjectAmount.LessThanOrEqual(decimal.Zero) {
			return internal.NewValidationError("project engagements require a positive project amount", internal.ErrCodeInvalidRate)
		}
		if e.HourlyRate != nil {
			return internal.NewValidationError("project engagements must not carry an hourly rate", internal.ErrCodeValidationFailed)
		}
	default:
		return internal.NewValidationError("engagement type must be hourly or project", internal.ErrCodeValidationFailed)
	}

	return nil
}

// Repository defines the data access methods for engagements.
type Repository interface {
	Create(engagement *Engagement) error
	GetByID(id, userID int64) (*Engagement, error)
	GetByUserID(userID int64, limit, offset int) ([]*Engagement, error)
	Update(engagement *Engagement) error
	Delete(id, userID int64) error
}
