package timelog

import (
	"github.com/shopspring/decimal"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/billing"
)

// UpsertTimeLogDTO is the request payload for creating or updating a time
// log. Hours tolerates both JSON numbers and numeric strings; dates arrive as
// strings and are parsed exactly once, here.
type UpsertTimeLogDTO struct {
	EngagementID int64           `json:"engagement_id"`
	LogDate      string          `json:"log_date"`
	Hours        decimal.Decimal `json:"hours"`
	Description  string          `json:"description"`
}

func (dto UpsertTimeLogDTO) Validate() error {
	if dto.EngagementID <= 0 {
		return internal.NewValidationError("engagement is required", internal.ErrCodeValidationFailed)
	}
	if _, err := billing.ParseDate(dto.LogDate); err != nil {
		return err
	}
	if dto.Hours.LessThanOrEqual(decimal.Zero) {
		return internal.NewValidationError("hours must be positive", internal.ErrCodeInvalidHours)
	}
	if dto.Hours.GreaterThan(decimal.NewFromInt(24)) {
		return internal.NewValidationError("hours must not exceed 24 for a single day", internal.ErrCodeInvalidHours)
	}
	if len(dto.Description) > 500 {
		return internal.NewValidationError("description must be at most 500 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}
