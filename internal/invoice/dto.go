package invoice

import (
	"github.com/adrianhartanto/timebill/internal"
)

// CreateInvoiceDTO is the request payload for generating an invoice from an
// engagement's logged work.
type CreateInvoiceDTO struct {
	EngagementID int64  `json:"engagement_id"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	// NetTermsDays overrides the engagement's default when positive.
	NetTermsDays int    `json:"net_terms_days,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (dto CreateInvoiceDTO) Validate() error {
	if dto.EngagementID <= 0 {
		return internal.NewValidationError("engagement is required", internal.ErrCodeValidationFailed)
	}
	if dto.PeriodStart == "" || dto.PeriodEnd == "" {
		return internal.NewValidationError("period start and end are required", internal.ErrCodeValidationFailed)
	}
	if dto.NetTermsDays < 0 {
		return internal.ErrInvalidNetTerms
	}
	return nil
}

// UpdateStatusDTO is the request payload for invoice status transitions.
type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateStatusDTO) Validate() error {
	return ValidateStatus(dto.Status)
}
