package client

import (
	"strings"

	"github.com/adrianhartanto/timebill/internal"
)

// UpsertClientDTO is the request payload for creating or updating a client.
type UpsertClientDTO struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

func (dto UpsertClientDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("client name is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Name) > 200 {
		return internal.NewValidationError("client name must be at most 200 characters", internal.ErrCodeValidationFailed)
	}
	if dto.Email != "" && !strings.Contains(dto.Email, "@") {
		return internal.NewValidationError("client email is malformed", internal.ErrCodeValidationFailed)
	}
	return nil
}
