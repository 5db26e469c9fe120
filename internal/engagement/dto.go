package engagement

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/billing"
)

// UpsertEngagementDTO is the request payload for creating or updating an
// engagement.
//
// This DTO is the single normalization boundary for engagement input: older
// clients send camelCase keys and numbers-as-strings, newer ones snake_case
// and real numbers. Everything is converted to one canonical typed form here
// so that nothing downstream ever branches on field spelling or value shape.
type UpsertEngagementDTO struct {
	ClientID      int64
	ProjectName   string
	StartDate     string
	EndDate       string
	Type          string
	HourlyRate    *decimal.Decimal
	ProjectAmount *decimal.Decimal
	NetTermsDays  int
	Notes         string
}

// normalizeKey folds "hourlyRate", "hourly_rate" and "HOURLY_RATE" onto the
// same lookup key.
func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}

func flexInt(raw json.RawMessage) (int64, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func flexDecimal(raw json.RawMessage) (*decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || s == `""` {
		return nil, nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func flexString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return strings.Trim(strings.TrimSpace(string(raw)), `"`)
	}
	return s
}

func (dto *UpsertEngagementDTO) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		fields[normalizeKey(k)] = v
	}

	var err error
	if v, ok := fields["clientid"]; ok {
		if dto.ClientID, err = flexInt(v); err != nil {
			return internal.NewValidationError("client_id is not a number", internal.ErrCodeValidationFailed)
		}
	}
	if v, ok := fields["projectname"]; ok {
		dto.ProjectName = flexString(v)
	}
	if v, ok := fields["startdate"]; ok {
		dto.StartDate = flexString(v)
	}
	if v, ok := fields["enddate"]; ok {
		dto.EndDate = flexString(v)
	}
	if v, ok := fields["type"]; ok {
		dto.Type = strings.ToLower(flexString(v))
	} else if v, ok := fields["engagementtype"]; ok {
		dto.Type = strings.ToLower(flexString(v))
	}
	if v, ok := fields["hourlyrate"]; ok {
		if dto.HourlyRate, err = flexDecimal(v); err != nil {
			return internal.NewValidationError("hourly_rate is not a number", internal.ErrCodeInvalidRate)
		}
	}
	if v, ok := fields["projectamount"]; ok {
		if dto.ProjectAmount, err = flexDecimal(v); err != nil {
			return internal.NewValidationError("project_amount is not a number", internal.ErrCodeInvalidRate)
		}
	}
	if v, ok := fields["nettermsdays"]; ok {
		n, err := flexInt(v)
		if err != nil {
			return internal.NewValidationError("net_terms_days is not a number", internal.ErrCodeInvalidNetTerms)
		}
		dto.NetTermsDays = int(n)
	} else if v, ok := fields["netterms"]; ok {
		n, err := flexInt(v)
		if err != nil {
			return internal.NewValidationError("net_terms is not a number", internal.ErrCodeInvalidNetTerms)
		}
		dto.NetTermsDays = int(n)
	}
	if v, ok := fields["notes"]; ok {
		dto.Notes = flexString(v)
	}

	return nil
}

// ToEngagement parses dates and builds the canonical typed engagement,
// applying the default net terms when the client sent none.
func (dto UpsertEngagementDTO) ToEngagement(userID int64, defaultNetTermsDays int) (*Engagement, error) {
	start, err := billing.ParseDate(dto.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := billing.ParseDate(dto.EndDate)
	if err != nil {
		return nil, err
	}

	netTerms := dto.NetTermsDays
	if netTerms == 0 {
		netTerms = defaultNetTermsDays
	}

	e := &Engagement{
		UserID:        userID,
		ClientID:      dto.ClientID,
		ProjectName:   strings.TrimSpace(dto.ProjectName),
		StartDate:     billing.DayStart(start),
		EndDate:       billing.DayStart(end),
		Type:          dto.Type,
		HourlyRate:    dto.HourlyRate,
		ProjectAmount: dto.ProjectAmount,
		NetTermsDays:  netTerms,
		Notes:         dto.Notes,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// View is the read model: the stored engagement plus its derived status.
type View struct {
	Engagement
	Status billing.Status `json:"status"`
}

func NewView(e *Engagement, status billing.Status) View {
	return View{Engagement: *e, Status: status}
}
