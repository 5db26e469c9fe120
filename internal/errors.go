package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidPeriod    ErrorCode = "INVALID_PERIOD"
	ErrCodeInvalidNetTerms  ErrorCode = "INVALID_NET_TERMS"
	ErrCodeInvalidHours     ErrorCode = "INVALID_HOURS"
	ErrCodeInvalidRate      ErrorCode = "INVALID_RATE"

	ErrCodeClientNotFound     ErrorCode = "CLIENT_NOT_FOUND"
	ErrCodeEngagementNotFound ErrorCode = "ENGAGEMENT_NOT_FOUND"
	ErrCodeTimeLogNotFound    ErrorCode = "TIMELOG_NOT_FOUND"
	ErrCodeInvoiceNotFound    ErrorCode = "INVOICE_NOT_FOUND"
	ErrCodeUnauthorizedAccess ErrorCode = "UNAUTHORIZED_ACCESS"

	ErrCodeEmptyInvoice           ErrorCode = "EMPTY_INVOICE"
	ErrCodeTimeLogInvoiced        ErrorCode = "TIMELOG_ALREADY_INVOICED"
	ErrCodeDuplicateInvoiceNumber ErrorCode = "DUPLICATE_INVOICE_NUMBER"
	ErrCodeTotalsMismatch         ErrorCode = "INVOICE_TOTALS_MISMATCH"
	ErrCodeInvalidInvoiceStatus   ErrorCode = "INVALID_INVOICE_STATUS"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is treat WithCause/WithDetails clones as the sentinel they
// were derived from. Two AppErrors are the same error when Type and Code
// agree; pointer identity is irrelevant.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// Billing engine error taxonomy. All of these surface to the HTTP layer
// unchanged; nothing in the engine logs-and-continues, billing mistakes must
// be caller-visible.
var (
	ErrInvalidDate     = NewValidationError("date is malformed or unparseable", ErrCodeInvalidDate)
	ErrInvalidPeriod   = NewValidationError("period start must not be after period end", ErrCodeInvalidPeriod)
	ErrInvalidNetTerms = NewValidationError("net terms must be a positive number of days", ErrCodeInvalidNetTerms)

	ErrClientNotFound     = NewNotFoundError("client not found", ErrCodeClientNotFound)
	ErrEngagementNotFound = NewNotFoundError("engagement not found", ErrCodeEngagementNotFound)
	ErrTimeLogNotFound    = NewNotFoundError("time log not found", ErrCodeTimeLogNotFound)
	ErrInvoiceNotFound    = NewNotFoundError("invoice not found", ErrCodeInvoiceNotFound)

	ErrEmptyInvoice           = NewValidationError("no billable time logs in the requested period", ErrCodeEmptyInvoice)
	ErrTimeLogInvoiced        = NewConflictError("time log is already attached to an invoice", ErrCodeTimeLogInvoiced)
	ErrDuplicateInvoiceNumber = NewConflictError("invoice number collision, retries exhausted", ErrCodeDuplicateInvoiceNumber)
	// ErrTotalsMismatch indicates a calculator defect, never a user input
	// problem. It must map to a 500 and must not be silently corrected.
	ErrTotalsMismatch = NewInternalError("line item sum does not match invoice total", ErrCodeTotalsMismatch)

	ErrInvalidCredentials = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("user account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
