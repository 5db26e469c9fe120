package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeInvoiceCreated       = "invoice.created"
	EventTypeInvoiceStatusChanged = "invoice.status_changed"
)

type InvoiceCreatedEvent struct {
	BaseEvent
	InvoiceID     int64           `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	EngagementID  int64           `json:"engagement_id"`
	UserID        int64           `json:"user_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	LineItemCount int             `json:"line_item_count"`
}

func NewInvoiceCreatedEvent(invoiceID int64, invoiceNumber string, engagementID, userID int64, totalAmount decimal.Decimal, lineItemCount int) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeInvoiceCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"invoice_id":      invoiceID,
				"invoice_number":  invoiceNumber,
				"engagement_id":   engagementID,
				"user_id":         userID,
				"total_amount":    totalAmount.String(),
				"line_item_count": lineItemCount,
			},
		},
		InvoiceID:     invoiceID,
		InvoiceNumber: invoiceNumber,
		EngagementID:  engagementID,
		UserID:        userID,
		TotalAmount:   totalAmount,
		LineItemCount: lineItemCount,
	}
}

type InvoiceStatusChangedEvent struct {
	BaseEvent
	InvoiceID  int64  `json:"invoice_id"`
	UserID     int64  `json:"user_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}

func NewInvoiceStatusChangedEvent(invoiceID, userID int64, fromStatus, toStatus string) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeInvoiceStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"invoice_id":  invoiceID,
				"user_id":     userID,
				"from_status": fromStatus,
				"to_status":   toStatus,
			},
		},
		InvoiceID:  invoiceID,
		UserID:     userID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
	}
}
