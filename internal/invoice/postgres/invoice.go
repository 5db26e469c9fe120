package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/billing"
	"github.com/adrianhartanto/timebill/internal/invoice"
	"github.com/adrianhartanto/timebill/internal/timelog"
)

// InvoiceRepository implements the invoice.Repository interface using GORM.
type InvoiceRepository struct {
	db           *gorm.DB
	numberPrefix string
}

func NewInvoiceRepository(db *gorm.DB, numberPrefix string) invoice.Repository {
	if numberPrefix == "" {
		numberPrefix = "INV"
	}
	return &InvoiceRepository{db: db, numberPrefix: numberPrefix}
}

// CreateAtomic writes the invoice header, line items and time log claims in
// one transaction. The invoice number comes from the database sequence inside
// the same transaction, never pre-fetched, so concurrent requests either get
// distinct numbers or fail the unique index and retry. A failed transaction
// leaves no partial rows behind.
func (r *InvoiceRepository) CreateAtomic(inv *invoice.Invoice, items []*invoice.LineItem, claimTimeLogIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var seq int64
		if err := tx.Raw("SELECT nextval('invoice_number_seq')").Scan(&seq).Error; err != nil {
			return err
		}
		inv.InvoiceNumber = billing.FormatInvoiceNumber(r.numberPrefix, seq)

		if err := tx.Omit("LineItems").Create(inv).Error; err != nil {
			if isUniqueViolation(err) {
				return internal.ErrDuplicateInvoiceNumber.WithCause(err)
			}
			return err
		}

		for i, item := range items {
			item.InvoiceID = inv.ID
			item.Position = i + 1
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		if len(claimTimeLogIDs) > 0 {
			result := tx.Model(&timelog.TimeLog{}).
				Where("id IN ? AND invoice_id IS NULL", claimTimeLogIDs).
				Update("invoice_id", inv.ID)
			if result.Error != nil {
				return result.Error
			}
			// Fewer rows than expected means a concurrent invoice claimed
			// some of these logs first; abort rather than double-bill.
			if result.RowsAffected != int64(len(claimTimeLogIDs)) {
				return internal.ErrTimeLogInvoiced
			}
		}

		return nil
	})
}

func (r *InvoiceRepository) GetByID(id, userID int64) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	err := r.db.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ? AND user_id = ?", id, userID).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) GetByUserID(userID int64, limit, offset int) ([]*invoice.Invoice, error) {
	var invoices []*invoice.Invoice
	err := r.db.Where("user_id = ?", userID).
		Order("issue_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) UpdateStatus(id, userID int64, status string) error {
	result := r.db.Model(&invoice.Invoice{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) MarkOverdue(asOf time.Time) (int64, error) {
	result := r.db.Model(&invoice.Invoice{}).
		Where("status = ? AND due_date < ?", invoice.StatusSubmitted, asOf).
		Update("status", invoice.StatusOverdue)
	return result.RowsAffected, result.Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
