package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/timelog"
)

// TimeLogRepository implements the timelog.Repository interface using GORM.
type TimeLogRepository struct {
	db *gorm.DB
}

func NewTimeLogRepository(db *gorm.DB) timelog.Repository {
	return &TimeLogRepository{db: db}
}

func (r *TimeLogRepository) Create(log *timelog.TimeLog) error {
	return r.db.Create(log).Error
}

func (r *TimeLogRepository) GetByID(id, userID int64) (*timelog.TimeLog, error) {
	var log timelog.TimeLog
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTimeLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *TimeLogRepository) GetByEngagement(engagementID, userID int64, from, to *time.Time, limit, offset int) ([]*timelog.TimeLog, error) {
	query := r.db.Where("engagement_id = ? AND user_id = ?", engagementID, userID)
	if from != nil {
		query = query.Where("log_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("log_date <= ?", *to)
	}

	var logs []*timelog.TimeLog
	err := query.
		Order("log_date ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, err
}

// GetBillable returns uninvoiced logs inside the inclusive period. The
// "id ASC" tiebreak keeps insertion order stable for equal dates so invoices
// list work chronologically.
func (r *TimeLogRepository) GetBillable(engagementID, userID int64, periodStart, periodEnd time.Time) ([]*timelog.TimeLog, error) {
	var logs []*timelog.TimeLog
	err := r.db.Where(
		"engagement_id = ? AND user_id = ? AND invoice_id IS NULL AND log_date >= ? AND log_date <= ?",
		engagementID, userID, periodStart, periodEnd,
	).
		Order("log_date ASC, id ASC").
		Find(&logs).Error
	return logs, err
}

// Update rewrites an unclaimed log's editable columns. The invoice_id IS NULL
// guard makes the write race-safe: an invoice claiming the log between the
// service's read and this write leaves zero rows affected instead of the
// stale update erasing the claim.
func (r *TimeLogRepository) Update(log *timelog.TimeLog) error {
	result := r.db.Model(&timelog.TimeLog{}).
		Where("id = ? AND user_id = ? AND invoice_id IS NULL", log.ID, log.UserID).
		Updates(map[string]interface{}{
			"log_date":    log.LogDate,
			"hours":       log.Hours,
			"description": log.Description,
			"updated_at":  log.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missReason(log.ID, log.UserID)
	}
	return nil
}

func (r *TimeLogRepository) Delete(id, userID int64) error {
	result := r.db.Where("id = ? AND user_id = ? AND invoice_id IS NULL", id, userID).
		Delete(&timelog.TimeLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missReason(id, userID)
	}
	return nil
}

// missReason distinguishes a write that missed because the row is gone from
// one that missed because an invoice claimed the log in the meantime.
func (r *TimeLogRepository) missReason(id, userID int64) error {
	var count int64
	if err := r.db.Model(&timelog.TimeLog{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return internal.ErrTimeLogInvoiced
	}
	return internal.ErrTimeLogNotFound
}
