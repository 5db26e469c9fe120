package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/engagement"
)

// EngagementRepository implements the engagement.Repository interface using GORM.
type EngagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) engagement.Repository {
	return &EngagementRepository{db: db}
}

func (r *EngagementRepository) Create(e *engagement.Engagement) error {
	return r.db.Create(e).Error
}

func (r *EngagementRepository) GetByID(id, userID int64) (*engagement.Engagement, error) {
	var e engagement.Engagement
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEngagementNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetByUserID lists the user's engagements newest start date first. A
// non-positive limit returns the full set.
func (r *EngagementRepository) GetByUserID(userID int64, limit, offset int) ([]*engagement.Engagement, error) {
	query := r.db.Where("user_id = ?", userID).Order("start_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var engagements []*engagement.Engagement
	err := query.Find(&engagements).Error
	return engagements, err
}

func (r *EngagementRepository) Update(e *engagement.Engagement) error {
	return r.db.Save(e).Error
}

func (r *EngagementRepository) Delete(id, userID int64) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&engagement.Engagement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrEngagementNotFound
	}
	return nil
}
