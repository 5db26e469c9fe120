package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/client"
)

// ClientRepository implements the client.Repository interface using GORM.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) client.Repository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(c *client.Client) error {
	return r.db.Create(c).Error
}

func (r *ClientRepository) GetByID(id, userID int64) (*client.Client, error) {
	var c client.Client
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) GetByUserID(userID int64, limit, offset int) ([]*client.Client, error) {
	var clients []*client.Client
	err := r.db.Where("user_id = ?", userID).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) Update(c *client.Client) error {
	return r.db.Save(c).Error
}

func (r *ClientRepository) Delete(id, userID int64) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&client.Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrClientNotFound
	}
	return nil
}
