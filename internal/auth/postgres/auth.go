package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/auth"
)

// UserRepository implements auth.UserRepository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) auth.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(email string) (*auth.UserAccount, error) {
	var account auth.UserAccount
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}
	return &account, nil
}

func (r *UserRepository) GetByID(id int64) (*auth.UserAccount, error) {
	var account auth.UserAccount
	err := r.db.Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, err
	}
	return &account, nil
}
