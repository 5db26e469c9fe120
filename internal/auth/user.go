package auth

import "time"

// UserAccount is the stored user record.
type UserAccount struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (UserAccount) TableName() string {
	return "users"
}

// UserRepository defines the data access methods the auth service needs.
type UserRepository interface {
	GetByEmail(email string) (*UserAccount, error)
	GetByID(id int64) (*UserAccount, error)
}
