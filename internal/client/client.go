package client

import (
	"time"
)

// Client is a billing entity: the party invoices are addressed to. Clients
// are owned by the user who created them and every read is scoped to that
// owner.
type Client struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"column:user_id;not null"`
	Name        string    `json:"name" gorm:"not null"`
	ContactName string    `json:"contact_name" gorm:"column:contact_name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// Repository defines the data access methods for clients.
type Repository interface {
	Create(client *Client) error
	GetByID(id, userID int64) (*Client, error)
	GetByUserID(userID int64, limit, offset int) ([]*Client, error)
	Update(client *Client) error
	Delete(id, userID int64) error
}
