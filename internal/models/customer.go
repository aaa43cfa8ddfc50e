package models

import (
	"errors"
	"time"
)

// Customer represents a retail customer
type Customer struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	FirstName     string     `json:"first_name" gorm:"size:100"`
	LastName      string     `json:"last_name" gorm:"size:100"`
	Phone         string     `json:"phone" gorm:"size:30;index"`
	Email         *string    `json:"email,omitempty" gorm:"size:200"`
	ReferralNote  string     `json:"referral_note" gorm:"size:200"`
	Notes         *string    `json:"notes,omitempty"`
	OrderCount    int        `json:"order_count" gorm:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func (c *Customer) Validate() error {
	if c.FirstName == "" {
		return errors.New("first_name is required")
	}
	if c.LastName == "" {
		return errors.New("last_name is required")
	}
	if c.Phone == "" {
		return errors.New("phone is required")
	}
	return nil
}
