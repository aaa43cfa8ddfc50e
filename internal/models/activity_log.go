package models

import (
	"errors"
	"time"
)

// ActivityLog is an append-only record of a handled API action
type ActivityLog struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Action    string    `json:"action" gorm:"size:50;index"`
	Entity    string    `json:"entity" gorm:"size:50;index"`
	EntityID  string    `json:"entity_id" gorm:"size:60"`
	Detail    string    `json:"detail" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *ActivityLog) Validate() error {
	if l.Action == "" {
		return errors.New("action is required")
	}
	if l.Entity == "" {
		return errors.New("entity is required")
	}
	return nil
}

// ActivityLogFilter narrows activity log listings
type ActivityLogFilter struct {
	Entity string
	Action string
	Limit  int
	Offset int
}
