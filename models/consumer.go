package models

import (
	"time"
)

// Consumer represents a customer that stock is sold to
type Consumer struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null;index" json:"name"`
	ContactNumber string          `json:"contact_number"`
	Orders        []ConsumerOrder `gorm:"foreignKey:ConsumerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Consumer model
func (Consumer) TableName() string {
	return "consumers"
}
