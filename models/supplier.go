package models

import (
	"time"
)

// Supplier represents a vendor that stock is purchased from
type Supplier struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null;index" json:"name"`
	ContactNumber string          `json:"contact_number"`
	Orders        []SupplierOrder `gorm:"foreignKey:SupplierID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
