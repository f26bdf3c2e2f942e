package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SupplierOrder is a purchase of stock from a supplier
type SupplierOrder struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	SupplierID  uint                `gorm:"not null;index" json:"supplier_id"`
	OrderDate   datatypes.Date      `gorm:"not null;index" json:"order_date"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"total_amount"` // sum of Items[].TotalPrice once items exist
	Items       []SupplierOrderItem `gorm:"foreignKey:SupplierOrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TableName specifies the table name for the SupplierOrder model
func (SupplierOrder) TableName() string {
	return "supplier_orders"
}

// SupplierOrderItem is one line of a supplier order
type SupplierOrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	SupplierOrderID uint            `gorm:"not null;index" json:"supplier_order_id"`
	ProductID       uint            `gorm:"not null;index" json:"product_id"`
	ItemName        string          `json:"item_name"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"` // derived, see CalculateTotalPrice
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the SupplierOrderItem model
func (SupplierOrderItem) TableName() string {
	return "supplier_order_items"
}
