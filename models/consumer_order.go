package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ConsumerOrder is a sale of stock to a consumer
type ConsumerOrder struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	ConsumerID  uint                `gorm:"not null;index" json:"consumer_id"`
	OrderDate   datatypes.Date      `gorm:"not null;index" json:"order_date"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"total_amount"` // sum of Items[].TotalPrice once items exist
	Items       []ConsumerOrderItem `gorm:"foreignKey:ConsumerOrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TableName specifies the table name for the ConsumerOrder model
func (ConsumerOrder) TableName() string {
	return "consumer_orders"
}

// ConsumerOrderItem is one line of a consumer order
type ConsumerOrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ConsumerOrderID uint            `gorm:"not null;index" json:"consumer_order_id"`
	ProductID       uint            `gorm:"not null;index" json:"product_id"`
	ItemName        string          `json:"item_name"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"` // derived, see CalculateTotalPrice
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the ConsumerOrderItem model
func (ConsumerOrderItem) TableName() string {
	return "consumer_order_items"
}
