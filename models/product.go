package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a stock keeping unit
type Product struct {
	ID                 uint                `gorm:"primaryKey" json:"id"`
	CategoryID         *uint               `gorm:"index" json:"category_id"` // nullable, cleared when the category is deleted
	Name               string              `gorm:"not null;index" json:"name"`
	UnitPrice          decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Description        string              `gorm:"type:text" json:"description"`
	ImageS3Key         *string             `json:"image_s3_key"`                 // nullable, S3 key for uploaded image
	ImageURL           *string             `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for image
	SupplierOrderItems []SupplierOrderItem `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ConsumerOrderItems []ConsumerOrderItem `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
