package models

import (
	"time"
)

// Category groups products. ProductID is a loose back-reference to a single
// product and carries no foreign key: products.category_id already points the
// other way and a second constraint would make the two tables cyclic.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:category_name;not null;index" json:"category_name"`
	ProductID *uint     `gorm:"index" json:"product_id"`
	Products  []Product `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
