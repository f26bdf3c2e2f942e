package repository

import (
	"time"

	"github.com/kendall-kelly/stock-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Patch types carry optional fields for partial updates. A nil field is left
// unchanged; a non-nil field is written even when it holds a zero value.

// SupplierPatch is a partial update of a supplier
type SupplierPatch struct {
	Name          *string
	ContactNumber *string
}

func (p SupplierPatch) columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.ContactNumber != nil {
		updates["contact_number"] = *p.ContactNumber
	}
	return updates
}

// ConsumerPatch is a partial update of a consumer
type ConsumerPatch struct {
	Name          *string
	ContactNumber *string
}

func (p ConsumerPatch) columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.ContactNumber != nil {
		updates["contact_number"] = *p.ContactNumber
	}
	return updates
}

// CategoryPatch is a partial update of a category. ClearProductID drops the
// product reference and takes precedence over ProductID.
type CategoryPatch struct {
	Name           *string
	ProductID      *uint
	ClearProductID bool
}

func (p CategoryPatch) columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["category_name"] = *p.Name
	}
	if p.ClearProductID {
		updates["product_id"] = nil
	} else if p.ProductID != nil {
		updates["product_id"] = *p.ProductID
	}
	return updates
}

// ProductPatch is a partial update of a product. ClearCategoryID removes the
// product from its category and takes precedence over CategoryID.
type ProductPatch struct {
	Name            *string
	UnitPrice       *decimal.Decimal
	Description     *string
	CategoryID      *uint
	ClearCategoryID bool
}

func (p ProductPatch) columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.UnitPrice != nil {
		updates["unit_price"] = p.UnitPrice.Round(models.MoneyPlaces)
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.ClearCategoryID {
		updates["category_id"] = nil
	} else if p.CategoryID != nil {
		updates["category_id"] = *p.CategoryID
	}
	return updates
}

// SupplierOrderPatch is a partial update of a supplier order header. The
// total is derived from the order's lines and is not patchable.
type SupplierOrderPatch struct {
	OrderDate *time.Time
}

func (p SupplierOrderPatch) columns() map[string]interface{} {
	return orderColumns(p.OrderDate)
}

// ConsumerOrderPatch is a partial update of a consumer order header
type ConsumerOrderPatch struct {
	OrderDate *time.Time
}

func (p ConsumerOrderPatch) columns() map[string]interface{} {
	return orderColumns(p.OrderDate)
}

func orderColumns(orderDate *time.Time) map[string]interface{} {
	updates := make(map[string]interface{})
	if orderDate != nil {
		updates["order_date"] = datatypes.Date(*orderDate)
	}
	return updates
}

// SupplierOrderItemPatch is a partial update of a supplier order line.
// The line total is never patched; it is recomputed from the result.
type SupplierOrderItemPatch struct {
	ItemName  *string
	Quantity  *int
	UnitPrice *decimal.Decimal
}

// ConsumerOrderItemPatch is a partial update of a consumer order line.
// The line total is never patched; it is recomputed from the result.
type ConsumerOrderItemPatch struct {
	ItemName  *string
	Quantity  *int
	UnitPrice *decimal.Decimal
}
