package repository

import (
	"context"
	"time"

	"github.com/kendall-kelly/stock-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SupplierOrderRepository reads and writes supplier order headers
type SupplierOrderRepository struct {
	table[models.SupplierOrder]
}

// NewSupplierOrderRepository creates a supplier order repository over db
func NewSupplierOrderRepository(db *gorm.DB) *SupplierOrderRepository {
	return &SupplierOrderRepository{table[models.SupplierOrder]{db: db, entity: "supplier order"}}
}

// Create inserts an order for an existing supplier. The order starts with
// a zero total; SupplierOrderItemRepository keeps TotalAmount in step with its lines.
func (r *SupplierOrderRepository) Create(ctx context.Context, order *models.SupplierOrder) error {
	if _, err := NewSupplierRepository(r.db).GetByID(ctx, order.SupplierID); err != nil {
		return err
	}
	order.TotalAmount = decimal.Zero
	order.Items = nil
	return r.create(ctx, order)
}

// GetByID returns a NotFoundError when the order does not exist
func (r *SupplierOrderRepository) GetByID(ctx context.Context, id uint) (*models.SupplierOrder, error) {
	return r.getByID(ctx, id)
}

func (r *SupplierOrderRepository) GetAll(ctx context.Context) ([]models.SupplierOrder, error) {
	return r.all(ctx)
}

func (r *SupplierOrderRepository) Update(ctx context.Context, id uint, patch SupplierOrderPatch) (*models.SupplierOrder, error) {
	return r.update(ctx, id, patch.columns())
}

// Delete removes the order and its lines
func (r *SupplierOrderRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

// GetByOrderDate lists the orders placed on the calendar day of day
func (r *SupplierOrderRepository) GetByOrderDate(ctx context.Context, day time.Time) ([]models.SupplierOrder, error) {
	return findAll[models.SupplierOrder](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("supplier_orders.order_date = ?", datatypes.Date(day))
	})
}

func (r *SupplierOrderRepository) GetBySupplierID(ctx context.Context, supplierID uint) ([]models.SupplierOrder, error) {
	return findAll[models.SupplierOrder](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("supplier_orders.supplier_id = ?", supplierID)
	})
}

// GetByProductName lists the distinct orders with a line for the named product
func (r *SupplierOrderRepository) GetByProductName(ctx context.Context, productName string) ([]models.SupplierOrder, error) {
	return findAll[models.SupplierOrder](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Distinct().
			Joins("JOIN supplier_order_items ON supplier_order_items.supplier_order_id = supplier_orders.id").
			Joins("JOIN products ON products.id = supplier_order_items.product_id").
			Where("LOWER(products.name) = LOWER(?)", productName)
	})
}

// SupplierOrderItemRepository reads and writes supplier order lines. Every
// write recomputes the line total from the product's unit price and the
// order total from its lines, in one transaction.
type SupplierOrderItemRepository struct {
	table[models.SupplierOrderItem]
}

// NewSupplierOrderItemRepository creates a supplier order line repository over db
func NewSupplierOrderItemRepository(db *gorm.DB) *SupplierOrderItemRepository {
	return &SupplierOrderItemRepository{table[models.SupplierOrderItem]{db: db, entity: "supplier order item"}}
}

// Create prices and inserts a line. A missing order or product yields a NotFoundError.
func (r *SupplierOrderItemRepository) Create(ctx context.Context, item *models.SupplierOrderItem) error {
	return atomically(ctx, r.db, func(tx *gorm.DB) error {
		if _, err := NewSupplierOrderRepository(tx).GetByID(ctx, item.SupplierOrderID); err != nil {
			return err
		}
		product, err := NewProductRepository(tx).GetByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		item.UnitPrice = item.UnitPrice.Round(models.MoneyPlaces)
		item.CalculateTotalPrice(*product)
		if err := r.with(tx).create(ctx, item); err != nil {
			return err
		}
		return recomputeSupplierOrderTotal(tx, item.SupplierOrderID)
	})
}

// GetByID returns a NotFoundError when the line does not exist
func (r *SupplierOrderItemRepository) GetByID(ctx context.Context, id uint) (*models.SupplierOrderItem, error) {
	return r.getByID(ctx, id)
}

func (r *SupplierOrderItemRepository) GetAll(ctx context.Context) ([]models.SupplierOrderItem, error) {
	return r.all(ctx)
}

// Update applies the patch, reprices the line and recomputes the order total
func (r *SupplierOrderItemRepository) Update(ctx context.Context, id uint, patch SupplierOrderItemPatch) (*models.SupplierOrderItem, error) {
	var updated *models.SupplierOrderItem
	err := atomically(ctx, r.db, func(tx *gorm.DB) error {
		t := r.with(tx)
		item, err := t.getByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.ItemName != nil {
			item.ItemName = *patch.ItemName
		}
		if patch.Quantity != nil {
			item.Quantity = *patch.Quantity
		}
		if patch.UnitPrice != nil {
			item.UnitPrice = patch.UnitPrice.Round(models.MoneyPlaces)
		}
		product, err := NewProductRepository(tx).GetByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		item.CalculateTotalPrice(*product)

		updated, err = t.update(ctx, id, map[string]interface{}{
			"item_name":   item.ItemName,
			"quantity":    item.Quantity,
			"unit_price":  item.UnitPrice,
			"total_price": item.TotalPrice,
		})
		if err != nil {
			return err
		}
		return recomputeSupplierOrderTotal(tx, item.SupplierOrderID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the line and recomputes its order's total
func (r *SupplierOrderItemRepository) Delete(ctx context.Context, id uint) error {
	return atomically(ctx, r.db, func(tx *gorm.DB) error {
		t := r.with(tx)
		item, err := t.getByID(ctx, id)
		if err != nil {
			return err
		}
		if err := t.delete(ctx, id); err != nil {
			return err
		}
		return recomputeSupplierOrderTotal(tx, item.SupplierOrderID)
	})
}

func (r *SupplierOrderItemRepository) GetBySupplierOrderID(ctx context.Context, supplierOrderID uint) ([]models.SupplierOrderItem, error) {
	return findAll[models.SupplierOrderItem](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("supplier_order_items.supplier_order_id = ?", supplierOrderID)
	})
}
