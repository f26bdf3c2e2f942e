package repository

import (
	"context"
	"time"

	"github.com/kendall-kelly/stock-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConsumerOrderRepository reads and writes consumer order headers
type ConsumerOrderRepository struct {
	table[models.ConsumerOrder]
}

// NewConsumerOrderRepository creates a consumer order repository over db
func NewConsumerOrderRepository(db *gorm.DB) *ConsumerOrderRepository {
	return &ConsumerOrderRepository{table[models.ConsumerOrder]{db: db, entity: "consumer order"}}
}

// Create inserts an order for an existing consumer. The order starts with
// a zero total; ConsumerOrderItemRepository keeps TotalAmount in step with its lines.
func (r *ConsumerOrderRepository) Create(ctx context.Context, order *models.ConsumerOrder) error {
	if _, err := NewConsumerRepository(r.db).GetByID(ctx, order.ConsumerID); err != nil {
		return err
	}
	order.TotalAmount = decimal.Zero
	order.Items = nil
	return r.create(ctx, order)
}

// GetByID returns a NotFoundError when the order does not exist
func (r *ConsumerOrderRepository) GetByID(ctx context.Context, id uint) (*models.ConsumerOrder, error) {
	return r.getByID(ctx, id)
}

func (r *ConsumerOrderRepository) GetAll(ctx context.Context) ([]models.ConsumerOrder, error) {
	return r.all(ctx)
}

func (r *ConsumerOrderRepository) Update(ctx context.Context, id uint, patch ConsumerOrderPatch) (*models.ConsumerOrder, error) {
	return r.update(ctx, id, patch.columns())
}

// Delete removes the order and its lines
func (r *ConsumerOrderRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

// GetByOrderDate lists the orders placed on the calendar day of day
func (r *ConsumerOrderRepository) GetByOrderDate(ctx context.Context, day time.Time) ([]models.ConsumerOrder, error) {
	return findAll[models.ConsumerOrder](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("consumer_orders.order_date = ?", datatypes.Date(day))
	})
}

func (r *ConsumerOrderRepository) GetByConsumerID(ctx context.Context, consumerID uint) ([]models.ConsumerOrder, error) {
	return findAll[models.ConsumerOrder](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("consumer_orders.consumer_id = ?", consumerID)
	})
}

// GetByProductName lists the distinct orders with a line for the named product
func (r *ConsumerOrderRepository) GetByProductName(ctx context.Context, productName string) ([]models.ConsumerOrder, error) {
	return findAll[models.ConsumerOrder](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Distinct().
			Joins("JOIN consumer_order_items ON consumer_order_items.consumer_order_id = consumer_orders.id").
			Joins("JOIN products ON products.id = consumer_order_items.product_id").
			Where("LOWER(products.name) = LOWER(?)", productName)
	})
}

// ConsumerOrderItemRepository reads and writes consumer order lines. A line is
// priced from its own unit price, not the product's current one.
type ConsumerOrderItemRepository struct {
	table[models.ConsumerOrderItem]
}

// NewConsumerOrderItemRepository creates a consumer order line repository over db
func NewConsumerOrderItemRepository(db *gorm.DB) *ConsumerOrderItemRepository {
	return &ConsumerOrderItemRepository{table[models.ConsumerOrderItem]{db: db, entity: "consumer order item"}}
}

// Create prices and inserts a line. A missing order or product yields a NotFoundError.
func (r *ConsumerOrderItemRepository) Create(ctx context.Context, item *models.ConsumerOrderItem) error {
	return atomically(ctx, r.db, func(tx *gorm.DB) error {
		if _, err := NewConsumerOrderRepository(tx).GetByID(ctx, item.ConsumerOrderID); err != nil {
			return err
		}
		if _, err := NewProductRepository(tx).GetByID(ctx, item.ProductID); err != nil {
			return err
		}
		item.UnitPrice = item.UnitPrice.Round(models.MoneyPlaces)
		item.CalculateTotalPrice()
		if err := r.with(tx).create(ctx, item); err != nil {
			return err
		}
		return recomputeConsumerOrderTotal(tx, item.ConsumerOrderID)
	})
}

// GetByID returns a NotFoundError when the line does not exist
func (r *ConsumerOrderItemRepository) GetByID(ctx context.Context, id uint) (*models.ConsumerOrderItem, error) {
	return r.getByID(ctx, id)
}

func (r *ConsumerOrderItemRepository) GetAll(ctx context.Context) ([]models.ConsumerOrderItem, error) {
	return r.all(ctx)
}

// Update applies the patch, reprices the line and recomputes the order total
func (r *ConsumerOrderItemRepository) Update(ctx context.Context, id uint, patch ConsumerOrderItemPatch) (*models.ConsumerOrderItem, error) {
	var updated *models.ConsumerOrderItem
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
		item.CalculateTotalPrice()

		updated, err = t.update(ctx, id, map[string]interface{}{
			"item_name":   item.ItemName,
			"quantity":    item.Quantity,
			"unit_price":  item.UnitPrice,
			"total_price": item.TotalPrice,
		})
		if err != nil {
			return err
		}
		return recomputeConsumerOrderTotal(tx, item.ConsumerOrderID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the line and recomputes its order's total
func (r *ConsumerOrderItemRepository) Delete(ctx context.Context, id uint) error {
	return atomically(ctx, r.db, func(tx *gorm.DB) error {
		t := r.with(tx)
		item, err := t.getByID(ctx, id)
		if err != nil {
			return err
		}
		if err := t.delete(ctx, id); err != nil {
			return err
		}
		return recomputeConsumerOrderTotal(tx, item.ConsumerOrderID)
	})
}

func (r *ConsumerOrderItemRepository) GetByConsumerOrderID(ctx context.Context, consumerOrderID uint) ([]models.ConsumerOrderItem, error) {
	return findAll[models.ConsumerOrderItem](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("consumer_order_items.consumer_order_id = ?", consumerOrderID)
	})
}
