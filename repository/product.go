package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kendall-kelly/stock-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductRepository reads and writes products
type ProductRepository struct {
	table[models.Product]
}

// NewProductRepository creates a product repository over db
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{table[models.Product]{db: db, entity: "product"}}
}

// Create inserts a product. A category that does not exist yields a NotFoundError.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.requireCategory(ctx, product.CategoryID); err != nil {
		return err
	}
	product.UnitPrice = product.UnitPrice.Round(models.MoneyPlaces)
	return r.create(ctx, product)
}

// GetByID returns a NotFoundError when the product does not exist
func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	return r.getByID(ctx, id)
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.all(ctx)
}

// Update applies the non-nil fields of patch. Existing order lines keep the
// totals they were priced with.
func (r *ProductRepository) Update(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error) {
	if !patch.ClearCategoryID {
		if err := r.requireCategory(ctx, patch.CategoryID); err != nil {
			return nil, err
		}
	}
	return r.update(ctx, id, patch.columns())
}

// SetImage records the object storage key of the product image. A nil key
// clears it.
func (r *ProductRepository) SetImage(ctx context.Context, id uint, key *string) (*models.Product, error) {
	return r.update(ctx, id, map[string]interface{}{"image_s3_key": key})
}

// Delete removes a product and, through the foreign keys, every order line
// that references it. The orders that lost lines get their totals recomputed
// and categories pointing at the product drop the reference.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return atomically(ctx, r.db, func(tx *gorm.DB) error {
		var supplierOrderIDs, consumerOrderIDs []uint
		err := tx.Model(&models.SupplierOrderItem{}).Distinct().
			Where("product_id = ?", id).Pluck("supplier_order_id", &supplierOrderIDs).Error
		if err != nil {
			return fmt.Errorf("find supplier orders of product %d: %w", id, err)
		}
		err = tx.Model(&models.ConsumerOrderItem{}).Distinct().
			Where("product_id = ?", id).Pluck("consumer_order_id", &consumerOrderIDs).Error
		if err != nil {
			return fmt.Errorf("find consumer orders of product %d: %w", id, err)
		}

		err = tx.Model(&models.Category{}).Where("product_id = ?", id).Update("product_id", nil).Error
		if err != nil {
			return fmt.Errorf("clear category references to product %d: %w", id, err)
		}

		if err := r.with(tx).delete(ctx, id); err != nil {
			return err
		}

		for _, orderID := range supplierOrderIDs {
			if err := recomputeSupplierOrderTotal(tx, orderID); err != nil {
				return err
			}
		}
		for _, orderID := range consumerOrderIDs {
			if err := recomputeConsumerOrderTotal(tx, orderID); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByName matches the product name exactly, ignoring case, and returns nil
// when there is no such product
func (r *ProductRepository) GetByName(ctx context.Context, name string) (*models.Product, error) {
	return firstOrNil[models.Product](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(products.name) = LOWER(?)", name)
	})
}

func (r *ProductRepository) GetByCategoryID(ctx context.Context, categoryID uint) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("products.category_id = ?", categoryID)
	})
}

func (r *ProductRepository) GetByCategoryName(ctx context.Context, categoryName string) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.category_name) = LOWER(?)", categoryName)
	})
}

// GetBySupplierName lists the distinct products the named supplier supplied
func (r *ProductRepository) GetBySupplierName(ctx context.Context, supplierName string) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return joinSupplierOrders(q).
			Joins("JOIN suppliers ON suppliers.id = supplier_orders.supplier_id").
			Where("LOWER(suppliers.name) = LOWER(?)", supplierName)
	})
}

func (r *ProductRepository) GetBySupplierOrderID(ctx context.Context, supplierOrderID uint) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Distinct().
			Joins("JOIN supplier_order_items ON supplier_order_items.product_id = products.id").
			Where("supplier_order_items.supplier_order_id = ?", supplierOrderID)
	})
}

// GetBySupplierOrderDate lists the distinct products on supplier orders placed that day
func (r *ProductRepository) GetBySupplierOrderDate(ctx context.Context, day time.Time) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return joinSupplierOrders(q).Where("supplier_orders.order_date = ?", datatypes.Date(day))
	})
}

// GetByConsumerOrderDate lists the distinct products on consumer orders placed that day
func (r *ProductRepository) GetByConsumerOrderDate(ctx context.Context, day time.Time) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Distinct().
			Joins("JOIN consumer_order_items ON consumer_order_items.product_id = products.id").
			Joins("JOIN consumer_orders ON consumer_orders.id = consumer_order_items.consumer_order_id").
			Where("consumer_orders.order_date = ?", datatypes.Date(day))
	})
}

func (r *ProductRepository) GetBySupplierOrderItemID(ctx context.Context, itemID uint) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN supplier_order_items ON supplier_order_items.product_id = products.id").
			Where("supplier_order_items.id = ?", itemID)
	})
}

func (r *ProductRepository) GetByConsumerOrderItemID(ctx context.Context, itemID uint) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN consumer_order_items ON consumer_order_items.product_id = products.id").
			Where("consumer_order_items.id = ?", itemID)
	})
}

func (r *ProductRepository) requireCategory(ctx context.Context, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	_, err := NewCategoryRepository(r.db).GetByID(ctx, *categoryID)
	return err
}

func joinSupplierOrders(q *gorm.DB) *gorm.DB {
	return q.Distinct().
		Joins("JOIN supplier_order_items ON supplier_order_items.product_id = products.id").
		Joins("JOIN supplier_orders ON supplier_orders.id = supplier_order_items.supplier_order_id")
}
