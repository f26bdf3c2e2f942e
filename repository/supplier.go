package repository

import (
	"context"

	"github.com/kendall-kelly/stock-api/models"
	"gorm.io/gorm"
)

// SupplierRepository reads and writes suppliers
type SupplierRepository struct {
	table[models.Supplier]
}

// NewSupplierRepository creates a supplier repository over db
func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{table[models.Supplier]{db: db, entity: "supplier"}}
}

// Create inserts a supplier and fills in its id and timestamps
func (r *SupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	return r.create(ctx, supplier)
}

// GetByID returns a NotFoundError when the supplier does not exist
func (r *SupplierRepository) GetByID(ctx context.Context, id uint) (*models.Supplier, error) {
	return r.getByID(ctx, id)
}

func (r *SupplierRepository) GetAll(ctx context.Context) ([]models.Supplier, error) {
	return r.all(ctx)
}

// Update applies the non-nil fields of patch and returns the updated supplier
func (r *SupplierRepository) Update(ctx context.Context, id uint, patch SupplierPatch) (*models.Supplier, error) {
	return r.update(ctx, id, patch.columns())
}

// Delete removes a supplier together with its orders and their items
func (r *SupplierRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

// GetByName matches the name exactly, ignoring case. It returns nil when no
// supplier has that name.
func (r *SupplierRepository) GetByName(ctx context.Context, name string) (*models.Supplier, error) {
	return firstOrNil[models.Supplier](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(suppliers.name) = LOWER(?)", name)
	})
}

// GetProducts lists the distinct products that appear on the supplier's orders
func (r *SupplierRepository) GetProducts(ctx context.Context, supplierID uint) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return joinSupplierOrders(q).Where("supplier_orders.supplier_id = ?", supplierID)
	})
}

// GetCategories lists the distinct categories of the products the supplier has supplied
func (r *SupplierRepository) GetCategories(ctx context.Context, supplierID uint) ([]models.Category, error) {
	return findAll[models.Category](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return joinCategorySuppliers(q).Where("supplier_orders.supplier_id = ?", supplierID)
	})
}

func (r *SupplierRepository) GetOrders(ctx context.Context, supplierID uint) ([]models.SupplierOrder, error) {
	return findAll[models.SupplierOrder](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("supplier_orders.supplier_id = ?", supplierID)
	})
}

// GetByCategoryIDs lists suppliers that supplied a product in any of the categories
func (r *SupplierRepository) GetByCategoryIDs(ctx context.Context, categoryIDs []uint) ([]models.Supplier, error) {
	if len(categoryIDs) == 0 {
		return []models.Supplier{}, nil
	}
	return findAll[models.Supplier](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return joinSuppliedProducts(q).Where("products.category_id IN ?", categoryIDs)
	})
}

// GetByCategoryName lists suppliers that supplied a product in the named category
func (r *SupplierRepository) GetByCategoryName(ctx context.Context, categoryName string) ([]models.Supplier, error) {
	return findAll[models.Supplier](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return joinSuppliedProducts(q).
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.category_name) = LOWER(?)", categoryName)
	})
}

// GetByProductName lists suppliers that supplied the named product
func (r *SupplierRepository) GetByProductName(ctx context.Context, productName string) ([]models.Supplier, error) {
	return findAll[models.Supplier](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return joinSuppliedProducts(q).Where("LOWER(products.name) = LOWER(?)", productName)
	})
}

// GetByProductID returns the first supplier that supplied the product, or nil
func (r *SupplierRepository) GetByProductID(ctx context.Context, productID uint) (*models.Supplier, error) {
	return firstOrNil[models.Supplier](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return joinSuppliedProducts(q).Where("products.id = ?", productID)
	})
}

// joinSuppliedProducts walks suppliers -> orders -> items -> products
func joinSuppliedProducts(q *gorm.DB) *gorm.DB {
	return q.Distinct().
		Joins("JOIN supplier_orders ON supplier_orders.supplier_id = suppliers.id").
		Joins("JOIN supplier_order_items ON supplier_order_items.supplier_order_id = supplier_orders.id").
		Joins("JOIN products ON products.id = supplier_order_items.product_id")
}
