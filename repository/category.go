package repository

import (
	"context"

	"github.com/kendall-kelly/stock-api/models"
	"gorm.io/gorm"
)

// CategoryRepository reads and writes product categories
type CategoryRepository struct {
	table[models.Category]
}

// NewCategoryRepository creates a category repository over db
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{table[models.Category]{db: db, entity: "category"}}
}

// Create inserts a category. A product reference that does not exist yields
// a NotFoundError.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.requireProduct(ctx, category.ProductID); err != nil {
		return err
	}
	return r.create(ctx, category)
}

// GetByID returns a NotFoundError when the category does not exist
func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return r.getByID(ctx, id)
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	return r.all(ctx)
}

func (r *CategoryRepository) Update(ctx context.Context, id uint, patch CategoryPatch) (*models.Category, error) {
	if !patch.ClearProductID {
		if err := r.requireProduct(ctx, patch.ProductID); err != nil {
			return nil, err
		}
	}
	return r.update(ctx, id, patch.columns())
}

// Delete removes a category. Its products stay and lose their category.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

// GetByName matches the category name exactly, ignoring case, and returns nil
// when there is no such category
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return firstOrNil[models.Category](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(categories.category_name) = LOWER(?)", name)
	})
}

// GetByProductName returns the category of the named product, or nil
func (r *CategoryRepository) GetByProductName(ctx context.Context, productName string) (*models.Category, error) {
	return firstOrNil[models.Category](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN products ON products.category_id = categories.id").
			Where("LOWER(products.name) = LOWER(?)", productName)
	})
}

// GetBySupplierID lists the distinct categories of everything the supplier supplied
func (r *CategoryRepository) GetBySupplierID(ctx context.Context, supplierID uint) ([]models.Category, error) {
	return findAll[models.Category](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return joinCategorySuppliers(q).Where("supplier_orders.supplier_id = ?", supplierID)
	})
}

func (r *CategoryRepository) GetBySupplierName(ctx context.Context, supplierName string) ([]models.Category, error) {
	return findAll[models.Category](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return joinCategorySuppliers(q).
			Joins("JOIN suppliers ON suppliers.id = supplier_orders.supplier_id").
			Where("LOWER(suppliers.name) = LOWER(?)", supplierName)
	})
}

func (r *CategoryRepository) requireProduct(ctx context.Context, productID *uint) error {
	if productID == nil {
		return nil
	}
	_, err := NewProductRepository(r.db).GetByID(ctx, *productID)
	return err
}

func joinCategorySuppliers(q *gorm.DB) *gorm.DB {
	return q.Distinct().
		Joins("JOIN products ON products.category_id = categories.id").
		Joins("JOIN supplier_order_items ON supplier_order_items.product_id = products.id").
		Joins("JOIN supplier_orders ON supplier_orders.id = supplier_order_items.supplier_order_id")
}
