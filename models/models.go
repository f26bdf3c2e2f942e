// Package models defines the persisted stock entities and their relationships.
package models

// AllModels lists every persisted model. gorm reorders them by dependency when migrating.
func AllModels() []interface{} {
	return []interface{}{
		&Category{},
		&Product{},
		&Supplier{},
		&Consumer{},
		&SupplierOrder{},
		&SupplierOrderItem{},
		&ConsumerOrder{},
		&ConsumerOrderItem{},
	}
}
