// Package repository is the data access layer for the stock entities.
//
// Every repository is bound to a *gorm.DB. Bound to the root connection each
// call commits on its own; bound to a UnitOfWork all calls share one
// transaction that the caller commits or rolls back. Calls that write more than
// one row (an order item and its order's total, for example) always run in a
// nested transaction so they are atomic either way.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repositories is a container for all repository instances sharing one connection or transaction
type Repositories struct {
	Suppliers          *SupplierRepository
	Consumers          *ConsumerRepository
	Categories         *CategoryRepository
	Products           *ProductRepository
	SupplierOrders     *SupplierOrderRepository
	SupplierOrderItems *SupplierOrderItemRepository
	ConsumerOrders     *ConsumerOrderRepository
	ConsumerOrderItems *ConsumerOrderItemRepository
}

// New builds every repository on top of db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Suppliers:          NewSupplierRepository(db),
		Consumers:          NewConsumerRepository(db),
		Categories:         NewCategoryRepository(db),
		Products:           NewProductRepository(db),
		SupplierOrders:     NewSupplierOrderRepository(db),
		SupplierOrderItems: NewSupplierOrderItemRepository(db),
		ConsumerOrders:     NewConsumerOrderRepository(db),
		ConsumerOrderItems: NewConsumerOrderItemRepository(db),
	}
}

// Store hands out units of work over a connection pool
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over db
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the root connection
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Repositories returns repositories that commit every call on its own
func (s *Store) Repositories() *Repositories {
	return New(s.db)
}

// Begin opens a unit of work. The caller must Commit or Rollback it.
func (s *Store) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin unit of work: %w", tx.Error)
	}
	return &UnitOfWork{tx: tx, repos: New(tx)}, nil
}

// WithinUnitOfWork runs fn in a transaction, committing when fn returns nil and
// rolling back on error or panic
func (s *Store) WithinUnitOfWork(ctx context.Context, fn func(repos *Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// UnitOfWork is one transaction and the repositories bound to it
type UnitOfWork struct {
	tx    *gorm.DB
	repos *Repositories
	done  bool
}

// Repositories returns the repositories bound to this unit of work
func (u *UnitOfWork) Repositories() *Repositories {
	return u.repos
}

// Commit makes every write of the unit of work visible
func (u *UnitOfWork) Commit() error {
	if u.done {
		return ErrUnitOfWorkDone
	}
	u.done = true
	if err := u.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit unit of work: %w", err)
	}
	return nil
}

// Rollback discards every write of the unit of work. It is a no-op once the
// unit of work has completed, so it is safe to defer.
func (u *UnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback unit of work: %w", err)
	}
	return nil
}

// atomically runs fn in a transaction nested in db's current one, if any
func atomically(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}
