package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// table is the CRUD core shared by every entity repository
type table[T any] struct {
	db     *gorm.DB
	entity string
}

// with rebinds the table to db, usually a transaction
func (t table[T]) with(db *gorm.DB) table[T] {
	return table[T]{db: db, entity: t.entity}
}

func (t table[T]) session(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx)
}

func (t table[T]) create(ctx context.Context, value *T) error {
	if err := t.session(ctx).Create(value).Error; err != nil {
		return fmt.Errorf("create %s: %w", t.entity, err)
	}
	return nil
}

func (t table[T]) getByID(ctx context.Context, id uint) (*T, error) {
	var value T
	if err := t.session(ctx).First(&value, id).Error; err != nil {
		return nil, translate(err, t.entity, id, "get")
	}
	return &value, nil
}

func (t table[T]) all(ctx context.Context) ([]T, error) {
	return findAll[T](ctx, t.db, func(q *gorm.DB) *gorm.DB { return q })
}

// update writes only the supplied columns and returns the refreshed row
func (t table[T]) update(ctx context.Context, id uint, columns map[string]interface{}) (*T, error) {
	current, err := t.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return current, nil
	}
	if err := t.session(ctx).Model(current).Updates(columns).Error; err != nil {
		return nil, fmt.Errorf("update %s: %w", t.entity, err)
	}
	return t.getByID(ctx, id)
}

func (t table[T]) delete(ctx context.Context, id uint) error {
	result := t.session(ctx).Delete(new(T), id)
	if result.Error != nil {
		return fmt.Errorf("delete %s: %w", t.entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: t.entity, ID: id}
	}
	return nil
}

// findAll runs a filtered query and always returns a non-nil slice
func findAll[T any](ctx context.Context, db *gorm.DB, build func(q *gorm.DB) *gorm.DB) ([]T, error) {
	var model T
	values := []T{}
	q := build(db.WithContext(ctx).Model(&model))
	if err := q.Order(orderByID(&model)).Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// firstOrNil returns the first match, or nil without error when nothing matches
func firstOrNil[T any](ctx context.Context, db *gorm.DB, build func(q *gorm.DB) *gorm.DB) (*T, error) {
	var value T
	q := build(db.WithContext(ctx).Model(&value))
	err := q.Order(orderByID(&value)).Take(&value).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// orderByID qualifies the id column so ordering stays unambiguous across joins
func orderByID(model interface{}) string {
	if t, ok := model.(interface{ TableName() string }); ok {
		return t.TableName() + ".id"
	}
	return "id"
}
