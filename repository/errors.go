package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is matched by every error a repository returns when a primary
// key lookup yields no row. Use errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("entity not found")

// ErrUnitOfWorkDone is returned when committing a unit of work twice
var ErrUnitOfWorkDone = errors.New("unit of work already completed")

// NotFoundError names the entity and key that were missing
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true for every NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// translate turns gorm's record-not-found into a NotFoundError and wraps
// everything else with the failed operation
func translate(err error, entity string, id uint, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return fmt.Errorf("%s %s: %w", op, entity, err)
}
