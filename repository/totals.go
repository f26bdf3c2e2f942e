package repository

import (
	"fmt"

	"github.com/kendall-kelly/stock-api/models"
	"gorm.io/gorm"
)

// recomputeSupplierOrderTotal sets total_amount to the sum of the order's current lines
func recomputeSupplierOrderTotal(tx *gorm.DB, orderID uint) error {
	var items []models.SupplierOrderItem
	if err := tx.Where("supplier_order_id = ?", orderID).Find(&items).Error; err != nil {
		return fmt.Errorf("load supplier order %d items: %w", orderID, err)
	}
	err := tx.Model(&models.SupplierOrder{ID: orderID}).
		Update("total_amount", models.SumSupplierItems(items)).Error
	if err != nil {
		return fmt.Errorf("update supplier order %d total: %w", orderID, err)
	}
	return nil
}

func recomputeConsumerOrderTotal(tx *gorm.DB, orderID uint) error {
	var items []models.ConsumerOrderItem
	if err := tx.Where("consumer_order_id = ?", orderID).Find(&items).Error; err != nil {
		return fmt.Errorf("load consumer order %d items: %w", orderID, err)
	}
	err := tx.Model(&models.ConsumerOrder{ID: orderID}).
		Update("total_amount", models.SumConsumerItems(items)).Error
	if err != nil {
		return fmt.Errorf("update consumer order %d total: %w", orderID, err)
	}
	return nil
}
