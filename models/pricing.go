package models

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places money is stored with
const MoneyPlaces = 2

// CalculateTotalPrice prices a supplier order line from the catalogue price of
// the referenced product. The line's own UnitPrice does not take part.
func (i *SupplierOrderItem) CalculateTotalPrice(product Product) {
	i.TotalPrice = lineTotal(i.Quantity, product.UnitPrice)
}

// CalculateTotalPrice prices a consumer order line from the line's own UnitPrice,
// independent of the referenced product's current price.
func (i *ConsumerOrderItem) CalculateTotalPrice() {
	i.TotalPrice = lineTotal(i.Quantity, i.UnitPrice)
}

func lineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyPlaces)
}

// SumSupplierItems returns the order total for a set of supplier order lines
func SumSupplierItems(items []SupplierOrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total.Round(MoneyPlaces)
}

// SumConsumerItems returns the order total for a set of consumer order lines
func SumConsumerItems(items []ConsumerOrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total.Round(MoneyPlaces)
}
