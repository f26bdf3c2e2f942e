package repository

import (
	"time"

	"github.com/kendall-kelly/stock-api/models"
)

func (s *RepositoryTestSuite) TestSupplierOrder_CreateAndGet() {
	supplier := s.supplier("Acme")
	order := &models.SupplierOrder{
		SupplierID:  supplier.ID,
		OrderDate:   datatypesDate("2024-01-15"),
		TotalAmount: money("100.00"),
	}
	s.Require().NoError(s.repos.SupplierOrders.Create(s.ctx, order))
	s.True(order.TotalAmount.IsZero())

	found, err := s.repos.SupplierOrders.GetByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(supplier.ID, found.SupplierID)
	s.Equal("2024-01-15", time.Time(found.OrderDate).Format("2006-01-02"))
	s.True(found.TotalAmount.IsZero())
}

func (s *RepositoryTestSuite) TestSupplierOrder_UnknownSupplierIsNotFound() {
	err := s.repos.SupplierOrders.Create(s.ctx, &models.SupplierOrder{SupplierID: 404, OrderDate: datatypesDate("2024-01-15")})
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestSupplierOrder_PartialUpdate() {
	order := s.supplierOrder(s.supplier("Acme"), "2024-01-15")

	moved := date("2024-01-20")
	updated, err := s.repos.SupplierOrders.Update(s.ctx, order.ID, SupplierOrderPatch{OrderDate: &moved})
	s.Require().NoError(err)
	s.Equal("2024-01-20", time.Time(updated.OrderDate).Format("2006-01-02"))
	s.True(updated.TotalAmount.IsZero())

	updated, err = s.repos.SupplierOrders.Update(s.ctx, order.ID, SupplierOrderPatch{})
	s.Require().NoError(err)
	s.Equal("2024-01-20", time.Time(updated.OrderDate).Format("2006-01-02"))
}

func (s *RepositoryTestSuite) TestOrderTotals_AlwaysMatchLines() {
	product := s.product("Widget", "10.99", nil)
	supplierOrder := &models.SupplierOrder{SupplierID: s.supplier("Acme").ID, OrderDate: datatypesDate("2024-01-15"), TotalAmount: money("100.00")}
	s.Require().NoError(s.repos.SupplierOrders.Create(s.ctx, supplierOrder))
	consumerOrder := &models.ConsumerOrder{ConsumerID: s.consumer("Jane").ID, OrderDate: datatypesDate("2024-01-16"), TotalAmount: money("100.00")}
	s.Require().NoError(s.repos.ConsumerOrders.Create(s.ctx, consumerOrder))

	s.supplierItem(supplierOrder, product, 5)
	s.consumerItem(consumerOrder, product, 2, "4.00")

	moved := date("2024-02-01")
	reloadedSupplier, err := s.repos.SupplierOrders.Update(s.ctx, supplierOrder.ID, SupplierOrderPatch{OrderDate: &moved})
	s.Require().NoError(err)
	s.Equal("54.95", reloadedSupplier.TotalAmount.StringFixed(2))

	reloadedConsumer, err := s.repos.ConsumerOrders.Update(s.ctx, consumerOrder.ID, ConsumerOrderPatch{OrderDate: &moved})
	s.Require().NoError(err)
	s.Equal("8.00", reloadedConsumer.TotalAmount.StringFixed(2))
}

func (s *RepositoryTestSuite) TestSupplierOrderItem_PricedFromProduct() {
	product := s.product("Widget", "10.99", nil)
	order := s.supplierOrder(s.supplier("Acme"), "2024-01-15")

	item := &models.SupplierOrderItem{
		SupplierOrderID: order.ID,
		ProductID:       product.ID,
		ItemName:        "Widget",
		Quantity:        5,
		UnitPrice:       money("1.00"),
	}
	s.Require().NoError(s.repos.SupplierOrderItems.Create(s.ctx, item))
	s.Equal("54.95", item.TotalPrice.StringFixed(2))

	reloaded, err := s.repos.SupplierOrders.GetByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal("54.95", reloaded.TotalAmount.StringFixed(2))

	s.supplierItem(order, product, 1)
	reloaded, err = s.repos.SupplierOrders.GetByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal("65.94", reloaded.TotalAmount.StringFixed(2))
}

func (s *RepositoryTestSuite) TestSupplierOrderItem_UpdateRecomputesTotals() {
	product := s.product("Widget", "10.99", nil)
	order := s.supplierOrder(s.supplier("Acme"), "2024-01-15")
	item := s.supplierItem(order, product, 5)
	s.supplierItem(order, product, 1)

	updated, err := s.repos.SupplierOrderItems.Update(s.ctx, item.ID, SupplierOrderItemPatch{Quantity: ptr(2)})
	s.Require().NoError(err)
	s.Equal(2, updated.Quantity)
	s.Equal("Widget", updated.ItemName)
	s.Equal("21.98", updated.TotalPrice.StringFixed(2))

	reloaded, err := s.repos.SupplierOrders.GetByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal("32.97", reloaded.TotalAmount.StringFixed(2))

	// the line's own unit price does not feed the supplier rule
	price := money("100.00")
	updated, err = s.repos.SupplierOrderItems.Update(s.ctx, item.ID, SupplierOrderItemPatch{UnitPrice: &price})
	s.Require().NoError(err)
	s.Equal("100.00", updated.UnitPrice.StringFixed(2))
	s.Equal("21.98", updated.TotalPrice.StringFixed(2))

	_, err = s.repos.SupplierOrderItems.Update(s.ctx, 404, SupplierOrderItemPatch{Quantity: ptr(1)})
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestSupplierOrderItem_DeleteRecomputesTotal() {
	product := s.product("Widget", "10.99", nil)
	order := s.supplierOrder(s.supplier("Acme"), "2024-01-15")
	first := s.supplierItem(order, product, 5)
	s.supplierItem(order, product, 1)

	s.Require().NoError(s.repos.SupplierOrderItems.Delete(s.ctx, first.ID))

	reloaded, err := s.repos.SupplierOrders.GetByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal("10.99", reloaded.TotalAmount.StringFixed(2))

	s.ErrorIs(s.repos.SupplierOrderItems.Delete(s.ctx, first.ID), ErrNotFound)
}

func (s *RepositoryTestSuite) TestSupplierOrderItem_MissingParentsAreNotFound() {
	product := s.product("Widget", "10.99", nil)
	order := s.supplierOrder(s.supplier("Acme"), "2024-01-15")

	var notFound *NotFoundError
	err := s.repos.SupplierOrderItems.Create(s.ctx, &models.SupplierOrderItem{SupplierOrderID: 404, ProductID: product.ID, Quantity: 1})
	s.Require().ErrorAs(err, &notFound)
	s.Equal("supplier order", notFound.Entity)

	err = s.repos.SupplierOrderItems.Create(s.ctx, &models.SupplierOrderItem{SupplierOrderID: order.ID, ProductID: 404, Quantity: 1})
	s.Require().ErrorAs(err, &notFound)
	s.Equal("product", notFound.Entity)
}

func (s *RepositoryTestSuite) TestSupplierOrder_Lookups() {
	widget := s.product("Widget", "1.00", nil)
	gadget := s.product("Gadget", "2.00", nil)
	acme := s.supplier("Acme")
	bolt := s.supplier("Bolt")

	january := s.supplierOrder(acme, "2024-01-15")
	s.supplierItem(january, widget, 1)
	s.supplierItem(january, widget, 2)
	february := s.supplierOrder(acme, "2024-02-01")
	s.supplierItem(february, gadget, 1)
	other := s.supplierOrder(bolt, "2024-01-15")
	s.supplierItem(other, widget, 1)

	byDate, err := s.repos.SupplierOrders.GetByOrderDate(s.ctx, date("2024-01-15"))
	s.Require().NoError(err)
	s.Equal([]uint{january.ID, other.ID}, supplierOrderIDs(byDate))

	bySupplier, err := s.repos.SupplierOrders.GetBySupplierID(s.ctx, acme.ID)
	s.Require().NoError(err)
	s.Equal([]uint{january.ID, february.ID}, supplierOrderIDs(bySupplier))

	byProduct, err := s.repos.SupplierOrders.GetByProductName(s.ctx, "WIDGET")
	s.Require().NoError(err)
	s.Equal([]uint{january.ID, other.ID}, supplierOrderIDs(byProduct))

	items, err := s.repos.SupplierOrderItems.GetBySupplierOrderID(s.ctx, january.ID)
	s.Require().NoError(err)
	s.Len(items, 2)

	all, err := s.repos.SupplierOrderItems.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 4)
}

func (s *RepositoryTestSuite) TestConsumerOrderItem_PricedFromOwnUnitPrice() {
	product := s.product("Widget", "1.00", nil)
	order := s.consumerOrder(s.consumer("Jane"), "2024-03-01")

	item := s.consumerItem(order, product, 10, "10.99")
	s.Equal("109.90", item.TotalPrice.StringFixed(2))

	reloaded, err := s.repos.ConsumerOrders.GetByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal("109.90", reloaded.TotalAmount.StringFixed(2))

	price := money("5.00")
	updated, err := s.repos.ConsumerOrderItems.Update(s.ctx, item.ID, ConsumerOrderItemPatch{UnitPrice: &price})
	s.Require().NoError(err)
	s.Equal(10, updated.Quantity)
	s.Equal("50.00", updated.TotalPrice.StringFixed(2))

	reloaded, err = s.repos.ConsumerOrders.GetByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal("50.00", reloaded.TotalAmount.StringFixed(2))

	s.Require().NoError(s.repos.ConsumerOrderItems.Delete(s.ctx, item.ID))
	reloaded, err = s.repos.ConsumerOrders.GetByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.True(reloaded.TotalAmount.IsZero())
}

func (s *RepositoryTestSuite) TestConsumerOrder_Lookups() {
	widget := s.product("Widget", "1.00", nil)
	jane := s.consumer("Jane")
	john := s.consumer("John")

	march := s.consumerOrder(jane, "2024-03-01")
	s.consumerItem(march, widget, 1, "1.50")
	april := s.consumerOrder(john, "2024-04-01")

	byDate, err := s.repos.ConsumerOrders.GetByOrderDate(s.ctx, date("2024-03-01"))
	s.Require().NoError(err)
	s.Require().Len(byDate, 1)
	s.Equal(march.ID, byDate[0].ID)

	byConsumer, err := s.repos.ConsumerOrders.GetByConsumerID(s.ctx, john.ID)
	s.Require().NoError(err)
	s.Require().Len(byConsumer, 1)
	s.Equal(april.ID, byConsumer[0].ID)

	byProduct, err := s.repos.ConsumerOrders.GetByProductName(s.ctx, "widget")
	s.Require().NoError(err)
	s.Require().Len(byProduct, 1)
	s.Equal(march.ID, byProduct[0].ID)

	items, err := s.repos.ConsumerOrderItems.GetByConsumerOrderID(s.ctx, april.ID)
	s.Require().NoError(err)
	s.NotNil(items)
	s.Empty(items)

	s.Require().NoError(s.repos.ConsumerOrders.Delete(s.ctx, march.ID))
	all, err := s.repos.ConsumerOrderItems.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func supplierOrderIDs(orders []models.SupplierOrder) []uint {
	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return ids
}
