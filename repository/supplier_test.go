package repository

import (
	"github.com/kendall-kelly/stock-api/models"
)

func (s *RepositoryTestSuite) TestSupplier_CreateAndGet() {
	created := s.supplier("Acme Wholesale")

	found, err := s.repos.Suppliers.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal("Acme Wholesale", found.Name)
	s.Equal("555-0100", found.ContactNumber)
}

func (s *RepositoryTestSuite) TestSupplier_PartialUpdateKeepsOtherFields() {
	created := s.supplier("Acme")

	updated, err := s.repos.Suppliers.Update(s.ctx, created.ID, SupplierPatch{Name: ptr("Acme Ltd")})
	s.Require().NoError(err)
	s.Equal("Acme Ltd", updated.Name)
	s.Equal("555-0100", updated.ContactNumber)

	updated, err = s.repos.Suppliers.Update(s.ctx, created.ID, SupplierPatch{ContactNumber: ptr("")})
	s.Require().NoError(err)
	s.Equal("Acme Ltd", updated.Name)
	s.Equal("", updated.ContactNumber)
}

func (s *RepositoryTestSuite) TestSupplier_EmptyPatchReturnsCurrent() {
	created := s.supplier("Acme")

	updated, err := s.repos.Suppliers.Update(s.ctx, created.ID, SupplierPatch{})
	s.Require().NoError(err)
	s.Equal("Acme", updated.Name)
}

func (s *RepositoryTestSuite) TestSupplier_MissingIDIsNotFound() {
	_, err := s.repos.Suppliers.GetByID(s.ctx, 404)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.repos.Suppliers.Update(s.ctx, 404, SupplierPatch{Name: ptr("x")})
	s.ErrorIs(err, ErrNotFound)

	s.ErrorIs(s.repos.Suppliers.Delete(s.ctx, 404), ErrNotFound)
}

func (s *RepositoryTestSuite) TestSupplier_DeleteCascadesToOrders() {
	supplier := s.supplier("Acme")
	product := s.product("Widget", "10.99", nil)
	order := s.supplierOrder(supplier, "2024-01-15")
	item := s.supplierItem(order, product, 2)

	s.Require().NoError(s.repos.Suppliers.Delete(s.ctx, supplier.ID))

	_, err := s.repos.Suppliers.GetByID(s.ctx, supplier.ID)
	s.ErrorIs(err, ErrNotFound)
	_, err = s.repos.SupplierOrders.GetByID(s.ctx, order.ID)
	s.ErrorIs(err, ErrNotFound)
	_, err = s.repos.SupplierOrderItems.GetByID(s.ctx, item.ID)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.repos.Products.GetByID(s.ctx, product.ID)
	s.NoError(err)
}

func (s *RepositoryTestSuite) TestSupplier_GetByNameIgnoresCase() {
	s.supplier("Acme Wholesale")

	for _, name := range []string{"Acme Wholesale", "acme wholesale", "ACME WHOLESALE"} {
		found, err := s.repos.Suppliers.GetByName(s.ctx, name)
		s.Require().NoError(err)
		s.Require().NotNil(found, name)
		s.Equal("Acme Wholesale", found.Name)
	}

	missing, err := s.repos.Suppliers.GetByName(s.ctx, "Acme")
	s.NoError(err)
	s.Nil(missing)
}

func (s *RepositoryTestSuite) TestSupplier_JoinedLookups() {
	tools := s.category("Tools")
	paint := s.category("Paint")
	hammer := s.product("Hammer", "12.50", tools)
	wrench := s.product("Wrench", "8.00", tools)
	primer := s.product("Primer", "20.00", paint)

	acme := s.supplier("Acme")
	bolt := s.supplier("Bolt & Co")
	s.supplier("Idle")

	first := s.supplierOrder(acme, "2024-01-15")
	s.supplierItem(first, hammer, 1)
	s.supplierItem(first, wrench, 3)
	second := s.supplierOrder(acme, "2024-02-01")
	s.supplierItem(second, hammer, 2)
	third := s.supplierOrder(bolt, "2024-02-01")
	s.supplierItem(third, primer, 4)

	products, err := s.repos.Suppliers.GetProducts(s.ctx, acme.ID)
	s.Require().NoError(err)
	s.Equal([]string{"Hammer", "Wrench"}, productNames(products))

	categories, err := s.repos.Suppliers.GetCategories(s.ctx, acme.ID)
	s.Require().NoError(err)
	s.Require().Len(categories, 1)
	s.Equal("Tools", categories[0].Name)

	orders, err := s.repos.Suppliers.GetOrders(s.ctx, acme.ID)
	s.Require().NoError(err)
	s.Len(orders, 2)

	byCategories, err := s.repos.Suppliers.GetByCategoryIDs(s.ctx, []uint{tools.ID, paint.ID})
	s.Require().NoError(err)
	s.Equal([]string{"Acme", "Bolt & Co"}, supplierNames(byCategories))

	none, err := s.repos.Suppliers.GetByCategoryIDs(s.ctx, nil)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)

	byCategoryName, err := s.repos.Suppliers.GetByCategoryName(s.ctx, "paint")
	s.Require().NoError(err)
	s.Equal([]string{"Bolt & Co"}, supplierNames(byCategoryName))

	byProductName, err := s.repos.Suppliers.GetByProductName(s.ctx, "HAMMER")
	s.Require().NoError(err)
	s.Equal([]string{"Acme"}, supplierNames(byProductName))

	byProduct, err := s.repos.Suppliers.GetByProductID(s.ctx, primer.ID)
	s.Require().NoError(err)
	s.Require().NotNil(byProduct)
	s.Equal("Bolt & Co", byProduct.Name)

	unsupplied := s.product("Ladder", "99.00", tools)
	noSupplier, err := s.repos.Suppliers.GetByProductID(s.ctx, unsupplied.ID)
	s.NoError(err)
	s.Nil(noSupplier)
}

func (s *RepositoryTestSuite) TestSupplier_LookupsOnUnknownSupplierAreEmpty() {
	products, err := s.repos.Suppliers.GetProducts(s.ctx, 404)
	s.Require().NoError(err)
	s.NotNil(products)
	s.Empty(products)

	orders, err := s.repos.Suppliers.GetOrders(s.ctx, 404)
	s.Require().NoError(err)
	s.Empty(orders)
}

func (s *RepositoryTestSuite) TestConsumer_CRUD() {
	consumer := s.consumer("Jane Doe")

	found, err := s.repos.Consumers.GetByID(s.ctx, consumer.ID)
	s.Require().NoError(err)
	s.Equal("Jane Doe", found.Name)
	s.Equal("555-0200", found.ContactNumber)

	updated, err := s.repos.Consumers.Update(s.ctx, consumer.ID, ConsumerPatch{ContactNumber: ptr("555-0999")})
	s.Require().NoError(err)
	s.Equal("Jane Doe", updated.Name)
	s.Equal("555-0999", updated.ContactNumber)

	s.Require().NoError(s.repos.Consumers.Delete(s.ctx, consumer.ID))
	_, err = s.repos.Consumers.GetByID(s.ctx, consumer.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestConsumer_SearchByNamePrefix() {
	s.consumer("Jane Doe")
	s.consumer("janet Smith")
	s.consumer("John Roe")
	s.consumer("100% Real")

	found, err := s.repos.Consumers.SearchByName(s.ctx, "JAN")
	s.Require().NoError(err)
	s.Equal([]string{"Jane Doe", "janet Smith"}, consumerNames(found))

	found, err = s.repos.Consumers.SearchByName(s.ctx, "Doe")
	s.Require().NoError(err)
	s.Empty(found)

	found, err = s.repos.Consumers.SearchByName(s.ctx, "100%")
	s.Require().NoError(err)
	s.Equal([]string{"100% Real"}, consumerNames(found))

	found, err = s.repos.Consumers.SearchByName(s.ctx, "%")
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *RepositoryTestSuite) TestConsumer_DeleteCascadesToOrders() {
	consumer := s.consumer("Jane")
	product := s.product("Widget", "10.99", nil)
	order := s.consumerOrder(consumer, "2024-03-01")
	s.consumerItem(order, product, 1, "12.00")

	orders, err := s.repos.Consumers.GetOrders(s.ctx, consumer.ID)
	s.Require().NoError(err)
	s.Len(orders, 1)

	s.Require().NoError(s.repos.Consumers.Delete(s.ctx, consumer.ID))
	_, err = s.repos.ConsumerOrders.GetByID(s.ctx, order.ID)
	s.ErrorIs(err, ErrNotFound)
}

func productNames(products []models.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

func supplierNames(suppliers []models.Supplier) []string {
	names := make([]string, len(suppliers))
	for i, s := range suppliers {
		names[i] = s.Name
	}
	return names
}

func consumerNames(consumers []models.Consumer) []string {
	names := make([]string, len(consumers))
	for i, c := range consumers {
		names[i] = c.Name
	}
	return names
}
