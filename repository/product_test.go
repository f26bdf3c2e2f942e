package repository

import (
	"github.com/kendall-kelly/stock-api/models"
)

func (s *RepositoryTestSuite) TestProduct_CreateAndGet() {
	tools := s.category("Tools")
	created := s.product("Hammer", "12.5", tools)

	found, err := s.repos.Products.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Hammer", found.Name)
	s.Equal("12.50", found.UnitPrice.StringFixed(2))
	s.Equal("Hammer description", found.Description)
	s.Require().NotNil(found.CategoryID)
	s.Equal(tools.ID, *found.CategoryID)
	s.Nil(found.ImageS3Key)
}

func (s *RepositoryTestSuite) TestProduct_CreateWithUnknownCategoryIsNotFound() {
	missing := uint(404)
	err := s.repos.Products.Create(s.ctx, &models.Product{Name: "Ghost", UnitPrice: money("1"), CategoryID: &missing})
	s.ErrorIs(err, ErrNotFound)

	var notFound *NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal("category", notFound.Entity)
}

func (s *RepositoryTestSuite) TestProduct_PartialUpdate() {
	tools := s.category("Tools")
	paint := s.category("Paint")
	product := s.product("Hammer", "12.50", tools)

	price := money("14.999")
	updated, err := s.repos.Products.Update(s.ctx, product.ID, ProductPatch{UnitPrice: &price})
	s.Require().NoError(err)
	s.Equal("15.00", updated.UnitPrice.StringFixed(2))
	s.Equal("Hammer", updated.Name)
	s.Equal("Hammer description", updated.Description)
	s.Equal(tools.ID, *updated.CategoryID)

	updated, err = s.repos.Products.Update(s.ctx, product.ID, ProductPatch{CategoryID: &paint.ID, Description: ptr("")})
	s.Require().NoError(err)
	s.Equal(paint.ID, *updated.CategoryID)
	s.Equal("", updated.Description)
	s.Equal("15.00", updated.UnitPrice.StringFixed(2))
}

func (s *RepositoryTestSuite) TestProduct_PriceChangeKeepsExistingLines() {
	supplier := s.supplier("Acme")
	product := s.product("Widget", "10.99", nil)
	order := s.supplierOrder(supplier, "2024-01-15")
	item := s.supplierItem(order, product, 5)

	price := money("20.00")
	_, err := s.repos.Products.Update(s.ctx, product.ID, ProductPatch{UnitPrice: &price})
	s.Require().NoError(err)

	reloaded, err := s.repos.SupplierOrderItems.GetByID(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Equal("54.95", reloaded.TotalPrice.StringFixed(2))
}

func (s *RepositoryTestSuite) TestProduct_DeleteCascadesToLinesAndTotals() {
	tools := s.category("Tools")
	widget := s.product("Widget", "10.99", tools)
	gadget := s.product("Gadget", "2.00", tools)
	_, err := s.repos.Categories.Update(s.ctx, tools.ID, CategoryPatch{ProductID: &widget.ID})
	s.Require().NoError(err)

	supplierOrder := s.supplierOrder(s.supplier("Acme"), "2024-01-15")
	widgetLine := s.supplierItem(supplierOrder, widget, 5)
	s.supplierItem(supplierOrder, gadget, 1)

	consumerOrder := s.consumerOrder(s.consumer("Jane"), "2024-01-16")
	consumerLine := s.consumerItem(consumerOrder, widget, 10, "10.99")

	s.Require().NoError(s.repos.Products.Delete(s.ctx, widget.ID))

	_, err = s.repos.SupplierOrderItems.GetByID(s.ctx, widgetLine.ID)
	s.ErrorIs(err, ErrNotFound)
	_, err = s.repos.ConsumerOrderItems.GetByID(s.ctx, consumerLine.ID)
	s.ErrorIs(err, ErrNotFound)

	reloadedSupplierOrder, err := s.repos.SupplierOrders.GetByID(s.ctx, supplierOrder.ID)
	s.Require().NoError(err)
	s.Equal("2.00", reloadedSupplierOrder.TotalAmount.StringFixed(2))

	reloadedConsumerOrder, err := s.repos.ConsumerOrders.GetByID(s.ctx, consumerOrder.ID)
	s.Require().NoError(err)
	s.Equal("0.00", reloadedConsumerOrder.TotalAmount.StringFixed(2))

	category, err := s.repos.Categories.GetByID(s.ctx, tools.ID)
	s.Require().NoError(err)
	s.Nil(category.ProductID)

	s.ErrorIs(s.repos.Products.Delete(s.ctx, widget.ID), ErrNotFound)
}

func (s *RepositoryTestSuite) TestProduct_SetImage() {
	product := s.product("Widget", "1.00", nil)

	updated, err := s.repos.Products.SetImage(s.ctx, product.ID, ptr("products/1/widget.png"))
	s.Require().NoError(err)
	s.Require().NotNil(updated.ImageS3Key)
	s.Equal("products/1/widget.png", *updated.ImageS3Key)

	cleared, err := s.repos.Products.SetImage(s.ctx, product.ID, nil)
	s.Require().NoError(err)
	s.Nil(cleared.ImageS3Key)

	_, err = s.repos.Products.SetImage(s.ctx, 404, nil)
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestProduct_GetByNameIgnoresCase() {
	s.product("Claw Hammer", "12.50", nil)

	for _, name := range []string{"Claw Hammer", "claw hammer", "CLAW HAMMER"} {
		found, err := s.repos.Products.GetByName(s.ctx, name)
		s.Require().NoError(err)
		s.Require().NotNil(found, name)
		s.Equal("Claw Hammer", found.Name)
	}

	missing, err := s.repos.Products.GetByName(s.ctx, "Hammer")
	s.NoError(err)
	s.Nil(missing)
}

func (s *RepositoryTestSuite) TestProduct_JoinedLookups() {
	tools := s.category("Tools")
	paint := s.category("Paint")
	hammer := s.product("Hammer", "12.50", tools)
	wrench := s.product("Wrench", "8.00", tools)
	primer := s.product("Primer", "20.00", paint)
	s.product("Loose", "1.00", nil)

	acme := s.supplier("Acme")
	january := s.supplierOrder(acme, "2024-01-15")
	hammerLine := s.supplierItem(january, hammer, 1)
	s.supplierItem(january, hammer, 2)
	s.supplierItem(january, wrench, 1)
	february := s.supplierOrder(s.supplier("Bolt"), "2024-02-01")
	s.supplierItem(february, primer, 1)

	sale := s.consumerOrder(s.consumer("Jane"), "2024-03-10")
	primerSale := s.consumerItem(sale, primer, 1, "25.00")
	s.consumerItem(sale, primer, 2, "25.00")

	byCategoryID, err := s.repos.Products.GetByCategoryID(s.ctx, tools.ID)
	s.Require().NoError(err)
	s.Equal([]string{"Hammer", "Wrench"}, productNames(byCategoryID))

	byCategoryName, err := s.repos.Products.GetByCategoryName(s.ctx, "PAINT")
	s.Require().NoError(err)
	s.Equal([]string{"Primer"}, productNames(byCategoryName))

	bySupplierName, err := s.repos.Products.GetBySupplierName(s.ctx, "acme")
	s.Require().NoError(err)
	s.Equal([]string{"Hammer", "Wrench"}, productNames(bySupplierName))

	bySupplierOrder, err := s.repos.Products.GetBySupplierOrderID(s.ctx, january.ID)
	s.Require().NoError(err)
	s.Equal([]string{"Hammer", "Wrench"}, productNames(bySupplierOrder))

	bySupplierDate, err := s.repos.Products.GetBySupplierOrderDate(s.ctx, date("2024-02-01"))
	s.Require().NoError(err)
	s.Equal([]string{"Primer"}, productNames(bySupplierDate))

	byConsumerDate, err := s.repos.Products.GetByConsumerOrderDate(s.ctx, date("2024-03-10"))
	s.Require().NoError(err)
	s.Equal([]string{"Primer"}, productNames(byConsumerDate))

	noSales, err := s.repos.Products.GetByConsumerOrderDate(s.ctx, date("2024-03-11"))
	s.Require().NoError(err)
	s.NotNil(noSales)
	s.Empty(noSales)

	bySupplierItem, err := s.repos.Products.GetBySupplierOrderItemID(s.ctx, hammerLine.ID)
	s.Require().NoError(err)
	s.Equal([]string{"Hammer"}, productNames(bySupplierItem))

	byConsumerItem, err := s.repos.Products.GetByConsumerOrderItemID(s.ctx, primerSale.ID)
	s.Require().NoError(err)
	s.Equal([]string{"Primer"}, productNames(byConsumerItem))
}

func (s *RepositoryTestSuite) TestCategory_CRUDAndLookups() {
	tools := s.category("Hand Tools")
	hammer := s.product("Hammer", "12.50", tools)

	found, err := s.repos.Categories.GetByID(s.ctx, tools.ID)
	s.Require().NoError(err)
	s.Equal("Hand Tools", found.Name)
	s.Nil(found.ProductID)

	updated, err := s.repos.Categories.Update(s.ctx, tools.ID, CategoryPatch{ProductID: &hammer.ID})
	s.Require().NoError(err)
	s.Equal("Hand Tools", updated.Name)
	s.Require().NotNil(updated.ProductID)
	s.Equal(hammer.ID, *updated.ProductID)

	byName, err := s.repos.Categories.GetByName(s.ctx, "hand TOOLS")
	s.Require().NoError(err)
	s.Require().NotNil(byName)
	s.Equal(tools.ID, byName.ID)

	missing, err := s.repos.Categories.GetByName(s.ctx, "Power Tools")
	s.NoError(err)
	s.Nil(missing)

	byProduct, err := s.repos.Categories.GetByProductName(s.ctx, "hammer")
	s.Require().NoError(err)
	s.Require().NotNil(byProduct)
	s.Equal(tools.ID, byProduct.ID)

	acme := s.supplier("Acme")
	order := s.supplierOrder(acme, "2024-01-15")
	s.supplierItem(order, hammer, 1)
	s.supplierItem(order, hammer, 1)

	bySupplierID, err := s.repos.Categories.GetBySupplierID(s.ctx, acme.ID)
	s.Require().NoError(err)
	s.Len(bySupplierID, 1)

	bySupplierName, err := s.repos.Categories.GetBySupplierName(s.ctx, "ACME")
	s.Require().NoError(err)
	s.Len(bySupplierName, 1)
	s.Equal("Hand Tools", bySupplierName[0].Name)
}

func (s *RepositoryTestSuite) TestCategory_UnknownProductIsNotFound() {
	missing := uint(404)
	err := s.repos.Categories.Create(s.ctx, &models.Category{Name: "Ghosts", ProductID: &missing})
	s.ErrorIs(err, ErrNotFound)
	var notFound *NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal("product", notFound.Entity)

	tools := s.category("Tools")
	_, err = s.repos.Categories.Update(s.ctx, tools.ID, CategoryPatch{ProductID: &missing})
	s.ErrorIs(err, ErrNotFound)

	found, err := s.repos.Categories.GetByID(s.ctx, tools.ID)
	s.Require().NoError(err)
	s.Nil(found.ProductID)
}

func (s *RepositoryTestSuite) TestReferences_CanBeCleared() {
	tools := s.category("Tools")
	hammer := s.product("Hammer", "12.50", tools)
	_, err := s.repos.Categories.Update(s.ctx, tools.ID, CategoryPatch{ProductID: &hammer.ID})
	s.Require().NoError(err)

	category, err := s.repos.Categories.Update(s.ctx, tools.ID, CategoryPatch{ClearProductID: true})
	s.Require().NoError(err)
	s.Nil(category.ProductID)
	s.Equal("Tools", category.Name)

	product, err := s.repos.Products.Update(s.ctx, hammer.ID, ProductPatch{ClearCategoryID: true})
	s.Require().NoError(err)
	s.Nil(product.CategoryID)
	s.Equal("12.50", product.UnitPrice.StringFixed(2))
}

func (s *RepositoryTestSuite) TestCategory_DeleteKeepsProducts() {
	tools := s.category("Tools")
	hammer := s.product("Hammer", "12.50", tools)

	s.Require().NoError(s.repos.Categories.Delete(s.ctx, tools.ID))

	product, err := s.repos.Products.GetByID(s.ctx, hammer.ID)
	s.Require().NoError(err)
	s.Nil(product.CategoryID)

	_, err = s.repos.Categories.GetByID(s.ctx, tools.ID)
	s.ErrorIs(err, ErrNotFound)
}
