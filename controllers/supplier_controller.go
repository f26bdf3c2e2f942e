package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/middleware"
	"github.com/kendall-kelly/stock-api/models"
	"github.com/kendall-kelly/stock-api/repository"
	"github.com/kendall-kelly/stock-api/utils"
)

// CreateSupplierRequest represents the request body for creating a supplier
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactNumber string `json:"contact_number"`
}

// UpdateSupplierRequest represents the request body for updating a supplier.
// Omitted fields are left unchanged.
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1"`
	ContactNumber *string `json:"contact_number"`
}

// CreateSupplier handles POST /api/v1/suppliers
func CreateSupplier(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	supplier := models.Supplier{Name: req.Name, ContactNumber: req.ContactNumber}
	if err := middleware.Repositories(c).Suppliers.Create(c.Request.Context(), &supplier); err != nil {
		respondRepositoryError(c, err, "Failed to create supplier")
		return
	}

	respond(c, http.StatusCreated, supplier)
}

// ListSuppliers handles GET /api/v1/suppliers
func ListSuppliers(c *gin.Context) {
	suppliers, err := middleware.Repositories(c).Suppliers.GetAll(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve suppliers")
		return
	}
	respond(c, http.StatusOK, suppliers)
}

// GetSupplier handles GET /api/v1/suppliers/:id
func GetSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	supplier, err := middleware.Repositories(c).Suppliers.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve supplier")
		return
	}
	respond(c, http.StatusOK, supplier)
}

// UpdateSupplier handles PUT /api/v1/suppliers/:id
func UpdateSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	supplier, err := middleware.Repositories(c).Suppliers.Update(c.Request.Context(), id, repository.SupplierPatch{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		respondRepositoryError(c, err, "Failed to update supplier")
		return
	}
	respond(c, http.StatusOK, supplier)
}

// DeleteSupplier handles DELETE /api/v1/suppliers/:id. The supplier's orders go with it.
func DeleteSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := middleware.Repositories(c).Suppliers.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "Failed to delete supplier")
		return
	}
	respond(c, http.StatusOK, true)
}

// GetSupplierByName handles GET /api/v1/suppliers/by-name/:name. The match
// ignores case; data is null when no supplier has the name.
func GetSupplierByName(c *gin.Context) {
	supplier, err := middleware.Repositories(c).Suppliers.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve supplier")
		return
	}
	respond(c, http.StatusOK, supplier)
}

// SearchSuppliers handles GET /api/v1/suppliers/search with one of
// category_ids (comma separated), category_name or product_name
func SearchSuppliers(c *gin.Context) {
	name, value, ok := searchParam(c, "category_ids", "category_name", "product_name")
	if !ok {
		return
	}

	repo := middleware.Repositories(c).Suppliers
	ctx := c.Request.Context()
	var suppliers []models.Supplier
	var err error
	switch name {
	case "category_ids":
		ids, parseErr := utils.ParseIDList(value)
		if parseErr != nil {
			respondValidationError(c, "Invalid category_ids", parseErr)
			return
		}
		suppliers, err = repo.GetByCategoryIDs(ctx, ids)
	case "category_name":
		suppliers, err = repo.GetByCategoryName(ctx, value)
	case "product_name":
		suppliers, err = repo.GetByProductName(ctx, value)
	}
	if err != nil {
		respondRepositoryError(c, err, "Failed to search suppliers")
		return
	}
	respond(c, http.StatusOK, suppliers)
}

// GetSupplierProducts handles GET /api/v1/suppliers/:id/products
func GetSupplierProducts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	products, err := middleware.Repositories(c).Suppliers.GetProducts(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve supplier products")
		return
	}
	respond(c, http.StatusOK, newProductResponses(products))
}

// GetSupplierCategories handles GET /api/v1/suppliers/:id/categories
func GetSupplierCategories(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	categories, err := middleware.Repositories(c).Suppliers.GetCategories(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve supplier categories")
		return
	}
	respond(c, http.StatusOK, categories)
}

// GetSupplierOrders handles GET /api/v1/suppliers/:id/orders
func GetSupplierOrders(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	orders, err := middleware.Repositories(c).Suppliers.GetOrders(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve supplier orders")
		return
	}
	respond(c, http.StatusOK, newSupplierOrderResponses(orders))
}
