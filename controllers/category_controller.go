package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/middleware"
	"github.com/kendall-kelly/stock-api/models"
	"github.com/kendall-kelly/stock-api/repository"
	"github.com/kendall-kelly/stock-api/utils"
)

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name      string `json:"category_name" binding:"required"`
	ProductID *uint  `json:"product_id"`
}

// UpdateCategoryRequest represents the request body for updating a category.
// clear_product_id removes the product reference and cannot be combined with product_id.
type UpdateCategoryRequest struct {
	Name           *string `json:"category_name" binding:"omitempty,min=1"`
	ProductID      *uint   `json:"product_id" binding:"excluded_with=ClearProductID"`
	ClearProductID bool    `json:"clear_product_id"`
}

// CreateCategory handles POST /api/v1/categories
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	category := models.Category{Name: req.Name, ProductID: req.ProductID}
	if err := middleware.Repositories(c).Categories.Create(c.Request.Context(), &category); err != nil {
		respondRepositoryError(c, err, "Failed to create category")
		return
	}
	respond(c, http.StatusCreated, category)
}

// ListCategories handles GET /api/v1/categories
func ListCategories(c *gin.Context) {
	categories, err := middleware.Repositories(c).Categories.GetAll(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve categories")
		return
	}
	respond(c, http.StatusOK, categories)
}

// GetCategory handles GET /api/v1/categories/:id
func GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := middleware.Repositories(c).Categories.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve category")
		return
	}
	respond(c, http.StatusOK, category)
}

// UpdateCategory handles PUT /api/v1/categories/:id
func UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	category, err := middleware.Repositories(c).Categories.Update(c.Request.Context(), id, repository.CategoryPatch{
		Name:           req.Name,
		ProductID:      req.ProductID,
		ClearProductID: req.ClearProductID,
	})
	if err != nil {
		respondRepositoryError(c, err, "Failed to update category")
		return
	}
	respond(c, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/v1/categories/:id. Products in the
// category are kept without a category.
func DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := middleware.Repositories(c).Categories.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "Failed to delete category")
		return
	}
	respond(c, http.StatusOK, true)
}

// GetCategoryByName handles GET /api/v1/categories/by-name/:name
func GetCategoryByName(c *gin.Context) {
	category, err := middleware.Repositories(c).Categories.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve category")
		return
	}
	respond(c, http.StatusOK, category)
}

// GetCategoryByProductName handles GET /api/v1/categories/by-product-name/:name
func GetCategoryByProductName(c *gin.Context) {
	category, err := middleware.Repositories(c).Categories.GetByProductName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve category")
		return
	}
	respond(c, http.StatusOK, category)
}

// SearchCategories handles GET /api/v1/categories/search with supplier_id or supplier_name
func SearchCategories(c *gin.Context) {
	name, value, ok := searchParam(c, "supplier_id", "supplier_name")
	if !ok {
		return
	}

	repo := middleware.Repositories(c).Categories
	ctx := c.Request.Context()
	var categories []models.Category
	var err error
	switch name {
	case "supplier_id":
		supplierID, parseErr := utils.ParseID(value)
		if parseErr != nil {
			respondValidationError(c, "Invalid supplier_id", parseErr)
			return
		}
		categories, err = repo.GetBySupplierID(ctx, supplierID)
	case "supplier_name":
		categories, err = repo.GetBySupplierName(ctx, value)
	}
	if err != nil {
		respondRepositoryError(c, err, "Failed to search categories")
		return
	}
	respond(c, http.StatusOK, categories)
}
