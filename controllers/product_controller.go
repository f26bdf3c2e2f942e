package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/middleware"
	"github.com/kendall-kelly/stock-api/models"
	"github.com/kendall-kelly/stock-api/repository"
	"github.com/kendall-kelly/stock-api/services"
	"github.com/kendall-kelly/stock-api/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	UnitPrice   *decimal.Decimal `json:"unit_price" binding:"required"`
	Description string           `json:"description"`
	CategoryID  *uint            `json:"category_id"`
}

// UpdateProductRequest represents the request body for updating a product.
// clear_category_id removes the product from its category.
type UpdateProductRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	Description     *string          `json:"description"`
	CategoryID      *uint            `json:"category_id" binding:"excluded_with=ClearCategoryID"`
	ClearCategoryID bool             `json:"clear_category_id"`
}

type productResponse struct {
	ID          uint      `json:"id"`
	CategoryID  *uint     `json:"category_id"`
	Name        string    `json:"name"`
	UnitPrice   string    `json:"unit_price"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		UnitPrice:   money(p.UnitPrice),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProductResponses(products []models.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = newProductResponse(p)
	}
	return out
}

// ProductController serves the product routes. Images is nil when no image
// bucket is configured; products are then returned without image URLs and
// uploads are refused.
type ProductController struct {
	Images services.ImageService
	Log    *zap.Logger
}

// NewProductController creates a product controller
func NewProductController(images services.ImageService, log *zap.Logger) *ProductController {
	return &ProductController{Images: images, Log: log}
}

// attachImageURL fills in the presigned image URL. A failure to sign is logged
// and the product is returned without a URL.
func (pc *ProductController) attachImageURL(ctx context.Context, product *models.Product) {
	if pc.Images == nil || product == nil || product.ImageS3Key == nil {
		return
	}
	url, err := pc.Images.GetImageURL(ctx, *product.ImageS3Key)
	if err != nil {
		pc.Log.Warn("Failed to sign product image URL", zap.Uint("product_id", product.ID), zap.Error(err))
		return
	}
	product.ImageURL = &url
}

func (pc *ProductController) respondProducts(c *gin.Context, products []models.Product) {
	for i := range products {
		pc.attachImageURL(c.Request.Context(), &products[i])
	}
	respond(c, http.StatusOK, newProductResponses(products))
}

// Create handles POST /api/v1/products
func (pc *ProductController) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}
	if err := validateMoney("unit_price", req.UnitPrice); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	product := models.Product{
		Name:        req.Name,
		UnitPrice:   *req.UnitPrice,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if err := middleware.Repositories(c).Products.Create(c.Request.Context(), &product); err != nil {
		respondRepositoryError(c, err, "Failed to create product")
		return
	}
	respond(c, http.StatusCreated, newProductResponse(product))
}

// List handles GET /api/v1/products
func (pc *ProductController) List(c *gin.Context) {
	products, err := middleware.Repositories(c).Products.GetAll(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve products")
		return
	}
	pc.respondProducts(c, products)
}

// Get handles GET /api/v1/products/:id
func (pc *ProductController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := middleware.Repositories(c).Products.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve product")
		return
	}
	pc.attachImageURL(c.Request.Context(), product)
	respond(c, http.StatusOK, newProductResponse(*product))
}

// Update handles PUT /api/v1/products/:id. Existing order lines keep their prices.
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}
	if err := validateMoney("unit_price", req.UnitPrice); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	product, err := middleware.Repositories(c).Products.Update(c.Request.Context(), id, repository.ProductPatch{
		Name:            req.Name,
		UnitPrice:       req.UnitPrice,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		ClearCategoryID: req.ClearCategoryID,
	})
	if err != nil {
		respondRepositoryError(c, err, "Failed to update product")
		return
	}
	pc.attachImageURL(c.Request.Context(), product)
	respond(c, http.StatusOK, newProductResponse(*product))
}

// Delete handles DELETE /api/v1/products/:id. Order lines for the product are
// removed and the affected order totals recomputed.
func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	repos := middleware.Repositories(c)
	product, err := repos.Products.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to delete product")
		return
	}
	if err := repos.Products.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "Failed to delete product")
		return
	}
	if product.ImageS3Key != nil && pc.Images != nil {
		key := *product.ImageS3Key
		middleware.AfterCommit(c, func(ctx context.Context) {
			if err := pc.Images.DeleteImage(ctx, key); err != nil {
				pc.Log.Warn("Failed to delete product image", zap.Uint("product_id", id), zap.Error(err))
			}
		})
	}
	respond(c, http.StatusOK, true)
}

// GetByName handles GET /api/v1/products/by-name/:name
func (pc *ProductController) GetByName(c *gin.Context) {
	product, err := middleware.Repositories(c).Products.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve product")
		return
	}
	if product == nil {
		respond(c, http.StatusOK, nil)
		return
	}
	pc.attachImageURL(c.Request.Context(), product)
	respond(c, http.StatusOK, newProductResponse(*product))
}

// GetSupplier handles GET /api/v1/products/:id/supplier: the first supplier
// that supplied the product, or null
func (pc *ProductController) GetSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	repos := middleware.Repositories(c)
	if _, err := repos.Products.GetByID(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "Failed to retrieve product supplier")
		return
	}
	supplier, err := repos.Suppliers.GetByProductID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve product supplier")
		return
	}
	respond(c, http.StatusOK, supplier)
}

// Search handles GET /api/v1/products/search with exactly one filter
func (pc *ProductController) Search(c *gin.Context) {
	name, value, ok := searchParam(c,
		"category_id", "category_name", "supplier_name",
		"supplier_order_id", "supplier_order_date", "consumer_order_date",
		"supplier_order_item_id", "consumer_order_item_id",
	)
	if !ok {
		return
	}

	repo := middleware.Repositories(c).Products
	ctx := c.Request.Context()
	var products []models.Product
	var err error
	switch name {
	case "category_name":
		products, err = repo.GetByCategoryName(ctx, value)
	case "supplier_name":
		products, err = repo.GetBySupplierName(ctx, value)
	case "supplier_order_date", "consumer_order_date":
		day, parseErr := utils.ParseDate(value)
		if parseErr != nil {
			respondValidationError(c, "Invalid "+name, parseErr)
			return
		}
		if name == "supplier_order_date" {
			products, err = repo.GetBySupplierOrderDate(ctx, day)
		} else {
			products, err = repo.GetByConsumerOrderDate(ctx, day)
		}
	default:
		id, parseErr := utils.ParseID(value)
		if parseErr != nil {
			respondValidationError(c, "Invalid "+name, parseErr)
			return
		}
		switch name {
		case "category_id":
			products, err = repo.GetByCategoryID(ctx, id)
		case "supplier_order_id":
			products, err = repo.GetBySupplierOrderID(ctx, id)
		case "supplier_order_item_id":
			products, err = repo.GetBySupplierOrderItemID(ctx, id)
		case "consumer_order_item_id":
			products, err = repo.GetByConsumerOrderItemID(ctx, id)
		}
	}
	if err != nil {
		respondRepositoryError(c, err, "Failed to search products")
		return
	}
	pc.respondProducts(c, products)
}

// UploadImage handles POST /api/v1/products/:id/image with a multipart "image"
// field. The previous image, if any, is deleted once the new one is recorded.
func (pc *ProductController) UploadImage(c *gin.Context) {
	if pc.Images == nil {
		respondError(c, http.StatusServiceUnavailable, "IMAGE_STORAGE_DISABLED", "Image storage is not configured")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondValidationError(c, "An image file is required in the \"image\" field", err)
		return
	}

	ctx := c.Request.Context()
	repos := middleware.Repositories(c)
	product, err := repos.Products.GetByID(ctx, id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to upload product image")
		return
	}

	key, err := pc.Images.UploadProductImage(ctx, id, fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to upload product image")
		return
	}

	middleware.AfterRollback(c, func(ctx context.Context) {
		if err := pc.Images.DeleteImage(ctx, key); err != nil {
			pc.Log.Warn("Failed to remove orphaned product image", zap.String("key", key), zap.Error(err))
		}
	})

	updated, err := repos.Products.SetImage(ctx, id, &key)
	if err != nil {
		respondRepositoryError(c, err, "Failed to record product image")
		return
	}

	if product.ImageS3Key != nil && *product.ImageS3Key != key {
		previous := *product.ImageS3Key
		middleware.AfterCommit(c, func(ctx context.Context) {
			if err := pc.Images.DeleteImage(ctx, previous); err != nil {
				pc.Log.Warn("Failed to delete previous product image", zap.Uint("product_id", id), zap.Error(err))
			}
		})
	}

	pc.attachImageURL(ctx, updated)
	respond(c, http.StatusOK, newProductResponse(*updated))
}
