package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/middleware"
	"github.com/kendall-kelly/stock-api/models"
	"github.com/kendall-kelly/stock-api/repository"
	"github.com/kendall-kelly/stock-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CreateSupplierOrderRequest represents the request body for creating a supplier order.
// The order total is derived from its lines and cannot be supplied.
type CreateSupplierOrderRequest struct {
	SupplierID uint   `json:"supplier_id" binding:"required"`
	OrderDate  string `json:"order_date" binding:"required"`
}

// UpdateSupplierOrderRequest represents the request body for updating a supplier order
type UpdateSupplierOrderRequest struct {
	OrderDate *string `json:"order_date"`
}

// CreateSupplierOrderItemRequest represents the request body for adding a supplier order line
type CreateSupplierOrderItemRequest struct {
	SupplierOrderID uint             `json:"supplier_order_id" binding:"required"`
	ProductID       uint             `json:"product_id" binding:"required"`
	ItemName        string           `json:"item_name"`
	Quantity        *int             `json:"quantity" binding:"required,gte=0"`
	UnitPrice       *decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateSupplierOrderItemRequest represents the request body for updating a supplier order line
type UpdateSupplierOrderItemRequest struct {
	ItemName  *string          `json:"item_name"`
	Quantity  *int             `json:"quantity" binding:"omitempty,gte=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type supplierOrderResponse struct {
	ID          uint      `json:"id"`
	SupplierID  uint      `json:"supplier_id"`
	OrderDate   string    `json:"order_date"`
	TotalAmount string    `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newSupplierOrderResponse(o models.SupplierOrder) supplierOrderResponse {
	return supplierOrderResponse{
		ID:          o.ID,
		SupplierID:  o.SupplierID,
		OrderDate:   time.Time(o.OrderDate).Format(utils.DateLayout),
		TotalAmount: money(o.TotalAmount),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func newSupplierOrderResponses(orders []models.SupplierOrder) []supplierOrderResponse {
	out := make([]supplierOrderResponse, len(orders))
	for i, o := range orders {
		out[i] = newSupplierOrderResponse(o)
	}
	return out
}

type supplierOrderItemResponse struct {
	ID              uint      `json:"id"`
	SupplierOrderID uint      `json:"supplier_order_id"`
	ProductID       uint      `json:"product_id"`
	ItemName        string    `json:"item_name"`
	Quantity        int       `json:"quantity"`
	UnitPrice       string    `json:"unit_price"`
	TotalPrice      string    `json:"total_price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newSupplierOrderItemResponse(i models.SupplierOrderItem) supplierOrderItemResponse {
	return supplierOrderItemResponse{
		ID:              i.ID,
		SupplierOrderID: i.SupplierOrderID,
		ProductID:       i.ProductID,
		ItemName:        i.ItemName,
		Quantity:        i.Quantity,
		UnitPrice:       money(i.UnitPrice),
		TotalPrice:      money(i.TotalPrice),
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

func newSupplierOrderItemResponses(items []models.SupplierOrderItem) []supplierOrderItemResponse {
	out := make([]supplierOrderItemResponse, len(items))
	for i, item := range items {
		out[i] = newSupplierOrderItemResponse(item)
	}
	return out
}

// CreateSupplierOrder handles POST /api/v1/supplier-orders
func CreateSupplierOrder(c *gin.Context) {
	var req CreateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}
	orderDate, err := utils.ParseDate(req.OrderDate)
	if err != nil {
		respondValidationError(c, "Invalid order_date", err)
		return
	}

	order := models.SupplierOrder{SupplierID: req.SupplierID, OrderDate: datatypes.Date(orderDate)}
	if err := middleware.Repositories(c).SupplierOrders.Create(c.Request.Context(), &order); err != nil {
		respondRepositoryError(c, err, "Failed to create supplier order")
		return
	}
	respond(c, http.StatusCreated, newSupplierOrderResponse(order))
}

// ListSupplierOrders handles GET /api/v1/supplier-orders
func ListSupplierOrders(c *gin.Context) {
	orders, err := middleware.Repositories(c).SupplierOrders.GetAll(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve supplier orders")
		return
	}
	respond(c, http.StatusOK, newSupplierOrderResponses(orders))
}

// GetSupplierOrder handles GET /api/v1/supplier-orders/:id
func GetSupplierOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := middleware.Repositories(c).SupplierOrders.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve supplier order")
		return
	}
	respond(c, http.StatusOK, newSupplierOrderResponse(*order))
}

// UpdateSupplierOrder handles PUT /api/v1/supplier-orders/:id
func UpdateSupplierOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}
	var patch repository.SupplierOrderPatch
	if req.OrderDate != nil {
		orderDate, err := utils.ParseDate(*req.OrderDate)
		if err != nil {
			respondValidationError(c, "Invalid order_date", err)
			return
		}
		patch.OrderDate = &orderDate
	}

	order, err := middleware.Repositories(c).SupplierOrders.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondRepositoryError(c, err, "Failed to update supplier order")
		return
	}
	respond(c, http.StatusOK, newSupplierOrderResponse(*order))
}

// DeleteSupplierOrder handles DELETE /api/v1/supplier-orders/:id
func DeleteSupplierOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := middleware.Repositories(c).SupplierOrders.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "Failed to delete supplier order")
		return
	}
	respond(c, http.StatusOK, true)
}

// SearchSupplierOrders handles GET /api/v1/supplier-orders/search with one of
// order_date, supplier_id or product_name
func SearchSupplierOrders(c *gin.Context) {
	name, value, ok := searchParam(c, "order_date", "supplier_id", "product_name")
	if !ok {
		return
	}

	repo := middleware.Repositories(c).SupplierOrders
	ctx := c.Request.Context()
	var orders []models.SupplierOrder
	var err error
	switch name {
	case "order_date":
		day, parseErr := utils.ParseDate(value)
		if parseErr != nil {
			respondValidationError(c, "Invalid order_date", parseErr)
			return
		}
		orders, err = repo.GetByOrderDate(ctx, day)
	case "supplier_id":
		supplierID, parseErr := utils.ParseID(value)
		if parseErr != nil {
			respondValidationError(c, "Invalid supplier_id", parseErr)
			return
		}
		orders, err = repo.GetBySupplierID(ctx, supplierID)
	case "product_name":
		orders, err = repo.GetByProductName(ctx, value)
	}
	if err != nil {
		respondRepositoryError(c, err, "Failed to search supplier orders")
		return
	}
	respond(c, http.StatusOK, newSupplierOrderResponses(orders))
}

// GetSupplierOrderItems handles GET /api/v1/supplier-orders/:id/items
func GetSupplierOrderItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	items, err := middleware.Repositories(c).SupplierOrderItems.GetBySupplierOrderID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve supplier order items")
		return
	}
	respond(c, http.StatusOK, newSupplierOrderItemResponses(items))
}

// CreateSupplierOrderItem handles POST /api/v1/supplier-order-items. The line
// is priced at the product's unit price and the order total is recomputed.
func CreateSupplierOrderItem(c *gin.Context) {
	var req CreateSupplierOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}
	if err := validateMoney("unit_price", req.UnitPrice); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	item := models.SupplierOrderItem{
		SupplierOrderID: req.SupplierOrderID,
		ProductID:       req.ProductID,
		ItemName:        req.ItemName,
		Quantity:        *req.Quantity,
		UnitPrice:       *req.UnitPrice,
	}
	if err := middleware.Repositories(c).SupplierOrderItems.Create(c.Request.Context(), &item); err != nil {
		respondRepositoryError(c, err, "Failed to create supplier order item")
		return
	}
	respond(c, http.StatusCreated, newSupplierOrderItemResponse(item))
}

// ListSupplierOrderItems handles GET /api/v1/supplier-order-items
func ListSupplierOrderItems(c *gin.Context) {
	items, err := middleware.Repositories(c).SupplierOrderItems.GetAll(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve supplier order items")
		return
	}
	respond(c, http.StatusOK, newSupplierOrderItemResponses(items))
}

// GetSupplierOrderItem handles GET /api/v1/supplier-order-items/:id
func GetSupplierOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := middleware.Repositories(c).SupplierOrderItems.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve supplier order item")
		return
	}
	respond(c, http.StatusOK, newSupplierOrderItemResponse(*item))
}

// UpdateSupplierOrderItem handles PUT /api/v1/supplier-order-items/:id
func UpdateSupplierOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateSupplierOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}
	if err := validateMoney("unit_price", req.UnitPrice); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	item, err := middleware.Repositories(c).SupplierOrderItems.Update(c.Request.Context(), id, repository.SupplierOrderItemPatch{
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		respondRepositoryError(c, err, "Failed to update supplier order item")
		return
	}
	respond(c, http.StatusOK, newSupplierOrderItemResponse(*item))
}

// DeleteSupplierOrderItem handles DELETE /api/v1/supplier-order-items/:id
func DeleteSupplierOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := middleware.Repositories(c).SupplierOrderItems.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "Failed to delete supplier order item")
		return
	}
	respond(c, http.StatusOK, true)
}
