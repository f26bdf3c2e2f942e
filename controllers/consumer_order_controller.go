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

// CreateConsumerOrderRequest represents the request body for creating a consumer order.
// The order total is derived from its lines and cannot be supplied.
type CreateConsumerOrderRequest struct {
	ConsumerID uint   `json:"consumer_id" binding:"required"`
	OrderDate  string `json:"order_date" binding:"required"`
}

// UpdateConsumerOrderRequest represents the request body for updating a consumer order
type UpdateConsumerOrderRequest struct {
	OrderDate *string `json:"order_date"`
}

// CreateConsumerOrderItemRequest represents the request body for adding a consumer order line
type CreateConsumerOrderItemRequest struct {
	ConsumerOrderID uint             `json:"consumer_order_id" binding:"required"`
	ProductID       uint             `json:"product_id" binding:"required"`
	ItemName        string           `json:"item_name"`
	Quantity        *int             `json:"quantity" binding:"required,gte=0"`
	UnitPrice       *decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateConsumerOrderItemRequest represents the request body for updating a consumer order line
type UpdateConsumerOrderItemRequest struct {
	ItemName  *string          `json:"item_name"`
	Quantity  *int             `json:"quantity" binding:"omitempty,gte=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type consumerOrderResponse struct {
	ID          uint      `json:"id"`
	ConsumerID  uint      `json:"consumer_id"`
	OrderDate   string    `json:"order_date"`
	TotalAmount string    `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newConsumerOrderResponse(o models.ConsumerOrder) consumerOrderResponse {
	return consumerOrderResponse{
		ID:          o.ID,
		ConsumerID:  o.ConsumerID,
		OrderDate:   time.Time(o.OrderDate).Format(utils.DateLayout),
		TotalAmount: money(o.TotalAmount),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func newConsumerOrderResponses(orders []models.ConsumerOrder) []consumerOrderResponse {
	out := make([]consumerOrderResponse, len(orders))
	for i, o := range orders {
		out[i] = newConsumerOrderResponse(o)
	}
	return out
}

type consumerOrderItemResponse struct {
	ID              uint      `json:"id"`
	ConsumerOrderID uint      `json:"consumer_order_id"`
	ProductID       uint      `json:"product_id"`
	ItemName        string    `json:"item_name"`
	Quantity        int       `json:"quantity"`
	UnitPrice       string    `json:"unit_price"`
	TotalPrice      string    `json:"total_price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newConsumerOrderItemResponse(i models.ConsumerOrderItem) consumerOrderItemResponse {
	return consumerOrderItemResponse{
		ID:              i.ID,
		ConsumerOrderID: i.ConsumerOrderID,
		ProductID:       i.ProductID,
		ItemName:        i.ItemName,
		Quantity:        i.Quantity,
		UnitPrice:       money(i.UnitPrice),
		TotalPrice:      money(i.TotalPrice),
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

func newConsumerOrderItemResponses(items []models.ConsumerOrderItem) []consumerOrderItemResponse {
	out := make([]consumerOrderItemResponse, len(items))
	for i, item := range items {
		out[i] = newConsumerOrderItemResponse(item)
	}
	return out
}

// CreateConsumerOrder handles POST /api/v1/consumer-orders
func CreateConsumerOrder(c *gin.Context) {
	var req CreateConsumerOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}
	orderDate, err := utils.ParseDate(req.OrderDate)
	if err != nil {
		respondValidationError(c, "Invalid order_date", err)
		return
	}

	order := models.ConsumerOrder{ConsumerID: req.ConsumerID, OrderDate: datatypes.Date(orderDate)}
	if err := middleware.Repositories(c).ConsumerOrders.Create(c.Request.Context(), &order); err != nil {
		respondRepositoryError(c, err, "Failed to create consumer order")
		return
	}
	respond(c, http.StatusCreated, newConsumerOrderResponse(order))
}

// ListConsumerOrders handles GET /api/v1/consumer-orders
func ListConsumerOrders(c *gin.Context) {
	orders, err := middleware.Repositories(c).ConsumerOrders.GetAll(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve consumer orders")
		return
	}
	respond(c, http.StatusOK, newConsumerOrderResponses(orders))
}

// GetConsumerOrder handles GET /api/v1/consumer-orders/:id
func GetConsumerOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := middleware.Repositories(c).ConsumerOrders.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve consumer order")
		return
	}
	respond(c, http.StatusOK, newConsumerOrderResponse(*order))
}

// UpdateConsumerOrder handles PUT /api/v1/consumer-orders/:id
func UpdateConsumerOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateConsumerOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}
	var patch repository.ConsumerOrderPatch
	if req.OrderDate != nil {
		orderDate, err := utils.ParseDate(*req.OrderDate)
		if err != nil {
			respondValidationError(c, "Invalid order_date", err)
			return
		}
		patch.OrderDate = &orderDate
	}

	order, err := middleware.Repositories(c).ConsumerOrders.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondRepositoryError(c, err, "Failed to update consumer order")
		return
	}
	respond(c, http.StatusOK, newConsumerOrderResponse(*order))
}

// DeleteConsumerOrder handles DELETE /api/v1/consumer-orders/:id
func DeleteConsumerOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := middleware.Repositories(c).ConsumerOrders.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "Failed to delete consumer order")
		return
	}
	respond(c, http.StatusOK, true)
}

// SearchConsumerOrders handles GET /api/v1/consumer-orders/search with one of
// order_date, consumer_id or product_name
func SearchConsumerOrders(c *gin.Context) {
	name, value, ok := searchParam(c, "order_date", "consumer_id", "product_name")
	if !ok {
		return
	}

	repo := middleware.Repositories(c).ConsumerOrders
	ctx := c.Request.Context()
	var orders []models.ConsumerOrder
	var err error
	switch name {
	case "order_date":
		day, parseErr := utils.ParseDate(value)
		if parseErr != nil {
			respondValidationError(c, "Invalid order_date", parseErr)
			return
		}
		orders, err = repo.GetByOrderDate(ctx, day)
	case "consumer_id":
		consumerID, parseErr := utils.ParseID(value)
		if parseErr != nil {
			respondValidationError(c, "Invalid consumer_id", parseErr)
			return
		}
		orders, err = repo.GetByConsumerID(ctx, consumerID)
	case "product_name":
		orders, err = repo.GetByProductName(ctx, value)
	}
	if err != nil {
		respondRepositoryError(c, err, "Failed to search consumer orders")
		return
	}
	respond(c, http.StatusOK, newConsumerOrderResponses(orders))
}

// GetConsumerOrderItems handles GET /api/v1/consumer-orders/:id/items
func GetConsumerOrderItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	items, err := middleware.Repositories(c).ConsumerOrderItems.GetByConsumerOrderID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve consumer order items")
		return
	}
	respond(c, http.StatusOK, newConsumerOrderItemResponses(items))
}

// CreateConsumerOrderItem handles POST /api/v1/consumer-order-items. The line
// is priced at its own unit price and the order total is recomputed.
func CreateConsumerOrderItem(c *gin.Context) {
	var req CreateConsumerOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}
	if err := validateMoney("unit_price", req.UnitPrice); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	item := models.ConsumerOrderItem{
		ConsumerOrderID: req.ConsumerOrderID,
		ProductID:       req.ProductID,
		ItemName:        req.ItemName,
		Quantity:        *req.Quantity,
		UnitPrice:       *req.UnitPrice,
	}
	if err := middleware.Repositories(c).ConsumerOrderItems.Create(c.Request.Context(), &item); err != nil {
		respondRepositoryError(c, err, "Failed to create consumer order item")
		return
	}
	respond(c, http.StatusCreated, newConsumerOrderItemResponse(item))
}

// ListConsumerOrderItems handles GET /api/v1/consumer-order-items
func ListConsumerOrderItems(c *gin.Context) {
	items, err := middleware.Repositories(c).ConsumerOrderItems.GetAll(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve consumer order items")
		return
	}
	respond(c, http.StatusOK, newConsumerOrderItemResponses(items))
}

// GetConsumerOrderItem handles GET /api/v1/consumer-order-items/:id
func GetConsumerOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := middleware.Repositories(c).ConsumerOrderItems.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve consumer order item")
		return
	}
	respond(c, http.StatusOK, newConsumerOrderItemResponse(*item))
}

// UpdateConsumerOrderItem handles PUT /api/v1/consumer-order-items/:id
func UpdateConsumerOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateConsumerOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}
	if err := validateMoney("unit_price", req.UnitPrice); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	item, err := middleware.Repositories(c).ConsumerOrderItems.Update(c.Request.Context(), id, repository.ConsumerOrderItemPatch{
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		respondRepositoryError(c, err, "Failed to update consumer order item")
		return
	}
	respond(c, http.StatusOK, newConsumerOrderItemResponse(*item))
}

// DeleteConsumerOrderItem handles DELETE /api/v1/consumer-order-items/:id
func DeleteConsumerOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := middleware.Repositories(c).ConsumerOrderItems.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "Failed to delete consumer order item")
		return
	}
	respond(c, http.StatusOK, true)
}
