package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/middleware"
	"github.com/kendall-kelly/stock-api/models"
	"github.com/kendall-kelly/stock-api/repository"
)

// CreateConsumerRequest represents the request body for creating a consumer
type CreateConsumerRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactNumber string `json:"contact_number"`
}

// UpdateConsumerRequest represents the request body for updating a consumer
type UpdateConsumerRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1"`
	ContactNumber *string `json:"contact_number"`
}

// CreateConsumer handles POST /api/v1/consumers
func CreateConsumer(c *gin.Context) {
	var req CreateConsumerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	consumer := models.Consumer{Name: req.Name, ContactNumber: req.ContactNumber}
	if err := middleware.Repositories(c).Consumers.Create(c.Request.Context(), &consumer); err != nil {
		respondRepositoryError(c, err, "Failed to create consumer")
		return
	}
	respond(c, http.StatusCreated, consumer)
}

// ListConsumers handles GET /api/v1/consumers
func ListConsumers(c *gin.Context) {
	consumers, err := middleware.Repositories(c).Consumers.GetAll(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve consumers")
		return
	}
	respond(c, http.StatusOK, consumers)
}

// GetConsumer handles GET /api/v1/consumers/:id
func GetConsumer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	consumer, err := middleware.Repositories(c).Consumers.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve consumer")
		return
	}
	respond(c, http.StatusOK, consumer)
}

// UpdateConsumer handles PUT /api/v1/consumers/:id
func UpdateConsumer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateConsumerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	consumer, err := middleware.Repositories(c).Consumers.Update(c.Request.Context(), id, repository.ConsumerPatch{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		respondRepositoryError(c, err, "Failed to update consumer")
		return
	}
	respond(c, http.StatusOK, consumer)
}

// DeleteConsumer handles DELETE /api/v1/consumers/:id
func DeleteConsumer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := middleware.Repositories(c).Consumers.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "Failed to delete consumer")
		return
	}
	respond(c, http.StatusOK, true)
}

// SearchConsumers handles GET /api/v1/consumers/search?name=. Names are
// matched by case-insensitive prefix.
func SearchConsumers(c *gin.Context) {
	_, prefix, ok := searchParam(c, "name")
	if !ok {
		return
	}

	consumers, err := middleware.Repositories(c).Consumers.SearchByName(c.Request.Context(), prefix)
	if err != nil {
		respondRepositoryError(c, err, "Failed to search consumers")
		return
	}
	respond(c, http.StatusOK, consumers)
}

// GetConsumerOrders handles GET /api/v1/consumers/:id/orders
func GetConsumerOrders(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	orders, err := middleware.Repositories(c).Consumers.GetOrders(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "Failed to retrieve consumer orders")
		return
	}
	respond(c, http.StatusOK, newConsumerOrderResponses(orders))
}
