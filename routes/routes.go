// Package routes binds the stock API handlers to their paths.
package routes

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/config"
	"github.com/kendall-kelly/stock-api/controllers"
	"github.com/kendall-kelly/stock-api/middleware"
	"github.com/kendall-kelly/stock-api/repository"
	"github.com/kendall-kelly/stock-api/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the router is built from
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Images services.ImageService // nil disables product image uploads

	// WriteGuard replaces the Auth0 guard on mutation routes when set
	WriteGuard []gin.HandlerFunc
}

// NewRouter builds the gin engine with every /api/v1 route
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	writeGuard := deps.WriteGuard
	if writeGuard == nil {
		guard, err := middleware.RequireWrite(deps.Config, deps.Log)
		if err != nil {
			return nil, err
		}
		writeGuard = guard
	}

	router := gin.New()
	router.Use(
		middleware.RequestLogger(deps.Log),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			deps.Log.Error("Recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Internal server error",
				},
			})
		}),
		cors.New(corsConfig(deps.Config.CORSAllowedOrigins)),
	)

	v1 := router.Group("/api/v1")
	v1.GET("/health", controllers.HealthCheck)
	v1.GET("/database/status", controllers.DatabaseStatus(deps.DB))

	api := v1.Group("", middleware.UnitOfWork(repository.NewStore(deps.DB), deps.Log))
	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(slices.Clone(writeGuard), handler)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.GET("", controllers.ListSuppliers)
		suppliers.POST("", write(controllers.CreateSupplier)...)
		suppliers.GET("/search", controllers.SearchSuppliers)
		suppliers.GET("/by-name/:name", controllers.GetSupplierByName)
		suppliers.GET("/:id", controllers.GetSupplier)
		suppliers.PUT("/:id", write(controllers.UpdateSupplier)...)
		suppliers.DELETE("/:id", write(controllers.DeleteSupplier)...)
		suppliers.GET("/:id/products", controllers.GetSupplierProducts)
		suppliers.GET("/:id/categories", controllers.GetSupplierCategories)
		suppliers.GET("/:id/orders", controllers.GetSupplierOrders)
	}

	consumers := api.Group("/consumers")
	{
		consumers.GET("", controllers.ListConsumers)
		consumers.POST("", write(controllers.CreateConsumer)...)
		consumers.GET("/search", controllers.SearchConsumers)
		consumers.GET("/:id", controllers.GetConsumer)
		consumers.PUT("/:id", write(controllers.UpdateConsumer)...)
		consumers.DELETE("/:id", write(controllers.DeleteConsumer)...)
		consumers.GET("/:id/orders", controllers.GetConsumerOrders)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", controllers.ListCategories)
		categories.POST("", write(controllers.CreateCategory)...)
		categories.GET("/search", controllers.SearchCategories)
		categories.GET("/by-name/:name", controllers.GetCategoryByName)
		categories.GET("/by-product-name/:name", controllers.GetCategoryByProductName)
		categories.GET("/:id", controllers.GetCategory)
		categories.PUT("/:id", write(controllers.UpdateCategory)...)
		categories.DELETE("/:id", write(controllers.DeleteCategory)...)
	}

	productController := controllers.NewProductController(deps.Images, deps.Log)
	products := api.Group("/products")
	{
		products.GET("", productController.List)
		products.POST("", write(productController.Create)...)
		products.GET("/search", productController.Search)
		products.GET("/by-name/:name", productController.GetByName)
		products.GET("/:id", productController.Get)
		products.PUT("/:id", write(productController.Update)...)
		products.DELETE("/:id", write(productController.Delete)...)
		products.GET("/:id/supplier", productController.GetSupplier)
		products.POST("/:id/image", write(productController.UploadImage)...)
	}

	supplierOrders := api.Group("/supplier-orders")
	{
		supplierOrders.GET("", controllers.ListSupplierOrders)
		supplierOrders.POST("", write(controllers.CreateSupplierOrder)...)
		supplierOrders.GET("/search", controllers.SearchSupplierOrders)
		supplierOrders.GET("/:id", controllers.GetSupplierOrder)
		supplierOrders.PUT("/:id", write(controllers.UpdateSupplierOrder)...)
		supplierOrders.DELETE("/:id", write(controllers.DeleteSupplierOrder)...)
		supplierOrders.GET("/:id/items", controllers.GetSupplierOrderItems)
	}

	supplierOrderItems := api.Group("/supplier-order-items")
	{
		supplierOrderItems.GET("", controllers.ListSupplierOrderItems)
		supplierOrderItems.POST("", write(controllers.CreateSupplierOrderItem)...)
		supplierOrderItems.GET("/:id", controllers.GetSupplierOrderItem)
		supplierOrderItems.PUT("/:id", write(controllers.UpdateSupplierOrderItem)...)
		supplierOrderItems.DELETE("/:id", write(controllers.DeleteSupplierOrderItem)...)
	}

	consumerOrders := api.Group("/consumer-orders")
	{
		consumerOrders.GET("", controllers.ListConsumerOrders)
		consumerOrders.POST("", write(controllers.CreateConsumerOrder)...)
		consumerOrders.GET("/search", controllers.SearchConsumerOrders)
		consumerOrders.GET("/:id", controllers.GetConsumerOrder)
		consumerOrders.PUT("/:id", write(controllers.UpdateConsumerOrder)...)
		consumerOrders.DELETE("/:id", write(controllers.DeleteConsumerOrder)...)
		consumerOrders.GET("/:id/items", controllers.GetConsumerOrderItems)
	}

	consumerOrderItems := api.Group("/consumer-order-items")
	{
		consumerOrderItems.GET("", controllers.ListConsumerOrderItems)
		consumerOrderItems.POST("", write(controllers.CreateConsumerOrderItem)...)
		consumerOrderItems.GET("/:id", controllers.GetConsumerOrderItem)
		consumerOrderItems.PUT("/:id", write(controllers.UpdateConsumerOrderItem)...)
		consumerOrderItems.DELETE("/:id", write(controllers.DeleteConsumerOrderItem)...)
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
