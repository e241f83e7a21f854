package ecommerce_routes

import (
	"github.com/fitgear/fitgear-api/controllers/ecommerce/filter_controller"
	"github.com/fitgear/fitgear-api/controllers/ecommerce/product_controller"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupProductRoutes registers the public catalog and review routes.
func SetupProductRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", product_controller.GetProducts)
		products.GET("/filters", filter_controller.GetFilterMetadata)
		products.GET("/:id", product_controller.GetProductByID)
		products.GET("/:id/reviews", product_controller.GetReviews)
		products.POST("/:id/reviews", middleware.AuthMiddleware(), product_controller.AddReview)
	}
}
