package ecommerce_routes

import (
	"github.com/fitgear/fitgear-api/controllers/ecommerce/user_controller/address_controller"
	"github.com/fitgear/fitgear-api/controllers/ecommerce/user_controller/order_controller"
	"github.com/fitgear/fitgear-api/controllers/ecommerce/user_controller/profile_controller"
	"github.com/fitgear/fitgear-api/controllers/ecommerce/wishlist_controller"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up the account routes. All of them require auth.
func SetupUserRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/profile", profile_controller.GetProfile)
		users.PUT("/profile", profile_controller.UpdateProfile)

		// Addresses
		users.GET("/addresses", address_controller.GetAddresses)
		users.POST("/addresses", address_controller.AddAddress)
		users.DELETE("/addresses/:id", address_controller.DeleteAddress)
		users.PATCH("/addresses/:id/default", address_controller.SetDefaultAddress)
	}

	orders := router.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.GET("", order_controller.GetOrders)
		orders.POST("", order_controller.CreateOrder)
		orders.GET("/:id", order_controller.GetOrderDetails)
		orders.GET("/:id/receipt", order_controller.DownloadReceipt)
	}

	wishlists := router.Group("/wishlists")
	wishlists.Use(middleware.AuthMiddleware())
	{
		wishlists.GET("", wishlist_controller.GetWishlist)
		wishlists.POST("/:productId", wishlist_controller.AddToWishlist)
		wishlists.DELETE("/:productId", wishlist_controller.RemoveFromWishlist)
	}
}
