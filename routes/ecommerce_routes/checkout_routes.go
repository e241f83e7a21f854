package ecommerce_routes

import (
	"time"

	"github.com/fitgear/fitgear-api/controllers/ecommerce/checkout_controller"
	"github.com/fitgear/fitgear-api/controllers/ecommerce/payment_controller"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupCheckoutRoutes registers the cart and checkout state machine. Guests
// may check out; a signed-in caller's identity is attached when present.
func SetupCheckoutRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/checkout/sessions")
	sessions.Use(middleware.OptionalAuth())
	{
		sessions.POST("", checkout_controller.CreateSession)
		sessions.GET("/:id", checkout_controller.GetSession)
		sessions.DELETE("/:id", checkout_controller.DeleteSession)

		// Cart
		sessions.POST("/:id/items", checkout_controller.AddItem)
		sessions.PATCH("/:id/items/:productId", checkout_controller.UpdateQuantity)
		sessions.DELETE("/:id/items/:productId", checkout_controller.RemoveItem)
		sessions.DELETE("/:id/cart", checkout_controller.ResetCart)

		// State machine
		sessions.POST("/:id/open", checkout_controller.OpenCart)
		sessions.POST("/:id/dismiss", checkout_controller.DismissCart)
		sessions.POST("/:id/notice/dismiss", checkout_controller.DismissNotice)
		sessions.POST("/:id/begin", checkout_controller.BeginCheckout)
		sessions.POST("/:id/method", checkout_controller.SelectMethod)
		sessions.POST("/:id/pay", middleware.RateLimiter("pay", 20, time.Minute), checkout_controller.SubmitPayment)
		sessions.POST("/:id/cancel", checkout_controller.Cancel)
	}

	router.POST("/payments/format", payment_controller.FormatCard)
}
