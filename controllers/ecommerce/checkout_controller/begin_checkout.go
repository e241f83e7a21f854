package checkout_controller

import (
	"github.com/fitgear/fitgear-api/checkout"
	"github.com/gin-gonic/gin"
)

// BeginCheckout godoc
// @Summary Proceed to payment method selection
// @Description Requires an open, non-empty cart.
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 400 {object} models.ApiResponse "Cart is empty"
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Failure 409 {object} models.ApiResponse "Invalid transition"
// @Router /checkout/sessions/{id}/begin [post]
func BeginCheckout(c *gin.Context) {
	apply(c, "Choose a payment method", (*checkout.Session).BeginCheckout)
}
