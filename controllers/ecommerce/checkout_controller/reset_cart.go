package checkout_controller

import (
	"github.com/fitgear/fitgear-api/checkout"
	"github.com/gin-gonic/gin"
)

// ResetCart godoc
// @Summary Empty the cart
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Failure 409 {object} models.ApiResponse "Cart locked"
// @Router /checkout/sessions/{id}/cart [delete]
func ResetCart(c *gin.Context) {
	apply(c, "Cart cleared", (*checkout.Session).ResetCart)
}
