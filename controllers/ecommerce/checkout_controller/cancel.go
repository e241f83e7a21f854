package checkout_controller

import (
	"github.com/fitgear/fitgear-api/checkout"
	"github.com/gin-gonic/gin"
)

// Cancel godoc
// @Summary Abandon the payment
// @Description Aborts method selection or a payment in progress. The cart is kept and the session returns to idle.
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Failure 409 {object} models.ApiResponse "Invalid transition"
// @Router /checkout/sessions/{id}/cancel [post]
func Cancel(c *gin.Context) {
	apply(c, "Checkout cancelled", (*checkout.Session).Cancel)
}
