package checkout_controller

import (
	"github.com/fitgear/fitgear-api/checkout"
	"github.com/gin-gonic/gin"
)

// RemoveItem godoc
// @Summary Remove a cart line
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Param productId path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Failure 409 {object} models.ApiResponse "Cart locked"
// @Router /checkout/sessions/{id}/items/{productId} [delete]
func RemoveItem(c *gin.Context) {
	productID := c.Param("productId")
	apply(c, "Item removed", func(s *checkout.Session) error {
		return s.RemoveItem(productID)
	})
}
