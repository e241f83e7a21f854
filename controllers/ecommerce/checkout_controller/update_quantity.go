package checkout_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/checkout"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
)

// UpdateQuantity godoc
// @Summary Set a cart line's quantity
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param productId path string true "Product ID"
// @Param body body models.UpdateCartItemRequest true "Quantity (1-5)"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 400 {object} models.ApiResponse "Invalid quantity"
// @Failure 404 {object} models.ApiResponse "Session or line not found"
// @Failure 409 {object} models.ApiResponse "Cart locked"
// @Router /checkout/sessions/{id}/items/{productId} [patch]
func UpdateQuantity(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse(c, "Invalid quantity", "quantity", "must be between 1 and 5"))
		return
	}

	productID := c.Param("productId")
	apply(c, "Quantity updated", func(s *checkout.Session) error {
		return s.UpdateQuantity(productID, req.Quantity)
	})
}
