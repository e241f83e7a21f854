package checkout_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
)

// AddItem godoc
// @Summary Add a product to the cart
// @Description Adds one unit. A product already in the cart has its quantity incremented. The product is read from the catalog so the client cannot set prices.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body models.AddCartItemRequest true "Product"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 404 {object} models.ApiResponse "Session or product not found"
// @Failure 409 {object} models.ApiResponse "Cart locked"
// @Router /checkout/sessions/{id}/items [post]
func AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse(c, "Product is required", "productId", "is required"))
		return
	}

	s, ok := loadSession(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	product, err := catalogService.Product(ctx, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.AddItem(product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item added", s.Snapshot()))
}
