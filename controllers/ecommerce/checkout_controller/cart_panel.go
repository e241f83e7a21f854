package checkout_controller

import (
	"github.com/fitgear/fitgear-api/checkout"
	"github.com/gin-gonic/gin"
)

// OpenCart godoc
// @Summary Open the cart panel
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Failure 409 {object} models.ApiResponse "Invalid transition"
// @Router /checkout/sessions/{id}/open [post]
func OpenCart(c *gin.Context) {
	apply(c, "Cart opened", (*checkout.Session).OpenCart)
}

// DismissCart godoc
// @Summary Close the cart panel
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Failure 409 {object} models.ApiResponse "Invalid transition"
// @Router /checkout/sessions/{id}/dismiss [post]
func DismissCart(c *gin.Context) {
	apply(c, "Cart closed", (*checkout.Session).DismissCart)
}

// DismissNotice godoc
// @Summary Clear the payment notice
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Router /checkout/sessions/{id}/notice/dismiss [post]
func DismissNotice(c *gin.Context) {
	apply(c, "Notice dismissed", func(s *checkout.Session) error {
		s.DismissNotice()
		return nil
	})
}
