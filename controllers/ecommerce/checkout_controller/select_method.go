package checkout_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/checkout"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/payment"
	"github.com/gin-gonic/gin"
)

// SelectMethod godoc
// @Summary Choose a payment method
// @Description Freezes the cart total and opens the payment form for mobile-money or card.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body models.SelectMethodRequest true "Payment method"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 400 {object} models.ApiResponse "Unsupported method"
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Failure 409 {object} models.ApiResponse "Invalid transition"
// @Router /checkout/sessions/{id}/method [post]
func SelectMethod(c *gin.Context) {
	var req models.SelectMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse(c, "Payment method is required", "method", "is required"))
		return
	}
	method, err := payment.ParseMethod(req.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	apply(c, "Payment method selected", func(s *checkout.Session) error {
		return s.SelectMethod(method)
	})
}
