package checkout_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/payment"
	"github.com/gin-gonic/gin"
)

// SubmitPayment godoc
// @Summary Pay for the cart
// @Description Validates the phone number or card details for the selected method. Valid input starts the charge and returns 202; poll the session for the outcome. Invalid input returns 422 and keeps the form open.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body payment.Input true "Payment details"
// @Success 202 {object} models.ApiResponse{data=checkout.View}
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Failure 409 {object} models.ApiResponse "Payment already processing"
// @Failure 422 {object} models.ApiResponse "Invalid payment details"
// @Failure 429 {object} models.ApiResponse "Too many requests"
// @Router /checkout/sessions/{id}/pay [post]
func SubmitPayment(c *gin.Context) {
	var in payment.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	s, ok := loadSession(c)
	if !ok {
		return
	}
	if err := s.SubmitPayment(in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, models.SuccessResponse(c, "Payment processing", s.Snapshot()))
}
