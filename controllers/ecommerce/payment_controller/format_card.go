package payment_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/payment"
	"github.com/gin-gonic/gin"
)

// FormatCard godoc
// @Summary Normalise card input
// @Description Groups the card number in blocks of four (16 digits max), lays the expiry out as MM/YY and trims the CVV to three digits. Non-digits are dropped.
// @Tags Payments
// @Accept json
// @Produce json
// @Param body body payment.Input true "Raw card input"
// @Success 200 {object} models.ApiResponse{data=payment.FormattedCard}
// @Failure 400 {object} models.ApiResponse "Invalid request body"
// @Router /payments/format [post]
func FormatCard(c *gin.Context) {
	var in payment.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Card input formatted", payment.FormatCardInput(in)))
}
