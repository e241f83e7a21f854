package checkout_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
)

// GetSession godoc
// @Summary Get a checkout session
// @Description Returns the cart, phase, frozen total, field error and payment notice. Poll it while a payment is processing.
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ApiResponse{data=checkout.View}
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Router /checkout/sessions/{id} [get]
func GetSession(c *gin.Context) {
	s, ok := loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Checkout session retrieved", s.Snapshot()))
}
