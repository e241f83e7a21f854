package checkout_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
)

// DeleteSession godoc
// @Summary Discard a checkout session
// @Description Cancels any pending charge and forgets the stored cart.
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Session not found"
// @Router /checkout/sessions/{id} [delete]
func DeleteSession(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := sessions.Delete(ctx, c.Param("id"), middleware.PrincipalFromContext(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Checkout session deleted", nil))
}
