package checkout_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
)

// CreateSession godoc
// @Summary Start a checkout session
// @Description Creates an empty cart in the idle phase. Guests may use the returned id without signing in.
// @Tags Checkout
// @Produce json
// @Success 201 {object} models.ApiResponse{data=checkout.View}
// @Router /checkout/sessions [post]
func CreateSession(c *gin.Context) {
	s := sessions.Create(middleware.PrincipalFromContext(c))
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Checkout session created", s.Snapshot()))
}
