package auth_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
)

// Logout godoc
// @Summary Logout user
// @Description Clears the auth_token cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse "Logged out"
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetCookie(
		middleware.AuthCookie,
		"",
		-1, // MaxAge < 0 -> delete
		"/",
		"",
		secureCookies,
		true,
	)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged out", nil))
}
