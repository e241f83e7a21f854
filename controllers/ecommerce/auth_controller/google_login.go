package auth_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

// GoogleLogin godoc
// @Summary Redirect to Google OAuth
// @Description Starts the Google OAuth flow by storing a state token in a cookie and redirecting to Google's consent page.
// @Tags Auth - Google OAuth
// @Produce json
// @Success 307 "Temporary redirect to Google OAuth"
// @Failure 503 {object} models.ApiResponse "Google sign-in not configured"
// @Router /auth/google [get]
func GoogleLogin(c *gin.Context) {
	if config.GoogleOAuthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Google sign-in is not available"))
		return
	}

	state := uuid.New().String()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		oauthStateCookie, // name
		state,            // value
		3600,             // maxAge (1 hour)
		"/",              // path
		"",               // domain
		secureCookies,    // secure
		true,             // httpOnly
	)

	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuthConfig.AuthCodeURL(state))
}
