package auth_controller

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/services"
	"github.com/fitgear/fitgear-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	authService   *services.AuthService
	secureCookies bool
)

// Init wires the controller to its service. Called once from main.
func Init(auth *services.AuthService, production bool) {
	authService = auth
	secureCookies = production
}

func setAuthCookie(c *gin.Context, token string) {
	maxAge := 24 * 60 * 60
	if svc := services.GetJWTService(); svc != nil {
		maxAge = int(svc.Expiry().Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AuthCookie,
		token,
		maxAge,
		"/",
		"",
		secureCookies,
		true, // httpOnly
	)
}

// signIn issues a token for user, sets the auth cookie and records the login.
func signIn(c *gin.Context, user *models.User, method string) (models.AuthResponse, error) {
	svc := services.GetJWTService()
	if svc == nil {
		return models.AuthResponse{}, fmt.Errorf("jwt service not initialised")
	}
	token, err := svc.Generate(user)
	if err != nil {
		return models.AuthResponse{}, err
	}

	setAuthCookie(c, token)
	utils.LogLoginEvent(c, user.ID, method)
	config.Logger.Info("✅ login successful", zap.String("user", user.ID.String()), zap.String("method", method))

	return models.AuthResponse{User: user.ToResponse(), Token: token}, nil
}

func redirectToFrontendWithError(c *gin.Context, errorMsg string) {
	redirectURL := fmt.Sprintf("%s/auth/error?message=%s", config.FrontendURL, url.QueryEscape(errorMsg))
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
