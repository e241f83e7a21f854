// ════════════════════════════════════════════════════════════
// Path: controllers/ecommerce/auth_controller/google_callback.go
// Google OAuth Callback Handler
// ════════════════════════════════════════════════════════════

package auth_controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Verifies the state token, exchanges the code, creates or links the account, sets the auth cookie and redirects back to the storefront.
// @Tags Auth - Google OAuth
// @Produce json
// @Success 307 "Redirect to frontend after successful login"
// @Router /auth/google/callback [get]
func GoogleCallback(c *gin.Context) {
	if config.GoogleOAuthConfig == nil {
		redirectToFrontendWithError(c, "Google sign-in is not available")
		return
	}

	state := c.Query("state")
	savedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != savedState {
		config.Logger.Warn("❌ OAuth state mismatch")
		redirectToFrontendWithError(c, "Invalid state token")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", secureCookies, true)

	code := c.Query("code")
	if code == "" {
		redirectToFrontendWithError(c, "No authorization code")
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	token, err := config.GoogleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		config.Logger.Warn("❌ OAuth exchange failed", zap.Error(err))
		redirectToFrontendWithError(c, "Failed to exchange token")
		return
	}

	resp, err := config.GoogleOAuthConfig.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		config.Logger.Warn("❌ failed to get Google user info", zap.Error(err))
		redirectToFrontendWithError(c, "Failed to get user info")
		return
	}
	defer resp.Body.Close()

	var googleUser models.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		redirectToFrontendWithError(c, "Failed to decode user info")
		return
	}

	user, created, err := authService.UpsertGoogleUser(ctx, googleUser)
	if err != nil {
		config.Logger.Error("❌ Google account upsert failed", zap.Error(err))
		redirectToFrontendWithError(c, "Could not sign in with Google")
		return
	}

	if _, err := signIn(c, user, "google"); err != nil {
		redirectToFrontendWithError(c, "Failed to generate token")
		return
	}

	config.Logger.Info("✅ Google login", zap.String("email", user.Email), zap.Bool("newAccount", created))
	c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s/auth-popup", config.FrontendURL))
}
