package auth_controller

import (
	"errors"
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Login godoc
// @Summary Sign in with email and password
// @Description Verifies the credentials, sets the auth_token cookie and returns the token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse "Invalid credentials"
// @Failure 429 {object} models.ApiResponse "Too many requests"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Email and password are required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := authService.Login(ctx, req)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid credentials"))
		return
	}
	if err != nil {
		config.Logger.Error("❌ login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	resp, err := signIn(c, user, "password")
	if err != nil {
		config.Logger.Error("❌ token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged in", resp))
}
