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

// Register godoc
// @Summary Register a customer
// @Description Creates a password account, sends a welcome email and signs the customer in.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Registration details"
// @Success 201 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse "Invalid input"
// @Failure 409 {object} models.ApiResponse "Email already registered"
// @Failure 429 {object} models.ApiResponse "Too many requests"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var req models.RegisterRequest
	bindErr := c.ShouldBindJSON(&req)
	if field, msg, ok := services.ValidateRegistration(req); !ok {
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse(c, msg, field, msg))
		return
	}
	if bindErr != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := authService.Register(ctx, req)
	if errors.Is(err, services.ErrEmailTaken) {
		c.JSON(http.StatusConflict, models.FieldErrorResponse(c, "Email already registered", "email", err.Error()))
		return
	}
	if err != nil {
		config.Logger.Error("❌ registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create account"))
		return
	}

	resp, err := signIn(c, user, "password")
	if err != nil {
		config.Logger.Error("❌ token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate token"))
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Account created", resp))
}
