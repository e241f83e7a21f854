// ════════════════════════════════════════════════════════════
// Path: controllers/ecommerce/user_controller/profile_controller/update_profile.go
// Update authenticated user's profile
// ════════════════════════════════════════════════════════════

package profile_controller

import (
	"net/http"
	"strings"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpdateProfile godoc
// @Summary Update user profile
// @Description Update authenticated user's profile (name, email, phone)
// @Tags User - Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateUserRequest true "Update request"
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Email already in use"
// @Router /users/profile [put]
func UpdateProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var user models.User
	if err := config.DB.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "User not found"))
		return
	}

	// Build update map with only provided fields
	updates := make(map[string]any)

	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}

	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			var taken int64
			if err := config.DB.WithContext(ctx).
				Model(&models.User{}).
				Where("email = ? AND id <> ?", email, userID).
				Count(&taken).Error; err != nil {
				config.Logger.Error("❌ failed to check email", zap.Error(err))
				c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update profile"))
				return
			}
			if taken > 0 {
				c.JSON(http.StatusConflict, models.FieldErrorResponse(c, "Email already in use", "email", "belongs to another account"))
				return
			}
			updates["email"] = email
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "No fields to update"))
		return
	}

	if err := config.DB.WithContext(ctx).
		Model(&user).
		Updates(updates).Error; err != nil {
		config.Logger.Error("❌ failed to update profile", zap.String("user", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update profile"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profile updated", user.ToResponse()))
}
