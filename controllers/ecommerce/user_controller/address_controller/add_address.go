package address_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddAddress godoc
// @Summary Add new address
// @Description Add a new address for the authenticated user. A user's first address becomes the default.
// @Tags User - Addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param address body models.AddAddressRequest true "Address details"
// @Success 201 {object} models.ApiResponse{data=models.Address} "Address added successfully"
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /users/addresses [post]
func AddAddress(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Street, city, state, postal code and country are required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	address := models.Address{
		UserID:     userID,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}

	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 {
			address.IsDefault = true
		}

		// If this is set as default, unset other defaults first
		if address.IsDefault && existing > 0 {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = ?", userID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		return tx.Create(&address).Error
	})
	if err != nil {
		config.Logger.Error("❌ failed to add address", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add address"))
		return
	}

	config.Logger.Info("✅ address added",
		zap.String("address", address.ID.String()),
		zap.Bool("default", address.IsDefault),
		zap.String("user", userID.String()),
	)

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Address added successfully", address))
}
