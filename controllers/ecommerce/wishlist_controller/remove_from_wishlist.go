package wishlist_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RemoveFromWishlist godoc
// @Summary Remove a saved product
// @Description Removing a product that is not saved succeeds as long as the user has a wishlist.
// @Tags Wishlists
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} models.ApiResponse "Product removed"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Wishlist not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /wishlists/{productId} [delete]
func RemoveFromWishlist(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}
	productID := c.Param("productId")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var saved int64
	if err := config.DB.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Count(&saved).Error; err != nil {
		config.Logger.Error("❌ failed to count wishlist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update wishlist"))
		return
	}
	if saved == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Wishlist not found"))
		return
	}

	if err := config.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error; err != nil {
		config.Logger.Error("❌ failed to remove wishlist item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update wishlist"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product removed", nil))
}
