package wishlist_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetWishlist godoc
// @Summary Get wishlist
// @Description Returns the products saved by the authenticated user, most recently saved first.
// @Tags Wishlists
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.WishlistResponse}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /wishlists [get]
func GetWishlist(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	products := []models.Product{}
	err := config.DB.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN wishlist_items wi ON wi.product_id = products.id").
		Where("wi.user_id = ?", userID).
		Order("wi.created_at DESC").
		Find(&products).Error
	if err != nil {
		config.Logger.Error("❌ failed to fetch wishlist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch wishlist"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Wishlist retrieved", models.WishlistResponse{
		UserID:   userID,
		Products: products,
	}))
}
