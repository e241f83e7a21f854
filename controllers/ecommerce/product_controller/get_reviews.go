package product_controller

import (
	"errors"
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetReviews godoc
// @Summary List product reviews
// @Description Newest first.
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=[]models.Review}
// @Failure 404 {object} models.ApiResponse "Product not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /products/{id}/reviews [get]
func GetReviews(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	reviews, err := catalogService.Reviews(ctx, c.Param("id"))
	if errors.Is(err, services.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}
	if err != nil {
		config.Logger.Error("❌ failed to load reviews", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch reviews"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Reviews retrieved", reviews))
}
