package product_controller

import (
	"errors"
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddReview godoc
// @Summary Review a product
// @Description Adds a 1-5 rating and recomputes the product's average rating and review count.
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param body body models.AddReviewRequest true "Review"
// @Success 201 {object} models.ApiResponse{data=models.Review}
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Product not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /products/{id}/reviews [post]
func AddReview(c *gin.Context) {
	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse(c, "Invalid review", "rating", "must be between 1 and 5"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	review, err := catalogService.AddReview(ctx, c.Param("id"), middleware.PrincipalFromContext(c), req)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	case err != nil:
		config.Logger.Error("❌ failed to add review", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add review"))
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Review added", review))
}
