package order_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetOrders godoc
// @Summary Get order history
// @Description Retrieve the authenticated user's orders, newest first, with their items
// @Tags User - Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Success 200 {object} models.ApiResponse{data=[]models.Order,meta=models.Pagination}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /orders [get]
func GetOrders(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	page, limit := parsePagination(c)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	orders, total, err := orderService.ListOrders(ctx, userID, page, limit)
	if err != nil {
		config.Logger.Error("❌ failed to fetch orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders retrieved", orders, models.NewPagination(page, limit, total)))
}
