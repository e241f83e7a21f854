package order_controller

import (
	"errors"
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/payment"
	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateOrder godoc
// @Summary Create new order
// @Description Prices the items from the catalog, stores the order and emails a confirmation with the PDF receipt. A totalAmount that disagrees with the catalog is rejected.
// @Tags User - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body models.CreateOrderRequest true "Order details"
// @Success 201 {object} models.ApiResponse{data=models.Order} "Order created successfully"
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /orders [post]
func CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Items, shipping address and payment method are required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := orderService.CreateOrder(ctx, middleware.PrincipalFromContext(c), req)
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	case errors.Is(err, services.ErrTotalMismatch):
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse(c, "Order total does not match", "totalAmount", err.Error()))
		return
	case errors.Is(err, services.ErrUnknownItem):
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse(c, "Order contains an unknown product", "items", err.Error()))
		return
	case errors.Is(err, payment.ErrUnsupportedMethod):
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse(c, "Unsupported payment method", "paymentMethod", err.Error()))
		return
	case err != nil:
		config.Logger.Error("❌ failed to create order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create order"))
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order created successfully", order))
}
