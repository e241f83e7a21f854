package order_controller

import (
	"fmt"
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DownloadReceipt godoc
// @Summary Download order receipt
// @Description Renders the order receipt as a PDF
// @Tags User - Orders
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {file} binary
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /orders/{id}/receipt [get]
func DownloadReceipt(c *gin.Context) {
	order, ok := loadOwnOrder(c)
	if !ok {
		return
	}

	pdf, err := services.GenerateOrderReceiptPDF(order)
	if err != nil {
		config.Logger.Error("❌ failed to render receipt", zap.String("order", order.OrderNumber), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to render receipt"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, order.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
