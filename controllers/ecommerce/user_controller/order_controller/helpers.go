package order_controller

import (
	"strconv"

	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-gonic/gin"
)

var orderService *services.OrderService

// Init wires the order handlers to the order service.
func Init(orders *services.OrderService) {
	orderService = orders
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	return page, limit
}
