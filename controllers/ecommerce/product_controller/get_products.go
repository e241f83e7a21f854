package product_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/catalog"
	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProducts godoc
// @Summary List storefront products
// @Description Returns the catalog narrowed by category, a case-insensitive search over name and description, and an inclusive price range. Filters combine with AND and keep catalog order.
// @Tags Products
// @Produce json
// @Param category query string false "Category" Enums(all, gear, trainers, supplements, accessories)
// @Param search query string false "Search text"
// @Param minPrice query int false "Minimum price (KES)"
// @Param maxPrice query int false "Maximum price (KES)"
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Failure 400 {object} models.ApiResponse "Invalid filters"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /products [get]
func GetProducts(c *gin.Context) {
	var q models.ProductQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid filters"))
		return
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MaxPrice < *q.MinPrice {
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse(c, "Invalid filters", "maxPrice", "must be greater than or equal to minPrice"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	products, err := catalogService.Search(ctx, catalog.FromQuery(q))
	if err != nil {
		config.Logger.Error("❌ failed to load products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Products retrieved", products))
}
