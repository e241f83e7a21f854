package filter_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/catalog"
	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var catalogService *services.CatalogService

func Init(catalog *services.CatalogService) {
	catalogService = catalog
}

// GetFilterMetadata godoc
// @Summary Get filter metadata
// @Description Returns product counts per category and the catalog price range for the storefront filters
// @Tags Products
// @Produce json
// @Success 200 {object} models.ApiResponse{data=catalog.FilterMetadata}
// @Failure 500 {object} models.ApiResponse
// @Router /products/filters [get]
func GetFilterMetadata(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	products, err := catalogService.Products(ctx)
	if err != nil {
		config.Logger.Error("❌ failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filter metadata"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", catalog.Summarize(products)))
}
