package health_controller

import (
	"net/http"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type dependencyStatus struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// Health godoc
// @Summary Liveness and dependency check
// @Description Pings Postgres and Redis. Redis is optional; the service stays healthy without it.
// @Tags Health
// @Produce json
// @Success 200 {object} models.ApiResponse{data=dependencyStatus}
// @Failure 503 {object} models.ApiResponse{data=dependencyStatus}
// @Router /health [get]
func Health(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	status := dependencyStatus{Database: "up", Redis: "disabled"}
	healthy := true

	if config.Pool == nil {
		status.Database = "down"
		healthy = false
	} else if err := config.Pool.Ping(ctx); err != nil {
		config.Logger.Warn("⚠️ database ping failed", zap.Error(err))
		status.Database = "down"
		healthy = false
	}

	if config.RedisClient != nil {
		status.Redis = "up"
		if err := config.RedisClient.Ping(ctx).Err(); err != nil {
			config.Logger.Warn("⚠️ redis ping failed", zap.Error(err))
			status.Redis = "down"
		}
	}

	if !healthy {
		resp := models.ErrorResponse(c, "Service unavailable")
		resp.Data = status
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "OK", status))
}
