package ecommerce_routes

import (
	"github.com/fitgear/fitgear-api/controllers/ecommerce/health_controller"
	"github.com/gin-gonic/gin"
)

func SetupHealthRoutes(router *gin.RouterGroup) {
	router.GET("/health", health_controller.Health)
}
