package ecommerce_routes

import (
	"time"

	"github.com/fitgear/fitgear-api/controllers/ecommerce/auth_controller"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up all authentication routes
func SetupAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		// Register and login share one budget per client IP
		credentials := auth.Group("")
		credentials.Use(middleware.RateLimiter("auth", 10, time.Minute))
		credentials.POST("/register", auth_controller.Register)
		credentials.POST("/login", auth_controller.Login)

		// Google OAuth routes
		auth.GET("/google", auth_controller.GoogleLogin)
		auth.GET("/google/callback", auth_controller.GoogleCallback)

		auth.POST("/logout", auth_controller.Logout)
	}
}
