// @title FitGear API
// @version 1.0
// @description FitGear storefront API: catalog, cart, checkout and orders
// @host localhost:8081
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitgear/fitgear-api/cache"
	"github.com/fitgear/fitgear-api/checkout"
	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/controllers/ecommerce/auth_controller"
	"github.com/fitgear/fitgear-api/controllers/ecommerce/checkout_controller"
	"github.com/fitgear/fitgear-api/controllers/ecommerce/filter_controller"
	"github.com/fitgear/fitgear-api/controllers/ecommerce/product_controller"
	"github.com/fitgear/fitgear-api/controllers/ecommerce/user_controller/order_controller"
	_ "github.com/fitgear/fitgear-api/docs"
	"github.com/fitgear/fitgear-api/events"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/payment"
	"github.com/fitgear/fitgear-api/routes/ecommerce_routes"
	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ invalid configuration: %v", err)
	}

	logger, err := config.InitLogger(cfg.Env)
	if err != nil {
		log.Fatalf("❌ failed to initialise logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Connect to DB
	if err := config.InitDB(cfg); err != nil {
		logger.Fatal("❌ database unavailable", zap.Error(err))
	}
	defer config.CloseDB()
	if err := config.Migrate(); err != nil {
		logger.Fatal("❌ migration failed", zap.Error(err))
	}

	// Redis is optional: without it the cart store and rate limiter are disabled
	if err := config.ConnectRedis(cfg.RedisURL); err != nil {
		logger.Warn("⚠️ continuing without Redis", zap.Error(err))
		config.CloseRedis()
		config.RedisClient = nil
	}
	defer config.CloseRedis()

	// ✅ Initialize JWT Service
	if err := services.InitJWTService(cfg.JWTSecret, cfg.JWTExpiry); err != nil {
		logger.Fatal("❌ failed to initialise JWT service", zap.Error(err))
	}
	logger.Info("✅ JWT service initialised")

	// ✅ Initialize Google OAuth
	config.InitGoogleOAuth(cfg)

	var mailer services.Mailer = services.LogMailer{Logger: logger}
	if cfg.ResendAPIKey != "" {
		mailer = services.NewResendClient(cfg.ResendAPIKey, cfg.ResendFromEmail, logger)
		logger.Info("✅ Resend mailer enabled")
	} else {
		logger.Warn("⚠️ RESEND_API_KEY not set, emails will only be logged")
	}

	var publisher services.OrderEventPublisher = events.NoopPublisher{Logger: logger}
	if cfg.RabbitMQURL != "" {
		pool, err := events.NewChannelPool(cfg.RabbitMQURL, cfg.OrdersQueue, 4, logger)
		if err != nil {
			logger.Warn("⚠️ order events disabled", zap.Error(err))
		} else {
			defer pool.Close()
			publisher = events.NewPublisher(pool, cfg.OrdersQueue, logger)
		}
	}

	catalogService := services.NewCatalogService(config.DB, logger)
	orderService := services.NewOrderService(config.DB, catalogService, mailer, publisher, logger)
	authService := services.NewAuthService(config.DB, mailer)

	var cartStore checkout.CartStore
	if config.RedisClient != nil {
		cartStore = cache.NewRedisCartStore(config.RedisClient, cfg.CartSnapshotTTL)
	}
	manager := checkout.NewManager(checkout.Config{
		Gateways: payment.NewRegistry(
			payment.NewMobileMoneySimulator(cfg.PaymentDelay),
			payment.NewCardSimulator(cfg.PaymentDelay),
		),
		Recorder: orderService,
		Logger:   logger,
	}, cartStore, cfg.SessionTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go manager.Run(ctx)

	auth_controller.Init(authService, cfg.IsProduction())
	product_controller.Init(catalogService)
	filter_controller.Init(catalogService)
	order_controller.Init(orderService)
	checkout_controller.Init(manager, catalogService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ✅ Configure CORS for the storefront, including PDF downloads
	corsCfg := cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "x-auth-token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length", "Retry-After"},
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), cors.New(corsCfg))

	api := router.Group("/api")
	ecommerce_routes.SetupHealthRoutes(api)
	ecommerce_routes.SetupAuthRoutes(api)
	ecommerce_routes.SetupProductRoutes(api)
	ecommerce_routes.SetupUserRoutes(api)
	ecommerce_routes.SetupCheckoutRoutes(api)

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("🚀 server is running", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("❌ server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("🛑 shutting down")

	shutdownCtx, cancel := config.WithCustomTimeout(15 * time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ graceful shutdown failed", zap.Error(err))
	}
}
