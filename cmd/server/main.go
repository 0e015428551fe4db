package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace_api/internal/pkg/config"
	"marketplace_api/internal/pkg/mailer"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
	"marketplace_api/internal/pkg/uploader"
	"marketplace_api/internal/pkg/worker"
	"marketplace_api/internal/pkg/ws"
	"marketplace_api/pkg/database"
	"marketplace_api/pkg/logger"
	"marketplace_api/pkg/metrics"

	// Domain modules register themselves on import.
	_ "marketplace_api/internal/domain/cart"
	_ "marketplace_api/internal/domain/chat"
	_ "marketplace_api/internal/domain/discount"
	_ "marketplace_api/internal/domain/media"
	_ "marketplace_api/internal/domain/notification"
	_ "marketplace_api/internal/domain/order"
	_ "marketplace_api/internal/domain/payment"
	_ "marketplace_api/internal/domain/product"
	_ "marketplace_api/internal/domain/rating"
	_ "marketplace_api/internal/domain/refund"
	_ "marketplace_api/internal/domain/report"
	_ "marketplace_api/internal/domain/shop"
	_ "marketplace_api/internal/domain/user"
	_ "marketplace_api/internal/domain/wishlist"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// @title Marketplace API
// @version 1.0
// @description Multi-tenant marketplace backend: shops, orders, payments, refunds.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()
	logger.Init(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	db := database.InitDatabase()
	rdb := database.InitRedis()

	middleware.Init(db, rdb)
	mailer.Init()
	initUploader()

	hub := ws.NewHub()
	pool := worker.NewPool(8, 256)
	pool.Start()

	gin.SetMode(config.GlobalConfig.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())

	corsConfig := cors.DefaultConfig()
	if site := config.GlobalConfig.App.ClientSite; site != "" {
		corsConfig.AllowOrigins = []string{site}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	limiter := middleware.NewIPRateLimiter(rate.Limit(20), 40)
	router.Use(middleware.RateLimitMiddleware(limiter))

	serverMetrics := metrics.NewServerMetrics("api")
	router.Use(middleware.MetricsMiddleware(serverMetrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	moduleCtx := &registry.ModuleContext{
		DB:     db,
		Redis:  rdb,
		Router: router,
		Hub:    hub,
		Pool:   pool,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("Failed to initialize modules", zap.Error(err))
	}

	server := &http.Server{
		Addr:              ":" + config.GlobalConfig.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
	logger.Log.Info("Server stopped")
}

func initUploader() {
	if config.GlobalConfig.OSS.Endpoint == "" {
		logger.Log.Warn("OSS not configured; media upload disabled")
		return
	}
	u, err := uploader.NewAliyunOSSUploader()
	if err != nil {
		logger.Log.Error("Failed to initialize OSS uploader", zap.Error(err))
		return
	}
	uploader.GlobalUploader = u
}
