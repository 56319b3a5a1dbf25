package api

import (
	"fmt"
	"time"

	"recipe-parser/internal/api/handlers/health"
	recipeHandler "recipe-parser/internal/api/handlers/recipe"
	"recipe-parser/internal/api/middleware"
	"recipe-parser/internal/core/cache"
	recipeService "recipe-parser/internal/core/recipe"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由，store 為 nil 時不使用快取
func SetupRouter(cfg *config.Config, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化服務
	svc, err := recipeService.NewService(cfg, store)
	if err != nil {
		common.LogError("Failed to initialize recipe service", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize recipe service: %w", err)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	router.Use(middleware.Inject(map[string]interface{}{
		health.ConfigKey: cfg,
		health.CacheKey:  store,
	}))

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := recipeHandler.NewHandler(svc, cfg.Parser.MaxBatch, cfg.App.Debug)

		recipeGroup := api.Group("/recipe")
		if cfg.DedupWindow > 0 {
			recipeGroup.Use(middleware.Deduplication(cfg.DedupWindow))
		}
		{
			// 解析單一份生成文字
			recipeGroup.POST("/parse", handler.HandleParse)

			// 批次解析
			recipeGroup.POST("/parse/batch", handler.HandleParseBatch)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", store != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
