package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	clothingHandler "clothing-combiner/internal/api/handlers/clothing"
	"clothing-combiner/internal/api/handlers/health"
	"clothing-combiner/internal/api/middleware"
	"clothing-combiner/internal/core/clothing"
	"clothing-combiner/internal/core/compose"
	"clothing-combiner/internal/core/fetch"
	"clothing-combiner/internal/infrastructure/config"
	"clothing-combiner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
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
	combineSvc, err := clothing.NewService(
		fetch.NewFetcher(cfg.Fetch),
		compose.NewCompositor(cfg.Compose.MaxPixels),
		cfg.Layout.Preset,
	)
	if err != nil {
		common.LogError("Failed to initialize clothing service", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize clothing service: %w", err)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

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

	// 請求超時
	router.Use(requestTimeout(cfg.Server.RequestTimeout))

	// 健康檢查路由
	router.GET("/", health.Root)
	router.GET("/health", health.HealthCheck(cfg))
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// 合成路由
	handler := clothingHandler.NewHandler(combineSvc)
	combineChain := []gin.HandlerFunc{}
	if cfg.RateLimit.Enabled {
		combineChain = append(combineChain, middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	combineChain = append(combineChain, middleware.Deduplication(cfg.DedupWindow), handler.HandleCombine)

	router.POST("/combine-clothing", combineChain...)
	router.GET("/test-combine", clothingHandler.HandleDescribe(combineSvc.DefaultPreset()))

	common.LogInfo("Router setup completed successfully",
		zap.String("default_preset", combineSvc.DefaultPreset()),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Duration("fetch_timeout", cfg.Fetch.Timeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}

// requestTimeout 設置請求超時，處理器尚未回應時回傳 504
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.NewFailureResponse(common.ErrRequestTimeout))
		}
	}
}
