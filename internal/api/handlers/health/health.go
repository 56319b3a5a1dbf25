package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"recipe-parser/internal/core/cache"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// context 中注入的鍵
const (
	ConfigKey = "config"
	CacheKey  = "cache_store"
)

// readyTimeout 就緒檢查連線後端的時限
const readyTimeout = 2 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     *CacheStatus           `json:"cache,omitempty"`
}

// CacheStatus 快取狀態
type CacheStatus struct {
	Enabled bool                   `json:"enabled"`
	Backend string                 `json:"backend,omitempty"`
	Stats   map[string]interface{} `json:"stats,omitempty"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, ok := configFrom(c)
	if !ok {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, common.ErrInternalError.Response(false))
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Cache: &CacheStatus{Enabled: cfg.Cache.Enabled},
	}

	if store := storeFrom(c); store != nil {
		response.Cache.Backend = cfg.Cache.Backend
		if sp, ok := store.(cache.StatsProvider); ok {
			response.Cache.Stats = sp.GetStats()
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，快取後端無法連線時回傳 503
func ReadinessCheck(c *gin.Context) {
	if store := storeFrom(c); store != nil {
		if p, ok := store.(cache.Pinger); ok {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				common.LogWarn("Cache backend not ready", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not_ready",
					"code":   common.ErrCodeServiceUnavailable,
				})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func configFrom(c *gin.Context) (*config.Config, bool) {
	v, exists := c.Get(ConfigKey)
	if !exists {
		return nil, false
	}
	cfg, ok := v.(*config.Config)
	return cfg, ok && cfg != nil
}

func storeFrom(c *gin.Context) cache.Store {
	v, exists := c.Get(CacheKey)
	if !exists {
		return nil
	}
	store, _ := v.(cache.Store)
	return store
}
