package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-parser/internal/pkg/common"
)

// requestCache 最近請求的指紋與時間
type requestCache struct {
	sync.Mutex
	requests map[string]time.Time
	window   time.Duration
}

// sweep 刪除超過 10 倍窗口的舊指紋
func (rc *requestCache) sweep(now time.Time) {
	rc.Lock()
	defer rc.Unlock()
	for k, t := range rc.requests {
		if now.Sub(t) > 10*rc.window {
			delete(rc.requests, k)
		}
	}
}

// seen 記錄指紋，窗口內重複時回傳 true
func (rc *requestCache) seen(fingerprint string, now time.Time) bool {
	rc.Lock()
	defer rc.Unlock()
	if last, exists := rc.requests[fingerprint]; exists && now.Sub(last) <= rc.window {
		return true
	}
	rc.requests[fingerprint] = now
	return false
}

// Deduplication 請求去重中間件，同樣的 POST 在 window 內只處理一次
func Deduplication(window time.Duration) gin.HandlerFunc {
	cache := &requestCache{
		requests: make(map[string]time.Time),
		window:   window,
	}

	// 定期清理
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			cache.sweep(now)
		}
	}()

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogWarn("Failed to read request body", zap.Error(err))
				c.AbortWithStatusJSON(common.ErrRequestTooLarge.Status, common.ErrRequestTooLarge.Response(false))
				return
			}

			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		// 生成請求指紋
		fingerprint := c.Request.Method + ":" + c.Request.URL.Path + ":" + c.ClientIP() + ":" + bodyHash

		if cache.seen(fingerprint, time.Now()) {
			c.AbortWithStatusJSON(common.ErrDuplicate.Status, common.ErrDuplicate.Response(false))
			return
		}

		c.Next()
	}
}
