package recipe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"recipe-parser/internal/core/cache"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service 食譜解析服務，在解析器外加上快取與日誌
type Service struct {
	parser  *Parser
	cache   cache.Store
	workers int
}

// NewService 創建新的食譜解析服務，store 可為 nil
func NewService(cfg *config.Config, store cache.Store) (*Service, error) {
	parser, err := NewParser(Options{
		NoiseChars:     cfg.Parser.NoiseChars,
		ClosingPhrases: cfg.Parser.ClosingPhrases,
		ItemMarker:     cfg.Parser.ItemMarker,
		CanonicalID:    cfg.Parser.CanonicalID,
	})
	if err != nil {
		return nil, err
	}

	workers := cfg.Parser.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Service{
		parser:  parser,
		cache:   store,
		workers: workers,
	}, nil
}

// Parse 解析單一文件，快取失敗不影響結果
func (s *Service) Parse(ctx context.Context, raw string) *Result {
	start := time.Now()
	key := s.getCacheKey(raw)

	if result, ok := s.getFromCache(ctx, key); ok {
		common.LogCacheHit("recipe")
		return result
	}

	result := s.parser.Parse(raw)
	s.setToCache(ctx, key, result)

	common.LogParse(requestIDFrom(ctx), len(raw), len(result.Recipes), string(result.Reason), time.Since(start))
	if result.Empty() {
		common.LogDebug("空結果的原始文字預覽",
			zap.String("preview", common.Preview(raw, 120)),
		)
	}
	return result
}

// ParseBatch 並行解析多份文件，結果順序與輸入一致
func (s *Service) ParseBatch(ctx context.Context, texts []string) ([]*Result, error) {
	results := make([]*Result, len(texts))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = s.Parse(gCtx, text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// getCacheKey 生成緩存鍵，包含解析器設定的指紋
func (s *Service) getCacheKey(raw string) string {
	hash := sha256.Sum256([]byte(raw))
	return s.parser.Fingerprint() + ":" + hex.EncodeToString(hash[:])
}

// getFromCache 從緩存獲取結果
func (s *Service) getFromCache(ctx context.Context, key string) (*Result, bool) {
	if s.cache == nil {
		return nil, false
	}

	val, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			common.LogWarn("讀取快取失敗", zap.Error(err))
		}
		common.LogCacheMiss("recipe")
		return nil, false
	}

	var result Result
	if err := common.ParseJSONStrict(val, &result); err != nil {
		common.LogWarn("快取內容無法解析", zap.Error(err))
		return nil, false
	}
	if result.Recipes == nil {
		result.Recipes = []Recipe{}
	}
	return &result, true
}

// setToCache 將結果存入緩存
func (s *Service) setToCache(ctx context.Context, key string, result *Result) {
	if s.cache == nil {
		return
	}

	val, err := common.ToJSON(result)
	if err != nil {
		common.LogWarn("結果序列化失敗", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, val); err != nil {
		common.LogWarn("寫入快取失敗", zap.Error(err))
	}
}

type requestIDKey struct{}

// WithRequestID 把請求 ID 放進 context 供日誌使用
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
