package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"recipe-parser/internal/pkg/common"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// 快取後端
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Parser      ParserConfig    `mapstructure:"parser"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window" validate:"min=0"`
	LogLevel    string          `mapstructure:"log_level" validate:"oneof=debug info warn error fatal"`
	LogDir      string          `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env" validate:"required"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"` // 單一請求的處理時限
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
}

// ParserConfig 解析器設定
type ParserConfig struct {
	NoiseChars     string   `mapstructure:"noise_chars"`
	ClosingPhrases []string `mapstructure:"closing_phrases"`
	ItemMarker     string   `mapstructure:"item_marker" validate:"required"`
	CanonicalID    bool     `mapstructure:"canonical_id"`
	Workers        int      `mapstructure:"workers" validate:"min=1"`
	MaxBatch       int      `mapstructure:"max_batch" validate:"min=1"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend" validate:"omitempty,oneof=memory redis"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db" validate:"min=0"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定，.env 須由呼叫端先以 godotenv 載入
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_dir", "LOG_DIR")
	_ = v.BindEnv("dedup_window", "DEDUP_WINDOW")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("cache.enabled", "CACHE_ENABLED")
	_ = v.BindEnv("cache.backend", "CACHE_BACKEND")
	_ = v.BindEnv("cache.redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("cache.redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	_ = v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	_ = v.BindEnv("parser.noise_chars", "PARSER_NOISE_CHARS")
	_ = v.BindEnv("parser.closing_phrases", "PARSER_CLOSING_PHRASES")
	_ = v.BindEnv("parser.item_marker", "PARSER_ITEM_MARKER")
	_ = v.BindEnv("parser.canonical_id", "PARSER_CANONICAL_ID")

	// 設定設定檔名稱和路徑
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskSecret 遮罩密碼，只顯示前後各 2 個字符
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + "..." + secret[len(secret)-2:]
}

// Masked 回傳可安全寫入日誌的副本
func (c Config) Masked() Config {
	c.Cache.RedisPassword = maskSecret(c.Cache.RedisPassword)
	return c
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-parser")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "10s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// 解析器設定
	v.SetDefault("parser.noise_chars", "*")
	v.SetDefault("parser.closing_phrases", []string{`Enjoy!`, `Feel free[^.]*\.`})
	v.SetDefault("parser.item_marker", "###")
	v.SetDefault("parser.canonical_id", false)
	v.SetDefault("parser.workers", 4)
	v.SetDefault("parser.max_batch", 20)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	config.LogLevel = strings.ToLower(config.LogLevel)
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.TTL <= 0 {
			return common.NewValidationError("invalid cache ttl")
		}
		switch config.Cache.Backend {
		case CacheBackendRedis:
			if config.Cache.RedisAddr == "" {
				return common.NewValidationError("redis address is required")
			}
		default:
			if config.Cache.MaxSize <= 0 {
				return common.NewValidationError("invalid cache max size")
			}
			if config.Cache.CleanupInterval <= 0 {
				return common.NewValidationError("invalid cache cleanup interval")
			}
		}
	}

	// 驗證限流設定
	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return common.NewValidationError("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return common.NewValidationError("invalid rate limit window")
		}
	}

	// 驗證結語樣式
	for _, p := range config.Parser.ClosingPhrases {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid closing phrase %q: %w", p, err)
		}
	}

	return nil
}
