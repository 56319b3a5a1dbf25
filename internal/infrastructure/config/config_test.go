package config

import (
	"testing"
	"time"

	"recipe-parser/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "*", cfg.Parser.NoiseChars)
	assert.Equal(t, []string{`Enjoy!`, `Feel free[^.]*\.`}, cfg.Parser.ClosingPhrases)
	assert.Equal(t, "###", cfg.Parser.ItemMarker)
	assert.False(t, cfg.Parser.CanonicalID)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PARSER_ITEM_MARKER", "##")
	t.Setenv("PARSER_CANONICAL_ID", "true")
	t.Setenv("PARSER_CLOSING_PHRASES", "Bon appetit!,Happy cooking!")
	t.Setenv("APP_PARSER_WORKERS", "8")
	t.Setenv("CACHE_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "##", cfg.Parser.ItemMarker)
	assert.True(t, cfg.Parser.CanonicalID)
	assert.Equal(t, []string{"Bon appetit!", "Happy cooking!"}, cfg.Parser.ClosingPhrases)
	assert.Equal(t, 8, cfg.Parser.Workers)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"Bad port", map[string]string{"PORT": "70000"}},
		{"Bad log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"Bad backend", map[string]string{"CACHE_BACKEND": "memcached"}},
		{"Bad closing phrase", map[string]string{"PARSER_CLOSING_PHRASES": "(unclosed"}},
		{"Zero workers", map[string]string{"APP_PARSER_WORKERS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfig_Masked(t *testing.T) {
	cfg := Config{Cache: CacheConfig{RedisPassword: "supersecret"}}
	assert.Equal(t, "su...et", cfg.Masked().Cache.RedisPassword)
	assert.Equal(t, "supersecret", cfg.Cache.RedisPassword)
}

func TestLoadConfig_CrossChecksAreValidationErrors(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}
