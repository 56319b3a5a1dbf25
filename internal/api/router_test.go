package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	recipeHandler "recipe-parser/internal/api/handlers/recipe"
	"recipe-parser/internal/core/cache"
	recipeService "recipe-parser/internal/core/recipe"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generated = `Sure! Here are two ideas:

### 1. **Garlic Butter Pasta**
**Cooking Time:** 20 minutes
**Ingredients:**
- 200g spaghetti
- 3 cloves garlic
**Instructions:**
1. Boil the spaghetti.
2. Toss with garlic butter.

### 2. **Tomato Soup**
**Cooking Time:** 35 minutes
**Ingredients:**
- 6 ripe tomatoes
**Instructions:**
1. Simmer the tomatoes.

Enjoy! Feel free to ask for more recipes.`

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Debug: true, Version: "test"},
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Parser: config.ParserConfig{
			NoiseChars:     recipeService.DefaultNoiseChars,
			ClosingPhrases: recipeService.DefaultClosingPhrases,
			ItemMarker:     recipeService.DefaultItemMarker,
			Workers:        2,
			MaxBatch:       5,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Backend: config.CacheBackendMemory,
			MaxSize: 100,
			TTL:     time.Minute,
		},
	}
}

func newServer(t *testing.T, cfg *config.Config) (*resty.Client, cache.Store) {
	t.Helper()
	store, err := cache.NewStore(cfg)
	require.NoError(t, err)

	router, err := SetupRouter(cfg, store)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		if store != nil {
			_ = store.Close()
		}
	})

	return resty.New().SetBaseURL(srv.URL), store
}

func TestRouter_ParseGeneratedText(t *testing.T) {
	client, _ := newServer(t, testConfig())

	var resp recipeHandler.ParseResponse
	res, err := client.R().
		SetBody(recipeHandler.ParseRequest{Text: generated}).
		SetResult(&resp).
		Post("/api/v1/recipe/parse")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())
	assert.NotEmpty(t, res.Header().Get("X-Request-ID"))

	require.Equal(t, 2, resp.Count)
	pasta := resp.Recipes[0]
	assert.Equal(t, "Garlic Butter Pasta", pasta.ID)
	assert.Equal(t, "Garlic Butter Pasta", pasta.Name)
	assert.Equal(t, "20 minutes", pasta.CookingTime)
	assert.Equal(t, "- 200g spaghetti - 3 cloves garlic", pasta.Ingredients)
	assert.Equal(t, "1. Boil the spaghetti. 2. Toss with garlic butter.", pasta.Instructions)
	assert.Equal(t, []string{"200g spaghetti", "3 cloves garlic"}, pasta.IngredientItems)
	assert.Equal(t, []string{"1. Boil the spaghetti.", "2. Toss with garlic butter."}, pasta.InstructionSteps)

	soup := resp.Recipes[1]
	assert.Equal(t, "Tomato Soup", soup.Name)
	assert.Equal(t, "1. Simmer the tomatoes.", soup.Instructions)
}

func TestRouter_NoMarkerReturnsNotice(t *testing.T) {
	client, _ := newServer(t, testConfig())

	var resp recipeHandler.ParseResponse
	res, err := client.R().
		SetBody(recipeHandler.ParseRequest{Text: "I couldn't think of anything with those ingredients."}).
		SetResult(&resp).
		Post("/api/v1/recipe/parse")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())

	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Recipes)
	require.NotNil(t, resp.Notice)
	assert.Equal(t, recipeService.NoticeInfo, resp.Notice.Type)
	assert.Equal(t, "No recipes found in the generated text.", resp.Notice.Message)
}

func TestRouter_EmptyTextIsRejected(t *testing.T) {
	client, _ := newServer(t, testConfig())

	var errResp common.ErrorResponse
	res, err := client.R().
		SetBody(recipeHandler.ParseRequest{Text: ""}).
		SetError(&errResp).
		Post("/api/v1/recipe/parse")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode())
	assert.Equal(t, common.ErrEmptyText.Message, errResp.Message)
}

func TestRouter_ResultsAreCached(t *testing.T) {
	client, store := newServer(t, testConfig())

	for i := 0; i < 2; i++ {
		res, err := client.R().
			SetBody(recipeHandler.ParseRequest{Text: generated}).
			Post("/api/v1/recipe/parse")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode())
	}

	stats := store.(cache.StatsProvider).GetStats()
	assert.Equal(t, int64(1), stats["hits"])
}

func TestRouter_Batch(t *testing.T) {
	client, _ := newServer(t, testConfig())

	var resp recipeHandler.ParseBatchResponse
	res, err := client.R().
		SetBody(recipeHandler.ParseBatchRequest{Texts: []string{generated, "nothing"}}).
		SetResult(&resp).
		Post("/api/v1/recipe/parse/batch")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.Results[0].Count)
	assert.NotNil(t, resp.Results[1].Notice)
}

func TestRouter_Deduplication(t *testing.T) {
	cfg := testConfig()
	cfg.DedupWindow = time.Minute
	client, _ := newServer(t, cfg)

	send := func() int {
		res, err := client.R().
			SetBody(recipeHandler.ParseRequest{Text: generated}).
			Post("/api/v1/recipe/parse")
		require.NoError(t, err)
		return res.StatusCode()
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 1, Window: time.Hour}
	client, _ := newServer(t, cfg)

	res, err := client.R().Get("/live")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())

	res, err = client.R().Get("/live")
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode())
	assert.NotEmpty(t, res.Header().Get("Retry-After"))
}

func TestRouter_HealthWithoutCache(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = false
	client, _ := newServer(t, cfg)

	res, err := client.R().Get("/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.Contains(t, res.String(), `"enabled":false`)

	res, err = client.R().Get("/ready")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())
}

func TestSetupRouter_InvalidParser(t *testing.T) {
	cfg := testConfig()
	cfg.Parser.ItemMarker = "  "

	_, err := SetupRouter(cfg, nil)
	assert.Error(t, err)
}
