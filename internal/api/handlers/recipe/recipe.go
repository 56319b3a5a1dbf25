package recipe

import (
	"errors"
	"net/http"
	"strings"

	recipeService "recipe-parser/internal/core/recipe"
	"recipe-parser/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ParseRequest 單一文件解析請求
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseBatchRequest 批次解析請求
type ParseBatchRequest struct {
	Texts []string `json:"texts" binding:"required,min=1"`
}

// RecipeResponse 食譜與前端清單渲染用的拆分結果
type RecipeResponse struct {
	recipeService.Recipe
	IngredientItems  []string `json:"ingredientItems"`
	InstructionSteps []string `json:"instructionSteps"`
}

// ParseResponse 解析結果，沒有食譜時附上提示
type ParseResponse struct {
	Recipes []RecipeResponse      `json:"recipes"`
	Count   int                   `json:"count"`
	Reason  recipeService.Reason  `json:"reason,omitempty"`
	Notice  *recipeService.Notice `json:"notice,omitempty"`
}

// ParseBatchResponse 批次解析結果，順序與請求一致
type ParseBatchResponse struct {
	Results []ParseResponse `json:"results"`
}

// Handler 食譜解析處理程序
type Handler struct {
	service  *recipeService.Service
	maxBatch int
	debug    bool
}

// NewHandler 創建新的食譜解析處理程序
func NewHandler(service *recipeService.Service, maxBatch int, debug bool) *Handler {
	return &Handler{
		service:  service,
		maxBatch: maxBatch,
		debug:    debug,
	}
}

// HandleParse 解析單一份生成文字
func (h *Handler) HandleParse(c *gin.Context) {
	requestID := requestIDOf(c)

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, requestID, bindError(err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.respondError(c, requestID, common.ErrEmptyText)
		return
	}

	ctx := recipeService.WithRequestID(c.Request.Context(), requestID)
	result := h.service.Parse(ctx, req.Text)

	c.JSON(http.StatusOK, toResponse(result))
}

// HandleParseBatch 批次解析多份生成文字
func (h *Handler) HandleParseBatch(c *gin.Context) {
	requestID := requestIDOf(c)

	var req ParseBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, requestID, bindError(err))
		return
	}
	if h.maxBatch > 0 && len(req.Texts) > h.maxBatch {
		h.respondError(c, requestID, common.ErrBatchTooLarge)
		return
	}
	for _, text := range req.Texts {
		if strings.TrimSpace(text) == "" {
			h.respondError(c, requestID, common.ErrEmptyText)
			return
		}
	}

	ctx := recipeService.WithRequestID(c.Request.Context(), requestID)
	results, err := h.service.ParseBatch(ctx, req.Texts)
	if err != nil {
		h.respondError(c, requestID, common.ErrGatewayTimeout.WithCause(err))
		return
	}

	resp := ParseBatchResponse{Results: make([]ParseResponse, len(results))}
	for i, result := range results {
		resp.Results[i] = toResponse(result)
	}
	c.JSON(http.StatusOK, resp)
}

// respondError 寫入錯誤響應
func (h *Handler) respondError(c *gin.Context, requestID string, err error) {
	ce := common.AsCustomError(err)
	if ce.Status >= http.StatusInternalServerError {
		common.LogError("食譜解析失敗", zap.Error(err), zap.String("request_id", requestID))
	} else {
		common.LogWarn("請求無效", zap.Error(err), zap.String("request_id", requestID))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(h.debug))
}

func toResponse(result *recipeService.Result) ParseResponse {
	resp := ParseResponse{
		Recipes: make([]RecipeResponse, len(result.Recipes)),
		Count:   len(result.Recipes),
		Reason:  result.Reason,
		Notice:  result.Notice(),
	}
	for i, r := range result.Recipes {
		resp.Recipes[i] = RecipeResponse{
			Recipe:           r,
			IngredientItems:  r.IngredientItems(),
			InstructionSteps: r.InstructionSteps(),
		}
	}
	return resp
}

// bindError 把請求體讀取或格式錯誤對應到 API 錯誤
func bindError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return common.ErrRequestTooLarge.WithCause(err)
	}
	return common.ErrInvalidRequest.WithCause(err)
}

func requestIDOf(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	id := common.GenerateUUID()
	c.Header("X-Request-ID", id)
	return id
}
