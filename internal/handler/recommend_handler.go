package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"innsight/internal/domain/model"
	"innsight/internal/usecase"
)

// RecommendHandler 住宿推薦 API 的處理器
type RecommendHandler struct {
	recommendUseCase usecase.RecommendUseCase
}

// NewRecommendHandler 建立 RecommendHandler
func NewRecommendHandler(recommendUseCase usecase.RecommendUseCase) *RecommendHandler {
	return &RecommendHandler{recommendUseCase: recommendUseCase}
}

// PostRecommend 查詢句 → 推薦結果
// POST /recommend
func (h *RecommendHandler) PostRecommend(c *gin.Context) {
	var req model.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "請求格式不正確",
			"details": err.Error(),
		})
		return
	}

	response, err := h.recommendUseCase.Recommend(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// writeError 內部錯誤種類 → 對外回應
// 內部的錯誤種類與外部服務的身分不對呼叫端洩漏
func (h *RecommendHandler) writeError(c *gin.Context, err error) {
	var parseErr *model.ParseError
	var notFoundErr *model.NotFoundError
	var upstreamErr *model.UpstreamError

	switch {
	case errors.As(err, &parseErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "無法理解查詢"})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到地點"})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服務暫時無法使用"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "推薦處理失敗"})
	}
}
