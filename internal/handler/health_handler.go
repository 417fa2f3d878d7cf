package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"innsight/internal/domain/repository"
)

// healthCheckTimeout 單一外部服務健康檢查的逾時
const healthCheckTimeout = 3 * time.Second

// ServiceHealth 單一外部服務的健康狀態
type ServiceHealth struct {
	Service        string  `json:"service"`
	Healthy        bool    `json:"healthy"`
	ResponseTimeMs float64 `json:"response_time_ms"`
	StatusCode     int     `json:"status_code,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// HealthHandler 健康檢查與快取統計的處理器
type HealthHandler struct {
	targets    map[string]string // 服務名稱 → base URL
	cache      repository.IsochroneCache
	httpClient *http.Client
}

// NewHealthHandler 建立 HealthHandler
func NewHealthHandler(targets map[string]string, cache repository.IsochroneCache) *HealthHandler {
	return &HealthHandler{
		targets:    targets,
		cache:      cache,
		httpClient: &http.Client{Timeout: healthCheckTimeout},
	}
}

// GetHealth 外部服務的健康狀態
// GET /api/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()

	results := make([]ServiceHealth, 0, len(h.targets))
	resultsChan := make(chan ServiceHealth, len(h.targets))
	var wg sync.WaitGroup

	for name, url := range h.targets {
		wg.Add(1)
		go func(name, url string) {
			defer wg.Done()
			resultsChan <- h.checkService(ctx, name, url)
		}(name, url)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	allHealthy := true
	for result := range resultsChan {
		if !result.Healthy {
			allHealthy = false
		}
		results = append(results, result)
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, gin.H{
		"status":   status,
		"service":  "innsight",
		"services": results,
	})
}

// GetCacheStats 等時圈快取的統計
// GET /api/cache/stats
func (h *HealthHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.Stats(c.Request.Context()))
}

// checkService 單一服務的疏通確認
func (h *HealthHandler) checkService(ctx context.Context, name, url string) ServiceHealth {
	start := time.Now()
	result := ServiceHealth{Service: name}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	resp, err := h.httpClient.Do(req)
	result.ResponseTimeMs = float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Healthy = resp.StatusCode < http.StatusInternalServerError
	return result
}
