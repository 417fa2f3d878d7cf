package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"innsight/internal/domain/model"
)

// Client Nominatim 地理編碼 API 的用戶端
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// NewClient 建立 Nominatim 用戶端
// Nominatim 的使用規範要求明確的 User-Agent
func NewClient(endpoint, userAgent string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Geocode 地點名稱轉座標。取搜尋結果的第一筆。
// 查無結果回傳 NotFoundError；連線失敗重試一次後回傳 UpstreamError。
func (c *Client) Geocode(ctx context.Context, name string) (*model.ResolvedPOI, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", name)
	reqURL := fmt.Sprintf("%s/search?%s", c.endpoint, params.Encode())

	var items []searchItem
	if err := c.getJSONWithRetry(ctx, reqURL, &items); err != nil {
		return nil, &model.UpstreamError{Service: "nominatim", Err: err}
	}

	for _, item := range items {
		lat, latErr := strconv.ParseFloat(item.Lat, 64)
		lng, lngErr := strconv.ParseFloat(item.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		return &model.ResolvedPOI{
			Name:     name,
			Location: model.LatLng{Lat: lat, Lng: lng},
		}, nil
	}
	return nil, &model.NotFoundError{Name: name}
}

// getJSONWithRetry GET 後解析 JSON。冪等請求，失敗時退避後重試一次。
func (c *Client) getJSONWithRetry(ctx context.Context, reqURL string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if lastErr = c.getJSON(ctx, reqURL, out); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("建立請求失敗: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("地理編碼請求失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("地理編碼服務回傳錯誤狀態: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSON 解析失敗: %w", err)
	}
	return nil
}

// searchItem Nominatim /search 回應的單筆結果
type searchItem struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
