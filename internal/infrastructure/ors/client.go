package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"innsight/internal/domain/model"
)

// DefaultProfile 等時圈計算的預設移動方式
const DefaultProfile = "driving-car"

// Client OpenRouteService 等時圈 API 的用戶端
type Client struct {
	baseURL    string
	apiKey     string
	profile    string
	httpClient *http.Client
}

// NewClient 建立 ORS 用戶端。profile 為空時使用 DefaultProfile。
func NewClient(baseURL, apiKey, profile string, timeout time.Duration) *Client {
	if profile == "" {
		profile = DefaultProfile
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		profile:    profile,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchIsochrone 取得以 coord 為中心、minutes 分鐘車程的可達範圍多邊形
// ORS 的 range 參數以秒為單位
func (c *Client) FetchIsochrone(ctx context.Context, coord model.LatLng, minutes int) (orb.Polygon, error) {
	body := isochroneRequest{
		Locations: [][]float64{{coord.Lng, coord.Lat}},
		Range:     []int{minutes * 60},
	}

	fc, err := c.postWithRetry(ctx, body)
	if err != nil {
		return nil, &model.UpstreamError{Service: "ors", Err: err}
	}

	polygon, err := extractPolygon(fc)
	if err != nil {
		return nil, err
	}
	return polygon, nil
}

// postWithRetry 冪等的等時圈請求，失敗時退避後重試一次
func (c *Client) postWithRetry(ctx context.Context, body isochroneRequest) (*geojson.FeatureCollection, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		fc, err := c.post(ctx, body)
		if err == nil {
			return fc, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) post(ctx context.Context, body isochroneRequest) (*geojson.FeatureCollection, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("請求內容序列化失敗: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v2/isochrones/%s", c.baseURL, c.profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("建立請求失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json, application/geo+json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("等時圈請求失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("等時圈服務回傳錯誤狀態: %s", resp.Status)
	}

	var fc geojson.FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("GeoJSON 解析失敗: %w", err)
	}
	return &fc, nil
}

// extractPolygon 從 FeatureCollection 取出第一個多邊形
// 回應中沒有多邊形時視為幾何資料不正確
func extractPolygon(fc *geojson.FeatureCollection) (orb.Polygon, error) {
	for _, feature := range fc.Features {
		switch geom := feature.Geometry.(type) {
		case orb.Polygon:
			return geom, nil
		case orb.MultiPolygon:
			if len(geom) > 0 {
				return geom[0], nil
			}
		}
	}
	return nil, &model.GeometryError{Reason: "回應中沒有多邊形"}
}

// isochroneRequest ORS isochrones API 的請求內容
type isochroneRequest struct {
	Locations [][]float64 `json:"locations"`
	Range     []int       `json:"range"`
}
