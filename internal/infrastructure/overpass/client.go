package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"innsight/internal/domain/model"
)

// accommodationTypes Overpass 查詢對象的 tourism 標籤值
const accommodationTypes = "hotel|guest_house|hostel|motel|apartment|camp_site|caravan_site"

// Client Overpass API（OSM 資料查詢）的用戶端
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeoutSec int
}

// NewClient 建立 Overpass 用戶端
// timeout 同時作為 HTTP 逾時與 Overpass 查詢語句內的 [timeout:...]
func NewClient(endpoint string, timeout time.Duration) *Client {
	sec := int(timeout.Seconds())
	if sec <= 0 {
		sec = 25
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout + 5*time.Second},
		timeoutSec: sec,
	}
}

// FindInRegion 外接矩形內的住宿候選
// 範圍由最大的可用等時圈推導，避免對 Overpass 發出過大的查詢
func (c *Client) FindInRegion(ctx context.Context, bound orb.Bound) ([]model.AccommodationCandidate, error) {
	query := c.buildQuery(bound)

	elements, err := c.fetchWithRetry(ctx, query)
	if err != nil {
		return nil, &model.UpstreamError{Service: "overpass", Err: err}
	}

	candidates := make([]model.AccommodationCandidate, 0, len(elements))
	for _, el := range elements {
		lat, lng, ok := el.coordinate()
		if !ok {
			continue
		}
		candidates = append(candidates, model.AccommodationCandidate{
			ID:        strconv.FormatInt(el.ID, 10),
			OSMType:   el.Type,
			Name:      el.Tags["name"],
			Location:  model.LatLng{Lat: lat, Lng: lng},
			Tourism:   el.Tags["tourism"],
			Amenities: amenitiesFromTags(el.Tags),
			Tags:      el.Tags,
		})
	}
	return candidates, nil
}

// buildQuery 外接矩形的 Overpass QL 查詢語句
// bbox 的順序為 (南, 西, 北, 東)
func (c *Client) buildQuery(bound orb.Bound) string {
	return fmt.Sprintf(`[out:json][timeout:%d];
nwr(%f,%f,%f,%f)[tourism~"%s"];
out center;`,
		c.timeoutSec,
		bound.Min.Lat(), bound.Min.Lon(), bound.Max.Lat(), bound.Max.Lon(),
		accommodationTypes,
	)
}

// fetchWithRetry 冪等查詢，失敗時退避後重試一次
func (c *Client) fetchWithRetry(ctx context.Context, query string) ([]element, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		elements, err := c.fetch(ctx, query)
		if err == nil {
			return elements, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, query string) ([]element, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("建立請求失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OSM 資料請求失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OSM 資料服務回傳錯誤狀態: %s", resp.Status)
	}

	var body overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("JSON 解析失敗: %w", err)
	}
	return body.Elements, nil
}

// amenitiesFromTags OSM 標籤 → 篩選條件的對照
// 同一條件對應多個慣用標籤寫法
func amenitiesFromTags(tags map[string]string) []model.FilterFlag {
	amenities := []model.FilterFlag{}
	if isYes(tags["parking"]) || tags["amenity"] == "parking" {
		amenities = append(amenities, model.FilterParking)
	}
	if isYes(tags["wheelchair"]) {
		amenities = append(amenities, model.FilterWheelchair)
	}
	if isYes(tags["kids"]) || isYes(tags["kids_area"]) || isYes(tags["children"]) {
		amenities = append(amenities, model.FilterKids)
	}
	if isYes(tags["pet"]) || isYes(tags["pets_allowed"]) || isYes(tags["dog"]) {
		amenities = append(amenities, model.FilterPet)
	}
	return amenities
}

func isYes(value string) bool {
	return value == "yes"
}

// --- Overpass API 回應的解析用結構 ---

type overpassResponse struct {
	Elements []element `json:"elements"`
}

type element struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *center           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// coordinate node 直接帶座標，way/relation 用 center
func (e *element) coordinate() (lat, lng float64, ok bool) {
	if e.Lat != 0 || e.Lon != 0 {
		return e.Lat, e.Lon, true
	}
	if e.Center != nil && (e.Center.Lat != 0 || e.Center.Lon != 0) {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}
