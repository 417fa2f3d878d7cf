package repository

import (
	"context"

	"innsight/internal/domain/model"
)

// GeocodingProvider 地點名稱 → 座標的地理編碼服務
type GeocodingProvider interface {
	// Geocode 解析地點名稱。查無結果時回傳 model.NotFoundError，
	// 服務無法連線時回傳 model.UpstreamError。
	Geocode(ctx context.Context, name string) (*model.ResolvedPOI, error)
}
