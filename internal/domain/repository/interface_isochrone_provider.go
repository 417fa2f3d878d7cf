package repository

import (
	"context"

	"github.com/paulmach/orb"

	"innsight/internal/domain/model"
)

// IsochroneProvider 等時圈計算服務
type IsochroneProvider interface {
	// FetchIsochrone 以 coord 為中心取得 minutes 分鐘車程可達範圍的多邊形
	// 每個等級各呼叫一次
	FetchIsochrone(ctx context.Context, coord model.LatLng, minutes int) (orb.Polygon, error)
}
