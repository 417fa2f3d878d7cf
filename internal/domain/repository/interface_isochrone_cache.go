package repository

import (
	"context"

	"github.com/paulmach/orb"

	"innsight/internal/domain/model"
)

// CacheStats 快取的運作統計
type CacheStats struct {
	Size   int   `json:"size"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// IsochroneCache 等時圈多邊形的快取
// 鍵為（四捨五入後的座標, 等級），條目有固定的存活時間：
// 路網的移動時間變化緩慢，但也不是永久不變
type IsochroneCache interface {
	Get(ctx context.Context, coord model.LatLng, tier model.Tier) (orb.Polygon, bool)
	Set(ctx context.Context, coord model.LatLng, tier model.Tier, polygon orb.Polygon)
	Stats(ctx context.Context) CacheStats
}
