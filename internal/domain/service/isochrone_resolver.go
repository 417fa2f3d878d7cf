package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/paulmach/orb"
	"golang.org/x/sync/singleflight"

	"innsight/internal/domain/helper"
	"innsight/internal/domain/model"
	"innsight/internal/domain/repository"
)

// IsochroneResolver 指定地點與等級集合的等時圈解決器
type IsochroneResolver interface {
	// Resolve 取得各等級的等時圈。部分等級失敗時仍回傳成功的部分，
	// 所有等級都失敗時回傳 model.UpstreamError。
	Resolve(ctx context.Context, poi model.ResolvedPOI, tiers []model.Tier) (*model.IsochroneSet, error)
}

type isochroneResolver struct {
	provider repository.IsochroneProvider
	cache    repository.IsochroneCache
	group    singleflight.Group
}

// NewIsochroneResolver 建立等時圈解決器
func NewIsochroneResolver(provider repository.IsochroneProvider, cache repository.IsochroneCache) IsochroneResolver {
	return &isochroneResolver{
		provider: provider,
		cache:    cache,
	}
}

// tierResult 個別等級的取得結果
type tierResult struct {
	tier    model.Tier
	polygon orb.Polygon
	err     error
}

func (r *isochroneResolver) Resolve(ctx context.Context, poi model.ResolvedPOI, tiers []model.Tier) (*model.IsochroneSet, error) {
	set := &model.IsochroneSet{
		POI:      poi,
		Polygons: make(map[model.Tier]orb.Polygon),
	}

	// 快取鍵用的座標。近似座標共用同一組等時圈。
	rounded := helper.RoundCoordinate(poi.Location)

	// 先從快取撈，撈不到的等級再發請求
	var missing []model.Tier
	for _, tier := range tiers {
		if !tier.Valid() {
			continue
		}
		if polygon, ok := r.cache.Get(ctx, rounded, tier); ok {
			set.Polygons[tier] = polygon
			continue
		}
		missing = append(missing, tier)
	}

	if len(missing) > 0 {
		r.fetchMissing(ctx, rounded, missing, set)
	}

	if set.Empty() {
		return nil, &model.UpstreamError{
			Service: "isochrone",
			Err:     fmt.Errorf("所有等級 (%v) 的等時圈取得失敗", tiers),
		}
	}

	r.checkNesting(set)
	return set, nil
}

// fetchMissing 快取未命中的等級以並行方式向上游取得（最多三個並行請求）
// 同一鍵的並行請求透過 singleflight 合流，上游只會收到一次呼叫
func (r *isochroneResolver) fetchMissing(ctx context.Context, coord model.LatLng, tiers []model.Tier, set *model.IsochroneSet) {
	resultsChan := make(chan tierResult, len(tiers))
	var wg sync.WaitGroup

	for _, tier := range tiers {
		wg.Add(1)
		go func(t model.Tier) {
			defer wg.Done()
			polygon, err := r.fetchOne(ctx, coord, t)
			resultsChan <- tierResult{tier: t, polygon: polygon, err: err}
		}(tier)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for result := range resultsChan {
		if result.err != nil {
			log.Printf("⚠️ %d分鐘等時圈取得失敗，該等級視為不存在: %v", result.tier.Minutes(), result.err)
			continue
		}
		set.Polygons[result.tier] = result.polygon
	}
}

// fetchOne 單一等級的取得。合流後成功的結果立刻寫入快取。
func (r *isochroneResolver) fetchOne(ctx context.Context, coord model.LatLng, tier model.Tier) (orb.Polygon, error) {
	key := cacheKey(coord, tier)
	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		polygon, err := r.provider.FetchIsochrone(ctx, coord, tier.Minutes())
		if err != nil {
			return nil, err
		}
		if err := helper.ValidatePolygon(polygon); err != nil {
			return nil, err
		}
		r.cache.Set(ctx, coord, tier, polygon)
		return polygon, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(orb.Polygon), nil
}

// checkNesting 等時圈的巢狀關係檢查
// 小等級未被大等級完全包含是已知的上游不一致，只記錄不修正：
// 擅自改寫多邊形會扭曲真實的移動時間
func (r *isochroneResolver) checkNesting(set *model.IsochroneSet) {
	tiers := set.AvailableTiers()
	for i := 0; i < len(tiers)-1; i++ {
		inner, _ := set.Get(tiers[i])
		outer, _ := set.Get(tiers[i+1])
		if !helper.PolygonCoveredBy(inner, outer) {
			log.Printf("⚠️ %d分鐘等時圈未完全包含於%d分鐘等時圈內，各等級仍以自身幾何判定",
				tiers[i].Minutes(), tiers[i+1].Minutes())
		}
	}
}

// cacheKey 合流與快取共用的鍵
func cacheKey(coord model.LatLng, tier model.Tier) string {
	return fmt.Sprintf("%.4f,%.4f:%d", coord.Lat, coord.Lng, tier.Minutes())
}
