package usecase

import (
	"context"
	"fmt"
	"log"

	"innsight/internal/config"
	"innsight/internal/domain/helper"
	"innsight/internal/domain/model"
	"innsight/internal/domain/parser"
	"innsight/internal/domain/repository"
	"innsight/internal/domain/service"
)

// RecommendUseCase 查詢句 → 推薦結果的管線
// 各階段嚴格依序執行：解析 → 地理編碼 → 等時圈 → 住宿取得 → 排名
type RecommendUseCase interface {
	Recommend(ctx context.Context, req *model.RecommendRequest) (*model.RecommendResponse, error)
}

type recommendUseCaseImpl struct {
	queryParser    *parser.QueryParser
	geocoder       repository.GeocodingProvider
	resolver       service.IsochroneResolver
	accommodations repository.AccommodationsRepository
	ranker         service.RankingService
	rater          service.RatingService
	cfg            config.RecommendConfig
}

// NewRecommendUseCase 建立推薦管線
func NewRecommendUseCase(
	queryParser *parser.QueryParser,
	geocoder repository.GeocodingProvider,
	resolver service.IsochroneResolver,
	accommodations repository.AccommodationsRepository,
	ranker service.RankingService,
	rater service.RatingService,
	cfg config.RecommendConfig,
) RecommendUseCase {
	return &recommendUseCaseImpl{
		queryParser:    queryParser,
		geocoder:       geocoder,
		resolver:       resolver,
		accommodations: accommodations,
		ranker:         ranker,
		rater:          rater,
		cfg:            cfg,
	}
}

func (u *recommendUseCaseImpl) Recommend(ctx context.Context, req *model.RecommendRequest) (*model.RecommendResponse, error) {
	// Step 1: 查詢句解析
	parsed, err := u.queryParser.Parse(req.Query)
	if err != nil {
		return nil, err
	}
	log.Printf("🔍 查詢解析完成 (地點: %v, 條件: %v)", parsed.POIMentions, parsed.Filters)

	// Step 2: 地理編碼。失敗時不再呼叫後續的外部服務。
	poi, err := u.geocoder.Geocode(ctx, parsed.PrimaryPOI())
	if err != nil {
		return nil, err
	}
	log.Printf("📍 地點解析完成 (%s → %.4f, %.4f)", poi.Name, poi.Location.Lat, poi.Location.Lng)

	// Step 3: 等時圈取得
	tiers := u.requestedTiers(parsed)
	isochrones, err := u.resolver.Resolve(ctx, *poi, tiers)
	if err != nil {
		return nil, err
	}
	log.Printf("🗺️ 等時圈取得完成 (可用等級: %v)", isochrones.AvailableTiers())

	// Step 4: 以最大的可用等時圈界定範圍後取得住宿候選
	largest, ok := isochrones.Get(isochrones.LargestTier())
	if !ok {
		return nil, &model.UpstreamError{Service: "isochrone", Err: fmt.Errorf("沒有可用的等時圈")}
	}
	bound := helper.BoundWithPadding(largest, u.cfg.BoundPadding)
	candidates, err := u.accommodations.FindInRegion(ctx, bound)
	if err != nil {
		return nil, err
	}
	log.Printf("🏨 住宿候選取得完成 (%d 筆)", len(candidates))

	// Step 5: 篩選、等級分配、排序
	ranked, stats := u.ranker.Rank(candidates, isochrones, parsed.Filters)

	topN := req.TopN
	if topN <= 0 {
		topN = u.cfg.DefaultTopN
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	// 綜合評分是顯示用的附加資訊，於截斷後計算即可
	for i := range ranked {
		ranked[i].RatingScore = u.rater.Score(ranked[i].Candidate, ranked[i].AssignedTier)
	}
	log.Printf("🎉 推薦完成 (回傳 %d 筆)", len(ranked))

	return buildResponse(parsed, *poi, ranked, stats), nil
}

// requestedTiers 解析結果 → 要求的等級集合
// 明確的車程分鐘數優先；只講天數的多日行程採用設定的等級上限；
// 兩者皆無時要求全部三個等級
func (u *recommendUseCaseImpl) requestedTiers(parsed *model.ParsedQuery) []model.Tier {
	if parsed.DurationMinutes != nil {
		return model.TiersUpTo(ceilingForMinutes(*parsed.DurationMinutes))
	}
	if parsed.Days != nil {
		return model.TiersUpTo(u.cfg.MultiDayTierCeiling)
	}
	return model.AllTiers()
}

// ceilingForMinutes 分鐘數以上最接近的標準等級；超過 60 分鐘一律 Tier60
func ceilingForMinutes(minutes int) model.Tier {
	for _, tier := range model.AllTiers() {
		if minutes <= tier.Minutes() {
			return tier
		}
	}
	return model.Tier60
}

// buildResponse 排名結果 → API 回應
func buildResponse(parsed *model.ParsedQuery, poi model.ResolvedPOI, ranked []model.RankedResult, stats model.TierStats) *model.RecommendResponse {
	results := make([]model.RecommendResult, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, model.RecommendResult{
			CandidateID:    r.Candidate.ID,
			Name:           r.Candidate.Name,
			AssignedTier:   r.AssignedTier,
			Amenities:      r.Candidate.Amenities,
			DistanceMeters: r.DistanceMeters,
			RankScore:      r.RankScore,
			RatingScore:    r.RatingScore,
		})
	}
	return &model.RecommendResponse{
		Parsed: model.ParsedEcho{
			POIMentions:     parsed.POIMentions,
			DurationMinutes: parsed.DurationMinutes,
			Days:            parsed.Days,
			Filters:         parsed.Filters,
		},
		POI:     poi,
		Stats:   stats,
		Results: results,
	}
}
