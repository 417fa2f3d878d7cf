package service

import (
	"log"
	"sort"

	"innsight/internal/domain/helper"
	"innsight/internal/domain/model"
)

// tierScoreWeight 等級在排名分數中的權重
// 等級差距必定大於任何同級內的距離差，確保等級優先
const tierScoreWeight = 1e5

// RankingService 住宿候選的篩選、等級分配與排序
type RankingService interface {
	// Rank 回傳排序後的結果與各等級的統計
	// 篩選後沒有任何候選不是錯誤，回傳空列表
	Rank(candidates []model.AccommodationCandidate, isochrones *model.IsochroneSet, filters []model.FilterFlag) ([]model.RankedResult, model.TierStats)
}

type rankingService struct{}

// NewRankingService 建立排名服務
func NewRankingService() RankingService {
	return &rankingService{}
}

func (s *rankingService) Rank(candidates []model.AccommodationCandidate, isochrones *model.IsochroneSet, filters []model.FilterFlag) ([]model.RankedResult, model.TierStats) {
	var stats model.TierStats
	results := []model.RankedResult{}

	for _, candidate := range candidates {
		// 條件篩選是硬性排除：要求無障礙的使用者不能被推薦無障礙以外的選項
		if !candidate.SatisfiesAll(filters) {
			stats.Excluded++
			continue
		}

		tier := s.assignTier(candidate, isochrones)
		switch tier {
		case model.Tier15:
			stats.Tier15++
		case model.Tier30:
			stats.Tier30++
		case model.Tier60:
			stats.Tier60++
		default:
			// 所有可用等時圈之外：計入統計但不進入結果
			stats.Excluded++
			continue
		}

		distance := helper.DistanceMeters(candidate.Location, isochrones.POI.Location)
		results = append(results, model.RankedResult{
			Candidate:      candidate,
			AssignedTier:   tier,
			DistanceMeters: distance,
			RankScore:      float64(tier.Minutes())*tierScoreWeight + distance,
		})
	}

	// 等級優先、同級內依直線距離。穩定排序保證相同輸入得到相同輸出。
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].AssignedTier != results[j].AssignedTier {
			return results[i].AssignedTier < results[j].AssignedTier
		}
		return results[i].DistanceMeters < results[j].DistanceMeters
	})

	return results, stats
}

// assignTier 由內而外測試包含關係，取第一個（最內層）包含候選座標的等級
// 缺漏的等級直接跳過；幾何資料不正確的等級記錄後視為不存在
func (s *rankingService) assignTier(candidate model.AccommodationCandidate, isochrones *model.IsochroneSet) model.Tier {
	for _, tier := range model.AllTiers() {
		polygon, ok := isochrones.Get(tier)
		if !ok {
			continue
		}
		contained, err := helper.Contains(polygon, candidate.Location)
		if err != nil {
			log.Printf("⚠️ %d分鐘等時圈的幾何資料不正確，跳過該等級: %v", tier.Minutes(), err)
			continue
		}
		if contained {
			return tier
		}
	}
	return model.TierNone
}
