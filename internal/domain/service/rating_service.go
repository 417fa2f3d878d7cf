package service

import (
	"log"
	"strconv"

	"innsight/internal/domain/model"
)

const (
	// componentMax 單一組成的滿分
	componentMax = 100.0
	// componentDefault 資料缺漏時採用的中間值
	componentDefault = 50.0
	// maxStars OSM rating 標籤的星等上限
	maxStars = 5.0
)

// RatingService 住宿的綜合評分（0–100）
// 排序仍由等級與直線距離決定，綜合評分只作為呼叫端顯示用的參考值
type RatingService interface {
	Score(candidate model.AccommodationCandidate, tier model.Tier) float64
}

type ratingService struct {
	weights model.RatingWeights
}

// NewRatingService 以指定權重建立評分服務
// 權重需先通過 RatingWeights.Validate（設定讀取時驗證）
func NewRatingService(weights model.RatingWeights) RatingService {
	return &ratingService{weights: weights}
}

func (s *ratingService) Score(candidate model.AccommodationCandidate, tier model.Tier) float64 {
	type component struct {
		score  float64
		weight float64
	}
	components := []component{
		{tierScore(tier), s.weights.Tier},
		{starScore(candidate.Tags), s.weights.Rating},
		{tagScore(candidate.Tags, model.FilterParking), s.weights.Parking},
		{tagScore(candidate.Tags, model.FilterWheelchair), s.weights.Wheelchair},
		{tagScore(candidate.Tags, model.FilterKids), s.weights.Kids},
		{tagScore(candidate.Tags, model.FilterPet), s.weights.Pet},
	}

	var weighted, total float64
	for _, c := range components {
		weighted += c.score * c.weight
		total += c.weight
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// tierScore 等級 → 分數。最內層（15分）滿分，所有圈外為 0。
func tierScore(tier model.Tier) float64 {
	switch tier {
	case model.Tier15:
		return componentMax
	case model.Tier30:
		return componentMax * 2 / 3
	case model.Tier60:
		return componentMax / 3
	default:
		return 0
	}
}

// starScore OSM rating 標籤（0–5 星）→ 0–100
// 標籤不存在或無法解析時採用中間值
func starScore(tags map[string]string) float64 {
	raw, ok := tags["rating"]
	if !ok {
		return componentDefault
	}
	stars, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("⚠️ rating 標籤無法解析 (%q)，採用中間值", raw)
		return componentDefault
	}
	return stars / maxStars * componentMax
}

// tagScore 設施標籤 yes → 100、no → 0，缺漏或其他寫法採用中間值
func tagScore(tags map[string]string, flag model.FilterFlag) float64 {
	value, ok := tags[string(flag)]
	if !ok {
		return componentDefault
	}
	switch value {
	case "yes":
		return componentMax
	case "no":
		return 0
	default:
		return componentDefault
	}
}
