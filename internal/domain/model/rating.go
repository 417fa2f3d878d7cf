package model

import "fmt"

// RatingWeights 綜合評分各組成的權重
// 等級、星等與四種設施標籤各佔一份權重，加權平均後得到 0–100 的分數
type RatingWeights struct {
	Tier       float64
	Rating     float64
	Parking    float64
	Wheelchair float64
	Kids       float64
	Pet        float64
}

// DefaultRatingWeights 預設權重。等級佔最大比重，星等次之。
func DefaultRatingWeights() RatingWeights {
	return RatingWeights{
		Tier:       4,
		Rating:     2,
		Parking:    1,
		Wheelchair: 1,
		Kids:       1,
		Pet:        1,
	}
}

// Validate 權重必須非負，且總和大於零
func (w RatingWeights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"tier", w.Tier},
		{"rating", w.Rating},
		{"parking", w.Parking},
		{"wheelchair", w.Wheelchair},
		{"kids", w.Kids},
		{"pet", w.Pet},
	}

	sum := 0.0
	for _, item := range named {
		if item.value < 0 {
			return fmt.Errorf("評分權重 %s 不可為負數 (%g)", item.name, item.value)
		}
		sum += item.value
	}
	if sum == 0 {
		return fmt.Errorf("評分權重不可全部為零")
	}
	return nil
}
