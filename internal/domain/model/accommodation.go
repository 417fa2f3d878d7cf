package model

// LatLng 緯度經度座標（WGS84）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ResolvedPOI 地理編碼完成的地點。建立後不再變更。
type ResolvedPOI struct {
	Name     string `json:"name"`
	Location LatLng `json:"location"`
}

// AccommodationCandidate 從 OSM 資料取得的住宿候選
// 單次請求內有效，不跨請求保存
type AccommodationCandidate struct {
	ID        string            `json:"id"`       // OSM 元素 ID
	OSMType   string            `json:"osm_type"` // node / way / relation
	Name      string            `json:"name"`
	Location  LatLng            `json:"location"`
	Tourism   string            `json:"tourism"` // hotel, guest_house, hostel ...
	Amenities []FilterFlag      `json:"amenities"`
	Tags      map[string]string `json:"tags,omitempty"` // OSM 原始屬性
}

// HasAmenity 是否具備指定設施
func (c *AccommodationCandidate) HasAmenity(flag FilterFlag) bool {
	for _, a := range c.Amenities {
		if a == flag {
			return true
		}
	}
	return false
}

// SatisfiesAll 是否同時滿足所有篩選條件（AND 條件）
func (c *AccommodationCandidate) SatisfiesAll(filters []FilterFlag) bool {
	for _, f := range filters {
		if !c.HasAmenity(f) {
			return false
		}
	}
	return true
}

// RankedResult 排名後的住宿結果。每次請求重新建立，回應後即丟棄。
type RankedResult struct {
	Candidate      AccommodationCandidate `json:"candidate"`
	AssignedTier   Tier                   `json:"assigned_tier"`
	DistanceMeters float64                `json:"distance_meters"`
	// RankScore 數值越小排名越前（等級優先，直線距離為同級內的決勝值）
	RankScore float64 `json:"rank_score"`
	// RatingScore 0–100 的綜合評分，僅供顯示，不影響排序
	RatingScore float64 `json:"rating_score"`
}

// TierStats 各等級的住宿數量統計（含被排除的候選）
type TierStats struct {
	Tier15   int `json:"tier_15"`
	Tier30   int `json:"tier_30"`
	Tier60   int `json:"tier_60"`
	Excluded int `json:"excluded"`
}
