package model

// RecommendRequest 住宿推薦 API 的請求
type RecommendRequest struct {
	// Query 完整中文需求句
	Query string `json:"query" binding:"required"`
	// TopN 回傳筆數上限，未指定時採用預設值
	TopN int `json:"top_n,omitempty"`
}

// RecommendResult 回應中的一筆住宿
type RecommendResult struct {
	CandidateID    string       `json:"candidate_id"`
	Name           string       `json:"name"`
	AssignedTier   Tier         `json:"assigned_tier"` // 分鐘數（15/30/60）
	Amenities      []FilterFlag `json:"amenities"`
	DistanceMeters float64      `json:"distance_meters"`
	RankScore      float64      `json:"rank_score"`
	// RatingScore 0–100 的綜合評分（等級、星等、設施標籤的加權平均）
	RatingScore float64 `json:"rating_score"`
}

// ParsedEcho 解析結果的回聲，方便呼叫端確認系統的理解
type ParsedEcho struct {
	POIMentions     []string     `json:"poi_mentions"`
	DurationMinutes *int         `json:"duration_minutes,omitempty"`
	Days            *int         `json:"days,omitempty"`
	Filters         []FilterFlag `json:"filters"`
}

// RecommendResponse 住宿推薦 API 的回應
type RecommendResponse struct {
	Parsed  ParsedEcho        `json:"parsed"`
	POI     ResolvedPOI       `json:"poi"`
	Stats   TierStats         `json:"stats"`
	Results []RecommendResult `json:"results"`
}
