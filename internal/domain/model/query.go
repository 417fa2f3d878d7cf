package model

// FilterFlag 住宿條件篩選的種類
type FilterFlag string

const (
	FilterParking    FilterFlag = "parking"    // 停車
	FilterWheelchair FilterFlag = "wheelchair" // 無障礙
	FilterKids       FilterFlag = "kids"       // 親子友善
	FilterPet        FilterFlag = "pet"        // 寵物友善
)

// AllFilterFlags 所有支援的篩選條件一覽
func AllFilterFlags() []FilterFlag {
	return []FilterFlag{FilterParking, FilterWheelchair, FilterKids, FilterPet}
}

// ParsedQuery 由中文查詢句解析出的結構化結果
type ParsedQuery struct {
	// POIMentions 依出現順序排列的地點名稱（解析成功時必定非空）
	POIMentions []string `json:"poi_mentions"`
	// DurationMinutes 明確的車程時間限制（分鐘），查詢未指定時為 nil
	DurationMinutes *int `json:"duration_minutes,omitempty"`
	// Days 多日行程的天數（例：三天兩夜 → 3），未指定時為 nil
	Days *int `json:"days,omitempty"`
	// Filters 篩選條件集合
	Filters []FilterFlag `json:"filters"`
	// RawText 原始查詢句（保留供診斷用）
	RawText string `json:"raw_text"`
}

// PrimaryPOI 回傳主要地點（第一個提及的地點）
func (q *ParsedQuery) PrimaryPOI() string {
	if len(q.POIMentions) == 0 {
		return ""
	}
	return q.POIMentions[0]
}

// HasFilter 是否包含指定的篩選條件
func (q *ParsedQuery) HasFilter(flag FilterFlag) bool {
	for _, f := range q.Filters {
		if f == flag {
			return true
		}
	}
	return false
}
