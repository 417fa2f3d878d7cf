package model

import (
	"github.com/paulmach/orb"
)

// Tier 等時圈的等級（分鐘數）。數字越小代表離地點越近。
type Tier int

const (
	// TierNone 不在任何等時圈內
	TierNone Tier = 0
	Tier15   Tier = 15
	Tier30   Tier = 30
	Tier60   Tier = 60
)

// AllTiers 由內而外排序的標準等級一覽
func AllTiers() []Tier {
	return []Tier{Tier15, Tier30, Tier60}
}

// TiersUpTo 回傳分鐘數不超過 ceiling 的等級（由內而外）
// ceiling 比 Tier15 還小時仍回傳 Tier15，避免空的查詢範圍
func TiersUpTo(ceiling Tier) []Tier {
	var tiers []Tier
	for _, t := range AllTiers() {
		if t <= ceiling {
			tiers = append(tiers, t)
		}
	}
	if len(tiers) == 0 {
		tiers = []Tier{Tier15}
	}
	return tiers
}

// Minutes 等級對應的車程分鐘數
func (t Tier) Minutes() int {
	return int(t)
}

// Valid 是否為標準等級之一
func (t Tier) Valid() bool {
	return t == Tier15 || t == Tier30 || t == Tier60
}

// IsochroneSet 以單一地點為中心的等時圈集合
// 上游回傳失敗的等級不會出現在 Polygons 中（缺漏視為不存在，不做幾何推測）
type IsochroneSet struct {
	POI      ResolvedPOI
	Polygons map[Tier]orb.Polygon
}

// Get 取得指定等級的多邊形，第二個回傳值表示該等級是否存在
func (s *IsochroneSet) Get(tier Tier) (orb.Polygon, bool) {
	poly, ok := s.Polygons[tier]
	return poly, ok
}

// AvailableTiers 實際取得的等級（由內而外）
func (s *IsochroneSet) AvailableTiers() []Tier {
	var tiers []Tier
	for _, t := range AllTiers() {
		if _, ok := s.Polygons[t]; ok {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// LargestTier 最外層的可用等級；一個等級都沒有時回傳 TierNone
func (s *IsochroneSet) LargestTier() Tier {
	tiers := s.AvailableTiers()
	if len(tiers) == 0 {
		return TierNone
	}
	return tiers[len(tiers)-1]
}

// Empty 是否完全沒有可用的等時圈
func (s *IsochroneSet) Empty() bool {
	return len(s.Polygons) == 0
}
