package helper

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"

	"innsight/internal/domain/model"
)

// CacheKeyPrecision 快取鍵座標的四捨五入位數（小數第 4 位 ≈ 11 公尺）
// 等時圈形狀在這個解析度下視為穩定
const CacheKeyPrecision = 4

// ToPoint model.LatLng 轉為 orb.Point（orb 採用 [lng, lat] 順序）
func ToPoint(loc model.LatLng) orb.Point {
	return orb.Point{loc.Lng, loc.Lat}
}

// ToLatLng orb.Point 轉為 model.LatLng
func ToLatLng(p orb.Point) model.LatLng {
	return model.LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// ValidatePolygon 檢查多邊形是否為合法幾何
// 外環必須存在且至少有三個頂點
func ValidatePolygon(polygon orb.Polygon) error {
	if len(polygon) == 0 {
		return &model.GeometryError{Reason: "多邊形沒有外環"}
	}
	if len(polygon[0]) < 3 {
		return &model.GeometryError{Reason: "外環頂點不足三個"}
	}
	return nil
}

// Contains 點是否落在多邊形內，邊界上的點視為包含
// 避免邊界附近的住宿被誤判為圈外
func Contains(polygon orb.Polygon, loc model.LatLng) (bool, error) {
	if err := ValidatePolygon(polygon); err != nil {
		return false, err
	}
	return planar.PolygonContains(polygon, ToPoint(loc)), nil
}

// DistanceMeters 兩點間的大圓距離（公尺）
// 只作為同等級內的決勝值，不作為主要排序依據
func DistanceMeters(a, b model.LatLng) float64 {
	return geo.Distance(ToPoint(a), ToPoint(b))
}

// BoundWithPadding 多邊形的外接矩形，外擴 padding 度
// 供 OSM 查詢使用，以最大的等時圈界定搜尋範圍
func BoundWithPadding(polygon orb.Polygon, padding float64) orb.Bound {
	return polygon.Bound().Pad(padding)
}

// PolygonCoveredBy 內層多邊形的頂點是否全部落在外層多邊形中
// 用於等時圈巢狀關係的檢查（抽樣外環頂點，不做完整幾何運算）
func PolygonCoveredBy(inner, outer orb.Polygon) bool {
	if len(inner) == 0 || len(outer) == 0 {
		return false
	}
	for _, pt := range inner[0] {
		if !planar.PolygonContains(outer, pt) {
			return false
		}
	}
	return true
}

// RoundCoordinate 座標四捨五入到快取鍵解析度
func RoundCoordinate(loc model.LatLng) model.LatLng {
	factor := math.Pow10(CacheKeyPrecision)
	return model.LatLng{
		Lat: math.Round(loc.Lat*factor) / factor,
		Lng: math.Round(loc.Lng*factor) / factor,
	}
}
