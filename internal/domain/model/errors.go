package model

import "fmt"

// ParseError 查詢句中找不到可辨識的地點時回傳
// 對呼叫端呈現為「無法理解查詢」
type ParseError struct {
	RawText string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("無法解析查詢: %s", e.Reason)
}

// NotFoundError 地點名稱經地理編碼後查無結果
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("找不到地點: %s", e.Name)
}

// UpstreamError 外部服務呼叫失敗或逾時
// 不對呼叫端洩漏是哪一個外部服務
type UpstreamError struct {
	Service string // 內部記錄用
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("外部服務呼叫失敗 (%s): %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// GeometryError 多邊形資料格式不正確
// 僅記錄並將該等級視為不存在，不會使整個請求失敗
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("幾何資料不正確: %s", e.Reason)
}
