package parser

import "innsight/internal/domain/model"

// 辭典版本。調整詞條時遞增，測試以此確認載入的是預期版本。
const DictionaryVersion = 3

// EntryKind 辭典詞條的種類
type EntryKind int

const (
	KindLocation EntryKind = iota // 地點名稱
	KindFilter                    // 篩選條件關鍵詞
)

// Entry 辭典詞條
type Entry struct {
	Kind   EntryKind
	Filter model.FilterFlag // Kind 為 KindFilter 時有效
}

// locationEntries 可辨識的地點名稱一覽
// 具體景點放在行政區之前沒有意義：斷詞採最長優先，
// 「台北市政府」會先於「台北」成詞
var locationEntries = []string{
	// 台灣
	"台北市政府", "台北101", "西門町", "士林夜市", "淡水老街",
	"日月潭", "阿里山", "墾丁", "太魯閣",
	"台北", "台中", "台南", "高雄", "花蓮", "宜蘭", "淡水",
	// 沖繩
	"美ら海水族館", "首里城", "萬座毛", "國際通", "殘波岬", "古宇利島",
	"部瀨名海中公園", "琉球玻璃村", "美國村", "新都心", "琉球村",
	"今歸仁", "中城城跡", "勝連城跡", "座喜味城跡", "瀨底島", "水納島",
	"那霸機場", "那霸", "沖繩",
	// 日本本土
	"東京", "大阪", "京都",
}

// filterEntries 篩選條件關鍵詞 → FilterFlag 的對照表
var filterEntries = map[string]model.FilterFlag{
	// 停車
	"停車場": model.FilterParking,
	"停車位": model.FilterParking,
	"好停車": model.FilterParking,
	"停車":  model.FilterParking,
	"車位":  model.FilterParking,
	// 無障礙
	"無障礙設施": model.FilterWheelchair,
	"無障礙":   model.FilterWheelchair,
	"輪椅":    model.FilterWheelchair,
	"行動不便":  model.FilterWheelchair,
	"殘障":    model.FilterWheelchair,
	// 親子
	"親子友善": model.FilterKids,
	"親子":   model.FilterKids,
	"兒童":   model.FilterKids,
	"小孩":   model.FilterKids,
	"孩子":   model.FilterKids,
	"小朋友":  model.FilterKids,
	// 寵物
	"可攜帶寵物": model.FilterPet,
	"寵物友善":  model.FilterPet,
	"寵物":    model.FilterPet,
	"毛孩":    model.FilterPet,
	"狗":     model.FilterPet,
	"貓":     model.FilterPet,
}

// Dictionary 斷詞用的詞條辭典
type Dictionary struct {
	entries   map[string]Entry
	maxLength int // 最長詞條的字元數（rune 數）
}

// NewDictionary 以內建詞條建立辭典
func NewDictionary() *Dictionary {
	d := &Dictionary{entries: make(map[string]Entry)}
	for _, name := range locationEntries {
		d.add(name, Entry{Kind: KindLocation})
	}
	for keyword, flag := range filterEntries {
		d.add(keyword, Entry{Kind: KindFilter, Filter: flag})
	}
	return d
}

func (d *Dictionary) add(word string, entry Entry) {
	d.entries[word] = entry
	if n := len([]rune(word)); n > d.maxLength {
		d.maxLength = n
	}
}

// Lookup 查詢詞條，第二個回傳值表示是否存在
func (d *Dictionary) Lookup(word string) (Entry, bool) {
	entry, ok := d.entries[word]
	return entry, ok
}

// MaxLength 最長詞條的字元數，斷詞時的視窗上限
func (d *Dictionary) MaxLength() int {
	return d.maxLength
}

// Size 詞條總數
func (d *Dictionary) Size() int {
	return len(d.entries)
}
