package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// MaxDays 行程天數的上限
const MaxDays = 14

var (
	// ErrDaysConflict 同一句中出現互相矛盾的天數
	ErrDaysConflict = errors.New("查詢句中的天數互相矛盾")
	// ErrDaysOutOfRange 天數超過上限
	ErrDaysOutOfRange = errors.New("天數超過上限")
)

// chineseNumbers 單一字元的中文數字對照
var chineseNumbers = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9, '十': 10, '兩': 2,
}

// numPattern 阿拉伯數字或中文數字（含 十五、二十 等複合形式）
const numPattern = `(\d+|[一二三四五六七八九兩]?十[一二三四五六七八九]?|[一二三四五六七八九兩半])`

var (
	dayRe     = regexp.MustCompile(numPattern + `[，\s]*[天日]`)
	nightRe   = regexp.MustCompile(numPattern + `[，\s]*[晚夜]`)
	halfDayRe = regexp.MustCompile(`半[天日]`)
	minutesRe = regexp.MustCompile(numPattern + `\s*分鐘?`)
)

// parseChineseNumber 中文數字或阿拉伯數字轉整數
// 無法解析或為「半」時回傳 0
func parseChineseNumber(text string) int {
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	runes := []rune(text)
	if idx := strings.IndexRune(text, '十'); idx >= 0 {
		tensIdx := 0
		for i, r := range runes {
			if r == '十' {
				tensIdx = i
				break
			}
		}
		tens := 1
		if tensIdx > 0 {
			tens = chineseNumbers[runes[0]]
		}
		units := 0
		if tensIdx < len(runes)-1 {
			units = chineseNumbers[runes[len(runes)-1]]
		}
		return tens*10 + units
	}
	if len(runes) == 1 {
		return chineseNumbers[runes[0]]
	}
	return 0
}

// ExtractDays 從中文句子抽出行程天數
//
// 天（天/日）與夜（晚/夜）的數字分開收集後再合併：
//   - 「半天」「半日」視為未指定天數
//   - 「一天兩夜」這類天小於夜的組合不合理，視為未指定
//   - 「三天兩夜」常見寫法取較大值（天數）
//   - 相差超過一的不同數字視為矛盾，回傳 ErrDaysConflict
func ExtractDays(text string) (*int, error) {
	if text == "" {
		return nil, nil
	}
	if halfDayRe.MatchString(text) {
		return nil, nil
	}

	dayCounts := collectCounts(dayRe, text)
	nightCounts := collectCounts(nightRe, text)
	if dayCounts == nil || nightCounts == nil {
		// 任一側出現「半」
		return nil, nil
	}

	found := append(append([]int{}, dayCounts...), nightCounts...)
	if len(found) == 0 {
		return nil, nil
	}

	// 一天兩夜：天比夜還少只差一，邏輯不成立
	if len(dayCounts) == 1 && len(nightCounts) == 1 {
		d, n := dayCounts[0], nightCounts[0]
		if d < n && n-d <= 1 {
			return nil, nil
		}
	}

	days, err := resolveConflicts(found)
	if err != nil {
		return nil, err
	}
	if days > MaxDays {
		return nil, ErrDaysOutOfRange
	}
	return &days, nil
}

// collectCounts 以指定樣式收集所有數字；遇到「半」回傳 nil
func collectCounts(re *regexp.Regexp, text string) []int {
	counts := []int{}
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if m[1] == "半" {
			return nil
		}
		if n := parseChineseNumber(m[1]); n > 0 {
			counts = append(counts, n)
		}
	}
	return counts
}

// resolveConflicts 多個天數值的調停
func resolveConflicts(found []int) (int, error) {
	unique := map[int]struct{}{}
	for _, n := range found {
		unique[n] = struct{}{}
	}
	if len(unique) == 1 {
		return found[0], nil
	}
	if len(unique) == 2 {
		lo, hi := found[0], found[0]
		for n := range unique {
			if n < lo {
				lo = n
			}
			if n > hi {
				hi = n
			}
		}
		// 三天兩夜：相差一時取天數（較大值）
		if hi-lo == 1 {
			return hi, nil
		}
	}
	return 0, ErrDaysConflict
}

// ExtractTravelMinutes 從句子抽出明確的車程時間（分鐘）
// 例：「開車15分鐘內」→ 15。查詢未提及分鐘數時回傳 nil。
func ExtractTravelMinutes(text string) *int {
	m := minutesRe.FindStringSubmatch(text)
	if m == nil || m[1] == "半" {
		return nil
	}
	n := parseChineseNumber(m[1])
	if n <= 0 {
		return nil
	}
	return &n
}
