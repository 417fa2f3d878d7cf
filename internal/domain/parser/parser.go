package parser

import (
	"log"
	"strings"

	"innsight/internal/domain/model"
)

// QueryParser 中文住宿查詢句的解析器
// 斷詞、天數、篩選條件的抽取集中在這裡
type QueryParser struct {
	dict      *Dictionary
	segmenter *Segmenter
}

// NewQueryParser 以內建辭典建立解析器
func NewQueryParser() *QueryParser {
	dict := NewDictionary()
	return &QueryParser{
		dict:      dict,
		segmenter: NewSegmenter(dict),
	}
}

// Parse 解析查詢句
// 至少要能辨識出一個地點，否則回傳 ParseError。
// 天數解析失敗（矛盾、超過上限）不影響整體解析，僅留下記錄。
func (p *QueryParser) Parse(rawText string) (*model.ParsedQuery, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, &model.ParseError{RawText: rawText, Reason: "查詢句為空"}
	}

	tokens := p.segmenter.Segment(text)

	mentions := extractMentions(tokens)
	if len(mentions) == 0 {
		return nil, &model.ParseError{RawText: rawText, Reason: "找不到可辨識的地點"}
	}

	filters := extractFilters(tokens)

	days, err := ExtractDays(text)
	if err != nil {
		log.Printf("⚠️ 天數解析失敗，視為未指定: %v", err)
		days = nil
	}

	return &model.ParsedQuery{
		POIMentions:     mentions,
		DurationMinutes: ExtractTravelMinutes(text),
		Days:            days,
		Filters:         filters,
		RawText:         rawText,
	}, nil
}

// extractMentions 依出現順序收集地點名稱（同名只留第一次）
func extractMentions(tokens []Token) []string {
	var mentions []string
	seen := map[string]struct{}{}
	for _, t := range tokens {
		if t.Entry.Kind != KindLocation {
			continue
		}
		if _, ok := seen[t.Text]; ok {
			continue
		}
		seen[t.Text] = struct{}{}
		mentions = append(mentions, t.Text)
	}
	return mentions
}

// extractFilters 收集篩選條件
// 同一條件被多個關鍵詞觸發時只計一次，順序依 AllFilterFlags 固定
func extractFilters(tokens []Token) []model.FilterFlag {
	found := map[model.FilterFlag]struct{}{}
	for _, t := range tokens {
		if t.Entry.Kind == KindFilter {
			found[t.Entry.Filter] = struct{}{}
		}
	}
	filters := []model.FilterFlag{}
	for _, f := range model.AllFilterFlags() {
		if _, ok := found[f]; ok {
			filters = append(filters, f)
		}
	}
	return filters
}
