package parser

// Token 斷詞結果的一個詞
type Token struct {
	Text  string
	Entry Entry
}

// Segmenter 不依賴空白的中文斷詞器
// 對辭典採用最長優先（forward maximum matching）策略，
// 同一位置有多個詞條可成詞時取最長的一個
type Segmenter struct {
	dict *Dictionary
}

// NewSegmenter 建立斷詞器
func NewSegmenter(dict *Dictionary) *Segmenter {
	return &Segmenter{dict: dict}
}

// Segment 掃描整句並回傳辨識出的詞
// 不在辭典中的字元直接略過（不是錯誤）
func (s *Segmenter) Segment(text string) []Token {
	runes := []rune(text)
	var tokens []Token

	for i := 0; i < len(runes); {
		token, matched := s.longestMatchAt(runes, i)
		if matched {
			tokens = append(tokens, token)
			i += len([]rune(token.Text))
			continue
		}
		i++
	}
	return tokens
}

// longestMatchAt 自位置 i 起嘗試最長的詞條
func (s *Segmenter) longestMatchAt(runes []rune, i int) (Token, bool) {
	maxEnd := i + s.dict.MaxLength()
	if maxEnd > len(runes) {
		maxEnd = len(runes)
	}
	for end := maxEnd; end > i; end-- {
		word := string(runes[i:end])
		if entry, ok := s.dict.Lookup(word); ok {
			return Token{Text: word, Entry: entry}, true
		}
	}
	return Token{}, false
}
