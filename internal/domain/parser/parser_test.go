package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innsight/internal/domain/model"
)

func TestParse_基本查詢(t *testing.T) {
	p := NewQueryParser()

	parsed, err := p.Parse("我想找台北市政府附近開車15分鐘內、可帶寵物的住宿")
	require.NoError(t, err)

	assert.Equal(t, []string{"台北市政府"}, parsed.POIMentions)
	require.NotNil(t, parsed.DurationMinutes)
	assert.Equal(t, 15, *parsed.DurationMinutes)
	assert.Equal(t, []model.FilterFlag{model.FilterPet}, parsed.Filters)
	assert.Nil(t, parsed.Days)
}

func TestParse_最長優先斷詞(t *testing.T) {
	p := NewQueryParser()

	// 「台北市政府」包含「台北」，最長優先應取完整名稱
	parsed, err := p.Parse("台北市政府附近的飯店")
	require.NoError(t, err)
	assert.Equal(t, []string{"台北市政府"}, parsed.POIMentions)
}

func TestParse_多個地點依出現順序(t *testing.T) {
	p := NewQueryParser()

	parsed, err := p.Parse("想去美ら海水族館，順便逛國際通，找附近住宿")
	require.NoError(t, err)
	assert.Equal(t, []string{"美ら海水族館", "國際通"}, parsed.POIMentions)
	assert.Equal(t, "美ら海水族館", parsed.PrimaryPOI())
}

func TestParse_無地點時回傳ParseError(t *testing.T) {
	p := NewQueryParser()

	_, err := p.Parse("想找便宜又乾淨的住宿")
	var parseErr *model.ParseError
	require.ErrorAs(t, err, &parseErr)

	_, err = p.Parse("")
	require.ErrorAs(t, err, &parseErr)
}

func TestParse_篩選條件組合(t *testing.T) {
	p := NewQueryParser()

	tests := []struct {
		name  string
		query string
		want  []model.FilterFlag
	}{
		{
			name:  "停車與親子",
			query: "台北好停車又親子友善的住宿",
			want:  []model.FilterFlag{model.FilterParking, model.FilterKids},
		},
		{
			name:  "輪椅",
			query: "沖繩有輪椅設施的飯店",
			want:  []model.FilterFlag{model.FilterWheelchair},
		},
		{
			name:  "寵物與停車場",
			query: "墾丁可帶寵物有停車場",
			want:  []model.FilterFlag{model.FilterParking, model.FilterPet},
		},
		{
			name:  "無條件",
			query: "花蓮的住宿",
			want:  []model.FilterFlag{},
		},
		{
			name:  "全部條件",
			query: "高雄停車位、無障礙、小朋友、毛孩都OK的住宿",
			want:  []model.FilterFlag{model.FilterParking, model.FilterWheelchair, model.FilterKids, model.FilterPet},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := p.Parse(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.Filters)
		})
	}
}

func TestParse_三天兩夜(t *testing.T) {
	p := NewQueryParser()

	parsed, err := p.Parse("台北三天兩夜的行程")
	require.NoError(t, err)
	require.NotNil(t, parsed.Days)
	assert.Equal(t, 3, *parsed.Days)
	assert.Nil(t, parsed.DurationMinutes)
}

func TestParse_天數矛盾不影響解析(t *testing.T) {
	p := NewQueryParser()

	// 三天與五天無法調停，但地點有取得時解析本身仍成功
	parsed, err := p.Parse("台北住三天五天都可以")
	require.NoError(t, err)
	assert.Nil(t, parsed.Days)
	assert.Equal(t, []string{"台北"}, parsed.POIMentions)
}

func TestParse_未知詞彙被忽略(t *testing.T) {
	p := NewQueryParser()

	parsed, err := p.Parse("請問那個～日月潭～有什麼超棒的住宿嗎！？")
	require.NoError(t, err)
	assert.Equal(t, []string{"日月潭"}, parsed.POIMentions)
}

func TestParse_保留原文(t *testing.T) {
	p := NewQueryParser()

	raw := "  台北市政府附近  "
	parsed, err := p.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, parsed.RawText)
}

func TestDictionary_詞條內容(t *testing.T) {
	dict := NewDictionary()

	assert.Equal(t, 3, DictionaryVersion)
	assert.Greater(t, dict.Size(), 0)

	entry, ok := dict.Lookup("台北市政府")
	require.True(t, ok)
	assert.Equal(t, KindLocation, entry.Kind)

	entry, ok = dict.Lookup("停車場")
	require.True(t, ok)
	assert.Equal(t, KindFilter, entry.Kind)
	assert.Equal(t, model.FilterParking, entry.Filter)

	_, ok = dict.Lookup("不存在的詞")
	assert.False(t, ok)
}

func TestSegmenter_最長優先(t *testing.T) {
	s := NewSegmenter(NewDictionary())

	tokens := s.Segment("台北市政府停車場")
	require.Len(t, tokens, 2)
	assert.Equal(t, "台北市政府", tokens[0].Text)
	assert.Equal(t, "停車場", tokens[1].Text)
}
