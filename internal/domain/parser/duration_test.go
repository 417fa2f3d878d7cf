package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDays(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{
		{name: "三天兩夜", text: "三天兩夜", want: intPtr(3)},
		{name: "兩天一夜", text: "兩天一夜", want: intPtr(2)},
		{name: "阿拉伯數字", text: "5天4夜", want: intPtr(5)},
		{name: "只有天", text: "住三天", want: intPtr(3)},
		{name: "只有夜", text: "住兩晚", want: intPtr(2)},
		{name: "十天以上", text: "十二天的長途旅行", want: intPtr(12)},
		{name: "半天視為未指定", text: "半天的小旅行", want: nil},
		{name: "半日視為未指定", text: "半日遊", want: nil},
		{name: "一天兩夜不合理", text: "一天兩夜", want: nil},
		{name: "沒有天數", text: "找台北的住宿", want: nil},
		{name: "空字串", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDays(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDays_矛盾的天數(t *testing.T) {
	_, err := ExtractDays("三天五夜")
	require.ErrorIs(t, err, ErrDaysConflict)
}

func TestExtractDays_超過上限(t *testing.T) {
	_, err := ExtractDays("二十天的環島")
	require.ErrorIs(t, err, ErrDaysOutOfRange)
}

func TestExtractTravelMinutes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{
		{name: "阿拉伯數字", text: "開車15分鐘內", want: intPtr(15)},
		{name: "中文數字", text: "車程十五分鐘", want: intPtr(15)},
		{name: "三十分", text: "三十分以內", want: intPtr(30)},
		{name: "六十分鐘", text: "開車六十分鐘", want: intPtr(60)},
		{name: "沒有分鐘數", text: "三天兩夜的行程", want: nil},
		{name: "空字串", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTravelMinutes(tt.text))
		})
	}
}

func TestParseChineseNumber(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"3", 3},
		{"15", 15},
		{"三", 3},
		{"兩", 2},
		{"十", 10},
		{"十五", 15},
		{"二十", 20},
		{"二十一", 21},
		{"三十", 30},
		{"六十", 60},
		{"甲", 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, parseChineseNumber(tt.text))
		})
	}
}

func intPtr(n int) *int {
	return &n
}
