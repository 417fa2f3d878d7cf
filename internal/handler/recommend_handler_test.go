package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innsight/internal/domain/model"
)

type fakeRecommendUseCase struct {
	response *model.RecommendResponse
	err      error
}

func (f *fakeRecommendUseCase) Recommend(_ context.Context, _ *model.RecommendRequest) (*model.RecommendResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func newTestRouter(uc *fakeRecommendUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/recommend", NewRecommendHandler(uc).PostRecommend)
	return router
}

func postRecommend(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPostRecommend_正常回應(t *testing.T) {
	duration := 15
	router := newTestRouter(&fakeRecommendUseCase{
		response: &model.RecommendResponse{
			Parsed: model.ParsedEcho{
				POIMentions:     []string{"台北市政府"},
				DurationMinutes: &duration,
				Filters:         []model.FilterFlag{model.FilterPet},
			},
			POI: model.ResolvedPOI{Name: "台北市政府", Location: model.LatLng{Lat: 25.0375, Lng: 121.5637}},
			Results: []model.RecommendResult{
				{CandidateID: "node/123", Name: "寵物友善旅店", AssignedTier: model.Tier15, DistanceMeters: 850},
			},
		},
	})

	w := postRecommend(t, router, `{"query": "我想找台北市政府附近開車15分鐘內、可帶寵物的住宿"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "parsed")
	assert.Contains(t, body, "poi")
	assert.Contains(t, body, "results")
}

func TestPostRecommend_請求格式不正確(t *testing.T) {
	router := newTestRouter(&fakeRecommendUseCase{})

	tests := []struct {
		name string
		body string
	}{
		{name: "不是JSON", body: "not json"},
		{name: "缺少query欄位", body: `{}`},
		{name: "query為空字串", body: `{"query": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postRecommend(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPostRecommend_錯誤種類對應狀態碼(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "解析失敗",
			err:        &model.ParseError{RawText: "便宜的住宿", Reason: "查詢中找不到可辨識的地點"},
			wantStatus: http.StatusBadRequest,
			wantError:  "無法理解查詢",
		},
		{
			name:       "地點查無結果",
			err:        &model.NotFoundError{Name: "不存在的地點"},
			wantStatus: http.StatusNotFound,
			wantError:  "找不到地點",
		},
		{
			name:       "外部服務失敗",
			err:        &model.UpstreamError{Service: "isochrone", Err: errors.New("逾時")},
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "服務暫時無法使用",
		},
		{
			name:       "其他錯誤",
			err:        errors.New("未預期的錯誤"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "推薦處理失敗",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeRecommendUseCase{err: tt.err})

			w := postRecommend(t, router, `{"query": "台北市政府附近的住宿"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])

			// 外部服務的身分不得出現在回應中
			assert.NotContains(t, w.Body.String(), "isochrone")
		})
	}
}
