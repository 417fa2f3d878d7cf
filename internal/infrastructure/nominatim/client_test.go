package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innsight/internal/domain/model"
)

func TestGeocode_取得第一筆結果(t *testing.T) {
	var gotQuery, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUserAgent = r.Header.Get("User-Agent")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(`[
			{"lat": "25.0375", "lon": "121.5637", "display_name": "臺北市政府, 信義區"},
			{"lat": "25.1000", "lon": "121.6000", "display_name": "別的結果"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "innsight-test", 5*time.Second)
	poi, err := client.Geocode(context.Background(), "台北市政府")
	require.NoError(t, err)

	assert.Equal(t, "台北市政府", gotQuery)
	assert.Equal(t, "innsight-test", gotUserAgent)
	assert.Equal(t, "台北市政府", poi.Name)
	assert.Equal(t, model.LatLng{Lat: 25.0375, Lng: 121.5637}, poi.Location)
}

func TestGeocode_查無結果(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "innsight-test", 5*time.Second)
	_, err := client.Geocode(context.Background(), "不存在的地點")

	var notFoundErr *model.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "不存在的地點", notFoundErr.Name)
}

func TestGeocode_座標無法解析的結果被跳過(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"lat": "abc", "lon": "121.5637"},
			{"lat": "25.0375", "lon": "121.5637"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "innsight-test", 5*time.Second)
	poi, err := client.Geocode(context.Background(), "台北市政府")
	require.NoError(t, err)
	assert.Equal(t, model.LatLng{Lat: 25.0375, Lng: 121.5637}, poi.Location)
}

func TestGeocode_失敗後重試一次(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"lat": "25.0375", "lon": "121.5637"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "innsight-test", 5*time.Second)
	poi, err := client.Geocode(context.Background(), "台北市政府")
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, model.LatLng{Lat: 25.0375, Lng: 121.5637}, poi.Location)
}

func TestGeocode_重試後仍失敗回傳UpstreamError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "innsight-test", 5*time.Second)
	_, err := client.Geocode(context.Background(), "台北市政府")

	var upstreamErr *model.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "nominatim", upstreamErr.Service)
	assert.Equal(t, int32(2), calls.Load())
}
