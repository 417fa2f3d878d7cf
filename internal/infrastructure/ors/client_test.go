package ors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innsight/internal/domain/model"
)

const polygonFeatureCollection = `{
	"type": "FeatureCollection",
	"features": [{
		"type": "Feature",
		"properties": {"value": 900},
		"geometry": {
			"type": "Polygon",
			"coordinates": [[[121.5, 25.0], [121.6, 25.0], [121.6, 25.1], [121.5, 25.1], [121.5, 25.0]]]
		}
	}]
}`

func TestFetchIsochrone_取得多邊形(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody isochroneRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(polygonFeatureCollection))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-api-key", "", 5*time.Second)
	polygon, err := client.FetchIsochrone(context.Background(), model.LatLng{Lat: 25.0375, Lng: 121.5637}, 15)
	require.NoError(t, err)

	assert.Equal(t, "/v2/isochrones/driving-car", gotPath)
	assert.Equal(t, "test-api-key", gotAuth)
	// 座標順序為 [lng, lat]，range 以秒為單位
	assert.Equal(t, [][]float64{{121.5637, 25.0375}}, gotBody.Locations)
	assert.Equal(t, []int{900}, gotBody.Range)

	require.Len(t, polygon, 1)
	assert.Len(t, polygon[0], 5)
	assert.Equal(t, orb.Point{121.5, 25.0}, polygon[0][0])
}

func TestFetchIsochrone_MultiPolygon取第一個(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"properties": {},
				"geometry": {
					"type": "MultiPolygon",
					"coordinates": [
						[[[121.5, 25.0], [121.6, 25.0], [121.6, 25.1], [121.5, 25.0]]],
						[[[122.0, 26.0], [122.1, 26.0], [122.1, 26.1], [122.0, 26.0]]]
					]
				}
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-api-key", "", 5*time.Second)
	polygon, err := client.FetchIsochrone(context.Background(), model.LatLng{Lat: 25.0375, Lng: 121.5637}, 30)
	require.NoError(t, err)

	require.Len(t, polygon, 1)
	assert.Equal(t, orb.Point{121.5, 25.0}, polygon[0][0])
}

func TestFetchIsochrone_沒有多邊形時回傳GeometryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"type": "FeatureCollection", "features": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-api-key", "", 5*time.Second)
	_, err := client.FetchIsochrone(context.Background(), model.LatLng{Lat: 25.0375, Lng: 121.5637}, 15)

	var geomErr *model.GeometryError
	require.ErrorAs(t, err, &geomErr)
}

func TestFetchIsochrone_失敗後重試一次(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(polygonFeatureCollection))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-api-key", "", 5*time.Second)
	_, err := client.FetchIsochrone(context.Background(), model.LatLng{Lat: 25.0375, Lng: 121.5637}, 15)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchIsochrone_重試後仍失敗回傳UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-api-key", "", 5*time.Second)
	_, err := client.FetchIsochrone(context.Background(), model.LatLng{Lat: 25.0375, Lng: 121.5637}, 15)

	var upstreamErr *model.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "ors", upstreamErr.Service)
}

func TestNewClient_預設Profile(t *testing.T) {
	client := NewClient("http://localhost", "key", "", time.Second)
	assert.Equal(t, DefaultProfile, client.profile)

	client = NewClient("http://localhost", "key", "cycling-regular", time.Second)
	assert.Equal(t, "cycling-regular", client.profile)
}
