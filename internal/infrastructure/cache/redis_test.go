package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innsight/internal/domain/model"
)

func newTestRedisCache(t *testing.T) *RedisCache {
	t.Helper()
	server := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), server.Addr(), "", 0, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCache_存取(t *testing.T) {
	ctx := context.Background()
	c := newTestRedisCache(t)
	coord := model.LatLng{Lat: 25.0375, Lng: 121.5637}

	_, ok := c.Get(ctx, coord, model.Tier15)
	assert.False(t, ok)

	c.Set(ctx, coord, model.Tier15, testPolygon())

	got, ok := c.Get(ctx, coord, model.Tier15)
	require.True(t, ok)
	assert.Equal(t, testPolygon(), got)

	_, ok = c.Get(ctx, coord, model.Tier30)
	assert.False(t, ok)
}

func TestRedisCache_內容不是GeoJSON時視為未命中(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	c, err := NewRedisCache(ctx, server.Addr(), "", 0, time.Hour)
	require.NoError(t, err)
	defer c.Close()

	coord := model.LatLng{Lat: 25.0375, Lng: 121.5637}
	require.NoError(t, server.Set(Key(coord, model.Tier15), "not geojson"))

	_, ok := c.Get(ctx, coord, model.Tier15)
	assert.False(t, ok)
}

func TestRedisCache_統計以SCAN計數(t *testing.T) {
	ctx := context.Background()
	c := newTestRedisCache(t)

	c.Set(ctx, model.LatLng{Lat: 25.0375, Lng: 121.5637}, model.Tier15, testPolygon())
	c.Set(ctx, model.LatLng{Lat: 25.0375, Lng: 121.5637}, model.Tier30, testPolygon())
	c.Set(ctx, model.LatLng{Lat: 24.1477, Lng: 120.6736}, model.Tier15, testPolygon())

	stats := c.Stats(ctx)
	assert.Equal(t, 3, stats.Size)
}

func TestRedisCache_連線失敗時建立即回報(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "127.0.0.1:0", "", 0, time.Hour)
	require.Error(t, err)
}
