package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/redis/go-redis/v9"

	"innsight/internal/domain/model"
	"innsight/internal/domain/repository"
)

// RedisCache 多個實例間共用的等時圈快取
// 多邊形以 GeoJSON 形式保存，TTL 交由 Redis 管理
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCache 建立 Redis 快取並確認連線
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, coord model.LatLng, tier model.Tier) (orb.Polygon, bool) {
	data, err := c.client.Get(ctx, Key(coord, tier)).Bytes()
	if err != nil {
		// 未命中與連線錯誤同樣視為未命中，交由上游重新取得
		c.misses.Add(1)
		return nil, false
	}

	var geom geojson.Geometry
	if err := json.Unmarshal(data, &geom); err != nil {
		log.Printf("⚠️ 快取內容解析失敗，視為未命中: %v", err)
		c.misses.Add(1)
		return nil, false
	}
	polygon, ok := geom.Geometry().(orb.Polygon)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return polygon, true
}

func (c *RedisCache) Set(ctx context.Context, coord model.LatLng, tier model.Tier, polygon orb.Polygon) {
	data, err := json.Marshal(geojson.NewGeometry(polygon))
	if err != nil {
		log.Printf("⚠️ 快取內容序列化失敗: %v", err)
		return
	}
	if err := c.client.Set(ctx, Key(coord, tier), data, c.ttl).Err(); err != nil {
		// 快取寫入失敗不影響請求本身
		log.Printf("⚠️ 快取寫入失敗: %v", err)
	}
}

func (c *RedisCache) Stats(ctx context.Context) repository.CacheStats {
	// KEYS 會阻塞整個 Redis，鍵數改用 SCAN 分批累計
	size := 0
	iter := c.client.Scan(ctx, 0, "isochrone:*", 100).Iterator()
	for iter.Next(ctx) {
		size++
	}
	if err := iter.Err(); err != nil {
		log.Printf("⚠️ 快取鍵掃描失敗: %v", err)
	}
	return repository.CacheStats{
		Size:   size,
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Close 關閉 Redis 連線
func (c *RedisCache) Close() error {
	return c.client.Close()
}
