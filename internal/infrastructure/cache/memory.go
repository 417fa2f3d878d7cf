package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/paulmach/orb"

	"innsight/internal/domain/model"
	"innsight/internal/domain/repository"
)

// Key 等時圈快取的鍵。座標由呼叫端先四捨五入。
func Key(coord model.LatLng, tier model.Tier) string {
	return fmt.Sprintf("isochrone:%.4f,%.4f:%d", coord.Lat, coord.Lng, tier.Minutes())
}

// MemoryCache 行程內的 TTL 快取（預設實作）
// 讀寫皆可並行，過期條目在讀取時懶惰清除
type MemoryCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]memoryEntry
	hits    atomic.Int64
	misses  atomic.Int64
}

type memoryEntry struct {
	polygon   orb.Polygon
	expiresAt time.Time
}

// NewMemoryCache 建立記憶體快取
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, coord model.LatLng, tier model.Tier) (orb.Polygon, bool) {
	key := Key(coord, tier)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		// 重新確認：清除期間可能已被覆寫
		if current, still := c.entries[key]; still && time.Now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return entry.polygon, true
}

func (c *MemoryCache) Set(_ context.Context, coord model.LatLng, tier model.Tier, polygon orb.Polygon) {
	c.mu.Lock()
	c.entries[Key(coord, tier)] = memoryEntry{
		polygon:   polygon,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

func (c *MemoryCache) Stats(_ context.Context) repository.CacheStats {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()
	return repository.CacheStats{
		Size:   size,
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
