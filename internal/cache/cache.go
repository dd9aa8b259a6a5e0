package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/lawdesk/advocate-diary/internal/database"
)

// Cache stores case list query results keyed by query. Write paths
// invalidate the keys they affect.
type Cache interface {
	Get(key string) ([]database.CaseRecord, bool)
	Set(key string, records []database.CaseRecord)
	Delete(key string)
	DeletePrefix(prefix string)
	Clear()
	Stats() CacheStats
}

type CacheStats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

type listCache struct {
	cache   *cache.Cache
	mu      sync.Mutex
	stats   CacheStats
	maxSize int
}

func NewCache(maxSize int, ttl time.Duration) Cache {
	return &listCache{
		cache:   cache.New(ttl, ttl*2),
		maxSize: maxSize,
	}
}

func (c *listCache) Get(key string) ([]database.CaseRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()

	if data, found := c.cache.Get(key); found {
		c.stats.Hits++
		if records, ok := data.([]database.CaseRecord); ok {
			return records, true
		}
	}

	c.stats.Misses++
	return nil, false
}

func (c *listCache) Set(key string, records []database.CaseRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache.ItemCount() >= c.maxSize {
		c.removeOldest()
	}

	c.cache.Set(key, records, cache.DefaultExpiration)
}

func (c *listCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Delete(key)
}

// DeletePrefix drops every entry whose key starts with prefix.
func (c *listCache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}

func (c *listCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.stats = CacheStats{}
}

func (c *listCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Size = c.cache.ItemCount()
	return c.stats
}

func (c *listCache) removeOldest() {
	items := c.cache.Items()
	if len(items) == 0 {
		return
	}

	var oldestKey string
	var oldestTime time.Time

	for key, item := range items {
		if oldestTime.IsZero() || item.Expiration < oldestTime.Unix() {
			oldestKey = key
			oldestTime = time.Unix(item.Expiration, 0)
		}
	}

	if oldestKey != "" {
		c.cache.Delete(oldestKey)
	}
}

// PendingPrefix covers every pending-list key regardless of cutoff.
const PendingPrefix = "cases:pending:"

func DateKey(date string) string {
	return fmt.Sprintf("cases:date:%s", date)
}

func PendingKey(asOf string) string {
	return PendingPrefix + asOf
}
