package pricing

import (
	"sync"
	"time"
)

// QuoteCache caches resolved quotes to reduce API calls. Public retail
// prices move slowly, so a long TTL is fine within a demo run.
type QuoteCache struct {
	data  map[string]*cacheEntry
	ttl   time.Duration
	mutex sync.RWMutex
}

type cacheEntry struct {
	quote     *Quote
	expiresAt time.Time
}

func NewQuoteCache(ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}
}

func (c *QuoteCache) Get(key string) *Quote {
	c.mutex.RLock()
	entry, exists := c.data[key]
	c.mutex.RUnlock()
	if !exists {
		return nil
	}

	if time.Now().After(entry.expiresAt) {
		c.mutex.Lock()
		delete(c.data, key)
		c.mutex.Unlock()
		return nil
	}

	return entry.quote
}

func (c *QuoteCache) Set(key string, quote *Quote) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = &cacheEntry{
		quote:     quote,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *QuoteCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]*cacheEntry)
}
