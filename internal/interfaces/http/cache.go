package http

import (
	"sync"
	"time"
)

type cacheEntry struct {
	data      sentimentResponse
	timestamp time.Time
}

// ResponseCache is an in-memory TTL cache for sentiment responses, keyed
// by ticker plus company. Collection hits four providers per fetch, so
// repeat requests inside the TTL window are served from memory.
type ResponseCache struct {
	entries map[string]cacheEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewResponseCache creates a cache with the given TTL. A TTL of 0
// disables caching entirely.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get retrieves a response if present and not expired.
func (c *ResponseCache) Get(key string) (sentimentResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Since(entry.timestamp) > c.ttl {
		return sentimentResponse{}, false
	}
	return entry.data, true
}

// Set stores a response. No-op when the TTL is 0.
func (c *ResponseCache) Set(key string, data sentimentResponse) {
	if c.ttl == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, timestamp: time.Now()}
}

// CleanExpired removes expired entries and reports how many were dropped.
func (c *ResponseCache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleaned := 0
	now := time.Now()
	for key, entry := range c.entries {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.entries, key)
			cleaned++
		}
	}
	return cleaned
}

// StartCleanupWorker periodically evicts expired entries until the stop
// channel closes.
func (c *ResponseCache) StartCleanupWorker(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.CleanExpired()
			case <-stop:
				return
			}
		}
	}()
}
