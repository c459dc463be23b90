// Package cache keeps validated research briefs in memory for a fixed TTL.
package cache

import (
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"podcaster/internal/core"
)

// DefaultTTL is how long a research brief stays valid.
const DefaultTTL = time.Hour

// Clock returns the current time.
type Clock func() time.Time

type entry struct {
	value     core.ResearchOutput
	createdAt time.Time
}

// Cache maps canonical request keys to research briefs. Entries expire lazily
// when read; there is no background sweep and no capacity bound.
//
// The mutex only keeps the map consistent. Two requests racing on the same key
// may both miss and both call the model; the last Set wins.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     Clock
}

// New creates a cache. A nil clock uses time.Now; a negative ttl is treated as 0.
func New(ttl time.Duration, clock Clock) *Cache {
	if clock == nil {
		clock = time.Now
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     clock,
	}
}

// Key derives the cache key for req: its JSON form with sorted keys, base64
// encoded. Absent optional fields are left out.
func Key(req core.ResearchRequest) string {
	fields := map[string]any{
		"topic":           req.Topic,
		"durationMinutes": req.DurationMinutes,
	}
	if req.Style != "" {
		fields["style"] = req.Style
	}
	if req.Language != "" {
		fields["language"] = req.Language
	}
	// encoding/json writes map keys in sorted order.
	b, _ := json.Marshal(fields)
	return base64.StdEncoding.EncodeToString(b)
}

// Get returns a copy of the cached brief for key if it has not expired.
// Expired entries are removed.
func (c *Cache) Get(key string) (core.ResearchOutput, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return core.ResearchOutput{}, false
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		delete(c.entries, key)
		return core.ResearchOutput{}, false
	}
	return e.value.Clone(), true
}

// Set stores a copy of value under key, replacing any previous entry.
func (c *Cache) Set(key string, value core.ResearchOutput) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value.Clone(), createdAt: c.now()}
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
