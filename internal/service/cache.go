package service

import (
	"context"
	"sync"
	"time"

	"github.com/moodcast/backend/internal/domain"
)

// ExpiryPolicy decides how long a cached prediction stays valid
type ExpiryPolicy interface {
	ExpiresAt(storedAt time.Time) time.Time
}

// TTLPolicy keeps results for a fixed duration
type TTLPolicy struct {
	TTL time.Duration
}

func (p TTLPolicy) ExpiresAt(storedAt time.Time) time.Time {
	return storedAt.Add(p.TTL)
}

// CalendarDayPolicy keeps results until the next midnight in Location
type CalendarDayPolicy struct {
	Location *time.Location
}

func (p CalendarDayPolicy) ExpiresAt(storedAt time.Time) time.Time {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	t := storedAt.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc)
}

// PredictionCache stores prediction payloads in front of the predictor.
// Concurrent writers may race; the last write wins.
type PredictionCache interface {
	Get(ctx context.Context, key string) (domain.PredictionResult, bool)
	Set(ctx context.Context, key string, result domain.PredictionResult)
	Invalidate(ctx context.Context, key string)
}

type cacheEntry struct {
	result    domain.PredictionResult
	expiresAt time.Time
}

// MemoryCache is a process-local PredictionCache
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	policy  ExpiryPolicy
	now     func() time.Time
}

// NewMemoryCache creates an in-process cache. A nil clock means time.Now.
func NewMemoryCache(policy ExpiryPolicy, now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		policy:  policy,
		now:     now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (domain.PredictionResult, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return domain.PredictionResult{}, false
	}
	return e.result, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, result domain.PredictionResult) {
	now := c.now()
	c.mu.Lock()
	c.entries[key] = cacheEntry{result: result, expiresAt: c.policy.ExpiresAt(now)}
	c.mu.Unlock()
}

func (c *MemoryCache) Invalidate(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
