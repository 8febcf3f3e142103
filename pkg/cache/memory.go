package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	value    interface{}
	expireAt time.Time
}

func (e *memoryEntry) expired() bool {
	return time.Now().After(e.expireAt)
}

// MemoryCache is the in-process layer. It also stands alone when
// Redis is not configured, e.g. the backtest CLI.
type MemoryCache struct {
	mu            sync.Mutex
	entries       map[string]*memoryEntry
	lastRead      map[string]time.Time
	maxEntries    int
	cleanupTicker *time.Ticker
}

// NewMemoryCache starts a memory cache and its expiry sweeper.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxEntries:      1000,
		CleanupInterval: 5 * time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		entries:       make(map[string]*memoryEntry),
		lastRead:      make(map[string]time.Time),
		maxEntries:    cfg.MaxEntries,
		cleanupTicker: time.NewTicker(cfg.CleanupInterval),
	}

	go mc.sweepExpired()
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.entries) >= mc.maxEntries {
		mc.evictOldest()
	}

	expireAt := time.Now().Add(expiration)
	if expiration <= 0 {
		expireAt = time.Now().Add(7 * 24 * time.Hour)
	}

	mc.entries[key] = &memoryEntry{value: value, expireAt: expireAt}
	mc.lastRead[key] = time.Now()
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	entry, ok := mc.entries[key]
	if !ok || entry.expired() {
		if ok {
			delete(mc.entries, key)
			delete(mc.lastRead, key)
		}
		return ErrCacheMiss
	}

	mc.lastRead[key] = time.Now()

	switch d := dest.(type) {
	case *string:
		if str, ok := entry.value.(string); ok {
			*d = str
			return nil
		}
	case *interface{}:
		*d = entry.value
		return nil
	}

	// Typed destinations go through a JSON round trip, matching what
	// the Redis layer returns for the same key.
	b, err := json.Marshal(entry.value)
	if err != nil {
		return fmt.Errorf("cache: marshal stored value: %w", err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("cache: unmarshal to dest: %w", err)
	}
	return nil
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for _, key := range keys {
		delete(mc.entries, key)
		delete(mc.lastRead, key)
	}
	return nil
}

func (mc *MemoryCache) evictOldest() {
	if len(mc.entries) == 0 {
		return
	}

	var oldestKey string
	oldestTime := time.Now()

	for key, readAt := range mc.lastRead {
		if readAt.Before(oldestTime) {
			oldestTime = readAt
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(mc.entries, oldestKey)
		delete(mc.lastRead, oldestKey)
	}
}

func (mc *MemoryCache) sweepExpired() {
	for range mc.cleanupTicker.C {
		mc.mu.Lock()
		now := time.Now()
		for key, entry := range mc.entries {
			if now.After(entry.expireAt) {
				delete(mc.entries, key)
				delete(mc.lastRead, key)
			}
		}
		mc.mu.Unlock()
	}
}

// Close stops the expiry sweeper.
func (mc *MemoryCache) Close() error {
	if mc.cleanupTicker != nil {
		mc.cleanupTicker.Stop()
	}
	return nil
}
