// Package cache keeps recently fetched candle history and market
// context so repeated scans inside one bar cost a single upstream
// call. It ships a memory layer, a Redis layer, and a layered
// combination of the two.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss reports an absent or expired key.
var ErrCacheMiss = errors.New("cache: key not found")

// Service is what the market-data client programs against. Values are
// stored as JSON; Get unmarshals into dest.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// Key joins parts into a colon-separated cache key, e.g.
// Key("candles", "SPY", "1d", 365).
func Key(parts ...interface{}) string {
	key := ""
	for i, part := range parts {
		if i == 0 {
			key = fmt.Sprintf("%v", part)
			continue
		}
		key = fmt.Sprintf("%s:%v", key, part)
	}
	return key
}
