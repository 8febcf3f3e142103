package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type series struct {
		Symbol string
		Closes []float64
	}
	in := series{Symbol: "SPY", Closes: []float64{500.1, 501.2}}
	if err := mc.Set(ctx, Key("candles", "SPY", "1d", 30), in, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out series
	if err := mc.Get(ctx, Key("candles", "SPY", "1d", 30), &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Symbol != "SPY" || len(out.Closes) != 2 {
		t.Fatalf("unexpected round trip: %+v", out)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var dest string
	err := mc.Get(context.Background(), "absent", &dest)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheEvictsOldestWhenFull(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxEntries(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", "1", time.Minute)
	_ = mc.Set(ctx, "b", "2", time.Minute)

	// Touch "a" so "b" becomes the eviction candidate.
	var v string
	_ = mc.Get(ctx, "a", &v)

	_ = mc.Set(ctx, "c", "3", time.Minute)

	if err := mc.Get(ctx, "b", &v); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected b evicted, got %v", err)
	}
	if err := mc.Get(ctx, "a", &v); err != nil {
		t.Fatalf("a should survive: %v", err)
	}
}

func TestKeyJoinsParts(t *testing.T) {
	if got := Key("candles", "SPY", "1d", 365); got != "candles:SPY:1d:365" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := Key("market", "context"); got != "market:context" {
		t.Fatalf("unexpected key %q", got)
	}
}
