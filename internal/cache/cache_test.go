package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

type monthRow struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, time.Minute, logging.Default()), mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	in := []monthRow{{Month: "2026-08", Total: 4200}}
	c.Set(ctx, "payments:grouped", in)

	var out []monthRow
	if !c.Get(ctx, "payments:grouped", &out) {
		t.Fatal("expected cache hit")
	}
	if len(out) != 1 || out[0].Month != "2026-08" || out[0].Total != 4200 {
		t.Fatalf("unexpected cached value: %+v", out)
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var out []monthRow
	if c.Get(context.Background(), "absent", &out) {
		t.Fatal("expected miss for absent key")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "payments:grouped", []monthRow{{Month: "2026-08"}})
	mr.FastForward(2 * time.Minute)

	var out []monthRow
	if c.Get(ctx, "payments:grouped", &out) {
		t.Fatal("expected miss after TTL")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k1", monthRow{Month: "2026-01"})
	c.Invalidate(ctx, "k1")

	var out monthRow
	if c.Get(ctx, "k1", &out) {
		t.Fatal("expected miss after invalidate")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	c.Set(ctx, "k", monthRow{})
	c.Invalidate(ctx, "k")
	var out monthRow
	if c.Get(ctx, "k", &out) {
		t.Fatal("nil cache must always miss")
	}
}
