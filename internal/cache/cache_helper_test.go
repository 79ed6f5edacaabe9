package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type testEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestHelper(t *testing.T, config CacheConfig) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return NewCacheHelper(client, config), mr
}

func TestCacheHelper(t *testing.T) {
	ctx := context.Background()
	config := CacheConfig{TTL: time.Minute, Prefix: "test:"}

	t.Run("set then get round trip", func(t *testing.T) {
		helper, _ := newTestHelper(t, config)

		want := testEntry{Name: "alpha", Count: 3}
		if err := helper.Set(ctx, "k1", want); err != nil {
			t.Fatalf("Set: %v", err)
		}

		var got testEntry
		if err := helper.Get(ctx, "k1", &got); err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("miss reports ErrCacheNotFound", func(t *testing.T) {
		helper, _ := newTestHelper(t, config)

		var got testEntry
		if err := helper.Get(ctx, "missing", &got); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("expected ErrCacheNotFound, got %v", err)
		}
	})

	t.Run("entry expires with ttl", func(t *testing.T) {
		helper, mr := newTestHelper(t, config)

		if err := helper.Set(ctx, "k2", testEntry{Name: "beta"}); err != nil {
			t.Fatalf("Set: %v", err)
		}

		mr.FastForward(2 * time.Minute)

		var got testEntry
		if err := helper.Get(ctx, "k2", &got); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("expected ErrCacheNotFound after expiry, got %v", err)
		}
	})

	t.Run("delete removes entries", func(t *testing.T) {
		helper, _ := newTestHelper(t, config)

		if err := helper.Set(ctx, "k3", testEntry{Name: "gamma"}); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := helper.Delete(ctx, "k3"); err != nil {
			t.Fatalf("Delete: %v", err)
		}

		var got testEntry
		if err := helper.Get(ctx, "k3", &got); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("expected ErrCacheNotFound after delete, got %v", err)
		}
	})

	t.Run("keys carry the configured prefix", func(t *testing.T) {
		helper, mr := newTestHelper(t, config)

		if err := helper.Set(ctx, "k4", testEntry{}); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if !mr.Exists("test:k4") {
			t.Error("expected key test:k4 in redis")
		}
	})

	t.Run("nil client degrades gracefully", func(t *testing.T) {
		helper := NewCacheHelper(nil, config)

		if err := helper.Set(ctx, "k5", testEntry{}); err != nil {
			t.Errorf("Set with nil client: %v", err)
		}
		if err := helper.Delete(ctx, "k5"); err != nil {
			t.Errorf("Delete with nil client: %v", err)
		}
		var got testEntry
		if err := helper.Get(ctx, "k5", &got); !errors.Is(err, ErrCacheNotAvailable) {
			t.Errorf("expected ErrCacheNotAvailable, got %v", err)
		}
		if err := helper.HealthCheck(ctx); !errors.Is(err, ErrCacheNotAvailable) {
			t.Errorf("expected ErrCacheNotAvailable from health check, got %v", err)
		}
	})
}
