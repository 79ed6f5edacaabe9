package casdoor

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

func newTestIdentity(t *testing.T) (*IdentityCasdoor, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return &IdentityCasdoor{
		profileCache: cache.NewCacheHelper(client, cache.ProfileCacheConfig),
	}, mr
}

func TestProfileCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		c, _ := newTestIdentity(t)

		profile := &repositories.IdentityProfile{
			Subject:     "sub-123",
			Email:       "alice@example.com",
			DisplayName: "Alice",
		}
		if err := c.setProfileCache(ctx, profile); err != nil {
			t.Fatalf("setProfileCache: %v", err)
		}

		got, err := c.getProfileFromCache(ctx, "sub-123")
		if err != nil {
			t.Fatalf("getProfileFromCache: %v", err)
		}
		if got == nil {
			t.Fatal("expected cached profile, got nil")
		}
		if got.Email != profile.Email || got.DisplayName != profile.DisplayName {
			t.Errorf("cached profile mismatch: %+v", got)
		}
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		c, _ := newTestIdentity(t)

		got, err := c.getProfileFromCache(ctx, "unknown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil on cache miss, got %+v", got)
		}
	})

	t.Run("entry expires with ttl", func(t *testing.T) {
		c, mr := newTestIdentity(t)

		profile := &repositories.IdentityProfile{Subject: "sub-456", Email: "bob@example.com"}
		if err := c.setProfileCache(ctx, profile); err != nil {
			t.Fatalf("setProfileCache: %v", err)
		}

		mr.FastForward(cache.ProfileCacheConfig.TTL + 1)

		got, err := c.getProfileFromCache(ctx, "sub-456")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected expired entry, got %+v", got)
		}
	})

	t.Run("cache write failure surfaces an error for logging", func(t *testing.T) {
		c, mr := newTestIdentity(t)
		mr.Close()

		if err := c.setProfileCache(ctx, &repositories.IdentityProfile{Subject: "down"}); err == nil {
			t.Error("expected error when redis is unreachable")
		}
	})

	t.Run("nil redis is a no-op", func(t *testing.T) {
		c := &IdentityCasdoor{profileCache: cache.NewCacheHelper(nil, cache.ProfileCacheConfig)}

		if err := c.setProfileCache(ctx, &repositories.IdentityProfile{Subject: "x"}); err != nil {
			t.Fatalf("setProfileCache with nil redis: %v", err)
		}
		got, err := c.getProfileFromCache(ctx, "x")
		if err != nil || got != nil {
			t.Errorf("expected nil, nil; got %+v, %v", got, err)
		}
	})
}
