package cache_test

import (
	"context"
	"testing"
	"time"

	"pantry-tracker/internal/core/ai/cache"
	"pantry-tracker/internal/infrastructure/config"
	"pantry-tracker/internal/pkg/common"
)

func testConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:         true,
		MaxSize:         2,
		TTL:             time.Minute,
		CleanupInterval: time.Minute,
	}
}

func TestManager_SetGet(t *testing.T) {
	m := cache.NewManager(testConfig())
	ctx := context.Background()

	if _, err := m.Get(ctx, "prompt"); err != common.ErrCacheMiss {
		t.Fatalf("want miss before set, got %v", err)
	}

	if err := m.Set(ctx, "prompt", "svar"); err != nil {
		t.Fatal(err)
	}

	got, err := m.Get(ctx, "prompt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "svar" {
		t.Fatalf("want %q, got %q", "svar", got)
	}
}

func TestManager_TTLExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.TTL = 10 * time.Millisecond
	m := cache.NewManager(cfg)
	ctx := context.Background()

	if err := m.Set(ctx, "prompt", "svar"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := m.Get(ctx, "prompt"); err != common.ErrCacheMiss {
		t.Fatalf("want miss after TTL expiry, got %v", err)
	}
	if m.Size() != 0 {
		t.Fatalf("want expired entry dropped, size %d", m.Size())
	}
}

func TestManager_LRUEviction(t *testing.T) {
	m := cache.NewManager(testConfig())
	ctx := context.Background()

	m.Set(ctx, "a", "1")
	m.Set(ctx, "b", "2")

	// touch "a" so "b" becomes the eviction candidate
	if _, err := m.Get(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	if err := m.Set(ctx, "c", "3"); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Get(ctx, "a"); err != nil {
		t.Fatal("recently used entry must survive eviction")
	}
	if _, err := m.Get(ctx, "b"); err == nil {
		t.Fatal("least recently used entry must be evicted")
	}
}

func TestManager_DisabledReturnsNil(t *testing.T) {
	if m := cache.NewManager(config.CacheConfig{Enabled: false}); m != nil {
		t.Fatal("want nil manager when disabled")
	}
}
