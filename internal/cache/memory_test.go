package cache

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryCache_SetGet(t *testing.T) {
	c := NewInMemoryCache(0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", "Hola"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if val != "Hola" {
		t.Errorf("expected 'Hola', got %q", val)
	}
}

func TestInMemoryCache_Miss(t *testing.T) {
	c := NewInMemoryCache(time.Minute)

	val, ok := c.Get(context.Background(), "missing")
	if ok {
		t.Error("expected cache miss")
	}
	if val != "" {
		t.Errorf("expected empty value, got %q", val)
	}
}

func TestInMemoryCache_Expiry(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, "k", "v")

	now = now.Add(30 * time.Second)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("expected hit before TTL")
	}

	now = now.Add(time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected miss after TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expected expired entry to be evicted, Len = %d", c.Len())
	}
}

func TestInMemoryCache_Clear(t *testing.T) {
	c := NewInMemoryCache(0)
	ctx := context.Background()
	_ = c.Set(ctx, "a", "1")
	_ = c.Set(ctx, "b", "2")

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, Len = %d", c.Len())
	}
}

func TestKey(t *testing.T) {
	a := Key("  Hello ", "en", "es", "mymemory")
	b := Key("Hello", "en", "es", "mymemory")
	if a != b {
		t.Errorf("expected surrounding whitespace to be ignored: %q != %q", a, b)
	}

	if Key("Hello", "en", "fr", "mymemory") == b {
		t.Error("expected target language to change the key")
	}
	if Key("Hello", "en", "es", "google") == b {
		t.Error("expected service name to change the key")
	}
}
