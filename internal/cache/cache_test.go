package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryProviderSetGet(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	if _, err := p.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get(missing) err = %v, want ErrCacheMiss", err)
	}

	if err := p.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set() err = %v", err)
	}
	got, err := p.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() err = %v", err)
	}
	if got != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}
}

func TestMemoryProviderExpiry(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	if err := p.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("Set() err = %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := p.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(expired) err = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryProviderOverwrite(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	_ = p.Set(ctx, "k", "v1", time.Minute)
	_ = p.Set(ctx, "k", "v2", time.Minute)

	got, err := p.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() err = %v", err)
	}
	if got != "v2" {
		t.Errorf("Get() = %q, want %q", got, "v2")
	}
}
