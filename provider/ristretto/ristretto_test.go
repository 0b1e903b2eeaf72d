package ristretto

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func newProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{MaxCost: 1 << 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)

	ok, err := p.Set(ctx, "k", []byte("value"), 5, time.Minute)
	if err != nil || !ok {
		t.Fatalf("set: ok=%v err=%v", ok, err)
	}
	p.Wait()

	b, hit, err := p.Get(ctx, "k")
	if err != nil || !hit || !bytes.Equal(b, []byte("value")) {
		t.Fatalf("get: %q hit=%v err=%v", b, hit, err)
	}

	if err := p.Del(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := p.Get(ctx, "k"); hit {
		t.Fatalf("expected miss after Del")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := Config{}.withDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxCost != defaultMaxCost || cfg.BufferItems != defaultBufferItems || cfg.NumCounters <= 0 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}

	small, err := Config{MaxCost: 100}.withDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if small.NumCounters != 1000 {
		t.Fatalf("counters should have a floor, got %d", small.NumCounters)
	}

	if _, err := New(Config{MaxCost: -1}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestMetrics(t *testing.T) {
	p, err := New(Config{Metrics: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	ctx := context.Background()
	_, _ = p.Set(ctx, "k", []byte("v"), 1, 0)
	p.Wait()
	_, _, _ = p.Get(ctx, "k")
	_, _, _ = p.Get(ctx, "missing")
	if m := p.Metrics(); m == nil || m.Hits() != 1 || m.Misses() != 1 {
		t.Fatalf("unexpected metrics %v", m)
	}
}
