package seqstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestLocalNextStartsAtOneAndIsPerChannel(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	for want := uint64(1); want <= 3; want++ {
		got, err := s.Next(ctx, "a")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("a: got %d want %d", got, want)
		}
	}
	if got, _ := s.Next(ctx, "b"); got != 1 {
		t.Fatalf("b should start at 1, got %d", got)
	}
	if got, _ := s.Current(ctx, "a"); got != 3 {
		t.Fatalf("current a=%d want 3", got)
	}
}

func TestLocalCurrentManyIncludesAllAndZeroForMissing(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, err := s.Next(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Next(ctx, "b"); err != nil {
		t.Fatal(err)
	}

	in := []string{"a", "b", "c"}
	cp := append([]string(nil), in...)
	got, err := s.CurrentMany(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if got["a"] != 0 || got["b"] != 2 || got["c"] != 0 {
		t.Fatalf("got=%v want a=0,b=2,c=0", got)
	}
	for i := range in {
		if in[i] != cp[i] {
			t.Fatalf("input mutated at %d: %q -> %q", i, cp[i], in[i])
		}
	}
}

func TestLocalNextIsUniqueUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	const workers, per = 8, 100
	var mu sync.Mutex
	seen := make(map[uint64]bool, workers*per)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < per; j++ {
				n, _ := s.Next(ctx, "ch")
				mu.Lock()
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if len(seen) != workers*per {
		t.Fatalf("duplicate sequence numbers: %d unique of %d", len(seen), workers*per)
	}
}

func TestLocalCleanupPrunesIdle(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(0, time.Second)
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, err := s.Next(ctx, "old"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(1200 * time.Millisecond)
	s.Cleanup(time.Second)

	if n, _ := s.Current(ctx, "old"); n != 0 {
		t.Fatalf("expected pruned -> 0, got %d", n)
	}
}

func TestLocalCloseIsIdempotent(t *testing.T) {
	s := NewLocal(time.Millisecond, time.Hour)
	_ = s.Close(context.Background())
	_ = s.Close(context.Background())
}

func TestRedisConfigAndKeys(t *testing.T) {
	if _, err := NewRedis(RedisConfig{Namespace: "ns"}); err == nil {
		t.Fatalf("expected error for nil client")
	}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	if _, err := NewRedis(RedisConfig{Client: rdb}); err == nil {
		t.Fatalf("expected error for empty namespace")
	}
	s, err := NewRedis(RedisConfig{Client: rdb, Namespace: "ns"})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Key("url"); got != "seq:ns:url" {
		t.Fatalf("key=%q", got)
	}
	if m, err := s.CurrentMany(context.Background(), nil); err != nil || len(m) != 0 {
		t.Fatalf("empty CurrentMany must not hit redis: %v %v", m, err)
	}
}

func TestParseCounter(t *testing.T) {
	cases := []struct {
		in   any
		want uint64
	}{
		{nil, 0},
		{"7", 7},
		{[]byte("12"), 12},
		{int64(5), 5},
	}
	for _, tc := range cases {
		got, err := parseCounter(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("parseCounter(%v)=%d,%v want %d", tc.in, got, err, tc.want)
		}
	}
	if _, err := parseCounter("x"); err == nil {
		t.Fatalf("expected parse error")
	}
}
