// Package redis stores captures in Redis, shared across processes.
package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/paramwire/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 256

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var (
	_ pr.Provider    = (*Redis)(nil)
	_ pr.Scanner     = (*Redis)(nil)
	_ pr.BatchSetter = (*Redis)(nil)
)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this provider exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

// Set ignores cost. Non-positive TTLs store without expiry.
func (p *Redis) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if err := p.rdb.Set(ctx, key, value, max(ttl, 0)).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// SetMany pipelines one SET per item.
func (p *Redis) SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}
	ttl = max(ttl, 0)
	_, err := p.rdb.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for k, v := range items {
			pipe.Set(ctx, k, v, ttl)
		}
		return nil
	})
	return err
}

func (p *Redis) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, key).Err()
}

// Scan walks keys with SCAN MATCH. With a cluster client only the node the
// command lands on is scanned.
func (p *Redis) Scan(ctx context.Context, prefix string, fn func(key string) bool) error {
	it := p.rdb.Scan(ctx, 0, escapeGlob(prefix)+"*", scanBatch).Iterator()
	for it.Next(ctx) {
		if !fn(it.Val()) {
			return nil
		}
	}
	return it.Err()
}

// escapeGlob quotes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	if !strings.ContainsAny(s, `*?[]\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Close releases the underlying redis client only when this provider owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
